// Package vcache adds group invalidation and compute-or-fetch helpers on top of
// a flat key/value store.
//
// The primary store only knows get/set/delete/increment. vcache emulates
// "delete every entry in group G" with a per-group version counter: each entry
// is framed with the version current when it was written, and a read is a hit
// only while the counter still has that value. InvalidateGroup is a single
// atomic increment; stale entries stay resident until the store evicts or
// overwrites them.
//
// Components:
//   - store.Store: primary byte store with groups and atomic increment
//     (Redis, BigCache, Ristretto, LRU adapters).
//   - version.Counter: where group versions live. Defaults to a counter kept
//     in the primary store itself.
//   - durable.Store: secondary store for Persist/Cease, in a local and a shared
//     scope.
//   - codec.Codec[V]: (de)serializes V <-> []byte.
//
// Keys (prefix defaults to "vcache"):
//
//	<prefix>_<key>      entry key
//	<prefix>_<group>    group name ("default" when empty)
//	<prefix>_version    counter key inside each group
//
// Compute-or-fetch:
//
//	u, err := c.Remember(ctx, "user:42", func(ctx context.Context) (User, error) {
//		return db.LoadUser(ctx, 42)
//	}, "users", time.Hour)
//	...
//	_, _ = c.InvalidateGroup(ctx, "users") // every cached user is now a miss
//
// A compute that returns a non-nil error is passed back unchanged and its value
// is never cached. vcache does not single-flight: concurrent misses each run
// compute and the last write wins.
package vcache
