// Package version holds per-group version counters.
//
// A counter value of 0 means the group has never been written. Counters only
// move forward: Init sets a missing counter to 1 and Bump adds 1. Entries tagged
// with any older value are stale.
package version

import (
	"context"
)

// Counter abstracts where group versions live.
// Use StoreCounter (default) to keep them in the primary store next to the
// entries, or Local for a single process.
type Counter interface {
	// Current returns the group's version; missing => 0.
	Current(ctx context.Context, group string, force bool) (uint64, error)
	// Init creates the counter at 1 and returns the version writers must use.
	Init(ctx context.Context, group string) (uint64, error)
	// Bump atomically increments and returns the new version.
	Bump(ctx context.Context, group string) (uint64, error)
}
