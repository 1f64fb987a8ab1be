package vcache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; wrap slow sinks with
// hooks/async.
type Hooks interface {
	// A read found an entry tagged with an older group version.
	StaleEntry(group, key string, entryVersion, currentVersion uint64)

	// A read found bytes it could not use.
	// reason ∈ {"frame", "empty", "decode"}
	CorruptEntry(group, key, reason string)

	// The primary store returned ok=false on Set.
	WriteRejected(group, key string)

	// A backing store returned an error. The call degraded to a miss/no-op.
	StoreError(err *OpError)

	// Remember/Persist got a failure from compute; nothing was cached.
	ComputeFailed(key string, err error)

	// Flush found neither a store.Flusher nor Options.FlushFunc.
	FlushUnavailable()
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) StaleEntry(string, string, uint64, uint64) {}
func (NopHooks) CorruptEntry(string, string, string)       {}
func (NopHooks) WriteRejected(string, string)              {}
func (NopHooks) StoreError(*OpError)                       {}
func (NopHooks) ComputeFailed(string, error)               {}
func (NopHooks) FlushUnavailable()                         {}
