package vcache

// Category partitions cache activity for the enablement check.
type Category string

const (
	// CategoryObject covers Read/Write against the primary store.
	CategoryObject Category = "object"
	// CategoryTransient covers Persist/Cease against the durable stores.
	CategoryTransient Category = "transient"
)

// Enabler is consulted on every call. Returning false turns that category's
// reads into misses and its writes into no-ops; computes still run.
type Enabler func(cat Category) bool

func AlwaysEnabled(Category) bool { return true }

// Disable returns an Enabler that refuses the given categories.
func Disable(cats ...Category) Enabler {
	off := make(map[Category]struct{}, len(cats))
	for _, c := range cats {
		off[c] = struct{}{}
	}
	return func(cat Category) bool {
		_, ok := off[cat]
		return !ok
	}
}

// And enables a category only when both e and next do.
func (e Enabler) And(next Enabler) Enabler {
	return func(cat Category) bool { return e(cat) && next(cat) }
}
