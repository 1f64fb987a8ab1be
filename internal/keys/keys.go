package keys

// DefaultGroup is used when the caller passes an empty group.
const DefaultGroup = "default"

// VersionKey is the user-key suffix under which a group's version counter lives.
const VersionKey = "version"

// Namer derives storage keys and group names from a fixed prefix.
type Namer struct {
	prefix string
}

func NewNamer(prefix string) Namer { return Namer{prefix: prefix} }

func (n Namer) Prefix() string { return n.prefix }

// Key returns prefix_key.
func (n Namer) Key(userKey string) string {
	return n.prefix + "_" + userKey
}

// Group returns prefix_group, substituting DefaultGroup for "".
func (n Namer) Group(userGroup string) string {
	if userGroup == "" {
		userGroup = DefaultGroup
	}
	return n.prefix + "_" + userGroup
}

// Version returns the counter key shared by every group under this prefix.
func (n Namer) Version() string {
	return n.Key(VersionKey)
}

// Reserved reports whether userKey would collide with the version counter.
func (n Namer) Reserved(userKey string) bool {
	return userKey == VersionKey
}
