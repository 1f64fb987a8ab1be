package codec

import "fmt"

// Limit rejects payloads larger than MaxDecode before handing them to Inner.
// Use it when the primary store is shared with writers you do not control.
// MaxDecode <= 0 disables the check. Encode is passed through.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("codec: payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
