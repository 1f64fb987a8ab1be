// Package codec turns cached values into bytes and back.
//
// vcache frames the encoded bytes with the entry's group version, so a codec
// only sees the caller's value. An encoding that yields zero bytes reads back
// as a miss: prefer codecs that never produce empty output (JSON, CBOR, msgpack
// all qualify).
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
