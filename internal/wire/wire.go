package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	format byte = 1
	hdrLen      = 4 + 1 + 8 + 4
)

var (
	ErrCorrupt = errors.New("vcache: corrupt entry")
	magic4     = [...]byte{'V', 'C', 'E', 'N'}
)

// Entry: magic(4) | format(1) | version(u64 be) | plen(u32 be) | payload(plen)
func Encode(version uint64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(format)

	var u8 [8]byte
	binary.BigEndian.PutUint64(u8[:], version)
	buf.Write(u8[:])

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode returns the version tag and a zero-copy view of the payload.
// Anything but an exact frame is ErrCorrupt.
func Decode(b []byte) (version uint64, payload []byte, err error) {
	if len(b) < hdrLen || !bytes.Equal(b[:4], magic4[:]) || b[4] != format {
		return 0, nil, ErrCorrupt
	}
	off := 5

	version = binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	plen := uint64(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if plen != uint64(len(b)-off) {
		return 0, nil, ErrCorrupt
	}
	return version, b[off:], nil
}
