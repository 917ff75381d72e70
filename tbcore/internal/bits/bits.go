// Package bits reads the little/big-endian fixed-width integers the Syzygy
// binary format is built from (spec.md §6.3). The format mixes endiannesses
// deliberately: offsets/counts are little-endian, the compressed bit stream
// itself is read big-endian word-at-a-time.
package bits

// LE16 reads a little-endian uint16 from the start of b.
func LE16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// LE32 reads a little-endian uint32 from the start of b.
func LE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// BE32 reads a big-endian uint32 from the start of b.
func BE32(b []byte) uint32 {
	return uint32(b[3]) | uint32(b[2])<<8 | uint32(b[1])<<16 | uint32(b[0])<<24
}

// BE64 reads a big-endian uint64 from the start of b.
func BE64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}
