package merkle

import (
	"encoding/binary"
	"fmt"
)

// indexSize is the width of the little-endian row index prefix.
const indexSize = 8

// Bundle is a proof submitted with a weight update.
// Wire format: index (8 bytes LE) || sibling_0 || sibling_1 || ...
type Bundle struct {
	Index    uint64           // Index is the snapshot row index
	Siblings [][HashSize]byte // Siblings are consumed in order from the leaf up
}

// DecodeBundle parses the wire encoding of a proof bundle.
// An empty sibling list is valid (single-row snapshot).
func DecodeBundle(data []byte) (Bundle, error) {
	if len(data) < indexSize {
		return Bundle{}, fmt.Errorf("proof bundle too short: %d bytes", len(data))
	}

	rest := data[indexSize:]
	if len(rest)%HashSize != 0 {
		return Bundle{}, fmt.Errorf("proof bundle siblings not a multiple of %d bytes: %d", HashSize, len(rest))
	}

	b := Bundle{
		Index:    binary.LittleEndian.Uint64(data[:indexSize]),
		Siblings: make([][HashSize]byte, len(rest)/HashSize),
	}

	for i := range b.Siblings {
		copy(b.Siblings[i][:], rest[i*HashSize:(i+1)*HashSize])
	}

	return b, nil
}

// Encode returns the wire encoding of the bundle.
func (b Bundle) Encode() []byte {
	buf := make([]byte, indexSize, indexSize+len(b.Siblings)*HashSize)
	binary.LittleEndian.PutUint64(buf, b.Index)

	for _, s := range b.Siblings {
		buf = append(buf, s[:]...)
	}

	return buf
}
