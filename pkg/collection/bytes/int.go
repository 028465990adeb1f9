package bytes

import "encoding/binary"

// FromUint64 converts uint64 to byte slice with length 8.
func FromUint64(val uint64) []byte {
	heightBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(heightBytes, val)
	return heightBytes
}

// ToUint64 converts byte slice to uint64. bytes[8:] will be ignored.
func ToUint64(val []byte) uint64 {
	return binary.BigEndian.Uint64(val)
}
