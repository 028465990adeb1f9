package bytes

// NewBitField returns a zeroed bit field which can hold size bits.
func NewBitField(size int) []byte {
	return make([]byte, (size+7)/8)
}

// IsBitSet takes in byte array, and check if bitwise index is 0 or 1.
//
// []byte{255, 0, 1} and index is 8, it looks at index 1 in the slice and determin if 0 bit is true/false.
func IsBitSet(bits []byte, index int) bool {
	return ((bits[index/8] << (index % 8)) & 0x80) == 0x80
}

// SetBit sets the bit at bitwise index to 1.
func SetBit(bits []byte, index int) {
	bits[index/8] |= 0x80 >> (index % 8)
}
