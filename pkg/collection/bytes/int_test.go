package bytes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint64ToBytes(t *testing.T) {
	assert.Equal(t, FromUint64(math.MaxUint64), []byte{255, 255, 255, 255, 255, 255, 255, 255})
	assert.Equal(t, FromUint64(0), []byte{0, 0, 0, 0, 0, 0, 0, 0})
	assert.Equal(t, FromUint64(25), []byte{0, 0, 0, 0, 0, 0, 0, 25})
}

func TestBytesToUint64(t *testing.T) {
	assert.Equal(t, ToUint64([]byte{255, 255, 255, 255, 255, 255, 255, 255}), uint64(math.MaxUint64))
	assert.Equal(t, ToUint64([]byte{0, 0, 0, 0, 0, 0, 0, 25}), uint64(25))
}

func TestCopy(t *testing.T) {
	original := []byte{1, 2, 3}
	copied := Copy(original)
	assert.Equal(t, original, copied)

	copied[0] = 9
	assert.Equal(t, byte(1), original[0])
}
