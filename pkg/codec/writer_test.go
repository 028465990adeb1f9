package codec

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustDecodeHex(v string) []byte {
	res, err := hex.DecodeString(v)
	if err != nil {
		panic(err)
	}
	return res
}

func TestWriteBool(t *testing.T) {
	cases := []struct {
		input       bool
		fieldNumber int
		result      string
	}{
		{
			input:       true,
			fieldNumber: 1,
			result:      "0801",
		},
		{
			input:       false,
			fieldNumber: 1,
			result:      "0800",
		},
	}
	for _, c := range cases {
		writer := NewWriter()
		writer.WriteBool(c.fieldNumber, c.input)
		assert.Equal(t, mustDecodeHex(c.result), writer.Result())
	}
}

func TestWriteBytes(t *testing.T) {
	cases := []struct {
		input       []byte
		fieldNumber int
		result      string
	}{
		{
			input:       mustDecodeHex("e11a11364738225813f86ea85214400e5db08d6e"),
			fieldNumber: 1,
			result:      "0a14e11a11364738225813f86ea85214400e5db08d6e",
		},
		{
			input:       []byte{},
			fieldNumber: 2,
			result:      "1200",
		},
	}
	for _, c := range cases {
		writer := NewWriter()
		writer.WriteBytes(c.fieldNumber, c.input)
		assert.Equal(t, mustDecodeHex(c.result), writer.Result())
	}
}

func TestWriteBytesArray(t *testing.T) {
	cases := []struct {
		input       [][]byte
		fieldNumber int
		result      string
	}{
		{
			input: [][]byte{
				mustDecodeHex("e11a11364738225813f86ea85214400e5db08d6e"),
				mustDecodeHex(""),
				mustDecodeHex("676f676f676f67"),
			},
			fieldNumber: 1,
			result:      "0a14e11a11364738225813f86ea85214400e5db08d6e0a000a07676f676f676f67",
		},
	}
	for _, c := range cases {
		writer := NewWriter()
		writer.WriteBytesArray(c.fieldNumber, c.input)
		assert.Equal(t, mustDecodeHex(c.result), writer.Result())
	}
}

func TestWriteString(t *testing.T) {
	writer := NewWriter()
	writer.WriteString(1, "ember")
	assert.Equal(t, mustDecodeHex("0a05656d626572"), writer.Result())
}

func TestWriteUInt(t *testing.T) {
	cases := []struct {
		input       uint64
		fieldNumber int
		result      string
	}{
		{
			input:       10,
			fieldNumber: 1,
			result:      "080a",
		},
		{
			input:       372036854775807,
			fieldNumber: 1,
			result:      "08ffffc9a4d9cb54",
		},
		{
			input:       300,
			fieldNumber: 2,
			result:      "10ac02",
		},
	}
	for _, c := range cases {
		writer := NewWriter()
		writer.WriteUInt(c.fieldNumber, c.input)
		assert.Equal(t, mustDecodeHex(c.result), writer.Result())
	}
}

func TestWriteUInt32(t *testing.T) {
	writer := NewWriter()
	writer.WriteUInt32(1, 300)
	assert.Equal(t, mustDecodeHex("08ac02"), writer.Result())
}

func TestWriteUInts(t *testing.T) {
	cases := []struct {
		input       []uint64
		fieldNumber int
		result      string
	}{
		{
			input:       []uint64{3, 1, 4, 1, 5, 9, 2, 6, 5},
			fieldNumber: 1,
			result:      "0a09030104010509020605",
		},
	}
	for _, c := range cases {
		writer := NewWriter()
		writer.WriteUInts(c.fieldNumber, c.input)
		assert.Equal(t, mustDecodeHex(c.result), writer.Result())
	}
}

func TestWriterSize(t *testing.T) {
	writer := NewWriter()
	writer.WriteUInt(1, 10)
	writer.WriteBytes(2, []byte{1, 2, 3})
	assert.Equal(t, len(writer.Result()), writer.Size())
}
