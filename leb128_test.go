package crocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLEB128RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		val := rapid.Uint32().Draw(t, "val")

		encoded := appendLEB128(nil, val)
		assert.LessOrEqual(t, len(encoded), maxLEB128Size)

		decoded, rest := readLEB128(encoded)
		assert.Equal(t, val, decoded)
		assert.Empty(t, rest)
	})
}

func TestLEB128SmallValuesAreOneByte(t *testing.T) {
	for v := uint32(0); v < 0x80; v++ {
		assert.Len(t, appendLEB128(nil, v), 1)
	}
}

func TestLEB128MaxValueFits(t *testing.T) {
	encoded := appendLEB128(nil, 0xFFFFFFFF)
	assert.LessOrEqual(t, len(encoded), maxLEB128Size)
	decoded, _ := readLEB128(encoded)
	assert.Equal(t, uint32(0xFFFFFFFF), decoded)
}

func TestLEB128LeavesTrailingBytes(t *testing.T) {
	encoded := appendLEB128(nil, 300)
	encoded = append(encoded, 0xAB, 0xCD)
	decoded, rest := readLEB128(encoded)
	assert.Equal(t, uint32(300), decoded)
	assert.Equal(t, []byte{0xAB, 0xCD}, rest)
}
