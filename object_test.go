package eblb

import (
	"encoding/binary"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectRecord(index uint16, x, y int16) []byte {
	b := make([]byte, objectSize)
	binary.LittleEndian.PutUint16(b[0:2], index)
	binary.LittleEndian.PutUint16(b[2:4], uint16(x))
	binary.LittleEndian.PutUint16(b[4:6], uint16(y))
	b[6], b[7] = 1, 0
	b[8], b[9], b[10], b[11] = 0xde, 0xad, 0xbe, 0xef
	binary.LittleEndian.PutUint16(b[12:14], 0x1234)
	binary.LittleEndian.PutUint32(b[14:18], 0xcafebabe)
	return b
}

func TestDecodeObject(t *testing.T) {
	types := []string{"GRASS", "ROCK"}

	o, err := decodeObject(objectRecord(2, -5, 40), types)
	require.NoError(t, err)

	assert.Equal(t, Object{
		UnderworldType: "ROCK",
		X:              -5,
		Y:              40,
		Bool6:          true,
		Char8:          0xde,
		Char9:          0xad,
		CharA:          0xbe,
		CharB:          0xef,
		ShortC:         0x1234,
		IntE:           0xcafebabe,
	}, o)
}

func TestDecodeObjectRejects(t *testing.T) {
	types := []string{"GRASS"}

	tables := []struct {
		name   string
		mangle func([]byte) []byte
		err    error
	}{
		{"short record", func(b []byte) []byte { return b[:19] }, ErrParsing},
		{"long record", func(b []byte) []byte { return append(b, 0) }, ErrParsing},
		{"boolean byte 2", func(b []byte) []byte { b[6] = 2; return b }, ErrParsing},
		{"second boolean byte 2", func(b []byte) []byte { b[7] = 2; return b }, ErrParsing},
		{"non-zero padding", func(b []byte) []byte { b[19] = 1; return b }, ErrBadData},
		{"zero type index", func(b []byte) []byte { b[0], b[1] = 0, 0; return b }, ErrBadData},
		{"type index out of range", func(b []byte) []byte { b[0] = 2; return b }, ErrBadData},
	}
	for _, table := range tables {
		_, err := decodeObject(table.mangle(objectRecord(1, 0, 0)), types)
		assert.ErrorIs(t, err, table.err, table.name)
	}
}

func TestObjectRoundTrip(t *testing.T) {
	types := []string{"GRASS", "ROCK"}
	index := map[string]uint16{"GRASS": 1, "ROCK": 2}

	o := Object{
		UnderworldType: "GRASS",
		X:              100,
		Y:              -200,
		Bool7:          true,
		CharA:          7,
		ShortC:         0xffff,
		IntE:           42,
	}

	b, err := appendObject(nil, o, index)
	require.NoError(t, err)
	require.Len(t, b, objectSize)

	got, err := decodeObject(b, types)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestEncodeObjectUnknownType(t *testing.T) {
	_, err := appendObject(nil, Object{UnderworldType: "LAVA"}, map[string]uint16{"GRASS": 1})
	assert.ErrorIs(t, err, ErrBadData)
}

func TestObjectBounds(t *testing.T) {
	o := Object{X: 10, Y: 20}

	assert.Equal(t, image.Rect(10, 20, 26, 52), o.Bounds())
	assert.Equal(t, image.Rect(10, 100-52, 26, 100-20), o.FlippedBounds(100))
}
