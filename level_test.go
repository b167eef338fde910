package eblb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// testFile assembles a synthetic level file region by region.
type testFile struct {
	bytes.Buffer
}

func (f *testFile) header(objects, sentinel, doors, types uint16, tilesW, tilesH uint32) *testFile {
	for _, v := range []uint16{objects, sentinel, doors, types} {
		binary.Write(f, binary.LittleEndian, v)
	}
	for _, v := range []uint32{tilesW, tilesH} {
		binary.Write(f, binary.LittleEndian, v)
	}
	return f
}

func (f *testFile) typeTable(types ...string) *testFile {
	f.WriteString(typeTableMagic)
	for _, s := range types {
		f.WriteString(s)
		f.WriteByte(0)
	}
	f.Write(make([]byte, tableRegionPadding(types)))
	return f
}

func (f *testFile) camera(x1, y1, x2, y2, trailer int32) *testFile {
	for _, v := range []int32{x1, y1, x2, y2, trailer} {
		binary.Write(f, binary.LittleEndian, v)
	}
	return f
}

func TestDecodeSynthetic(t *testing.T) {
	f := new(testFile)
	f.header(0, 1, 0, 1, 2, 2).typeTable("A").camera(0, 0, 10, 10, 0)
	f.Write([]byte{1, 2, 3, 4})

	level := new(Level)
	require.NoError(t, level.UnmarshalBinary(f.Bytes()))

	assert.Empty(t, level.Objects)
	assert.Empty(t, level.Doors)
	assert.Equal(t, Grid{{1, 2}, {3, 4}}, level.Tiles)
	assert.Equal(t, image.Rect(0, 0, 10, 10), level.CameraBounds())

	// re-encoding an unmodified level reproduces the input exactly
	b, err := level.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, f.Bytes(), b)
}

func TestDecodeRejects(t *testing.T) {
	tables := []struct {
		name string
		file func() []byte
		err  error
	}{
		{
			"truncated header",
			func() []byte { return []byte{1, 0, 1, 0} },
			ErrParsing,
		},
		{
			"header sentinel not 1",
			func() []byte {
				f := new(testFile)
				return f.header(0, 2, 0, 0, 0, 0).typeTable().camera(0, 0, 0, 0, 0).Bytes()
			},
			ErrParsing,
		},
		{
			"missing type table marker",
			func() []byte {
				f := new(testFile)
				f.header(0, 1, 0, 0, 0, 0)
				f.WriteString("UNDERWORLD_TYPOS_TYP\x00\x00\x00\x00")
				return f.camera(0, 0, 0, 0, 0).Bytes()
			},
			ErrParsing,
		},
		{
			"unterminated type name",
			func() []byte {
				f := new(testFile)
				f.header(0, 1, 0, 1, 0, 0)
				f.WriteString(typeTableMagic)
				f.WriteString("ABC")
				return f.Bytes()
			},
			ErrParsing,
		},
		{
			"camera trailer not 0",
			func() []byte {
				f := new(testFile)
				return f.header(0, 1, 0, 0, 0, 0).typeTable().camera(0, 0, 0, 0, 5).Bytes()
			},
			ErrParsing,
		},
		{
			"tile bytes do not match grid",
			func() []byte {
				f := new(testFile)
				f.header(0, 1, 0, 0, 2, 2).typeTable().camera(0, 0, 0, 0, 0)
				f.Write([]byte{1, 2, 3})
				return f.Bytes()
			},
			ErrBadData,
		},
	}
	for _, table := range tables {
		err := new(Level).UnmarshalBinary(table.file())
		assert.ErrorIs(t, err, table.err, table.name)
	}
}

func testLevel() *Level {
	return &Level{
		Objects: []Object{
			{UnderworldType: "ROCK", X: 16, Y: 32, Bool6: true, IntE: 9},
			{UnderworldType: "GRASS", X: -16, Y: 64, ShortC: 2},
			{UnderworldType: "ROCK", X: 48, Y: 0},
		},
		Doors: []Door{
			{X1: 0, Y1: 0, X2: 32, Y2: 64, EntranceID: 1, ExitTypeID: 2, ExitLocationID: 3, EntranceTypeID: 4, ExitSceneName: "IB_04"},
		},
		CameraX1: 0,
		CameraY1: 0,
		CameraX2: 320,
		CameraY2: 240,
		Tiles:    Grid{{0, 1, 3}, {7, 9, 11}},
	}
}

func TestRoundTrip(t *testing.T) {
	level := testLevel()

	b, err := level.MarshalBinary()
	require.NoError(t, err)

	got := new(Level)
	require.NoError(t, got.UnmarshalBinary(b))

	assert.Equal(t, level.Objects, got.Objects)
	assert.Equal(t, level.Doors, got.Doors)
	assert.Equal(t, level.Tiles, got.Tiles)
	assert.Equal(t, level.CameraBounds(), got.CameraBounds())
}

func TestEncodeIdempotent(t *testing.T) {
	first, err := testLevel().MarshalBinary()
	require.NoError(t, err)

	level := new(Level)
	require.NoError(t, level.UnmarshalBinary(first))

	second, err := level.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// A file whose table order differs from the objects' first-use order must
// still survive a decode/encode cycle byte for byte.
func TestRoundTripPreservesTableOrder(t *testing.T) {
	f := new(testFile)
	f.header(2, 1, 0, 2, 1, 1).typeTable("ROCK", "GRASS")
	rec, err := appendObject(nil, Object{UnderworldType: "GRASS"}, map[string]uint16{"GRASS": 2})
	require.NoError(t, err)
	f.Write(rec)
	rec, err = appendObject(nil, Object{UnderworldType: "ROCK"}, map[string]uint16{"ROCK": 1})
	require.NoError(t, err)
	f.Write(rec)
	f.camera(0, 0, 0, 0, 0)
	f.WriteByte(27)

	level := new(Level)
	require.NoError(t, level.UnmarshalBinary(f.Bytes()))
	require.Equal(t, "GRASS", level.Objects[0].UnderworldType)

	b, err := level.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, f.Bytes(), b)
}

func TestEncodeNonRectangular(t *testing.T) {
	level := testLevel()
	level.Tiles = Grid{{1, 2}, {3}}

	b, err := level.MarshalBinary()
	assert.ErrorIs(t, err, ErrBadData)
	assert.Nil(t, b)
}

func TestEncodeBadTypeName(t *testing.T) {
	level := testLevel()
	level.Objects[0].UnderworldType = "R\x00CK"

	_, err := level.MarshalBinary()
	assert.ErrorIs(t, err, ErrBadData)
}

func TestEmptyLevelRoundTrip(t *testing.T) {
	b, err := new(Level).MarshalBinary()
	require.NoError(t, err)

	level := new(Level)
	require.NoError(t, level.UnmarshalBinary(b))
	assert.Zero(t, level.Tiles.Width())
	assert.Zero(t, level.Tiles.Height())
}

func TestJSONRoundTrip(t *testing.T) {
	level := testLevel()

	b, err := json.Marshal(level)
	require.NoError(t, err)

	// tiles must serialize as integer arrays, not base64
	assert.Contains(t, string(b), `"tiles":[[0,1,3],[7,9,11]]`)

	got := new(Level)
	require.NoError(t, json.Unmarshal(b, got))
	assert.Equal(t, level, got)
}

func TestYAMLRoundTrip(t *testing.T) {
	level := testLevel()

	b, err := yaml.Marshal(level)
	require.NoError(t, err)

	got := new(Level)
	require.NoError(t, yaml.Unmarshal(b, got))
	assert.Equal(t, level, got)
}

func TestGridUnmarshalRange(t *testing.T) {
	var g Grid
	assert.ErrorIs(t, json.Unmarshal([]byte("[[0,256]]"), &g), ErrBadData)
	assert.ErrorIs(t, json.Unmarshal([]byte("[[-1]]"), &g), ErrBadData)
}
