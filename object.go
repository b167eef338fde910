package eblb

import (
	"encoding/binary"
	"fmt"
	"image"
)

// objectSize is the fixed length in bytes of an object record.
const objectSize = 20

// Bounding box of every object when drawn, in pixels.
const (
	objectWidth  = 16
	objectHeight = 32
)

// Object is a placed entity or decoration. The fields whose meaning has
// not been recovered are named after their byte offset within the record
// and must be preserved as-is.
type Object struct {
	UnderworldType string `json:"underworld_type" yaml:"underworld_type"`
	X              int16  `json:"x_location" yaml:"x_location"`
	Y              int16  `json:"y_location" yaml:"y_location"`
	Bool6          bool   `json:"unknown_bool6" yaml:"unknown_bool6"`
	Bool7          bool   `json:"unknown_bool7" yaml:"unknown_bool7"`
	Char8          uint8  `json:"unknown_char8" yaml:"unknown_char8"`
	Char9          uint8  `json:"unknown_char9" yaml:"unknown_char9"`
	CharA          uint8  `json:"unknown_chara" yaml:"unknown_chara"`
	CharB          uint8  `json:"unknown_charb" yaml:"unknown_charb"`
	ShortC         uint16 `json:"unknown_shortc" yaml:"unknown_shortc"`
	IntE           uint32 `json:"unknown_inte" yaml:"unknown_inte"`
}

// decodeObject unpacks a single record, resolving the stored 1-based type
// index against the table in scope.
func decodeObject(b []byte, types []string) (Object, error) {
	if len(b) != objectSize {
		return Object{}, fmt.Errorf("%w: object record must be %d bytes, not %d", ErrParsing, objectSize, len(b))
	}
	if b[6] > 1 {
		return Object{}, fmt.Errorf("%w: invalid boolean byte 0x%02x", ErrParsing, b[6])
	}
	if b[7] > 1 {
		return Object{}, fmt.Errorf("%w: invalid boolean byte 0x%02x", ErrParsing, b[7])
	}
	if b[18] != 0 || b[19] != 0 {
		return Object{}, fmt.Errorf("%w: non-zero object padding bytes %02x %02x", ErrBadData, b[18], b[19])
	}

	index := binary.LittleEndian.Uint16(b[0:2])
	if index == 0 || int(index) > len(types) {
		return Object{}, fmt.Errorf("%w: underworld type index %d out of range 1..%d", ErrBadData, index, len(types))
	}

	return Object{
		UnderworldType: types[index-1],
		X:              int16(binary.LittleEndian.Uint16(b[2:4])),
		Y:              int16(binary.LittleEndian.Uint16(b[4:6])),
		Bool6:          b[6] == 1,
		Bool7:          b[7] == 1,
		Char8:          b[8],
		Char9:          b[9],
		CharA:          b[10],
		CharB:          b[11],
		ShortC:         binary.LittleEndian.Uint16(b[12:14]),
		IntE:           binary.LittleEndian.Uint32(b[14:18]),
	}, nil
}

// appendObject packs the record, looking the type name up in index which
// maps names to their 1-based table position. The caller must have built
// the table from the objects being encoded; an absent name is a broken
// precondition.
func appendObject(b []byte, o Object, index map[string]uint16) ([]byte, error) {
	i, ok := index[o.UnderworldType]
	if !ok {
		return nil, fmt.Errorf("%w: underworld type %q not in table", ErrBadData, o.UnderworldType)
	}

	var rec [objectSize]byte
	binary.LittleEndian.PutUint16(rec[0:2], i)
	binary.LittleEndian.PutUint16(rec[2:4], uint16(o.X))
	binary.LittleEndian.PutUint16(rec[4:6], uint16(o.Y))
	if o.Bool6 {
		rec[6] = 1
	}
	if o.Bool7 {
		rec[7] = 1
	}
	rec[8] = o.Char8
	rec[9] = o.Char9
	rec[10] = o.CharA
	rec[11] = o.CharB
	binary.LittleEndian.PutUint16(rec[12:14], o.ShortC)
	binary.LittleEndian.PutUint32(rec[14:18], o.IntE)
	// rec[18], rec[19] stay zero

	return append(b, rec[:]...), nil
}

// Bounds returns the object's bounding box in the format's native
// bottom-left coordinate system.
func (o Object) Bounds() image.Rectangle {
	return image.Rect(int(o.X), int(o.Y), int(o.X)+objectWidth, int(o.Y)+objectHeight)
}

// FlippedBounds returns the bounding box reflected against a canvas of
// the given pixel height, for drawing onto a top-left-origin image.
func (o Object) FlippedBounds(height int) image.Rectangle {
	return image.Rect(int(o.X), height-int(o.Y)-objectHeight, int(o.X)+objectWidth, height-int(o.Y))
}
