package eblb

import (
	"encoding/binary"
	"fmt"
	"image"
)

const (
	headerSize = 16
	cameraSize = 20

	// headerSentinel is the constant second header field; anything else
	// means this is not an EBLB file.
	headerSentinel = 1

	maxCount = 0xffff
)

// Level is the decoded form of an EBLB file. It owns its objects, doors
// and tile grid outright and holds no other state between codec calls;
// concurrent use of separate Levels needs no locking, concurrent
// mutation of one Level must be serialized by the caller.
type Level struct {
	Objects  []Object `json:"objects" yaml:"objects"`
	Doors    []Door   `json:"doors" yaml:"doors"`
	CameraX1 int32    `json:"camera_x1" yaml:"camera_x1"`
	CameraY1 int32    `json:"camera_y1" yaml:"camera_y1"`
	CameraX2 int32    `json:"camera_x2" yaml:"camera_x2"`
	CameraY2 int32    `json:"camera_y2" yaml:"camera_y2"`
	Tiles    Grid     `json:"tiles" yaml:"tiles"`

	// typeOrder remembers the decoded table order so an unmodified level
	// re-encodes byte-for-byte. See buildTypeTable.
	typeOrder []string
}

// Check fails with ErrBadData unless the level satisfies the structural
// invariants the binary format requires, currently tile rectangularity.
func (l *Level) Check() error {
	return l.Tiles.Check()
}

// UnmarshalBinary decodes a complete EBLB file. The file regions are
// strictly sequential: header, type table, objects, camera block, doors,
// then the tile grid filling the remainder of the buffer.
func (l *Level) UnmarshalBinary(b []byte) error {
	r := &reader{b: b}

	var hdr struct {
		objects, sentinel, doors, types uint16
		tilesW, tilesH                  uint32
	}
	var err error
	if hdr.objects, err = r.uint16(); err != nil {
		return err
	}
	if hdr.sentinel, err = r.uint16(); err != nil {
		return err
	}
	if hdr.doors, err = r.uint16(); err != nil {
		return err
	}
	if hdr.types, err = r.uint16(); err != nil {
		return err
	}
	if hdr.tilesW, err = r.uint32(); err != nil {
		return err
	}
	if hdr.tilesH, err = r.uint32(); err != nil {
		return err
	}
	if hdr.sentinel != headerSentinel {
		return fmt.Errorf("%w: header sentinel should be %d, not %d", ErrParsing, headerSentinel, hdr.sentinel)
	}

	types, err := readTypeTable(r, int(hdr.types))
	if err != nil {
		return err
	}

	objects := make([]Object, hdr.objects)
	for i := range objects {
		rec, err := r.take(objectSize)
		if err != nil {
			return err
		}
		if objects[i], err = decodeObject(rec, types); err != nil {
			return err
		}
	}

	var camera [4]int32
	for i := range camera {
		if camera[i], err = r.int32(); err != nil {
			return err
		}
	}
	zero, err := r.int32()
	if err != nil {
		return err
	}
	if zero != 0 {
		return fmt.Errorf("%w: camera block trailer should be 0, not %d", ErrParsing, zero)
	}

	doors := make([]Door, hdr.doors)
	for i := range doors {
		head, err := r.take(doorSize)
		if err != nil {
			return err
		}
		name, err := r.cstring()
		if err != nil {
			return err
		}
		if err := r.skip(stringsPadding([]string{name})); err != nil {
			return err
		}
		if doors[i], err = decodeDoor(head, name); err != nil {
			return err
		}
	}

	raw := r.rest()
	if uint64(len(raw)) != uint64(hdr.tilesW)*uint64(hdr.tilesH) {
		return fmt.Errorf("%w: %d tile bytes does not match %dx%d grid", ErrBadData, len(raw), hdr.tilesW, hdr.tilesH)
	}
	w := int(hdr.tilesW)
	tiles := make(Grid, hdr.tilesH)
	for y := range tiles {
		tiles[y] = make([]byte, w)
		copy(tiles[y], raw[y*w:(y+1)*w])
	}

	l.Objects = objects
	l.Doors = doors
	l.CameraX1, l.CameraY1, l.CameraX2, l.CameraY2 = camera[0], camera[1], camera[2], camera[3]
	l.Tiles = tiles
	l.typeOrder = types

	return nil
}

// MarshalBinary encodes the level back to the on-disk byte layout. All
// validation runs before any bytes are produced; an invalid level yields
// an error and no output.
func (l *Level) MarshalBinary() ([]byte, error) {
	if err := l.Check(); err != nil {
		return nil, err
	}
	if len(l.Objects) > maxCount {
		return nil, fmt.Errorf("%w: %d objects exceeds format limit %d", ErrBadData, len(l.Objects), maxCount)
	}
	if len(l.Doors) > maxCount {
		return nil, fmt.Errorf("%w: %d doors exceeds format limit %d", ErrBadData, len(l.Doors), maxCount)
	}

	types := buildTypeTable(l.Objects, l.typeOrder)
	if len(types) > maxCount {
		return nil, fmt.Errorf("%w: %d underworld types exceeds format limit %d", ErrBadData, len(types), maxCount)
	}
	index := make(map[string]uint16, len(types))
	for i, s := range types {
		if err := checkName(s); err != nil {
			return nil, fmt.Errorf("underworld type: %w", err)
		}
		index[s] = uint16(i + 1)
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(len(l.Objects)))
	binary.LittleEndian.PutUint16(hdr[2:4], headerSentinel)
	binary.LittleEndian.PutUint16(hdr[4:6], uint16(len(l.Doors)))
	binary.LittleEndian.PutUint16(hdr[6:8], uint16(len(types)))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(l.Tiles.Width()))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(l.Tiles.Height()))

	b := append([]byte(nil), hdr[:]...)
	b = appendTypeTable(b, types)

	var err error
	for _, o := range l.Objects {
		if b, err = appendObject(b, o, index); err != nil {
			return nil, err
		}
	}

	var camera [cameraSize]byte
	binary.LittleEndian.PutUint32(camera[0:4], uint32(l.CameraX1))
	binary.LittleEndian.PutUint32(camera[4:8], uint32(l.CameraY1))
	binary.LittleEndian.PutUint32(camera[8:12], uint32(l.CameraX2))
	binary.LittleEndian.PutUint32(camera[12:16], uint32(l.CameraY2))
	// camera[16:20] stays zero
	b = append(b, camera[:]...)

	for _, d := range l.Doors {
		if b, err = appendDoor(b, d); err != nil {
			return nil, err
		}
	}

	for _, row := range l.Tiles {
		b = append(b, row...)
	}

	return b, nil
}

// CameraBounds returns the default camera rectangle in the format's
// native bottom-left coordinate system.
func (l *Level) CameraBounds() image.Rectangle {
	return image.Rect(int(l.CameraX1), int(l.CameraY1), int(l.CameraX2), int(l.CameraY2))
}

// CameraFlippedBounds returns the camera rectangle reflected against a
// canvas of the given pixel height.
func (l *Level) CameraFlippedBounds(height int) image.Rectangle {
	return image.Rect(int(l.CameraX1), height-int(l.CameraY1), int(l.CameraX2), height-int(l.CameraY2))
}
