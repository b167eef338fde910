package eblb

import (
	"encoding/binary"
	"fmt"
	"image"
)

// doorSize is the fixed length in bytes of a door record head; the
// null-terminated exit-scene name and its padding follow it.
const doorSize = 28

// SaveEntranceID is the entrance id the game assigns to save rooms.
const SaveEntranceID = 0x32

// Door marks a level entrance and/or exit. The head is intentionally
// permissive: any byte pattern is a valid set of ids, only the exit-scene
// name is constrained (ASCII, no embedded null).
type Door struct {
	X1             int32  `json:"x1" yaml:"x1"`
	Y1             int32  `json:"y1" yaml:"y1"`
	X2             int32  `json:"x2" yaml:"x2"`
	Y2             int32  `json:"y2" yaml:"y2"`
	EntranceID     int32  `json:"entrance_id" yaml:"entrance_id"`
	ExitTypeID     uint16 `json:"exit_type_id" yaml:"exit_type_id"`
	ExitLocationID uint32 `json:"exit_location_id" yaml:"exit_location_id"`
	EntranceTypeID uint16 `json:"entrance_type_id" yaml:"entrance_type_id"`
	ExitSceneName  string `json:"exit_scene_name" yaml:"exit_scene_name"`
}

func decodeDoor(b []byte, exitSceneName string) (Door, error) {
	if len(b) != doorSize {
		return Door{}, fmt.Errorf("%w: door record must be %d bytes, not %d", ErrParsing, doorSize, len(b))
	}

	return Door{
		X1:             int32(binary.LittleEndian.Uint32(b[0:4])),
		Y1:             int32(binary.LittleEndian.Uint32(b[4:8])),
		X2:             int32(binary.LittleEndian.Uint32(b[8:12])),
		Y2:             int32(binary.LittleEndian.Uint32(b[12:16])),
		EntranceID:     int32(binary.LittleEndian.Uint32(b[16:20])),
		ExitTypeID:     binary.LittleEndian.Uint16(b[20:22]),
		ExitLocationID: binary.LittleEndian.Uint32(b[22:26]),
		EntranceTypeID: binary.LittleEndian.Uint16(b[26:28]),
		ExitSceneName:  exitSceneName,
	}, nil
}

// appendDoor packs the head followed by the null-terminated exit-scene
// name and its alignment padding.
func appendDoor(b []byte, d Door) ([]byte, error) {
	if err := checkName(d.ExitSceneName); err != nil {
		return nil, fmt.Errorf("exit-scene name: %w", err)
	}

	var head [doorSize]byte
	binary.LittleEndian.PutUint32(head[0:4], uint32(d.X1))
	binary.LittleEndian.PutUint32(head[4:8], uint32(d.Y1))
	binary.LittleEndian.PutUint32(head[8:12], uint32(d.X2))
	binary.LittleEndian.PutUint32(head[12:16], uint32(d.Y2))
	binary.LittleEndian.PutUint32(head[16:20], uint32(d.EntranceID))
	binary.LittleEndian.PutUint16(head[20:22], d.ExitTypeID)
	binary.LittleEndian.PutUint32(head[22:26], d.ExitLocationID)
	binary.LittleEndian.PutUint16(head[26:28], d.EntranceTypeID)

	b = append(b, head[:]...)
	b = append(b, d.ExitSceneName...)
	b = append(b, 0)
	return append(b, make([]byte, stringsPadding([]string{d.ExitSceneName}))...), nil
}

// checkName rejects strings that cannot be stored null-terminated.
func checkName(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return fmt.Errorf("%w: %q contains an embedded null", ErrBadData, s)
		}
		if s[i] > 0x7f {
			return fmt.Errorf("%w: %q is not ASCII", ErrBadData, s)
		}
	}
	return nil
}

// Bounds returns the door's corner rectangle in the format's native
// bottom-left coordinate system.
func (d Door) Bounds() image.Rectangle {
	return image.Rect(int(d.X1), int(d.Y1), int(d.X2), int(d.Y2))
}

// FlippedBounds returns the rectangle reflected against a canvas of the
// given pixel height.
func (d Door) FlippedBounds(height int) image.Rectangle {
	return image.Rect(int(d.X1), height-int(d.Y1), int(d.X2), height-int(d.Y2))
}
