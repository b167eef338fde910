package eblb

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Grid is the level's tile map, one byte per cell, stored row-major.
// Every row must be the same length as row zero.
//
// In the structured (JSON/YAML) form a Grid appears as nested arrays of
// integers rather than base64 strings, so hand-edited descriptions stay
// readable.
type Grid [][]byte

// Width returns the length of the first row, or zero for an empty grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Check fails with ErrBadData unless the grid is rectangular.
func (g Grid) Check() error {
	for i, row := range g {
		if len(row) != g.Width() {
			return fmt.Errorf("%w: tile row %d has %d tiles, want %d", ErrBadData, i, len(row), g.Width())
		}
	}
	return nil
}

func (g Grid) toInts() [][]int {
	rows := make([][]int, len(g))
	for y, row := range g {
		rows[y] = make([]int, len(row))
		for x, t := range row {
			rows[y][x] = int(t)
		}
	}
	return rows
}

func gridFromInts(rows [][]int) (Grid, error) {
	g := make(Grid, len(rows))
	for y, row := range rows {
		g[y] = make([]byte, len(row))
		for x, t := range row {
			if t < 0 || t > 0xff {
				return nil, fmt.Errorf("%w: tile id %d at (%d,%d) out of range 0..255", ErrBadData, t, x, y)
			}
			g[y][x] = byte(t)
		}
	}
	return g, nil
}

// MarshalJSON implements json.Marshaler.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.toInts())
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Grid) UnmarshalJSON(b []byte) error {
	var rows [][]int
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	grid, err := gridFromInts(rows)
	if err != nil {
		return err
	}
	*g = grid
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (g Grid) MarshalYAML() (interface{}, error) {
	return g.toInts(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Grid) UnmarshalYAML(value *yaml.Node) error {
	var rows [][]int
	if err := value.Decode(&rows); err != nil {
		return err
	}
	grid, err := gridFromInts(rows)
	if err != nil {
		return err
	}
	*g = grid
	return nil
}
