/*
Package colordb stores named tile-color themes for the renderer in a
small sqlite database, so per-game or per-area palettes survive between
tool runs.
*/
package colordb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	db *sql.DB
}

// Open opens or creates the theme database at file.
func Open(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS color (theme TEXT NOT NULL, tile INTEGER NOT NULL, r INTEGER NOT NULL, g INTEGER NOT NULL, b INTEGER NOT NULL, PRIMARY KEY (theme, tile))"); err != nil {
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Set stores or replaces the color for one tile id within a theme.
func (d *DB) Set(theme string, tile byte, c color.RGBA) error {
	_, err := d.db.Exec("INSERT OR REPLACE INTO color (theme, tile, r, g, b) VALUES (?, ?, ?, ?, ?)", theme, tile, c.R, c.G, c.B)
	return err
}

// Colors returns the tile-id color table for a theme, in the shape the
// renderer consumes.
func (d *DB) Colors(theme string) (map[byte]color.Color, error) {
	rows, err := d.db.Query("SELECT tile, r, g, b FROM color WHERE theme = ?", theme)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colors := make(map[byte]color.Color)
	for rows.Next() {
		var tile, r, g, b int
		if err := rows.Scan(&tile, &r, &g, &b); err != nil {
			return nil, err
		}
		colors[byte(tile)] = color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}
	}

	return colors, rows.Err()
}

// Themes lists every theme present in the database.
func (d *DB) Themes() ([]string, error) {
	rows, err := d.db.Query("SELECT DISTINCT theme FROM color ORDER BY theme")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var themes []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}

	return themes, rows.Err()
}

// ImportJSON bulk-loads a theme from a JSON file mapping tile ids to
// [r, g, b] triples, e.g. {"0": [0, 0, 0], "12": [0, 0, 255]}.
func (d *DB) ImportJSON(theme, file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var m map[string][3]uint8
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}

	for k, v := range m {
		tile, err := strconv.ParseUint(k, 10, 8)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("tile id %q: %v", k, err)
		}
		if _, err := tx.Exec("INSERT OR REPLACE INTO color (theme, tile, r, g, b) VALUES (?, ?, ?, ?, ?)", theme, tile, v[0], v[1], v[2]); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
