/*
Package render draws a decoded EBLB level as a raster image.

Each tile becomes a Scale by Scale pixel block colored from a tile-id
lookup table, with the level's door, object and camera rectangles
optionally outlined on top. The output has the correct dimensions to act
as the background image for the level.
*/
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
	xdraw "golang.org/x/image/draw"

	"github.com/bodgit/eblb"
)

// Scale is the number of output pixels per tile edge.
const Scale = 16

var (
	doorOutline   = color.RGBA{0x00, 0xff, 0x00, 0xff}
	objectOutline = color.RGBA{0xff, 0x00, 0x00, 0xff}
	cameraOutline = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

const objectOutlineWidth = 3

// Options control what Image draws. The zero value draws everything
// using DefaultColors.
type Options struct {
	// Colors maps tile ids to colors; nil means DefaultColors. A tile id
	// present in the grid but absent from the map is an error.
	Colors map[byte]color.Color

	SkipTiles   bool
	SkipDoors   bool
	SkipObjects bool
	SkipCamera  bool

	// Doors and Objects restrict drawing to a subset; nil means all of
	// the level's.
	Doors   []eblb.Door
	Objects []eblb.Object

	// DoorFunc and ObjectFunc replace the default rectangle outlines.
	DoorFunc   func(draw.Image, eblb.Door)
	ObjectFunc func(draw.Image, eblb.Object)
}

// Image renders the level. The level's coordinate system has its origin
// at the bottom left, so rectangles are flipped against the image height
// before drawing.
func Image(l *eblb.Level, opts *Options) (image.Image, error) {
	if err := l.Check(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	colors := opts.Colors
	if colors == nil {
		colors = DefaultColors
	}

	w, h := l.Tiles.Width(), l.Tiles.Height()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	if !opts.SkipTiles {
		for y, row := range l.Tiles {
			for x, t := range row {
				c, ok := colors[t]
				if !ok {
					return nil, fmt.Errorf("render: no color for tile id %d", t)
				}
				src.Set(x, y, c)
			}
		}
	}

	m := image.NewRGBA(image.Rect(0, 0, w*Scale, h*Scale))
	xdraw.NearestNeighbor.Scale(m, m.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	height := m.Bounds().Dy()

	if !opts.SkipDoors {
		doors := opts.Doors
		if doors == nil {
			doors = l.Doors
		}
		for _, d := range doors {
			if opts.DoorFunc != nil {
				opts.DoorFunc(m, d)
				continue
			}
			outline(m, d.FlippedBounds(height), doorOutline, 1)
		}
	}

	if !opts.SkipObjects {
		objects := opts.Objects
		if objects == nil {
			objects = l.Objects
		}
		for _, o := range objects {
			if opts.ObjectFunc != nil {
				opts.ObjectFunc(m, o)
				continue
			}
			outline(m, o.FlippedBounds(height), objectOutline, objectOutlineWidth)
		}
	}

	if !opts.SkipCamera {
		outline(m, l.CameraFlippedBounds(height), cameraOutline, 1)
	}

	return m, nil
}

// outline draws a rectangle border of the given width, growing inward.
// Pixels falling outside the image are silently dropped.
func outline(m draw.Image, r image.Rectangle, c color.Color, width int) {
	for i := 0; i < width; i++ {
		in := r.Inset(i)
		if in.Empty() && i > 0 {
			break
		}
		for x := in.Min.X; x <= in.Max.X; x++ {
			m.Set(x, in.Min.Y, c)
			m.Set(x, in.Max.Y, c)
		}
		for y := in.Min.Y; y <= in.Max.Y; y++ {
			m.Set(in.Min.X, y, c)
			m.Set(in.Max.X, y, c)
		}
	}
}

// Palettize quantizes m down to at most 256 colors for compact paletted
// PNG output.
func Palettize(m image.Image) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 256), m)
	pm := image.NewPaletted(m.Bounds(), p)
	draw.Draw(pm, m.Bounds(), m, m.Bounds().Min, draw.Src)
	return pm
}
