package render

import "image/color"

// DefaultColors is the stock tile palette. Only the tile ids that appear
// in the known retail levels are mapped; levels using other ids need a
// caller-supplied table.
var DefaultColors = map[byte]color.Color{
	0:  color.RGBA{0, 0, 0, 0xff},       // black
	1:  color.RGBA{230, 230, 250, 0xff}, // lavender
	3:  color.RGBA{128, 0, 128, 0xff},   // purple
	7:  color.RGBA{0, 128, 128, 0xff},   // teal
	9:  color.RGBA{255, 165, 0, 0xff},   // orange
	11: color.RGBA{70, 0, 0, 0xff},      // dark brown
	12: color.RGBA{0, 0, 255, 0xff},     // blue
	13: color.RGBA{255, 255, 0, 0xff},   // yellow
	14: color.RGBA{175, 238, 238, 0xff}, // pale cyan
	15: color.RGBA{255, 0, 255, 0xff},   // magenta
	16: color.RGBA{0, 255, 255, 0xff},   // cyan
	22: color.RGBA{255, 192, 203, 0xff}, // pink
	24: color.RGBA{128, 0, 0, 0xff},     // maroon
	25: color.RGBA{128, 128, 0, 0xff},   // olive
	27: color.RGBA{128, 128, 128, 0xff}, // grey
	28: color.RGBA{150, 75, 0, 0xff},    // brown
	31: color.RGBA{1, 50, 32, 0xff},     // dark green
}
