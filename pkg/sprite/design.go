package sprite

import (
	"image/color"
	"unicode/utf8"
)

// Design is a pixel-art image described as ASCII rows.
// Every rune found in Palette is a coloured pixel, any other rune is transparent.
type Design struct {
	Rows    []string
	Palette map[rune]color.RGBA
}

// Size returns the widest row length and the number of rows.
func (d Design) Size() (width, height int) {
	for _, row := range d.Rows {
		if n := utf8.RuneCountInString(row); n > width {
			width = n
		}
	}
	return width, len(d.Rows)
}

// At returns the colour at (x, y) and whether that pixel is opaque.
func (d Design) At(x, y int) (color.RGBA, bool) {
	if y < 0 || y >= len(d.Rows) || x < 0 {
		return color.RGBA{}, false
	}
	i := 0
	for _, r := range d.Rows[y] {
		if i == x {
			c, ok := d.Palette[r]
			return c, ok
		}
		i++
	}
	return color.RGBA{}, false
}

// Fish is the default agent sprite, facing right.
//
// Legend:
// O = Orange body, Y = Yellow fin, D = Dark stripe, W = White eye, K = pupil,
// G = Greenish pollution spots.
var Fish = Design{
	Rows: []string{
		"....YY..........",
		"...YYYY.........",
		"Y..OOOOOOOOO....",
		"YYOODOOGODOOOW..",
		"YYOOODOOODOOOKO.",
		"YYOODOOGODOOOOOO",
		"Y..OOOOOOOOOOO..",
		"...YYY..YY......",
	},
	Palette: map[rune]color.RGBA{
		'O': {R: 255, G: 140, B: 40, A: 255},
		'Y': {R: 255, G: 210, B: 60, A: 255},
		'D': {R: 170, G: 70, B: 20, A: 255},
		'W': {R: 255, G: 255, B: 255, A: 255},
		'K': {R: 20, G: 20, B: 20, A: 255},
		'G': {R: 90, G: 160, B: 60, A: 255},
	},
}

// TinyFish is a single-row fish for character-cell surfaces.
var TinyFish = Design{
	Rows: []string{"><>"},
	Palette: map[rune]color.RGBA{
		'>': {R: 255, G: 140, B: 40, A: 255},
		'<': {R: 255, G: 210, B: 60, A: 255},
	},
}
