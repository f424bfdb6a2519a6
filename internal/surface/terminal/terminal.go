// Package terminal implements sprite.Surface on a tcell screen, one surface
// unit per character cell.
package terminal

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/sprite"
)

type cell struct {
	mainc rune
	combc []rune
	style tcell.Style
}

// Glyphs is a sprite.Image made of styled runes.
type Glyphs struct {
	cells [][]cell // nil rune: transparent
	w, h  int
}

// NewGlyphs converts an ASCII design: opaque runes keep their character and
// are drawn in their palette colour.
func NewGlyphs(d sprite.Design) *Glyphs {
	w, h := d.Size()
	g := &Glyphs{cells: make([][]cell, h), w: w, h: h}
	for y, row := range d.Rows {
		g.cells[y] = make([]cell, w)
		x := 0
		for _, r := range row {
			if c, ok := d.Palette[r]; ok {
				g.cells[y][x] = cell{mainc: r, style: tcell.StyleDefault.Foreground(rgb(c))}
			}
			x++
		}
	}
	return g
}

func (g *Glyphs) Size() (int, int) { return g.w, g.h }

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

type patch struct {
	at    image.Rectangle
	cells []cell
}

func (p *patch) Bounds() image.Rectangle { return p.at }

// Surface draws on a tcell screen.
type Surface struct {
	screen tcell.Screen
	bg     tcell.Style
}

// New wraps screen; bg is the style of an empty cell.
func New(screen tcell.Screen, bg tcell.Style) *Surface {
	return &Surface{screen: screen, bg: bg}
}

// Size implements behavior.Viewport with the screen size in cells.
func (s *Surface) Size() (float64, float64) {
	w, h := s.screen.Size()
	return float64(w), float64(h)
}

// Clear blanks the whole screen with the background style.
func (s *Surface) Clear() {
	s.screen.SetStyle(s.bg)
	s.screen.Clear()
}

func (s *Surface) bounds() image.Rectangle {
	w, h := s.screen.Size()
	return image.Rect(0, 0, w, h)
}

// Save copies the cells of r that are on screen.
func (s *Surface) Save(r image.Rectangle) sprite.Patch {
	at := r.Intersect(s.bounds())
	p := &patch{at: at}
	if at.Empty() {
		return p
	}
	p.cells = make([]cell, 0, at.Dx()*at.Dy())
	for y := at.Min.Y; y < at.Max.Y; y++ {
		for x := at.Min.X; x < at.Max.X; x++ {
			mainc, combc, style, _ := s.screen.GetContent(x, y)
			// the screen reuses its combining slice
			combc = append([]rune(nil), combc...)
			p.cells = append(p.cells, cell{mainc: mainc, combc: combc, style: style})
		}
	}
	return p
}

// Restore writes the saved cells back.
func (s *Surface) Restore(sp sprite.Patch) {
	p, ok := sp.(*patch)
	if !ok {
		return
	}
	i := 0
	for y := p.at.Min.Y; y < p.at.Max.Y; y++ {
		for x := p.at.Min.X; x < p.at.Max.X; x++ {
			c := p.cells[i]
			s.screen.SetContent(x, y, c.mainc, c.combc, c.style)
			i++
		}
	}
}

// DrawImage fills the cells covered by (x, y, w, h) with the nearest glyph
// of img. Transparent glyphs leave the cell untouched.
func (s *Surface) DrawImage(img sprite.Image, x, y, w, h float64) {
	g, ok := img.(*Glyphs)
	if !ok || g.w == 0 || g.h == 0 || w <= 0 || h <= 0 {
		return
	}
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	cw, ch := int(math.Ceil(w)), int(math.Ceil(h))
	sw, sh := s.screen.Size()
	for dy := 0; dy < ch; dy++ {
		sy := y0 + dy
		if sy < 0 || sy >= sh {
			continue
		}
		gy := min(dy*g.h/ch, g.h-1)
		for dx := 0; dx < cw; dx++ {
			sx := x0 + dx
			if sx < 0 || sx >= sw {
				continue
			}
			gx := min(dx*g.w/cw, g.w-1)
			c := g.cells[gy][gx]
			if c.mainc == 0 {
				continue
			}
			_, _, under, _ := s.screen.GetContent(sx, sy)
			_, bg, _ := under.Decompose()
			s.screen.SetContent(sx, sy, c.mainc, nil, c.style.Background(bg))
		}
	}
}
