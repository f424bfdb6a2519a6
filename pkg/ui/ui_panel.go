package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
	margin        = 10.0
)

// Widget is implemented by everything a Panel can hold
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical space taken below the widget label
	Height() float64
	// MoveTo places the widget top-left corner
	MoveTo(x, y float64)
	// Caption is the text drawn above the widget
	Caption() string
}

func (s *Slider) Height() float64     { return s.H + 10 }
func (s *Slider) MoveTo(x, y float64) { s.X, s.Y = x, y }
func (s *Slider) Caption() string     { return fmt.Sprintf("%s: %.2f", s.Label, s.Value) }

func (c *Checkbox) Height() float64     { return c.Size + 5 }
func (c *Checkbox) MoveTo(x, y float64) { c.X, c.Y = x, y }
func (c *Checkbox) Caption() string     { return c.Label }

func (b *Button) Height() float64     { return b.H + 5 }
func (b *Button) MoveTo(x, y float64) { b.X, b.Y = x, y }
func (b *Button) Caption() string     { return "" }

type section struct {
	title string
	start int // index of the first widget of the section
}

// Panel lays out widgets in titled sections and scrolls with the mouse wheel
type Panel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Widgets       []Widget
	ScrollOffset  float64
	Hidden        bool

	// Styling
	BGColor      color.RGBA
	BorderColor  color.RGBA
	SectionColor color.RGBA

	sections []section
}

// NewPanel creates a new UI panel
func NewPanel(title string, x, y, width, height float64) *Panel {
	return &Panel{
		Title:        title,
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		BGColor:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

// AddSection starts a new section; the following widgets belong to it
func (p *Panel) AddSection(title string) {
	p.sections = append(p.sections, section{title: title, start: len(p.Widgets)})
}

// AddSlider adds a slider widget to the current section
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, 0, p.Width-2*margin, label, min, max, value)
	p.add(s)
	return s
}

// AddCheckbox adds a checkbox widget to the current section
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, 0, label, value)
	p.add(c)
	return c
}

// AddButton adds a full-width button to the current section
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, 0, p.Width-2*margin, 20, label, onClick)
	p.add(b)
	return b
}

func (p *Panel) add(w Widget) {
	p.Widgets = append(p.Widgets, w)
	p.layout()
}

// layout places every widget according to the sections and the scroll offset
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	next := 0
	for i, w := range p.Widgets {
		for next < len(p.sections) && p.sections[next].start == i {
			y += sectionHeight
			next++
		}
		if w.Caption() != "" {
			y += labelHeight
		}
		w.MoveTo(p.X+margin, y)
		y += w.Height()
	}
}

// ContentHeight is the height needed to show every widget without scrolling
func (p *Panel) ContentHeight() float64 {
	h := titleHeight + float64(len(p.sections))*sectionHeight
	for _, w := range p.Widgets {
		if w.Caption() != "" {
			h += labelHeight
		}
		h += w.Height()
	}
	return h
}

// Scroll moves the content by dy pixels, clamped to the content height
func (p *Panel) Scroll(dy float64) {
	maxScroll := p.ContentHeight() - p.Height + margin
	if maxScroll < 0 {
		maxScroll = 0
	}
	p.ScrollOffset = min(max(p.ScrollOffset+dy, 0), maxScroll)
	p.layout()
}

// Contains reports whether the point is over the visible panel
func (p *Panel) Contains(x, y float64) bool {
	return !p.Hidden && x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// Update handles input for all widgets
func (p *Panel) Update() {
	if p.Hidden {
		return
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.Scroll(-dy * 20)
	}
	for _, w := range p.Widgets {
		w.Update()
	}
}

// Draw renders the panel and all visible widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	next := 0
	for i, w := range p.Widgets {
		for next < len(p.sections) && p.sections[next].start == i {
			p.drawSection(screen, p.sections[next].title, w)
			next++
		}
		if !p.visible(w) {
			continue
		}
		if c := w.Caption(); c != "" {
			_, y := widgetPos(w)
			ebitenutil.DebugPrintAt(screen, c, int(p.X+margin), int(y-labelHeight))
		}
		w.Draw(screen)
	}
}

// drawSection draws a section header just above its first widget
func (p *Panel) drawSection(screen *ebiten.Image, title string, first Widget) {
	_, y := widgetPos(first)
	if first.Caption() != "" {
		y -= labelHeight
	}
	y -= sectionHeight
	if y < p.Y+titleHeight-sectionHeight || y > p.Y+p.Height-sectionHeight {
		return
	}
	vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.Width-10), 20, p.SectionColor, true)
	ebitenutil.DebugPrintAt(screen, title, int(p.X+margin), int(y+5))
}

func (p *Panel) visible(w Widget) bool {
	_, y := widgetPos(w)
	return y-labelHeight >= p.Y+titleHeight-labelHeight && y+w.Height() <= p.Y+p.Height
}

func widgetPos(w Widget) (float64, float64) {
	switch v := w.(type) {
	case *Slider:
		return v.X, v.Y
	case *Checkbox:
		return v.X, v.Y
	case *Button:
		return v.X, v.Y
	}
	return 0, 0
}
