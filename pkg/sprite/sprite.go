// Package sprite draws agents onto a shared surface.
// Each Sprite remembers the background it covered so the next frame can
// erase it without repainting the whole surface.
package sprite

import (
	"image"
	"math"
)

// Padding is the extra margin, in surface units, saved around a sprite
// beneath its drawn rectangle.
const Padding = 3

// Image is an opaque drawable resource with a natural size.
type Image interface {
	Size() (width, height int)
}

// Patch is a rectangular copy of a surface region.
type Patch interface {
	Bounds() image.Rectangle
}

// Surface is the drawing target shared by every sprite of a flock.
type Surface interface {
	// Save copies the region r of the surface.
	Save(r image.Rectangle) Patch
	// Restore puts a saved region back where it came from.
	Restore(p Patch)
	// DrawImage blits img scaled into the rectangle (x, y, w, h).
	DrawImage(img Image, x, y, w, h float64)
}

// Sprite is the drawable part of an agent.
type Sprite struct {
	img Image
	w   float64
	h   float64
	bk  Patch
}

// New returns a sprite sized to the natural image size times scale.
func New(img Image, scale float64) *Sprite {
	nw, nh := img.Size()
	return &Sprite{
		img: img,
		w:   float64(nw) * scale,
		h:   float64(nh) * scale,
	}
}

// Image returns the image drawn by the sprite.
func (s *Sprite) Image() Image { return s.img }

// Size returns the scaled width and height.
func (s *Sprite) Size() (w, h float64) { return s.w, s.h }

// Erase restores the background saved by the previous Draw.
// It does nothing before the first Draw.
func (s *Sprite) Erase(dst Surface) {
	if s.bk == nil {
		return
	}
	dst.Restore(s.bk)
	s.bk = nil
}

// Draw saves the background beneath (x, y) and blits the image over it.
func (s *Sprite) Draw(dst Surface, x, y float64) {
	s.bk = dst.Save(s.region(x, y))
	dst.DrawImage(s.img, x, y, s.w, s.h)
}

// Forget drops the saved background, e.g. after the surface was repainted.
func (s *Sprite) Forget() { s.bk = nil }

func (s *Sprite) region(x, y float64) image.Rectangle {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	return image.Rect(
		x0, y0,
		x0+int(math.Ceil(s.w))+Padding,
		y0+int(math.Ceil(s.h))+Padding,
	)
}
