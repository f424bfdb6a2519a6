// Package canvas implements sprite.Surface on an offscreen ebiten image.
// The canvas is never cleared between frames: sprites erase themselves by
// restoring the patch they saved, and the canvas is then copied to the screen.
package canvas

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/sprite"
)

// Image is a sprite.Image backed by an ebiten image.
type Image struct {
	img  *ebiten.Image
	w, h int
}

// NewImage converts an ASCII design into an ebiten image.
func NewImage(d sprite.Design) *Image {
	w, h := d.Size()
	img := ebiten.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c, ok := d.At(x, y); ok {
				img.Set(x, y, c)
			}
		}
	}
	return &Image{img: img, w: w, h: h}
}

func (i *Image) Size() (int, int) { return i.w, i.h }

// Ebiten returns the underlying ebiten image.
func (i *Image) Ebiten() *ebiten.Image { return i.img }

type patch struct {
	img *ebiten.Image // nil when the saved region was off the canvas
	at  image.Rectangle
}

func (p *patch) Bounds() image.Rectangle { return p.at }

// Canvas is the persistent drawing target of a flock.
type Canvas struct {
	img        *ebiten.Image
	background color.Color
	// free holds patch images by size, reused by the next Save
	free map[image.Point][]*ebiten.Image
}

// New returns a canvas of the given size filled with background.
func New(width, height int, background color.Color) *Canvas {
	c := &Canvas{
		background: background,
		free:       make(map[image.Point][]*ebiten.Image),
	}
	c.Resize(width, height)
	return c
}

// Resize reallocates the canvas when the size changed and reports whether it
// did. A resized canvas is blank, so every saved patch must be forgotten.
func (c *Canvas) Resize(width, height int) bool {
	if width < 1 || height < 1 {
		return false
	}
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return false
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(width, height)
	c.img.Fill(c.background)
	return true
}

// Clear paints the whole canvas with the background colour.
func (c *Canvas) Clear() {
	c.img.Fill(c.background)
}

// Image returns the canvas to be drawn on screen.
func (c *Canvas) Image() *ebiten.Image { return c.img }

// Save copies the part of r that lies on the canvas.
func (c *Canvas) Save(r image.Rectangle) sprite.Patch {
	clipped := r.Intersect(c.img.Bounds())
	if clipped.Empty() {
		return &patch{at: clipped}
	}
	dst := c.alloc(clipped.Size())
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendCopy
	dst.DrawImage(c.img.SubImage(clipped).(*ebiten.Image), op)
	return &patch{img: dst, at: clipped}
}

// Restore copies a saved patch back, replacing whatever was drawn over it.
func (c *Canvas) Restore(p sprite.Patch) {
	pt, ok := p.(*patch)
	if !ok || pt.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendCopy
	op.GeoM.Translate(float64(pt.at.Min.X), float64(pt.at.Min.Y))
	c.img.DrawImage(pt.img, op)

	size := pt.at.Size()
	c.free[size] = append(c.free[size], pt.img)
	pt.img = nil
}

// DrawImage blits img scaled into (x, y, w, h). Images not created by
// NewImage are ignored.
func (c *Canvas) DrawImage(img sprite.Image, x, y, w, h float64) {
	src, ok := img.(*Image)
	if !ok || src.w == 0 || src.h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(src.w), h/float64(src.h))
	op.GeoM.Translate(x, y)
	c.img.DrawImage(src.img, op)
}

func (c *Canvas) alloc(size image.Point) *ebiten.Image {
	if imgs := c.free[size]; len(imgs) > 0 {
		img := imgs[len(imgs)-1]
		c.free[size] = imgs[:len(imgs)-1]
		return img
	}
	return ebiten.NewImage(size.X, size.Y)
}
