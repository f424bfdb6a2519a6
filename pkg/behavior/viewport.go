package behavior

// Viewport reports the live size of the visible area.
// Boids read it on every step to detect the edges.
type Viewport interface {
	Size() (width, height float64)
}

// FixedViewport is a Viewport that never changes size.
type FixedViewport struct {
	Width, Height float64
}

func (v FixedViewport) Size() (float64, float64) { return v.Width, v.Height }
