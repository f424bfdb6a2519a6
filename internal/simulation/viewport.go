package simulation

import "sync"

// LiveViewport is a behavior.Viewport resized by the window layout while the
// flock actor reads it from its own goroutine.
type LiveViewport struct {
	mu     sync.RWMutex
	width  float64
	height float64
}

func NewLiveViewport(width, height float64) *LiveViewport {
	return &LiveViewport{width: width, height: height}
}

func (v *LiveViewport) Size() (float64, float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// Set changes the size; zero or negative values are ignored.
func (v *LiveViewport) Set(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	v.mu.Lock()
	v.width, v.height = width, height
	v.mu.Unlock()
}
