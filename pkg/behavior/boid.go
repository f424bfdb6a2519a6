package behavior

import (
	"errors"
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/sprite"
)

// EdgeFactor is the fraction of the viewport a boid may use before it bounces
// off the right or bottom edge.
const EdgeFactor = 0.97

// Params holds the per-boid limits.
type Params struct {
	PerceptionRadius float64 `json:"perceptionRadius"` // neighbours closer than this steer the boid
	MaxSpeed         float64 `json:"maxSpeed"`         // velocity magnitude cap
	MaxForce         float64 `json:"maxForce"`         // steering magnitude cap, per rule
	Scale            float64 `json:"spriteScale"`      // sprite size factor
}

// DefaultParams returns the limits used when nothing else is configured.
func DefaultParams() Params {
	return Params{
		PerceptionRadius: 50,
		MaxSpeed:         6,
		MaxForce:         1,
		Scale:            2,
	}
}

// Validate fails when a limit is not strictly positive.
func (p Params) Validate() error {
	switch {
	case !(p.PerceptionRadius > 0):
		return fmt.Errorf("%w: perception radius must be > 0, got %v", ErrInvalidConfig, p.PerceptionRadius)
	case !(p.MaxSpeed > 0):
		return fmt.Errorf("%w: max speed must be > 0, got %v", ErrInvalidConfig, p.MaxSpeed)
	case !(p.MaxForce > 0):
		return fmt.Errorf("%w: max force must be > 0, got %v", ErrInvalidConfig, p.MaxForce)
	case !(p.Scale > 0):
		return fmt.Errorf("%w: sprite scale must be > 0, got %v", ErrInvalidConfig, p.Scale)
	}
	return nil
}

// Boid represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// A Boid does not own its neighbours nor its weights: both are borrowed from
// the Flock that created it.
type Boid struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
	Acc geometry.Vector2D

	params    Params
	sprite    *sprite.Sprite
	neighbors []*Boid
	weights   *Weights
	viewport  Viewport
}

// Params returns the limits of the boid.
func (b *Boid) Params() Params { return b.params }

// Sprite returns the drawable part of the boid, nil when the flock has no image.
func (b *Boid) Sprite() *sprite.Sprite { return b.sprite }

// Size returns the drawn width and height, zero without a sprite.
func (b *Boid) Size() (w, h float64) {
	if b.sprite == nil {
		return 0, 0
	}
	return b.sprite.Size()
}

// Step advances the boid by one frame:
// alignment, cohesion, separation, integration, then edge bounce.
// A rule that cannot be computed contributes nothing; its error is returned
// after the boid has moved so the rest of the flock is not held back.
func (b *Boid) Step() error {
	var errs []error
	for _, r := range Rules {
		force, err := b.steer(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r, err))
			continue
		}
		b.Acc = b.Acc.Add(force.Mul(b.weights.Get(r)))
	}

	b.integrate()
	b.bounce()

	return errors.Join(errs...)
}

func (b *Boid) steer(r Rule) (geometry.Vector2D, error) {
	switch r {
	case Alignment:
		return b.alignment()
	case Cohesion:
		return b.cohesion()
	case Separation:
		return b.separation()
	}
	return geometry.Zero, fmt.Errorf("%w: unknown rule %s", ErrInvalidConfig, r)
}

// perceives reports whether other is a neighbour: not b itself, and strictly
// inside the perception radius. It also returns the distance.
func (b *Boid) perceives(other *Boid) (float64, bool) {
	if other == b {
		return 0, false
	}
	r := b.params.PerceptionRadius
	d2 := b.Pos.DistanceSquaredTo(other.Pos)
	if d2 >= r*r {
		return 0, false
	}
	return math.Sqrt(d2), true
}

// alignment steers towards the average heading of the neighbours.
func (b *Boid) alignment() (geometry.Vector2D, error) {
	sum, n := geometry.Zero, 0
	for _, other := range b.neighbors {
		if _, ok := b.perceives(other); ok {
			sum = sum.Add(other.Vel)
			n++
		}
	}
	if n == 0 {
		return geometry.Zero, nil
	}
	avg, err := sum.Div(float64(n))
	if err != nil {
		return geometry.Zero, err
	}
	return b.steerTowards(avg)
}

// cohesion steers towards the average position of the neighbours.
func (b *Boid) cohesion() (geometry.Vector2D, error) {
	sum, n := geometry.Zero, 0
	for _, other := range b.neighbors {
		if _, ok := b.perceives(other); ok {
			sum = sum.Add(other.Pos)
			n++
		}
	}
	if n == 0 {
		return geometry.Zero, nil
	}
	avg, err := sum.Div(float64(n))
	if err != nil {
		return geometry.Zero, err
	}
	return b.steerTowards(avg.Sub(b.Pos))
}

// separation steers away from the neighbours, closer ones pushing harder.
func (b *Boid) separation() (geometry.Vector2D, error) {
	sum, n := geometry.Zero, 0
	for _, other := range b.neighbors {
		d, ok := b.perceives(other)
		if !ok {
			continue
		}
		away, err := b.Pos.Sub(other.Pos).Div(d)
		if err != nil {
			return geometry.Zero, fmt.Errorf("neighbour at %s: %w", other.Pos, err)
		}
		sum = sum.Add(away)
		n++
	}
	if n == 0 {
		return geometry.Zero, nil
	}
	avg, err := sum.Div(float64(n))
	if err != nil {
		return geometry.Zero, err
	}
	return b.steerTowards(avg)
}

// steerTowards turns a desired direction into a steering force:
// full speed along desired, minus the current velocity, capped at MaxForce.
func (b *Boid) steerTowards(desired geometry.Vector2D) (geometry.Vector2D, error) {
	desired, err := desired.WithMagnitude(b.params.MaxSpeed)
	if err != nil {
		return geometry.Zero, err
	}
	return desired.Sub(b.Vel).LimitedTo(b.params.MaxForce), nil
}

// integrate moves with the current velocity, then applies the accumulated
// acceleration for the next frame.
func (b *Boid) integrate() {
	b.Pos = b.Pos.Add(b.Vel)
	b.Vel = b.Vel.Add(b.Acc).LimitedTo(b.params.MaxSpeed)
	b.Acc = geometry.Zero
}

// bounce reverses the velocity component of any crossed edge and moves once
// more in the same frame. A boid still outside after that is put back on the
// edge it crossed.
func (b *Boid) bounce() {
	w, h := b.Size()
	vw, vh := b.viewport.Size()
	right, bottom := vw*EdgeFactor, vh*EdgeFactor

	onXEdge := b.Pos.X+w > right || b.Pos.X < 0
	onYEdge := b.Pos.Y+h > bottom || b.Pos.Y < 0
	if !onXEdge && !onYEdge {
		return
	}

	if onXEdge {
		b.Vel.X = -b.Vel.X
	}
	if onYEdge {
		b.Vel.Y = -b.Vel.Y
	}
	b.Pos = b.Pos.Add(b.Vel)

	if onXEdge {
		b.Pos.X = clampEdge(b.Pos.X, w, right)
	}
	if onYEdge {
		b.Pos.Y = clampEdge(b.Pos.Y, h, bottom)
	}
}

// clampEdge keeps a coordinate of an object of the given size in [0, limit-size].
func clampEdge(v, size, limit float64) float64 {
	if v+size > limit {
		v = limit - size
	}
	if v < 0 {
		v = 0
	}
	return v
}
