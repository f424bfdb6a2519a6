package behavior

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/sprite"
	golog "github.com/tochemey/goakt/v3/log"
)

const (
	// spawnArea is the fraction of the viewport used for initial positions.
	spawnArea = 0.8
	// maxSpawnSpeed bounds the initial velocity magnitude.
	maxSpawnSpeed = 2.0
)

// State is the kinematic state of one boid, used to seed or report a flock.
type State struct {
	Pos geometry.Vector2D `json:"pos"`
	Vel geometry.Vector2D `json:"vel"`
}

// Flock owns the boids and the weights they share.
// A Flock is not safe for concurrent use: one goroutine drives it.
type Flock struct {
	agents   []*Boid
	weights  *Weights
	params   Params
	viewport Viewport
	img      sprite.Image
	rng      *rand.Rand
	logger   golog.Logger
}

// Option configures a Flock.
type Option func(*Flock)

// WithImage gives every boid a sprite of img.
func WithImage(img sprite.Image) Option {
	return func(f *Flock) { f.img = img }
}

// WithRand sets the random source used by Populate.
func WithRand(r *rand.Rand) Option {
	return func(f *Flock) { f.rng = r }
}

// WithSeed makes Populate reproducible.
func WithSeed(seed uint64) Option {
	return func(f *Flock) { f.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger used to report failing steps.
func WithLogger(l golog.Logger) Option {
	return func(f *Flock) { f.logger = l }
}

// WithWeights sets the initial rule weights.
func WithWeights(w Weights) Option {
	return func(f *Flock) { *f.weights = w }
}

// New creates an empty flock. Call Populate or PopulateFrom to add boids.
func New(params Params, viewport Viewport, opts ...Option) (*Flock, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if viewport == nil {
		return nil, fmt.Errorf("%w: nil viewport", ErrInvalidConfig)
	}
	f := &Flock{
		weights:  &Weights{},
		params:   params,
		viewport: viewport,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Populate replaces the flock with n boids at random positions in the
// visible area, each with a small random velocity.
func (f *Flock) Populate(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: flock size must be >= 0, got %d", ErrInvalidConfig, n)
	}
	w, h := f.viewport.Size()
	states := make([]State, n)
	for i := range states {
		states[i] = State{
			Pos: geometry.NewVector(
				f.rng.Float64()*w*spawnArea,
				f.rng.Float64()*h*spawnArea,
			),
			Vel: geometry.NewVectorPolar(
				f.rng.Float64()*maxSpawnSpeed,
				f.rng.Float64()*2*math.Pi,
			),
		}
	}
	return f.PopulateFrom(states)
}

// PopulateFrom replaces the flock with one boid per state, in order.
func (f *Flock) PopulateFrom(states []State) error {
	agents := make([]*Boid, len(states))
	for i, s := range states {
		b := &Boid{
			Pos:      s.Pos,
			Vel:      s.Vel,
			params:   f.params,
			weights:  f.weights,
			viewport: f.viewport,
		}
		if f.img != nil {
			b.sprite = sprite.New(f.img, f.params.Scale)
		}
		agents[i] = b
	}
	for _, b := range agents {
		b.neighbors = agents
	}
	f.agents = agents
	return nil
}

// UpdateWeight changes the weight of a rule for every boid at once.
func (f *Flock) UpdateWeight(r Rule, value float64) error {
	return f.weights.Set(r, value)
}

// Weights returns a copy of the current rule weights.
func (f *Flock) Weights() Weights { return *f.weights }

// Params returns the limits given to every boid.
func (f *Flock) Params() Params { return f.params }

// Len returns the number of boids.
func (f *Flock) Len() int { return len(f.agents) }

// Agents returns the boids in update order. The slice must not be modified.
func (f *Flock) Agents() []*Boid { return f.agents }

// States returns a copy of every boid's position and velocity.
func (f *Flock) States() []State {
	states := make([]State, len(f.agents))
	for i, b := range f.agents {
		states[i] = State{Pos: b.Pos, Vel: b.Vel}
	}
	return states
}

// Tick steps every boid once, in order. Boids later in the order see the
// already updated state of the earlier ones.
// It returns how many boids reported an error; those are logged and skipped.
func (f *Flock) Tick() int {
	failed := 0
	for i, b := range f.agents {
		if f.step(i, b) {
			failed++
		}
	}
	return failed
}

// Draw erases every boid from its previous place and draws it at its current one.
func (f *Flock) Draw(dst sprite.Surface) {
	f.erase(dst)
	for _, b := range f.agents {
		if b.sprite != nil {
			b.sprite.Draw(dst, b.Pos.X, b.Pos.Y)
		}
	}
}

// Frame runs one animation frame on dst: restore the background under every
// boid, then step each boid in order and draw it at its new position.
// It returns the number of failing steps, like Tick.
func (f *Flock) Frame(dst sprite.Surface) int {
	f.erase(dst)
	failed := 0
	for i, b := range f.agents {
		if f.step(i, b) {
			failed++
		}
		if b.sprite != nil {
			b.sprite.Draw(dst, b.Pos.X, b.Pos.Y)
		}
	}
	return failed
}

// erase restores the saved backgrounds in reverse draw order: the patch of a
// later sprite may hold pixels of the earlier ones.
func (f *Flock) erase(dst sprite.Surface) {
	for i := len(f.agents) - 1; i >= 0; i-- {
		if s := f.agents[i].sprite; s != nil {
			s.Erase(dst)
		}
	}
}

// Forget drops every saved background, after the surface was repainted.
func (f *Flock) Forget() {
	for _, b := range f.agents {
		if b.sprite != nil {
			b.sprite.Forget()
		}
	}
}

func (f *Flock) step(i int, b *Boid) bool {
	if err := b.Step(); err != nil {
		f.logger.Warnf("boid %d at %s: step: %v", i, b.Pos, err)
		return true
	}
	return false
}
