package simulation

import (
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/sprite"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Snapshot is the state pushed to the renderer after every tick.
type Snapshot struct {
	Agents  []behavior.State
	Weights behavior.Weights
	// Generation changes on every restart, so the renderer knows its saved
	// backgrounds belong to agents that no longer exist.
	Generation int
	Tick       uint64
	Failed     int
	Paused     bool
}

// FlockActor owns the flock. Everything that touches it goes through the
// mailbox, so the flock is only ever stepped by one goroutine.
type FlockActor struct {
	cfg        *Config
	viewport   behavior.Viewport
	img        sprite.Image // gives the boids their size, drawing is left to the renderer
	flock      *behavior.Flock
	snapshotCh chan<- *Snapshot
	logger     golog.Logger

	paused     bool
	generation int
	tick       uint64
	failed     int

	// --- Benchmark Stats ---
	ticksSinceLog  int
	failedSinceLog int
	lastLogTime    time.Time
}

// NewFlockActor creates the flock logic unit. The flock itself is built in PreStart.
// img may be nil, the boids are then points for the edge bounce.
func NewFlockActor(cfg *Config, viewport behavior.Viewport, img sprite.Image, snapshotCh chan<- *Snapshot) *FlockActor {
	return &FlockActor{
		cfg:         cfg,
		viewport:    viewport,
		img:         img,
		snapshotCh:  snapshotCh,
		logger:      golog.DiscardLogger,
		lastLogTime: time.Now(),
	}
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	f.logger = ctx.ActorSystem().Logger()
	f.logger.Infof("Flock is spawning %d boids...", f.cfg.FlockSize)
	return f.init()
}

// init builds and populates the flock from the configuration.
func (f *FlockActor) init() error {
	opts := []behavior.Option{
		behavior.WithWeights(f.cfg.Weights()),
		behavior.WithLogger(f.logger),
	}
	if f.img != nil {
		opts = append(opts, behavior.WithImage(f.img))
	}
	if f.cfg.Seed != 0 {
		opts = append(opts, behavior.WithSeed(f.cfg.Seed))
	}
	flock, err := behavior.New(f.cfg.Params(), f.viewport, opts...)
	if err != nil {
		return fmt.Errorf("failed to create flock: %w", err)
	}
	if err := flock.Populate(f.cfg.FlockSize); err != nil {
		return fmt.Errorf("failed to populate flock: %w", err)
	}
	f.flock = flock
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("Flock started with %d boids", f.flock.Len())

	// The main simulation step, driven by the game loop
	case *emptypb.Empty:
		f.logBenchmarks()
		f.step()
		f.pushSnapshot()

	// Live slider updates from the UI
	case *structpb.Struct:
		if err := f.updateWeight(msg); err != nil {
			ctx.Logger().Warnf("ignoring weight update: %v", err)
		}

	case *wrapperspb.Int32Value:
		if err := f.restart(int(msg.GetValue())); err != nil {
			ctx.Logger().Errorf("restart: %v", err)
			return
		}
		ctx.Logger().Infof("Flock restarted with %d boids", f.flock.Len())
		f.pushSnapshot()

	case *wrapperspb.BoolValue:
		f.paused = msg.GetValue()
		f.pushSnapshot()

	default:
		ctx.Unhandled()
	}
}

func (f *FlockActor) step() {
	if f.paused {
		return
	}
	n := f.flock.Tick()
	f.tick++
	f.failed = n
	f.ticksSinceLog++
	f.failedSinceLog += n
}

func (f *FlockActor) updateWeight(msg *structpb.Struct) error {
	rule, value, err := parseWeightUpdate(msg)
	if err != nil {
		return err
	}
	return f.flock.UpdateWeight(rule, value)
}

// restart replaces every boid, keeping the current weights.
func (f *FlockActor) restart(n int) error {
	if err := f.flock.Populate(n); err != nil {
		return err
	}
	f.generation++
	f.tick = 0
	f.failed = 0
	return nil
}

func (f *FlockActor) logBenchmarks() {
	if time.Since(f.lastLogTime) >= time.Second {
		f.logger.Infof("📊 TICK RATE: %d/sec | Boids: %d | Failing steps: %d",
			f.ticksSinceLog, f.flock.Len(), f.failedSinceLog)
		f.ticksSinceLog = 0
		f.failedSinceLog = 0
		f.lastLogTime = time.Now()
	}
}

func (f *FlockActor) buildSnapshot() *Snapshot {
	return &Snapshot{
		Agents:     f.flock.States(),
		Weights:    f.flock.Weights(),
		Generation: f.generation,
		Tick:       f.tick,
		Failed:     f.failed,
		Paused:     f.paused,
	}
}

func (f *FlockActor) pushSnapshot() {
	select {
	case f.snapshotCh <- f.buildSnapshot():
	default:
		// UI busy, skip frame
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("Flock is shutdown...")
	return nil
}
