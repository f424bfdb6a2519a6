package simulation

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-sprites/internal/surface/canvas"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/sprite"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
)

var (
	backgroundColor = color.RGBA{R: 12, G: 40, B: 70, A: 255}
	perceptionColor = color.RGBA{R: 120, G: 200, B: 255, A: 60}
)

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	flockPID   *actor.PID
	snapshotCh chan *Snapshot
	lastState  *Snapshot
	logger     golog.Logger

	viewport *LiveViewport
	canvas   *canvas.Canvas
	fish     *canvas.Image
	sprites  []*sprite.Sprite
	// generation of the snapshot the sprites were drawn from
	generation int
	dirty      bool

	// UI Controls
	panel                *ui.Panel
	widgetAlignment      *ui.Slider
	widgetCohesion       *ui.Slider
	widgetSeparation     *ui.Slider
	widgetFlockSize      *ui.Slider
	widgetShowPerception *ui.Checkbox
	widgetPause          *ui.Button
	paused               bool

	cfg *Config

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// GetNewGame spawns the flock actor in system and builds the window state around it.
func GetNewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	// 1. Channel the flock pushes its snapshots to
	snapshotCh := make(chan *Snapshot, 10) // Buffer to avoid blocking

	// 2. Spawn the Flock Actor
	viewport := NewLiveViewport(cfg.WorldWidth, cfg.WorldHeight)
	flockPID, err := system.Spawn(ctx, "flock", NewFlockActor(cfg, viewport, sprite.Fish, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		flockPID:   flockPID,
		snapshotCh: snapshotCh,
		lastState:  &Snapshot{Weights: cfg.Weights(), Generation: -1}, // Avoid nil pointer
		logger:     system.Logger(),
		viewport:   viewport,
		canvas:     canvas.New(int(cfg.WorldWidth), int(cfg.WorldHeight), backgroundColor),
		fish:       canvas.NewImage(sprite.Fish),
		generation: -1,
		cfg:        cfg,
	}
	g.buildPanel()
	return g, nil
}

// buildPanel creates the sliders; every change is sent to the flock at once.
func (g *Game) buildPanel() {
	g.panel = ui.NewPanel("Flock", 10, 10, 220, 330)

	g.panel.AddSection("Rule Weights")
	g.widgetAlignment = g.weightSlider("Alignment", behavior.Alignment, g.cfg.AlignmentWeight)
	g.widgetCohesion = g.weightSlider("Cohesion", behavior.Cohesion, g.cfg.CohesionWeight)
	g.widgetSeparation = g.weightSlider("Separation", behavior.Separation, g.cfg.SeparationWeight)

	g.panel.AddSection("Session")
	g.widgetFlockSize = g.panel.AddSlider("Boids (on restart)", 0, 1000, float64(g.cfg.FlockSize))
	g.panel.AddButton("Restart", g.restart)
	g.widgetPause = g.panel.AddButton("Pause", g.togglePause)

	g.panel.AddSection("Visualization")
	g.widgetShowPerception = g.panel.AddCheckbox("Show perception radius", g.cfg.ShowPerception)
}

func (g *Game) weightSlider(label string, rule behavior.Rule, value float64) *ui.Slider {
	s := g.panel.AddSlider(label, 0, 3, value)
	s.OnChange = func(v float64) { g.tell(NewWeightUpdate(rule, v)) }
	return s
}

func (g *Game) tell(msg proto.Message) {
	if err := actor.Tell(g.ctx, g.flockPID, msg); err != nil {
		g.logger.Warnf("flock did not get %T: %v", msg, err)
	}
}

func (g *Game) restart() {
	g.tell(NewRestart(int(g.widgetFlockSize.Value)))
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.widgetPause.Label = "Pause"
	if g.paused {
		g.widgetPause.Label = "Resume"
	}
	g.tell(NewPause(g.paused))
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	// 1. Keyboard shortcuts, then the UI Panel
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.panel.Hidden = !g.panel.Hidden
	}
	g.panel.Update()

	// 2. Keep only the latest snapshot
Loop:
	for {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
			g.dirty = true
		default:
			break Loop
		}
	}

	// 3. Trigger Simulation Step
	if !g.paused {
		g.tell(NewTick())
	}
	return nil
}

// render moves the sprites on the persistent canvas to the latest snapshot.
func (g *Game) render() {
	snap := g.lastState
	if snap.Generation != g.generation {
		g.canvas.Clear()
		g.sprites = g.sprites[:0]
		g.generation = snap.Generation
	}
	for len(g.sprites) < len(snap.Agents) {
		g.sprites = append(g.sprites, sprite.New(g.fish, g.cfg.SpriteScale))
	}

	// Erase in reverse order: a sprite may have saved pixels of the ones drawn before it.
	for i := len(g.sprites) - 1; i >= 0; i-- {
		g.sprites[i].Erase(g.canvas)
	}
	for i, a := range snap.Agents {
		g.sprites[i].Draw(g.canvas, a.Pos.X, a.Pos.Y)
	}
	g.dirty = false
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	// 1. Boids, on their own canvas
	if g.dirty {
		g.render()
	}
	screen.DrawImage(g.canvas.Image(), nil)

	if g.widgetShowPerception.Value {
		g.drawPerception(screen)
	}

	// 2. Draw UI Panel
	g.panel.Draw(screen)

	// 3. Stats on the right side, away from the panel
	s := g.lastState
	status := "running"
	if s.Paused {
		status = "paused"
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms\n\nBoids:  %d\nTick:   %d\nFailed: %d\n%s",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg,
		len(s.Agents),
		s.Tick,
		s.Failed,
		status)
	ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()-150, 10)
}

func (g *Game) drawPerception(screen *ebiten.Image) {
	r := float32(g.cfg.PerceptionRadius)
	for i, a := range g.lastState.Agents {
		if i >= len(g.sprites) {
			break
		}
		w, h := g.sprites[i].Size()
		vector.StrokeCircle(screen,
			float32(a.Pos.X+w/2), float32(a.Pos.Y+h/2),
			r, 1, perceptionColor, true)
	}
}

// Layout follows the window size: the flock bounces off the visible edges.
func (g *Game) Layout(w, h int) (int, int) {
	g.viewport.Set(float64(w), float64(h))
	if g.canvas.Resize(w, h) {
		for _, s := range g.sprites {
			s.Forget()
		}
		g.dirty = true
	}
	return w, h
}
