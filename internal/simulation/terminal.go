package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-sprites/internal/surface/terminal"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/sprite"
	golog "github.com/tochemey/goakt/v3/log"
)

// weightStep is the change applied by one key press.
const weightStep = 0.1

// TerminalConfig returns defaults sized for character cells instead of pixels.
func TerminalConfig() *Config {
	cfg := DefaultConfig()
	cfg.FlockSize = 40
	cfg.PerceptionRadius = 8
	cfg.MaxSpeed = 1
	cfg.MaxForce = 0.05
	cfg.SpriteScale = 1
	return cfg
}

// playfield is the screen minus the status line.
type playfield struct{ surf *terminal.Surface }

func (p playfield) Size() (float64, float64) {
	w, h := p.surf.Size()
	return w, max(h-1, 1)
}

// TermApp runs a flock in a terminal, one goroutine, no actors.
type TermApp struct {
	screen tcell.Screen
	surf   *terminal.Surface
	flock  *behavior.Flock
	cfg    *Config
	logger golog.Logger
	paused bool
	tick   uint64
	failed int
}

// NewTermApp populates a flock drawn on screen. The screen must be initialized.
func NewTermApp(screen tcell.Screen, cfg *Config, logger golog.Logger) (*TermApp, error) {
	surf := terminal.New(screen, tcell.StyleDefault.Background(tcell.NewRGBColor(12, 40, 70)))
	opts := []behavior.Option{
		behavior.WithImage(terminal.NewGlyphs(sprite.TinyFish)),
		behavior.WithWeights(cfg.Weights()),
		behavior.WithLogger(logger),
	}
	if cfg.Seed != 0 {
		opts = append(opts, behavior.WithSeed(cfg.Seed))
	}
	flock, err := behavior.New(cfg.Params(), playfield{surf: surf}, opts...)
	if err != nil {
		return nil, err
	}
	if err := flock.Populate(cfg.FlockSize); err != nil {
		return nil, err
	}
	screen.HideCursor()
	surf.Clear()
	return &TermApp{screen: screen, surf: surf, flock: flock, cfg: cfg, logger: logger}, nil
}

// Flock returns the simulated flock.
func (a *TermApp) Flock() *behavior.Flock { return a.flock }

// Paused reports whether frames currently step the flock.
func (a *TermApp) Paused() bool { return a.paused }

// HandleEvent applies one input event and reports whether the app keeps running.
func (a *TermApp) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.surf.Clear()
		a.flock.Forget()
	}
	return true
}

func (a *TermApp) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		a.paused = !a.paused
	case 'r':
		a.restart()
	case 'a', 'A', 'c', 'C', 's', 'S':
		a.nudgeWeight(r)
	}
	return true
}

// nudgeWeight lowers (lower case) or raises (upper case) a rule weight.
func (a *TermApp) nudgeWeight(r rune) {
	rules := map[rune]behavior.Rule{
		'a': behavior.Alignment, 'A': behavior.Alignment,
		'c': behavior.Cohesion, 'C': behavior.Cohesion,
		's': behavior.Separation, 'S': behavior.Separation,
	}
	rule := rules[r]
	delta := weightStep
	if r >= 'a' {
		delta = -weightStep
	}
	w := a.flock.Weights()
	if err := a.flock.UpdateWeight(rule, w.Get(rule)+delta); err != nil {
		a.logger.Warnf("weight %s: %v", rule, err)
	}
}

func (a *TermApp) restart() {
	a.surf.Clear()
	if err := a.flock.Populate(a.cfg.FlockSize); err != nil {
		a.logger.Errorf("restart: %v", err)
		return
	}
	a.tick = 0
	a.failed = 0
}

// Frame erases, steps and redraws every boid, then the status line.
// A paused app redraws without stepping.
func (a *TermApp) Frame() {
	if a.paused {
		a.flock.Draw(a.surf)
	} else {
		a.failed = a.flock.Frame(a.surf)
		a.tick++
	}
	a.drawStatus()
	a.screen.Show()
}

func (a *TermApp) drawStatus() {
	w := a.flock.Weights()
	state := ""
	if a.paused {
		state = " [paused]"
	}
	line := fmt.Sprintf(" boids %d  tick %d  failed %d  align %.1f (a/A)  cohes %.1f (c/C)  separ %.1f (s/S)  space r q%s",
		a.flock.Len(), a.tick, a.failed, w.Alignment, w.Cohesion, w.Separation, state)

	sw, sh := a.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range line {
		if x >= sw {
			break
		}
		a.screen.SetContent(x, sh-1, r, nil, style)
		x++
	}
	for ; x < sw; x++ {
		a.screen.SetContent(x, sh-1, ' ', nil, style)
	}
}

// Run drives the app at the given frame interval until quit or ctx is done.
func (a *TermApp) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, eventChan, done)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.Frame()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
