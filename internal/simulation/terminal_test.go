package simulation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	golog "github.com/tochemey/goakt/v3/log"
)

func newTestTermApp(t *testing.T, flockSize int) (*TermApp, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	cfg := TerminalConfig()
	cfg.FlockSize = flockSize
	cfg.Seed = 5
	app, err := NewTermApp(screen, cfg, golog.DiscardLogger)
	require.NoError(t, err)
	return app, screen
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func statusLine(s tcell.Screen) string {
	w, h := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, h-1)
		b.WriteRune(r)
	}
	return b.String()
}

func TestTerminalConfig_IsValid(t *testing.T) {
	require.NoError(t, TerminalConfig().Validate())
}

func TestTermApp_WeightKeys(t *testing.T) {
	app, _ := newTestTermApp(t, 3)

	assert.True(t, app.HandleEvent(key('A')))
	assert.True(t, app.HandleEvent(key('c')))
	assert.True(t, app.HandleEvent(key('S')))
	assert.True(t, app.HandleEvent(key('S')))

	w := app.Flock().Weights()
	assert.InDelta(t, 1.1, w.Alignment, 1e-9)
	assert.InDelta(t, 0.9, w.Cohesion, 1e-9)
	assert.InDelta(t, 1.2, w.Separation, 1e-9)
}

func TestTermApp_PauseAndQuit(t *testing.T) {
	app, _ := newTestTermApp(t, 3)

	assert.True(t, app.HandleEvent(key(' ')))
	assert.True(t, app.Paused())
	before := app.Flock().States()
	app.Frame()
	assert.Equal(t, before, app.Flock().States(), "a paused frame must not move the flock")

	assert.True(t, app.HandleEvent(key(' ')))
	assert.False(t, app.Paused())

	assert.False(t, app.HandleEvent(key('q')))
	assert.False(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestTermApp_FrameStepsAndShowsStatus(t *testing.T) {
	app, screen := newTestTermApp(t, 10)

	app.Frame()
	app.Frame()

	status := statusLine(screen)
	assert.Contains(t, status, "boids 10")
	assert.Contains(t, status, "tick 2")

	// boids stay above the status line
	_, h := screen.Size()
	for _, s := range app.Flock().States() {
		assert.Less(t, s.Pos.Y, float64(h-1))
	}
}

func TestTermApp_Restart(t *testing.T) {
	app, screen := newTestTermApp(t, 6)
	app.Frame()
	app.HandleEvent(key('C'))

	assert.True(t, app.HandleEvent(key('r')))
	app.Frame()

	assert.Equal(t, 6, app.Flock().Len())
	assert.Contains(t, statusLine(screen), "tick 1")
	assert.InDelta(t, 1.1, app.Flock().Weights().Cohesion, 1e-9, "restart keeps the weights")
}

func TestPollEvents_StopsWhenRunReturns(t *testing.T) {
	_, screen := newTestTermApp(t, 1)
	events := make(chan tcell.Event) // nobody reading
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(exited)
	}()

	require.NoError(t, screen.PostEvent(key('x')))
	close(done)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("pollEvents kept blocking on a full event channel")
	}
}

func TestTermApp_RunQuitsOnKey(t *testing.T) {
	app, screen := newTestTermApp(t, 3)
	require.NoError(t, screen.PostEvent(key('q')))

	finished := make(chan struct{})
	go func() {
		app.Run(context.Background(), time.Hour)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Run did not return on q")
	}
}
