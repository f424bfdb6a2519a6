package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/behavior"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 200, cfg.FlockSize)
	assert.Equal(t, behavior.DefaultParams(), cfg.Params())
	assert.Equal(t, behavior.Weights{Alignment: 1, Cohesion: 1, Separation: 1}, cfg.Weights())
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "flock.json", `{
		"worldWidth": 640,
		"worldHeight": 480,
		"flockSize": 75,
		"cohesionWeight": 2.5,
		"seed": 42,
		"showPerception": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 640.0, cfg.WorldWidth)
	assert.Equal(t, 75, cfg.FlockSize)
	assert.Equal(t, 2.5, cfg.CohesionWeight)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.ShowPerception)
	// missing fields keep their defaults
	assert.Equal(t, 50.0, cfg.PerceptionRadius)
	assert.Equal(t, 1.0, cfg.AlignmentWeight)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "flock.yaml", `
worldWidth: 800
worldHeight: 600
flockSize: 120
maxSpeed: 4.5
separationWeight: 1.8
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 800.0, cfg.WorldWidth)
	assert.Equal(t, 120, cfg.FlockSize)
	assert.Equal(t, 4.5, cfg.MaxSpeed)
	assert.Equal(t, 1.8, cfg.SeparationWeight)
}

func TestLoadConfig_EmptyYAMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "empty.yml", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOver_KeepsBaseForMissingFields(t *testing.T) {
	path := writeFile(t, "flock-term.yaml", "flockSize: 12\nseparationWeight: 1.5\n")
	base := TerminalConfig()

	cfg, err := LoadConfigOver(base, path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.FlockSize)
	assert.Equal(t, 1.5, cfg.SeparationWeight)
	assert.Equal(t, base.PerceptionRadius, cfg.PerceptionRadius)
	assert.Equal(t, base.MaxSpeed, cfg.MaxSpeed)
	assert.Equal(t, base.MaxForce, cfg.MaxForce)
	assert.Equal(t, base.SpriteScale, cfg.SpriteScale)
	assert.Equal(t, TerminalConfig(), base, "the base is not modified")
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"negative flock size", "bad.json", `{"flockSize": -1}`},
		{"zero perception radius", "bad.json", `{"perceptionRadius": 0}`},
		{"negative max speed", "bad.yaml", "maxSpeed: -2\n"},
		{"unknown field", "bad.json", `{"numRedAtStart": 3}`},
		{"wrong type", "bad.json", `{"showPerception": "yes"}`},
		{"broken json", "bad.json", `{"flockSize": `},
		{"broken yaml", "bad.yaml", "flockSize: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldWidth = 0
	assert.ErrorIs(t, cfg.Validate(), behavior.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.FlockSize = -5
	assert.ErrorIs(t, cfg.Validate(), behavior.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.MaxForce = 0
	assert.ErrorIs(t, cfg.Validate(), behavior.ErrInvalidConfig)
}

func TestLiveViewport_Set(t *testing.T) {
	v := NewLiveViewport(100, 50)
	v.Set(300, 200)
	w, h := v.Size()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 200.0, h)

	v.Set(0, 10)
	w, h = v.Size()
	assert.Equal(t, 300.0, w, "a zero size is ignored")
	assert.Equal(t, 200.0, h)
}
