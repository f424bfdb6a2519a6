package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/behavior"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema string

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" yaml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" yaml:"worldHeight"`

	// Population
	FlockSize int `json:"flockSize" yaml:"flockSize"`

	// Per-boid limits
	PerceptionRadius float64 `json:"perceptionRadius" yaml:"perceptionRadius"`
	MaxSpeed         float64 `json:"maxSpeed" yaml:"maxSpeed"`
	MaxForce         float64 `json:"maxForce" yaml:"maxForce"`
	SpriteScale      float64 `json:"spriteScale" yaml:"spriteScale"`

	// Rule weights, changed live by the sliders
	AlignmentWeight  float64 `json:"alignmentWeight" yaml:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight" yaml:"cohesionWeight"`
	SeparationWeight float64 `json:"separationWeight" yaml:"separationWeight"`

	// Seed makes the initial flock reproducible, 0 picks a random one
	Seed uint64 `json:"seed" yaml:"seed"`

	ShowPerception bool `json:"showPerception" yaml:"showPerception"`
}

func DefaultConfig() *Config {
	p := behavior.DefaultParams()
	return &Config{
		WorldWidth:       1000,
		WorldHeight:      800,
		FlockSize:        200,
		PerceptionRadius: p.PerceptionRadius,
		MaxSpeed:         p.MaxSpeed,
		MaxForce:         p.MaxForce,
		SpriteScale:      p.Scale,
		AlignmentWeight:  1,
		CohesionWeight:   1,
		SeparationWeight: 1,
	}
}

// Params returns the per-boid limits of the configuration.
func (c *Config) Params() behavior.Params {
	return behavior.Params{
		PerceptionRadius: c.PerceptionRadius,
		MaxSpeed:         c.MaxSpeed,
		MaxForce:         c.MaxForce,
		Scale:            c.SpriteScale,
	}
}

// Weights returns the initial rule weights of the configuration.
func (c *Config) Weights() behavior.Weights {
	return behavior.Weights{
		Alignment:  c.AlignmentWeight,
		Cohesion:   c.CohesionWeight,
		Separation: c.SeparationWeight,
	}
}

// Validate fails fast on values no flock can run with.
func (c *Config) Validate() error {
	if !(c.WorldWidth > 0) || !(c.WorldHeight > 0) {
		return fmt.Errorf("%w: world size must be > 0, got %vx%v",
			behavior.ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	}
	if c.FlockSize < 0 {
		return fmt.Errorf("%w: flock size must be >= 0, got %d", behavior.ErrInvalidConfig, c.FlockSize)
	}
	return c.Params().Validate()
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension,
// and validates it against the embedded schema.
// Fields missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string) (*Config, error) {
	return LoadConfigOver(DefaultConfig(), configFile)
}

// LoadConfigOver is LoadConfig with the missing fields taken from a copy of base.
func LoadConfigOver(base *Config, configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Normalize to JSON, the schema validator works on decoded JSON values
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		if b, err = yamlToJSON(b); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	// 4. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 5. Unmarshal into Struct
	cfg := *base
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// yamlToJSON re-encodes a YAML document as JSON.
func yamlToJSON(b []byte) ([]byte, error) {
	var v map[string]interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	if v == nil {
		v = map[string]interface{}{}
	}
	return json.Marshal(v)
}
