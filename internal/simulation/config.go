package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Population
	Population   int     `json:"population" toml:"population"`
	InitialSpeed float64 `json:"initialSpeed" toml:"initialSpeed"`

	// World Dimensions, as half extents: the world spans [-WorldWidth, WorldWidth).
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`

	// Seed of the random source, 0 picks one from the clock.
	Seed uint64 `json:"seed" toml:"seed"`
	// Workers splits each tick over goroutines, 0 or 1 keeps it sequential.
	Workers int `json:"workers" toml:"workers"`

	// Host settings
	TickRate int     `json:"tickRate" toml:"tickRate"` // ticks per second
	FishSize float64 `json:"fishSize" toml:"fishSize"`

	// Flocking rules (matching pkg/flock.Params)
	Cohesion   flock.Rule `json:"cohesion" toml:"cohesion"`
	Alignment  flock.Rule `json:"alignment" toml:"alignment"`
	Separation flock.Rule `json:"separation" toml:"separation"`

	ApplyProbability float64 `json:"applyProbability" toml:"applyProbability"`
	DecayFactor      float64 `json:"decayFactor" toml:"decayFactor"`
	GrowthFactor     float64 `json:"growthFactor" toml:"growthFactor"`
}

func DefaultConfig() *Config {
	p := flock.DefaultParams()
	return &Config{
		Population:       100,
		InitialSpeed:     1.0,
		WorldWidth:       400,
		WorldHeight:      300,
		Seed:             0,
		Workers:          1,
		TickRate:         60,
		FishSize:         7,
		Cohesion:         p.Cohesion,
		Alignment:        p.Alignment,
		Separation:       p.Separation,
		ApplyProbability: p.ApplyProbability,
		DecayFactor:      p.DecayFactor,
		GrowthFactor:     p.GrowthFactor,
	}
}

// LoadConfig loads a JSON or TOML configuration file, validates it against the
// embedded schema and overlays it on DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	isTOML := strings.EqualFold(filepath.Ext(configFile), ".toml")

	// 3. Validate
	doc, err := decodeDocument(b, isTOML)
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct, missing keys keep their default
	cfg := DefaultConfig()
	if isTOML {
		err = toml.Unmarshal(b, cfg)
	} else {
		err = json.Unmarshal(b, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeDocument returns the generic JSON form of the file, the only form the
// schema validator understands. TOML documents are converted through JSON.
func decodeDocument(b []byte, isTOML bool) (any, error) {
	if isTOML {
		var m map[string]any
		if err := toml.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		j, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
		b = j
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	return v, nil
}

// Validate performs the checks a schema cannot express, like min < max on bands.
func (c *Config) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, flock.ErrInvalidPopulation, c.Population)
	}
	if err := c.Domain().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !(c.InitialSpeed > 0) {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidConfig, flock.ErrInvalidSpeed, c.InitialSpeed)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if !(c.FishSize > 0) {
		return fmt.Errorf("%w: fish size must be positive, got %v", ErrInvalidConfig, c.FishSize)
	}
	return nil
}

// Params extracts the flocking parameters.
func (c *Config) Params() flock.Params {
	return flock.Params{
		Cohesion:         c.Cohesion,
		Alignment:        c.Alignment,
		Separation:       c.Separation,
		ApplyProbability: c.ApplyProbability,
		DecayFactor:      c.DecayFactor,
		GrowthFactor:     c.GrowthFactor,
	}
}

// Domain returns the simulated plane.
func (c *Config) Domain() flock.Domain {
	return flock.Domain{Width: c.WorldWidth, Height: c.WorldHeight}
}

// Source returns the random source for the configured seed.
func (c *Config) Source() flock.Source {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return flock.NewSource(seed)
}
