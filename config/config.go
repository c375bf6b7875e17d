// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig controls chunk and active-set sizing.
type WorldConfig struct {
	ChunkSize         int     `yaml:"chunk_size"`
	ActiveChunkRadius int     `yaml:"active_chunk_radius"`
	MaterialTablePath string  `yaml:"material_table_path"`
}

// SimulationConfig controls per-tick pass constants.
type SimulationConfig struct {
	TickRate            float64 `yaml:"tick_rate"`
	PressureGridFactor  int     `yaml:"pressure_grid_factor"`
	PressureDecay       float64 `yaml:"pressure_decay"`
	AmbientLightDecay   float64 `yaml:"ambient_light_decay"`
	DebrisSettleSpeed   float64 `yaml:"debris_settle_speed"`
	DebrisReapTicks     int     `yaml:"debris_reap_ticks"`
	MinStructuralChunk  int     `yaml:"min_structural_cluster"`
}

// EvolutionConfig controls population and MAP-Elites sizing.
type EvolutionConfig struct {
	PopulationSize      int     `yaml:"population_size"`
	TournamentSize       int     `yaml:"tournament_size"`
	MapElitesResolution int     `yaml:"map_elites_resolution"`
	MaxBodyParts        int     `yaml:"max_body_parts"`
	EnvironmentsPerEval int     `yaml:"environments_per_eval"`
	MinGenerationsInStage int   `yaml:"min_generations_in_stage"`
}

// TelemetryConfig controls stats window sizing and CSV output.
type TelemetryConfig struct {
	WindowSizeTicks int    `yaml:"window_size_ticks"`
	OutputPath      string `yaml:"output_path"`
}

// DerivedConfig holds values computed from the rest of Config, not
// present in the YAML itself.
type DerivedConfig struct {
	TickDT32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The core never parses
// CLI flags itself; callers pass a path obtained however they like.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickDT32 = float32(1.0 / c.Simulation.TickRate)
}
