// Package config loads runner configuration from a TOML file and
// folds it into the world tunables the core consumes.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/aerialfoundry/skyfleet-simulator/core"
)

// Config is the full runner configuration: process-level settings plus
// the world tunables.
type Config struct {
	Runner RunnerConfig `toml:"runner"`
	World  WorldConfig  `toml:"world"`
}

// RunnerConfig covers everything outside the simulation core: the
// frame rate, seeding, scenario file, and the metrics listener.
type RunnerConfig struct {
	TickRate     int    `toml:"tick_rate"`     // frames per second
	Seed         int64  `toml:"seed"`          // 0 means derive from time
	ScenarioPath string `toml:"scenario_path"` // archetype JSON; optional
	MetricsAddr  string `toml:"metrics_addr"`  // empty disables the /metrics listener
	DurationSecs int    `toml:"duration_secs"` // 0 runs until interrupted
	NightLock    bool   `toml:"night_lock"`
	LogLevel     string `toml:"log_level"`
	LogFormat    string `toml:"log_format"`
	Accelerated  bool   `toml:"accelerated"`
}

// WorldConfig mirrors core.WorldConfig field for field so operators can
// override any tunable from the file. Zero values mean "keep default".
type WorldConfig struct {
	Population       int     `toml:"population"`
	MinHeightAGL     float64 `toml:"min_height_agl"`
	MaxHeightAGL     float64 `toml:"max_height_agl"`
	AvoidanceDist    float64 `toml:"avoidance_dist"`
	CruiseSpeed      float64 `toml:"cruise_speed"`
	SpawnDistanceMin float64 `toml:"spawn_distance_min"`
	SpawnDistanceMax float64 `toml:"spawn_distance_max"`
	DespawnBoxSize   float64 `toml:"despawn_box_size"`
	ChunkSize        float64 `toml:"chunk_size"`
	ChunkRadius      int     `toml:"chunk_radius"`
	DayLength        float64 `toml:"day_length"`
	WindChangeSecs   float64 `toml:"wind_change_secs"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Runner: RunnerConfig{
			TickRate:    60,
			MetricsAddr: ":9090",
			LogLevel:    "info",
			LogFormat:   "text",
		},
	}
}

// Load reads a TOML config file. A missing path returns defaults; a
// present but unreadable or invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Runner.TickRate < 0 {
		return fmt.Errorf("config: tick_rate must not be negative, got %d", c.Runner.TickRate)
	}
	if c.World.MinHeightAGL != 0 && c.World.MaxHeightAGL != 0 &&
		c.World.MinHeightAGL >= c.World.MaxHeightAGL {
		return fmt.Errorf("config: min_height_agl %v must be below max_height_agl %v",
			c.World.MinHeightAGL, c.World.MaxHeightAGL)
	}
	if c.World.SpawnDistanceMin != 0 && c.World.SpawnDistanceMax != 0 &&
		c.World.SpawnDistanceMin > c.World.SpawnDistanceMax {
		return fmt.Errorf("config: spawn_distance_min %v exceeds spawn_distance_max %v",
			c.World.SpawnDistanceMin, c.World.SpawnDistanceMax)
	}
	return nil
}

// WorldConfig folds the file's world overrides onto the core defaults.
func (c Config) WorldConfig() core.WorldConfig {
	w := core.DefaultWorldConfig()
	o := c.World
	if o.Population > 0 {
		w.Population = o.Population
	}
	if o.MinHeightAGL > 0 {
		w.MinHeightAGL = o.MinHeightAGL
	}
	if o.MaxHeightAGL > 0 {
		w.MaxHeightAGL = o.MaxHeightAGL
	}
	if o.AvoidanceDist > 0 {
		w.AvoidanceDist = o.AvoidanceDist
	}
	if o.CruiseSpeed > 0 {
		w.CruiseSpeed = o.CruiseSpeed
	}
	if o.SpawnDistanceMin > 0 {
		w.SpawnDistanceMin = o.SpawnDistanceMin
	}
	if o.SpawnDistanceMax > 0 {
		w.SpawnDistanceMax = o.SpawnDistanceMax
	}
	if o.DespawnBoxSize > 0 {
		w.DespawnBoxSize = o.DespawnBoxSize
	}
	if o.ChunkSize > 0 {
		w.ChunkSize = o.ChunkSize
	}
	if o.ChunkRadius > 0 {
		w.ChunkRadius = o.ChunkRadius
	}
	if o.DayLength > 0 {
		w.DayLength = o.DayLength
	}
	if o.WindChangeSecs > 0 {
		w.WindChangeInterval = o.WindChangeSecs
	}
	return w
}
