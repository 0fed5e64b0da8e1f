// Package config loads the runtime settings of the game.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"snake-duel/game/types"
)

// Frontends the binary can drive.
const (
	FrontendRaylib   = "raylib"
	FrontendTerm     = "term"
	FrontendHeadless = "headless"
)

type Log struct {
	Level string `yaml:"level"`
	Mode  string `yaml:"mode"`
	Dir   string `yaml:"dir"`
	File  bool   `yaml:"file"`
}

type Config struct {
	Frontend string        `yaml:"frontend"`
	Tick     time.Duration `yaml:"tick"`
	// Rounds stops the game after that many rounds. Zero plays forever.
	Rounds   int    `yaml:"rounds"`
	CellSize int    `yaml:"cell_size"`
	Journal  string `yaml:"journal"`
	Log      Log    `yaml:"log"`
}

func Default() Config {
	return Config{
		Frontend: FrontendRaylib,
		Tick:     types.TickPeriod,
		CellSize: 24,
		Log: Log{
			Level: "info",
			Mode:  "dev",
			Dir:   "logs",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendRaylib, FrontendTerm, FrontendHeadless:
	default:
		return errors.Errorf("unknown frontend %q", c.Frontend)
	}
	if c.Tick <= 0 {
		return errors.Errorf("tick must be positive, got %v", c.Tick)
	}
	if c.Rounds < 0 {
		return errors.Errorf("rounds must not be negative, got %d", c.Rounds)
	}
	if c.CellSize < 4 {
		return errors.Errorf("cell_size too small: %d", c.CellSize)
	}
	return nil
}
