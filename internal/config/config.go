package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"firstperson/internal/controller"
	"firstperson/internal/logger"
	"firstperson/internal/player"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window     WindowConfig      `yaml:"window"`
	Controller controller.Tuning `yaml:"controller"`
	Player     player.Options    `yaml:"player"`
	Physics    PhysicsConfig     `yaml:"physics"`
	Logging    logger.Config     `yaml:"logging"`
}

type WindowConfig struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
	MSAA      bool   `yaml:"msaa"`
}

type PhysicsConfig struct {
	Gravity float32 `yaml:"gravity"`
	// FloorHalfExtents is the size of the static ground box centered at the origin.
	FloorHalfExtents [3]float32 `yaml:"floor_half_extents"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "First Person",
			TargetFPS: 120,
			MSAA:      true,
		},
		Controller: controller.DefaultTuning(),
		Player:     player.DefaultOptions(),
		Physics: PhysicsConfig{
			Gravity:          -9.81,
			FloorHalfExtents: [3]float32{75, 0.1, 75},
		},
		Logging: logger.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist. The second return value reports whether the file was read.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.Controller.Validate(); err != nil {
		return err
	}
	if err := c.Player.Validate(); err != nil {
		return err
	}
	for _, e := range c.Physics.FloorHalfExtents {
		if e <= 0 {
			return fmt.Errorf("floor_half_extents must be positive, got %v", c.Physics.FloorHalfExtents)
		}
	}
	return nil
}
