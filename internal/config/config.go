// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Write modes for the high score file.
const (
	WriteAsync = "async"
	WriteSync  = "sync"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Bird        BirdConfig        `yaml:"bird"`
	Pipes       PipesConfig       `yaml:"pipes"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Timing      TimingConfig      `yaml:"timing"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Assets      AssetsConfig      `yaml:"assets"`
}

// BoardConfig defines the size of the playfield in board units.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BirdConfig defines the bird's spawn point and size.
type BirdConfig struct {
	SpawnX int `yaml:"spawn_x"`
	SpawnY int `yaml:"spawn_y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PipesConfig defines pipe geometry.
type PipesConfig struct {
	Width          int  `yaml:"width"`
	Height         int  `yaml:"height"`
	SpawnX         int  `yaml:"spawn_x"`
	BaseY          int  `yaml:"base_y"`
	OpeningSpace   int  `yaml:"opening_space"`
	PruneOffscreen bool `yaml:"prune_offscreen"`
}

// PhysicsConfig defines per-tick motion.
type PhysicsConfig struct {
	Gravity     int `yaml:"gravity"`
	PipeSpeed   int `yaml:"pipe_speed"`
	JumpImpulse int `yaml:"jump_impulse"` // Magnitude; the jump velocity is negative
}

// TimingConfig defines the simulation clocks.
type TimingConfig struct {
	TickRate    int      `yaml:"tick_rate"` // Ticks per second
	SpawnPeriod Duration `yaml:"spawn_period"`
}

// PersistenceConfig defines where scores are kept.
type PersistenceConfig struct {
	HighScoreFile string `yaml:"high_score_file"`
	WriteMode     string `yaml:"write_mode"` // "async" or "sync"
	HistoryDB     string `yaml:"history_db"`
}

// AssetsConfig points at an optional sprite sheet override.
type AssetsConfig struct {
	Sprites string `yaml:"sprites"` // Empty uses the embedded sheet
}

// Duration is a time.Duration that reads from YAML strings like "1500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Validate reports every setting the game cannot start with.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	switch c.Persistence.WriteMode {
	case "", WriteAsync, WriteSync:
	default:
		errs = append(errs, fmt.Errorf("persistence.write_mode must be %q or %q, got %q", WriteAsync, WriteSync, c.Persistence.WriteMode))
	}
	if len(errs) == 0 {
		if err := c.Params().Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Params converts the configuration into simulation parameters.
func (c FlappyConfig) Params() flappy.Params {
	var tick time.Duration
	if c.Timing.TickRate > 0 {
		tick = time.Second / time.Duration(c.Timing.TickRate)
	}
	return flappy.Params{
		BoardWidth:     c.Board.Width,
		BoardHeight:    c.Board.Height,
		BirdX:          c.Bird.SpawnX,
		BirdY:          c.Bird.SpawnY,
		BirdWidth:      c.Bird.Width,
		BirdHeight:     c.Bird.Height,
		PipeX:          c.Pipes.SpawnX,
		PipeBaseY:      c.Pipes.BaseY,
		PipeWidth:      c.Pipes.Width,
		PipeHeight:     c.Pipes.Height,
		OpeningSpace:   c.Pipes.OpeningSpace,
		Gravity:        c.Physics.Gravity,
		PipeSpeed:      c.Physics.PipeSpeed,
		JumpImpulse:    c.Physics.JumpImpulse,
		TickPeriod:     tick,
		SpawnPeriod:    time.Duration(c.Timing.SpawnPeriod),
		PruneOffscreen: c.Pipes.PruneOffscreen,
	}
}
