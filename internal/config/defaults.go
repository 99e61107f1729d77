package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the classic 360x640 configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Board: BoardConfig{
			Width:  360,
			Height: 640,
		},
		Bird: BirdConfig{
			SpawnX: 45,
			SpawnY: 320,
			Width:  34,
			Height: 24,
		},
		Pipes: PipesConfig{
			Width:        64,
			Height:       512,
			SpawnX:       360,
			BaseY:        0,
			OpeningSpace: 160,
		},
		Physics: PhysicsConfig{
			Gravity:     1,
			PipeSpeed:   4,
			JumpImpulse: 9,
		},
		Timing: TimingConfig{
			TickRate:    60,
			SpawnPeriod: Duration(1500 * time.Millisecond),
		},
		Persistence: PersistenceConfig{
			HighScoreFile: "~/.flappy/highscore",
			WriteMode:     WriteAsync,
			HistoryDB:     "~/.flappy/runs.db",
		},
	}
}
