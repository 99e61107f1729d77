package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads the game configuration.
// Search order: customPath -> ~/.flappy/flappy.yaml -> ./configs/flappy.yaml -> embedded default
// Only an explicit customPath reports read or parse errors; the implicit
// locations fall through to the next source.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so a file only needs the keys
// it changes, and validates the result. Positions tied to the board size
// follow the board when the file leaves them out.
func Parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	var given boardRelative
	if err := yaml.Unmarshal(data, &given); err != nil {
		return FlappyConfig{}, err
	}
	given.fill(&cfg)

	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// boardRelative records which board-derived keys a file sets.
type boardRelative struct {
	Bird struct {
		SpawnX *int `yaml:"spawn_x"`
		SpawnY *int `yaml:"spawn_y"`
	} `yaml:"bird"`
	Pipes struct {
		SpawnX       *int `yaml:"spawn_x"`
		OpeningSpace *int `yaml:"opening_space"`
	} `yaml:"pipes"`
}

// fill derives every key the file left out from the board size:
// bird at (width/8, height/2), pipes entering at the right edge with an
// opening of height/4.
func (g boardRelative) fill(cfg *FlappyConfig) {
	w, h := cfg.Board.Width, cfg.Board.Height
	if g.Bird.SpawnX == nil {
		cfg.Bird.SpawnX = w / 8
	}
	if g.Bird.SpawnY == nil {
		cfg.Bird.SpawnY = h / 2
	}
	if g.Pipes.SpawnX == nil {
		cfg.Pipes.SpawnX = w
	}
	if g.Pipes.OpeningSpace == nil {
		cfg.Pipes.OpeningSpace = h / 4
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", filename)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
