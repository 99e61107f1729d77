// Package assets loads the sprite sheet that maps sprite handles carried by
// game entities to something a render adapter can draw: a rune and terminal
// color for the TUI, an RGB color for the pixel window.
//
// A missing or malformed sprite is an asset error. Unlike a broken high-score
// file, the game cannot start without its sprites.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

//go:embed defaults/sprites.yaml
var defaultSheetYAML []byte

// Handle names a sprite.
type Handle string

// Sprite handles used by the game.
const (
	Background Handle = "background"
	Bird       Handle = "bird"
	TopPipe    Handle = "top_pipe"
	BottomPipe Handle = "bottom_pipe"
)

// Required lists every handle a sheet must provide.
var Required = []Handle{Background, Bird, TopPipe, BottomPipe}

var (
	// ErrMissingSprite is returned when a sheet lacks a required handle.
	ErrMissingSprite = errors.New("assets: missing sprite")
	// ErrBadSprite is returned when a sprite entry cannot be decoded.
	ErrBadSprite = errors.New("assets: malformed sprite")
)

// Sprite is the resolved drawing information for one handle.
type Sprite struct {
	Rune  rune       // Fill character in the terminal
	Cap   rune       // Optional edge character; equals Rune when unset
	Color core.Color // Terminal color
	RGB   color.RGBA // Window color
}

// Sheet holds every sprite of a theme.
type Sheet struct {
	sprites map[Handle]Sprite
}

type sheetFile struct {
	Sprites map[string]spriteEntry `yaml:"sprites"`
}

type spriteEntry struct {
	Rune  string `yaml:"rune"`
	Cap   string `yaml:"cap"`
	Color string `yaml:"color"`
	RGB   string `yaml:"rgb"`
}

// Default returns the embedded sprite sheet.
func Default() (*Sheet, error) {
	return Load(defaultSheetYAML)
}

// LoadFile reads a sprite sheet from disk.
func LoadFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot read sprite sheet %s: %w", path, err)
	}
	return Load(data)
}

// Load decodes a YAML sprite sheet and checks that every required handle is present.
func Load(data []byte) (*Sheet, error) {
	var file sheetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSprite, err)
	}

	sheet := &Sheet{sprites: make(map[Handle]Sprite, len(file.Sprites))}
	for name, entry := range file.Sprites {
		sp, err := entry.decode()
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrBadSprite, name, err)
		}
		sheet.sprites[Handle(name)] = sp
	}

	for _, h := range Required {
		if _, ok := sheet.sprites[h]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingSprite, h)
		}
	}
	return sheet, nil
}

func (e spriteEntry) decode() (Sprite, error) {
	var sp Sprite

	r, size := utf8.DecodeRuneInString(e.Rune)
	if size == 0 || size != len(e.Rune) {
		return sp, fmt.Errorf("rune must be a single character, got %q", e.Rune)
	}
	sp.Rune = r
	sp.Cap = r
	if e.Cap != "" {
		c, size := utf8.DecodeRuneInString(e.Cap)
		if size != len(e.Cap) {
			return sp, fmt.Errorf("cap must be a single character, got %q", e.Cap)
		}
		sp.Cap = c
	}

	c, err := core.ParseColor(e.Color)
	if err != nil {
		return sp, err
	}
	sp.Color = c

	rgb, err := parseHex(e.RGB)
	if err != nil {
		return sp, err
	}
	sp.RGB = rgb
	return sp, nil
}

// parseHex decodes "#rrggbb".
func parseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("rgb must look like #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("rgb %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Sprite returns the sprite for a handle. Load guarantees required handles exist;
// unknown handles resolve to a visible placeholder.
func (s *Sheet) Sprite(h Handle) Sprite {
	if sp, ok := s.sprites[h]; ok {
		return sp
	}
	return Sprite{Rune: '?', Cap: '?', Color: core.ColorBrightMagenta, RGB: color.RGBA{R: 0xff, B: 0xff, A: 0xff}}
}
