// Package window runs the game in a desktop window at board resolution.
package window

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/effects"
)

var (
	hudColor     = color.White
	overlayColor = color.NRGBA{0, 0, 0, 150}
)

// Window adapts a game to ebiten.Game. One window frame is one game frame,
// so the window runs at the game's tick rate.
type Window struct {
	game    *flappy.Game
	effects *effects.Reactor
}

// New creates a window host for game. cfg seeds the first run.
func New(game *flappy.Game, cfg core.RuntimeConfig, reactor *effects.Reactor) *Window {
	game.Reset(cfg)
	if reactor == nil {
		reactor = effects.New(effects.Options{})
	}
	return &Window{game: game, effects: reactor}
}

// Update reads input and advances the game by one frame.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	in := core.NewInputFrame()
	if jumpPressed() {
		in.Set(core.ActionJump)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}

	res := w.game.Step(in)
	w.effects.Handle(res, w.game.Snapshot)
	return nil
}

func jumpPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Draw renders the board in board units.
func (w *Window) Draw(screen *ebiten.Image) {
	sheet := w.game.Sheet()
	snap := w.game.Snapshot()

	screen.Fill(sheet.Sprite(assets.Background).RGB)
	for _, p := range snap.Pipes {
		drawRect(screen, p.Rect(), sheet.Sprite(p.Sprite).RGB)
	}
	drawRect(screen, snap.Bird.Rect(), sheet.Sprite(snap.Bird.Sprite).RGB)

	text.Draw(screen, HUDText(snap), basicfont.Face7x13, 10, 20, hudColor)

	p := w.game.Params()
	switch {
	case snap.GameOver:
		drawBanner(screen, p, fmt.Sprintf("GAME OVER: %d", snap.DisplayScore), "Space or click to restart")
	case w.game.State().Paused:
		drawBanner(screen, p, "PAUSED", "Press P to resume")
	}
}

// Layout keeps the logical screen at board size; ebiten scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	p := w.game.Params()
	return p.BoardWidth, p.BoardHeight
}

// HUDText formats the score line drawn in the top-left corner.
func HUDText(snap flappy.Snapshot) string {
	return fmt.Sprintf("Score: %d  Best: %d", snap.DisplayScore, snap.HighScore)
}

func drawRect(dst *ebiten.Image, r core.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func drawBanner(dst *ebiten.Image, p flappy.Params, title, subtitle string) {
	const (
		charW  = 7 // basicfont.Face7x13 advance
		height = 60
	)
	y := p.BoardHeight/2 - height/2
	vector.DrawFilledRect(dst, 0, float32(y), float32(p.BoardWidth), height, overlayColor, false)
	text.Draw(dst, title, basicfont.Face7x13, (p.BoardWidth-len(title)*charW)/2, y+24, hudColor)
	text.Draw(dst, subtitle, basicfont.Face7x13, (p.BoardWidth-len(subtitle)*charW)/2, y+44, hudColor)
}

// Run opens the window and blocks until it is closed.
func Run(w *Window, scale float64, tps int) error {
	p := w.game.Params()
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(p.BoardWidth)*scale), int(float64(p.BoardHeight)*scale))
	ebiten.SetWindowTitle(w.game.Title())
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
