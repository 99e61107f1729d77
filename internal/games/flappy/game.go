// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps between pipe
// pairs scrolling in from the right.
//
// Session holds the simulation, Scheduler drives it in simulated time, and
// Game adapts both to the platform: it turns input frames into jumps and
// renders snapshots into a core.Screen.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game implements the Flappy Bird game for a host loop.
type Game struct {
	params    Params
	sheet     *assets.Sheet
	recorder  Recorder
	session   *Session
	scheduler *Scheduler
	frame     time.Duration // Simulated time per host frame
	highScore int           // Carried over between Resets
	paused    bool
	config    core.RuntimeConfig
}

// New creates a game. highScore is the persisted best score; rec receives
// new records and may be nil.
func New(p Params, sheet *assets.Sheet, highScore int, rec Recorder) *Game {
	return &Game{
		params:    p,
		sheet:     sheet,
		recorder:  rec,
		highScore: highScore,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset starts a fresh session seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.session != nil {
		g.highScore = g.session.HighScore()
	}
	g.config = cfg
	g.paused = false

	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.frame = time.Second / time.Duration(rate)

	g.session = NewSession(g.params, rand.New(rand.NewSource(cfg.Seed)), g.highScore, g.recorder)
	g.scheduler = NewScheduler(g.params.TickPeriod)
}

// Resize updates the screen dimensions without touching the simulation.
// The board has a fixed size; only the terminal view changes.
func (g *Game) Resize(w, h int) {
	g.config.ScreenW = w
	g.config.ScreenH = h
}

// Step advances the game by one host frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult

	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		res.State = g.State()
		return res
	}

	if in.Has(core.ActionJump) {
		if g.session.Jump() {
			g.scheduler.Reset()
			res.Restarted = true
		} else {
			res.Flapped = true
		}
	}

	rep := g.scheduler.Advance(g.session, g.frame)
	res.Ticks = rep.Ticks
	res.Scored = rep.PipesPassed > 0
	res.Ended = rep.Ended
	res.State = g.State()
	return res
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     int(g.session.Score()),
		HighScore: g.session.HighScore(),
		GameOver:  g.session.GameOver(),
		Paused:    g.paused,
	}
}

// Snapshot returns a read-only copy of the session.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

// Params returns the simulation parameters.
func (g *Game) Params() Params {
	return g.params
}

// Sheet returns the sprite sheet used for rendering.
func (g *Game) Sheet() *assets.Sheet {
	return g.sheet
}
