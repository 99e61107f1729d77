// Package effects reacts to game frames on behalf of the frontends: it
// plays sounds and records each finished run once.
package effects

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// RunSaver records finished runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(r storage.Run) (int64, error)
}

// Options are the collaborators of a Reactor. Any of them may be nil.
type Options struct {
	Runs   RunSaver
	Sound  audio.Player
	Logger *log.Logger
}

// Reactor turns step results into side effects.
type Reactor struct {
	runs   RunSaver
	sound  audio.Player
	logger *log.Logger
	saved  bool // The current game over has been recorded
}

// New creates a reactor.
func New(opts Options) *Reactor {
	if opts.Sound == nil {
		opts.Sound = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Reactor{runs: opts.Runs, sound: opts.Sound, logger: opts.Logger}
}

// Logger returns the reactor's logger.
func (r *Reactor) Logger() *log.Logger { return r.logger }

// Handle reacts to one frame. snap is read only when a run ends.
func (r *Reactor) Handle(res core.StepResult, snap func() flappy.Snapshot) {
	if res.Restarted {
		r.saved = false
		r.logger.Debug("run restarted", "best", res.State.HighScore)
	}
	if res.Flapped {
		r.sound.Play(audio.EffectFlap)
	}
	if res.Scored {
		r.sound.Play(audio.EffectPoint)
	}
	if res.Ended {
		r.sound.Play(audio.EffectCrash)
	}
	if res.State.GameOver && !r.saved {
		r.saved = true
		r.record(snap())
	}
}

// record saves the finished run, best effort.
func (r *Reactor) record(snap flappy.Snapshot) {
	r.logger.Info("game over",
		"score", snap.DisplayScore,
		"best", snap.HighScore,
		"reason", snap.EndReason,
		"ticks", snap.Tick,
	)
	if r.runs == nil {
		return
	}
	run := storage.NewRun(snap.DisplayScore, snap.HighScore, snap.Tick, snap.PipesPassed, string(snap.EndReason))
	if _, err := r.runs.SaveRun(run); err != nil {
		r.logger.Warn("could not save run", "err", err)
	}
}
