package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/effects"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// app holds everything a command shares: configuration, sprites, the
// high score writer and the run history.
type app struct {
	cfg     config.FlappyConfig
	params  flappy.Params
	sheet   *assets.Sheet
	logger  *log.Logger
	logFile *os.File
	best    *highscore.Store
	writer  *highscore.Writer
	runs    *storage.Store
}

// setupOptions selects which parts of the app a command needs.
type setupOptions struct {
	logToFile bool // The terminal belongs to the UI; log to ~/.flappy/flappy.log
	sprites   bool
	writer    bool
	history   bool
}

// setup loads configuration and opens the stores. Config and asset errors
// are fatal; a run history that cannot be opened is logged and skipped.
func setup(opts setupOptions) (*app, error) {
	a := &app{}

	logger, logFile, err := newLogger(opts.logToFile)
	if err != nil {
		return nil, err
	}
	a.logger, a.logFile = logger, logFile

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		a.close()
		return nil, err
	}
	a.cfg = cfg
	a.params = cfg.Params()

	if opts.sprites {
		if cfg.Assets.Sprites != "" {
			a.sheet, err = assets.LoadFile(config.ExpandHome(cfg.Assets.Sprites))
		} else {
			a.sheet, err = assets.Default()
		}
		if err != nil {
			a.close()
			return nil, err
		}
	}

	bestPath := flagBestFile
	if bestPath == "" {
		bestPath = cfg.Persistence.HighScoreFile
	}
	a.best = highscore.NewStore(config.ExpandHome(bestPath), logger.WithPrefix("highscore"))
	if opts.writer {
		a.writer = highscore.NewWriter(a.best, highscore.ParseMode(cfg.Persistence.WriteMode))
	}

	if opts.history {
		dbPath := flagDBPath
		if dbPath == "" {
			dbPath = cfg.Persistence.HistoryDB
		}
		runs, err := storage.Open(config.ExpandHome(dbPath))
		if err != nil {
			logger.Warn("could not open run history, continuing without it", "err", err)
		} else {
			a.runs = runs
		}
	}

	return a, nil
}

// close flushes the high score and releases every resource. It is safe to
// call more than once.
func (a *app) close() {
	if a.writer != nil {
		if err := a.writer.Close(); err != nil {
			a.logger.Warn("could not save high score", "err", err)
		}
	}
	if a.runs != nil {
		a.runs.Close()
		a.runs = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// runSaver returns the run history as a saver, or nil when it is not open.
func (a *app) runSaver() effects.RunSaver {
	if a.runs == nil {
		return nil
	}
	return a.runs
}

// newGame creates a game that reports records to the shared writer.
func (a *app) newGame() *flappy.Game {
	var rec flappy.Recorder
	best := 0
	if a.writer != nil {
		rec = a.writer
		best = a.writer.Best()
	}
	return flappy.New(a.params, a.sheet, best, rec)
}

// runtimeConfig builds the host loop settings for a screen size.
func (a *app) runtimeConfig(w, h int) core.RuntimeConfig {
	fps := flagFPS
	if fps <= 0 {
		fps = a.cfg.Timing.TickRate
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: fps,
		Seed:     seed,
	}
}

// sound opens the audio device when enabled, falling back to silence.
func (a *app) sound(enabled bool) audio.Player {
	if !enabled {
		return audio.Nop{}
	}
	synth, err := audio.NewSynth(0.6)
	if err != nil {
		a.logger.Warn("sound disabled", "err", err)
		return audio.Nop{}
	}
	return synth
}

// newLogger builds the process logger at --log-level. With toFile set the
// log goes to ~/.flappy/flappy.log so it does not draw over the game.
func newLogger(toFile bool) (*log.Logger, *os.File, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	var file *os.File
	if toFile {
		path := config.ExpandHome(filepath.Join("~", ".flappy", "flappy.log"))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = file
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, file, nil
}
