package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/effects"
	"github.com/vovakirdan/tui-flappy/internal/platform/window"
)

var (
	windowScale float64
	windowSound bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Play Flappy Bird in a desktop window at board resolution.

Controls:
  Space, Up, W, Click - Flap (restarts after game over)
  P                   - Pause/Resume
  Esc, Q              - Quit`,
	Run: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&windowScale, "scale", 1, "Window scale factor")
	windowCmd.Flags().BoolVar(&windowSound, "sound", true, "Enable sound effects")
}

func runWindow(cmd *cobra.Command, args []string) {
	a, err := setup(setupOptions{sprites: true, writer: true, history: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	cfg := boardConfig(a)
	reactor := effects.New(effects.Options{
		Runs:   a.runSaver(),
		Sound:  a.sound(windowSound),
		Logger: a.logger,
	})

	w := window.New(a.newGame(), cfg, reactor)
	if err := window.Run(w, windowScale, cfg.TickRate); err != nil {
		a.close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
