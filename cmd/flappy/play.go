package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var (
	playSound      bool
	playScreenshot string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play Flappy Bird in the terminal.

Controls:
  Space, Up, W - Flap (restarts after game over)
  P, Esc       - Pause/Resume
  Ctrl+S       - Save a screenshot
  ?            - Toggle help
  Q, Ctrl+C    - Quit`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playSound, "sound", false, "Enable sound effects")
	playCmd.Flags().StringVar(&playScreenshot, "screenshot-dir", ".", "Directory for Ctrl+S screenshots")
}

func runPlay(cmd *cobra.Command, args []string) {
	a, err := setup(setupOptions{logToFile: true, sprites: true, writer: true, history: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	w, h := 80, 24
	if tw, th, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		w, h = tw, th
	}
	cfg := a.runtimeConfig(w, h)

	opts := tui.Options{
		Runs:          a.runSaver(),
		Sound:         a.sound(playSound),
		Logger:        a.logger,
		ScreenshotDir: playScreenshot,
	}

	if err := tui.Run(a.newGame(), cfg, opts); err != nil {
		a.close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// boardConfig is the runtime config of hosts that draw at board resolution.
func boardConfig(a *app) core.RuntimeConfig {
	return a.runtimeConfig(a.params.BoardWidth, a.params.BoardHeight)
}
