// flappy is a Flappy Bird clone for the terminal, a desktop window and SSH.
//
// Usage:
//
//	flappy play              - Play in the terminal
//	flappy window            - Play in a desktop window
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show the run history
//	flappy best              - Show or reset the high score
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: search ~/.flappy, ./configs)
//	--fps <rate>        - Frame rate of the host loop (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--best-file <path>  - High score file (default: ~/.flappy/highscore)
//	--db <path>         - Run history database (default: ~/.flappy/runs.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagBestFile string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird: flap through the gaps between pipes for as long as you can.
Every pipe pair you clear is worth one point; the best score is kept between
runs.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View the run history
  best     - Show or reset the high score

Examples:
  flappy play
  flappy play --seed 42 --sound
  flappy window --scale 1.5
  flappy serve --ssh :2222
  flappy scores --limit 20`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Host frame rate (0 = config tick rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagBestFile, "best-file", "", "Path to high score file (default from config: ~/.flappy/highscore)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config: ~/.flappy/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
}
