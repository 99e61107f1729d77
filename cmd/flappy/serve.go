package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var (
	serveSSHAddr     string
	serveHostKey     string
	serveIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server that lets users play over SSH.

Every connection gets its own game. All sessions share the high score file
and the run history.

Example:
  flappy serve --ssh :2222

Then connect with:
  ssh -p 2222 localhost`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&serveSSHAddr, "ssh", defaults.Address, "SSH server listen address")
	serveCmd.Flags().StringVar(&serveHostKey, "host-key", "", "Path to SSH host key (default: ~/.flappy/host_key)")
	serveCmd.Flags().DurationVar(&serveIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Close sessions idle for this long")
}

func runServe(cmd *cobra.Command, args []string) {
	a, err := setup(setupOptions{sprites: true, writer: true, history: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = serveSSHAddr
	cfg.HostKeyPath = serveHostKey
	cfg.IdleTimeout = serveIdleTimeout
	cfg.FPS = a.runtimeConfig(0, 0).TickRate

	// Sessions start from the best score seen so far, not the one at startup.
	newGame := func() *flappy.Game { return a.newGame() }

	server, err := tui.NewSSHServer(cfg, newGame, a.runSaver(), a.logger.WithPrefix("ssh"))
	if err != nil {
		a.close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Flappy SSH server listening on %s\n", serveSSHAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		a.close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
