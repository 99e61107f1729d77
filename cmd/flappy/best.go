package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var bestReset bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show or reset the high score",
	Long: `Print the high score stored in the high score file.

A missing or unreadable file counts as 0. The best score in the run
history is shown next to it when the history is available. With --reset
the file is overwritten with 0; the run history is left alone.`,
	Run: runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&bestReset, "reset", false, "Reset the high score to 0")
}

func runBest(cmd *cobra.Command, args []string) {
	a, err := setup(setupOptions{history: !bestReset})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	if bestReset {
		if err := a.best.Save(0); err != nil {
			a.close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("High score reset (%s)\n", a.best.Path())
		return
	}

	fmt.Println(a.best.Load())
	if a.runs == nil {
		return
	}
	if recorded, err := a.runs.BestScore(); err != nil {
		a.logger.Warn("could not read run history", "err", err)
	} else {
		fmt.Printf("Best recorded run: %d\n", recorded)
	}
}
