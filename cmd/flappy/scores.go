package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	scoresLimit  int
	scoresRecent bool
	scoresPlain  bool
	scoresRun    string
	scoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "View the run history",
	Long: `Show recorded runs and lifetime statistics.

In a terminal this opens an interactive scoreboard. Pipe the output or pass
--plain for a text listing.

Examples:
  flappy scores
  flappy scores --limit 20 --recent --plain
  flappy scores --run 0b6f3c2e-8d4a-4f0e-9c51-2f7d9a1e6b34
  flappy scores --clear`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&scoresRecent, "recent", false, "List the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&scoresPlain, "plain", false, "Print a text listing instead of the interactive view")
	scoresCmd.Flags().StringVar(&scoresRun, "run", "", "Show a single run by its id")
	scoresCmd.Flags().BoolVar(&scoresClear, "clear", false, "Delete the whole run history")
}

func runScores(cmd *cobra.Command, args []string) {
	a, err := setup(setupOptions{history: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	if a.runs == nil {
		a.close()
		fmt.Fprintln(os.Stderr, "Error: run history is not available")
		os.Exit(1)
	}

	if scoresClear {
		if err := clearRuns(os.Stdout, a.runs); err != nil {
			a.close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if scoresRun != "" {
		if err := printRun(os.Stdout, a.runs, scoresRun); err != nil {
			a.close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fd := int(os.Stdout.Fd())
	if !scoresPlain && term.IsTerminal(fd) {
		w, h, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			w, h = 80, 24
		}
		if err := tui.RunScoreboard(a.runs, scoresLimit, w, h); err != nil {
			a.close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printScores(os.Stdout, a.runs, scoresLimit, scoresRecent); err != nil {
		a.close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runHistory is the part of the run store the text commands need.
type runHistory interface {
	tui.RunHistory
	RunByID(runID uuid.UUID) (*storage.Run, error)
	ClearRuns() error
}

func printScores(w io.Writer, runs runHistory, limit int, recent bool) error {
	var (
		list  []storage.Run
		err   error
		title = "Best runs"
	)
	if recent {
		title = "Recent runs"
		list, err = runs.RecentRuns(limit)
	} else {
		list, err = runs.TopRuns(limit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s:\n", title)
	if len(list) == 0 {
		fmt.Fprintln(w, "  (no runs recorded)")
	}
	for i, r := range list {
		fmt.Fprintf(w, "  %-4s  %-6d  %-6d  %-13s  %s  %s\n",
			fmt.Sprintf("#%d", i+1),
			r.Score,
			r.PipesPassed,
			r.EndReason,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.RunID,
		)
	}

	stats, err := runs.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, line := range tui.StatsLines(stats) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return nil
}

func printRun(w io.Writer, runs runHistory, id string) error {
	runID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", id, err)
	}
	r, err := runs.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("run %s not found", runID)
	}

	fmt.Fprintf(w, "Run %s\n", r.RunID)
	fmt.Fprintf(w, "  Score:   %d\n", r.Score)
	fmt.Fprintf(w, "  Best:    %d\n", r.HighScore)
	fmt.Fprintf(w, "  Pipes:   %d\n", r.PipesPassed)
	fmt.Fprintf(w, "  Ticks:   %d\n", r.Ticks)
	fmt.Fprintf(w, "  Ended:   %s\n", r.EndReason)
	fmt.Fprintf(w, "  Played:  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func clearRuns(w io.Writer, runs runHistory) error {
	if err := runs.ClearRuns(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Run history cleared")
	return nil
}
