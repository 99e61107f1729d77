package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func openTestRuns(t *testing.T) *storage.Store {
	t.Helper()
	runs, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { runs.Close() })
	return runs
}

func TestPrintScoresOrdersBest(t *testing.T) {
	runs := openTestRuns(t)
	for _, score := range []int{3, 11, 7} {
		if _, err := runs.SaveRun(storage.NewRun(score, 11, 600, score*2, "collision")); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	var out bytes.Buffer
	if err := printScores(&out, runs, 2, false); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}

	text := out.String()
	if !strings.HasPrefix(text, "Best runs:") {
		t.Errorf("missing title in %q", text)
	}
	first := strings.Index(text, "#1    11")
	second := strings.Index(text, "#2    7")
	if first < 0 || second < 0 || second < first {
		t.Errorf("runs not listed best first:\n%s", text)
	}
	if strings.Contains(text, "#3") {
		t.Errorf("limit not applied:\n%s", text)
	}
	if !strings.Contains(text, "Runs:  3") {
		t.Errorf("stats missing:\n%s", text)
	}
}

func TestPrintScoresEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := printScores(&out, openTestRuns(t), 10, true); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "Recent runs:") || !strings.Contains(out.String(), "(no runs recorded)") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestPrintRun(t *testing.T) {
	runs := openTestRuns(t)
	run := storage.NewRun(9, 12, 1800, 18, "out_of_bounds")
	if _, err := runs.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	var out bytes.Buffer
	if err := printRun(&out, runs, run.RunID.String()); err != nil {
		t.Fatalf("printRun() failed: %v", err)
	}
	for _, want := range []string{run.RunID.String(), "Score:   9", "Pipes:   18", "Ended:   out_of_bounds"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if err := printRun(&out, runs, uuid.NewString()); err == nil {
		t.Error("expected an error for an unknown run")
	}
	if err := printRun(&out, runs, "not-a-uuid"); err == nil {
		t.Error("expected an error for a malformed id")
	}
}

func TestClearRuns(t *testing.T) {
	runs := openTestRuns(t)
	if _, err := runs.SaveRun(storage.NewRun(5, 5, 300, 10, "collision")); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	var out bytes.Buffer
	if err := clearRuns(&out, runs); err != nil {
		t.Fatalf("clearRuns() failed: %v", err)
	}
	best, err := runs.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestScore() after clear = %d, expected 0", best)
	}
	if !strings.Contains(out.String(), "cleared") {
		t.Errorf("unexpected output %q", out.String())
	}
}
