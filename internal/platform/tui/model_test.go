package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/effects"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type fakeRuns struct {
	runs []storage.Run
	err  error
}

func (f *fakeRuns) SaveRun(r storage.Run) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.runs = append(f.runs, r)
	return int64(len(f.runs)), nil
}

type fakeSound struct {
	played []audio.Effect
}

func (f *fakeSound) Play(e audio.Effect) { f.played = append(f.played, e) }

func (f *fakeSound) count(e audio.Effect) int {
	n := 0
	for _, p := range f.played {
		if p == e {
			n++
		}
	}
	return n
}

func newTestModel(t *testing.T, runs effects.RunSaver, sound audio.Player) Model {
	t.Helper()
	sheet, err := assets.Default()
	if err != nil {
		t.Fatalf("default sprites: %v", err)
	}
	game := flappy.New(flappy.DefaultParams(), sheet, 0, nil)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}
	return NewModel(game, cfg, Options{Runs: runs, Sound: sound, ScreenshotDir: t.TempDir()})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	return m
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space", spaceKey(), core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", keyRune('w'), core.ActionJump},
		{"p", keyRune('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"q", keyRune('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", keyRune('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.expected {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestModelJumpIsAppliedOnNextFrame(t *testing.T) {
	sound := &fakeSound{}
	m := newTestModel(t, nil, sound)

	m = update(t, m, spaceKey())
	if got := m.game.Snapshot().VelocityY; got != 0 {
		t.Fatalf("key press should not step the game, velocity = %d", got)
	}

	m = tick(t, m, 1)
	if got := m.game.Snapshot().VelocityY; got != -8 {
		t.Errorf("velocity after jump frame = %d, expected -8", got)
	}
	if sound.count(audio.EffectFlap) != 1 {
		t.Errorf("expected one flap sound, got %v", sound.played)
	}

	// The input frame is cleared after use
	m = tick(t, m, 1)
	if got := m.game.Snapshot().VelocityY; got != -7 {
		t.Errorf("velocity = %d, expected -7", got)
	}
}

func TestModelSavesRunOncePerGameOver(t *testing.T) {
	runs := &fakeRuns{}
	sound := &fakeSound{}
	m := newTestModel(t, runs, sound)

	m = tick(t, m, 40)
	if !m.State().GameOver {
		t.Fatal("expected the bird to fall out of the board")
	}
	if len(runs.runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs.runs))
	}
	run := runs.runs[0]
	if run.EndReason != string(flappy.EndOutOfBounds) || run.Ticks != 25 || run.Score != 0 {
		t.Errorf("unexpected run %+v", run)
	}
	if sound.count(audio.EffectCrash) != 1 {
		t.Errorf("expected one crash sound, got %v", sound.played)
	}

	// Restart and lose again
	m = update(t, m, spaceKey())
	m = tick(t, m, 1)
	if m.State().GameOver {
		t.Fatal("expected jump to restart the game")
	}
	m = tick(t, m, 40)
	if len(runs.runs) != 2 {
		t.Errorf("expected 2 saved runs after second game over, got %d", len(runs.runs))
	}
}

func TestModelSurvivesSaveErrors(t *testing.T) {
	runs := &fakeRuns{err: errors.New("disk full")}
	m := newTestModel(t, runs, nil)

	m = tick(t, m, 40)
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("expected game over screen despite save error")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, nil, nil)

	m = update(t, m, keyRune('p'))
	m = tick(t, m, 10)
	if !m.State().Paused {
		t.Fatal("expected paused state")
	}
	if got := m.game.Snapshot().Tick; got != 0 {
		t.Errorf("paused game ticked %d times", got)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected pause message")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = tick(t, m, 5)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := m.game.Snapshot().Tick; got != 5 {
		t.Errorf("resize reset the run, tick = %d", got)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil, nil)

	next, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t, nil, nil)
	if m.help.ShowAll {
		t.Fatal("help should start collapsed")
	}
	m = update(t, m, keyRune('?'))
	if !m.help.ShowAll {
		t.Error("expected ? to expand help")
	}
	if !strings.Contains(m.View(), "screenshot") {
		t.Error("full help should list the screenshot key")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(2, 0, '#', core.ColorGreen)
	s.DrawText(0, 1, "cd")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "#") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "cd") {
		t.Errorf("second line = %q", lines[1])
	}
}
