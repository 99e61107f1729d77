package flappy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, highScore int) *Game {
	t.Helper()
	sheet, err := assets.Default()
	require.NoError(t, err)
	return New(DefaultParams(), sheet, highScore, nil)
}

func jumpFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func pauseFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	return in
}

func TestGameDeterminism(t *testing.T) {
	// Jump every 15 frames to stay airborne for a while
	inputSequence := make([]core.InputFrame, 400)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputSequence[i].Set(core.ActionJump)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, 0)
		g.Reset(testConfig(12345))
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	assert.Equal(t, snap1, snap2)
	assert.NotZero(t, snap1.PairsSpawned, "expected at least one pipe pair to spawn")
}

func TestGameOneTickPerFrame(t *testing.T) {
	g := newTestGame(t, 0)
	g.Reset(testConfig(1))

	res := g.Step(core.NewInputFrame())
	assert.Equal(t, 1, res.Ticks, "one tick per frame at 60 frames per second")
	assert.Equal(t, 321, g.Snapshot().Bird.Y)
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, 4)
	g.Reset(testConfig(42))

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}

	g.Reset(testConfig(42))
	snap := g.Snapshot()
	assert.Zero(t, snap.Tick)
	assert.Zero(t, snap.Score)
	assert.False(t, snap.GameOver)
	assert.Equal(t, 4, snap.HighScore, "high score survives reset")
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 0)
	g.Reset(testConfig(1))

	res := g.Step(pauseFrame())
	require.True(t, res.State.Paused)

	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		require.Zero(t, g.Step(core.NewInputFrame()).Ticks, "paused game ticked")
	}
	assert.Equal(t, before, g.Snapshot(), "paused game changed state")

	res = g.Step(pauseFrame())
	assert.False(t, res.State.Paused, "second pause resumes")
	assert.Equal(t, 1, res.Ticks)
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, 3)
	g.Reset(testConfig(7))

	var ended bool
	for i := 0; i < 100 && !ended; i++ {
		ended = g.Step(core.NewInputFrame()).Ended
	}
	require.True(t, ended, "expected the bird to fall out of the board")
	assert.Equal(t, EndOutOfBounds, g.Snapshot().EndReason)

	// Pause is ignored once the run is over
	assert.False(t, g.Step(pauseFrame()).State.Paused)

	res := g.Step(jumpFrame())
	require.True(t, res.Restarted)
	assert.False(t, res.Flapped, "restart jump does not also flap")
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 3, res.State.HighScore)

	snap := g.Snapshot()
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, 321, snap.Bird.Y)
	assert.Equal(t, 1, snap.VelocityY)
}

func TestGameFlap(t *testing.T) {
	g := newTestGame(t, 0)
	g.Reset(testConfig(1))

	res := g.Step(jumpFrame())
	assert.True(t, res.Flapped)
	assert.Equal(t, -8, g.Snapshot().VelocityY)
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 12)
	g.Reset(testConfig(1))

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	assert.Equal(t, '●', scr.Get(32, 12), "bird cell")
	assert.Equal(t, core.ColorBrightYellow, scr.GetCell(32, 12).Color)
	assert.Equal(t, GroundChar, scr.Get(40, 23), "ground cell")
	assert.Equal(t, BorderChar, scr.Get(27, 5), "left border")

	hud := strings.Split(scr.String(), "\n")[0]
	assert.Contains(t, hud, "Score: 0  Best: 12")
}

func TestGameRenderPipes(t *testing.T) {
	g := newTestGame(t, 0)
	g.Reset(testConfig(1))
	top, bottom := g.session.spawner.PairAt(-256)
	top.X, bottom.X = 180, 180
	g.session.pipes = append(g.session.pipes, top, bottom)

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	// x 180..244 maps to cells 40..44; top pipe covers rows 1..9, bottom 15..22
	assert.Equal(t, '█', scr.Get(41, 2), "top pipe body")
	assert.Equal(t, '▀', scr.Get(41, 9), "top pipe cap")
	assert.Equal(t, '▄', scr.Get(41, 15), "bottom pipe cap")
	assert.Equal(t, ' ', scr.Get(41, 12), "opening")
}

func TestGameRenderGameOver(t *testing.T) {
	g := newTestGame(t, 0)
	g.Reset(testConfig(1))
	for i := 0; i < 100 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()
	assert.Contains(t, out, "GAME OVER: 0")
	assert.Contains(t, out, "Press Space to restart")
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t, 0)
	g.Reset(testConfig(1))
	g.session.Spawn()

	snap := g.Snapshot()
	snap.Pipes[0].X = -1000
	assert.NotEqual(t, -1000, g.Snapshot().Pipes[0].X, "mutating a snapshot changed the session")
}

func TestGameResize(t *testing.T) {
	g := newTestGame(t, 0)
	g.Reset(testConfig(1))
	before := g.Snapshot()

	g.Resize(120, 40)
	assert.Equal(t, before, g.Snapshot(), "resize does not touch the simulation")
}
