package flappy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/assets"
)

// fixedRand always returns the same value.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

type recordLog []int

func (r *recordLog) Record(v int) { *r = append(*r, v) }

func newTestSession(t *testing.T, highScore int) (*Session, *recordLog) {
	t.Helper()
	rec := &recordLog{}
	return NewSession(DefaultParams(), fixedRand(0.5), highScore, rec), rec
}

func TestNewSessionInitialState(t *testing.T) {
	s, _ := newTestSession(t, 7)

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, Bird{X: 45, Y: 320, Width: 34, Height: 24, Sprite: assets.Bird}, s.Bird())
	assert.Zero(t, s.VelocityY())
	assert.Empty(t, s.Pipes())
	assert.Zero(t, s.Score())
	assert.Equal(t, 7, s.HighScore())
	assert.Equal(t, EndNone, s.EndReason())
}

func TestGravityAccumulation(t *testing.T) {
	s, _ := newTestSession(t, 0)

	for n := 1; n <= 5; n++ {
		s.Tick()
		assert.Equal(t, n, s.VelocityY(), "velocity after %d ticks", n)
		assert.Equal(t, 320+n*(n+1)/2, s.Bird().Y, "y after %d ticks", n)
	}
	assert.Equal(t, 335, s.Bird().Y)

	// A jump replaces the accumulated velocity instead of adding to it.
	restarted := s.Jump()
	assert.False(t, restarted)
	assert.Equal(t, -9, s.VelocityY())

	s.Tick()
	assert.Equal(t, -8, s.VelocityY())
	assert.Equal(t, 327, s.Bird().Y)
}

func TestBirdClampedAtTop(t *testing.T) {
	s, _ := newTestSession(t, 0)

	for i := 0; i < 200; i++ {
		s.Jump()
		s.Tick()
		require.GreaterOrEqual(t, s.Bird().Y, 0, "tick %d", i)
	}
	assert.Zero(t, s.Bird().Y)
	assert.False(t, s.GameOver(), "touching the top is not a game over")
}

func TestOutOfBounds(t *testing.T) {
	s, _ := newTestSession(t, 0)

	for i := 0; i < 24; i++ {
		res := s.Tick()
		require.False(t, res.Ended, "tick %d", i+1)
	}
	assert.Equal(t, 620, s.Bird().Y)

	res := s.Tick()
	assert.True(t, res.Ended)
	assert.Equal(t, 645, s.Bird().Y)
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, EndOutOfBounds, s.EndReason())
}

func TestTickIsNoOpAfterGameOver(t *testing.T) {
	s, _ := newTestSession(t, 0)
	for !s.GameOver() {
		s.Tick()
	}
	before := s.Snapshot()

	res := s.Tick()
	assert.Equal(t, TickResult{}, res)
	assert.Equal(t, before, s.Snapshot())
	assert.Zero(t, s.MaybeSpawn(time.Hour))
}

func TestCollisionEndsRun(t *testing.T) {
	s, _ := newTestSession(t, 0)

	// Top pipe reaching down to y=330, directly in front of the bird.
	top, bottom := s.spawner.PairAt(330 - 512)
	top.X, bottom.X = 60, 60
	s.pipes = append(s.pipes, top, bottom)

	res := s.Tick()
	assert.True(t, res.Ended)
	assert.Equal(t, EndCollision, s.EndReason())
}

func TestCollisionStrictEdges(t *testing.T) {
	bird := Bird{X: 45, Y: 320, Width: 34, Height: 24}
	tests := []struct {
		name string
		pipe Pipe
		want bool
	}{
		{"pipe touching bird's right edge", Pipe{X: 79, Y: 0, Width: 64, Height: 640}, false},
		{"pipe one unit into right edge", Pipe{X: 78, Y: 0, Width: 64, Height: 640}, true},
		{"pipe ending at bird's left edge", Pipe{X: -19, Y: 0, Width: 64, Height: 640}, false},
		{"pipe bottom touching bird top", Pipe{X: 40, Y: 320 - 512, Width: 64, Height: 512}, false},
		{"pipe top touching bird bottom", Pipe{X: 40, Y: 344, Width: 64, Height: 512}, false},
		{"pipe top one unit above bird bottom", Pipe{X: 40, Y: 343, Width: 64, Height: 512}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Collides(bird, tc.pipe))

			b, p := bird.Rect(), tc.pipe.Rect()
			byCoords := b.X < p.X+p.W && b.X+b.W > p.X && b.Y < p.Y+p.H && b.Y+b.H > p.Y
			assert.Equal(t, byCoords, Collides(bird, tc.pipe))
		})
	}
}

func TestScoringHalfPointPerPipe(t *testing.T) {
	s, rec := newTestSession(t, 0)

	// A pair whose trailing edge is already behind the bird after one tick.
	top, bottom := s.spawner.PairAt(-200)
	top.X, bottom.X = -20, -20
	s.pipes = append(s.pipes, top, bottom)

	res := s.Tick()
	assert.Equal(t, 2, res.PipesPassed)
	assert.Equal(t, 1.0, s.Score())
	assert.True(t, res.NewHighScore)
	assert.Equal(t, 1, s.HighScore())
	assert.Equal(t, recordLog{1}, *rec)

	// Passed pipes are not counted twice.
	res = s.Tick()
	assert.Zero(t, res.PipesPassed)
	assert.Equal(t, 1.0, s.Score())
	assert.Equal(t, recordLog{1}, *rec)
}

func TestHighScoreComparesWholePoints(t *testing.T) {
	s, rec := newTestSession(t, 0)

	pipe := Pipe{X: -20, Y: -400, Width: 64, Height: 10, Sprite: assets.TopPipe}
	s.pipes = append(s.pipes, pipe)

	res := s.Tick()
	assert.Equal(t, 0.5, s.Score())
	assert.False(t, res.NewHighScore, "half a point does not beat a high score of 0")
	assert.Zero(t, s.HighScore())
	assert.Empty(t, *rec)
}

func TestRecorderOnlyOnNewRecord(t *testing.T) {
	s, rec := newTestSession(t, 1)

	for i := 0; i < 2; i++ {
		top, bottom := s.spawner.PairAt(-200)
		top.X, bottom.X = -20, -20
		s.pipes = append(s.pipes, top, bottom)
		s.Tick()
	}
	assert.Equal(t, 2.0, s.Score())
	assert.Equal(t, recordLog{2}, *rec)
}

func TestRestartResetsExactly(t *testing.T) {
	s, _ := newTestSession(t, 0)

	top, bottom := s.spawner.PairAt(-200)
	top.X, bottom.X = -20, -20
	s.pipes = append(s.pipes, top, bottom)
	s.Spawn()
	for !s.GameOver() {
		s.Tick()
	}
	require.Equal(t, 1, s.HighScore())

	restarted := s.Jump()
	require.True(t, restarted)

	fresh, _ := newTestSession(t, 1)
	assert.Equal(t, fresh.Snapshot(), s.Snapshot())
	assert.Zero(t, s.VelocityY(), "restart clears velocity instead of jumping")
	assert.Equal(t, 1, s.HighScore())
}

func TestMaybeSpawn(t *testing.T) {
	s, _ := newTestSession(t, 0)

	assert.Zero(t, s.MaybeSpawn(1499*time.Millisecond))
	assert.Empty(t, s.Pipes())
	assert.Equal(t, time.Millisecond, s.UntilSpawn())

	assert.Equal(t, 1, s.MaybeSpawn(time.Millisecond))
	pipes := s.Pipes()
	require.Len(t, pipes, 2)
	assert.Equal(t, assets.TopPipe, pipes[0].Sprite)
	assert.Equal(t, assets.BottomPipe, pipes[1].Sprite)
	assert.Equal(t, 360, pipes[0].X)
	assert.False(t, pipes[0].Passed)

	assert.Equal(t, 2, s.MaybeSpawn(3*time.Second))
	assert.Len(t, s.Pipes(), 6)
}

func TestPipesAccumulateWithoutPruning(t *testing.T) {
	p := DefaultParams()
	s := NewSession(p, fixedRand(0.5), 0, nil)

	top, bottom := s.spawner.PairAt(-200)
	top.X, bottom.X = -20, -20
	s.pipes = append(s.pipes, top, bottom)

	for i := 0; i < 20; i++ {
		s.Jump()
		s.Tick()
	}
	require.False(t, s.GameOver())

	// The pair has scrolled off the left edge but is still tracked.
	require.Len(t, s.Pipes(), 2)
	assert.Less(t, s.Pipes()[0].X+p.PipeWidth, 0)
}

func TestPruneOffscreen(t *testing.T) {
	p := DefaultParams()
	p.PruneOffscreen = true
	s := NewSession(p, fixedRand(0.5), 0, nil)

	s.pipes = append(s.pipes,
		Pipe{X: -60, Y: -400, Width: 64, Height: 10, Sprite: assets.TopPipe},
		Pipe{X: 200, Y: -400, Width: 64, Height: 10, Sprite: assets.TopPipe},
	)
	s.Tick()

	pipes := s.Pipes()
	require.Len(t, pipes, 1)
	assert.Equal(t, 196, pipes[0].X)
	assert.Equal(t, 0.5, s.Score(), "a pruned pipe was already scored")
}

func TestPipesReturnsCopy(t *testing.T) {
	s, _ := newTestSession(t, 0)
	s.Spawn()

	pipes := s.Pipes()
	pipes[0].X = -1000
	assert.Equal(t, 360, s.Pipes()[0].X)
}

func TestScoreMonotonic(t *testing.T) {
	p := DefaultParams()
	s := NewSession(p, rand.New(rand.NewSource(99)), 0, nil)
	sc := NewScheduler(p.TickPeriod)

	prevScore := 0.0
	prevPassed := 0
	for frame := 0; frame < 3000 && !s.GameOver(); frame++ {
		if shouldFlap(s) {
			s.Jump()
		}
		sc.Advance(s, p.TickPeriod)

		snap := s.Snapshot()
		require.GreaterOrEqual(t, snap.Score, prevScore)
		delta := snap.Score - prevScore
		require.Equal(t, float64(snap.PipesPassed-prevPassed)*ScorePerPipe, delta)

		passed := 0
		for _, pipe := range snap.Pipes {
			if pipe.Passed {
				passed++
			}
		}
		require.Equal(t, snap.PipesPassed, passed)

		prevScore, prevPassed = snap.Score, snap.PipesPassed
	}
}

// shouldFlap is a simple autopilot aiming for the middle of the next opening.
func shouldFlap(s *Session) bool {
	target := s.Params().BoardHeight / 2
	bird := s.Bird()
	for _, p := range s.Pipes() {
		if p.Sprite == assets.BottomPipe && p.X+p.Width >= bird.X {
			target = p.Y - s.Params().OpeningSpace/2
			break
		}
	}
	return bird.Y+bird.Height/2 > target && s.VelocityY() >= 0
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "game_over", PhaseGameOver.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
