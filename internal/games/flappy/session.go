package flappy

import (
	"time"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason explains why a run ended.
type EndReason string

const (
	EndNone        EndReason = ""
	EndCollision   EndReason = "collision"
	EndOutOfBounds EndReason = "out_of_bounds"
)

// Recorder receives every new high score as soon as it is reached.
// Implementations must not block; the simulation never sees their errors.
type Recorder interface {
	Record(highScore int)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(highScore int)

// Record calls f.
func (f RecorderFunc) Record(highScore int) { f(highScore) }

// TickResult describes what happened during one tick.
type TickResult struct {
	PipesPassed  int  // Pipes cleared this tick
	Ended        bool // The run ended this tick
	NewHighScore bool
}

// Session is the complete mutable game state: bird, pipes, score and lifecycle.
// It is driven from a single goroutine.
type Session struct {
	params   Params
	spawner  *Spawner
	recorder Recorder

	bird      Bird
	velocityY int
	pipes     []Pipe

	score       float64
	highScore   int
	phase       Phase
	endReason   EndReason
	sinceSpawn  time.Duration
	ticks       uint64
	pipesPassed int
	pairs       int
}

// NewSession starts a running session. highScore is the persisted best;
// rec may be nil.
func NewSession(p Params, rng RandomSource, highScore int, rec Recorder) *Session {
	if highScore < 0 {
		highScore = 0
	}
	s := &Session{
		params:    p,
		spawner:   NewSpawner(p, rng),
		recorder:  rec,
		highScore: highScore,
	}
	s.Restart()
	return s
}

// Restart returns the session to its initial running state.
// The high score survives.
func (s *Session) Restart() {
	s.bird = newBird(s.params)
	s.velocityY = 0
	s.pipes = s.pipes[:0]
	s.score = 0
	s.phase = PhaseRunning
	s.endReason = EndNone
	s.sinceSpawn = 0
	s.ticks = 0
	s.pipesPassed = 0
	s.pairs = 0
}

// Jump is the only player control. While running it sets the vertical
// velocity to the jump impulse, replacing whatever velocity had accumulated.
// After game over it restarts the session and reports true.
func (s *Session) Jump() (restarted bool) {
	if s.phase == PhaseGameOver {
		s.Restart()
		return true
	}
	s.velocityY = -s.params.JumpImpulse
	return false
}

// Tick advances the simulation by one fixed step. It does nothing once the
// game is over.
func (s *Session) Tick() TickResult {
	var res TickResult
	if s.phase != PhaseRunning {
		return res
	}
	s.ticks++

	s.velocityY += s.params.Gravity
	s.bird.Y += s.velocityY
	s.bird.Y = max(s.bird.Y, 0)

	for i := range s.pipes {
		pipe := &s.pipes[i]
		pipe.X -= s.params.PipeSpeed

		if !pipe.Passed && s.bird.X > pipe.X+pipe.Width {
			pipe.Passed = true
			s.score += ScorePerPipe
			s.pipesPassed++
			res.PipesPassed++
		}

		if Collides(s.bird, *pipe) {
			s.end(EndCollision)
		}
	}

	if s.bird.Y > s.params.BoardHeight {
		s.end(EndOutOfBounds)
	}

	// Compare on whole points, the way the score is displayed.
	if whole := int(s.score); whole > s.highScore {
		s.highScore = whole
		res.NewHighScore = true
		if s.recorder != nil {
			s.recorder.Record(whole)
		}
	}

	if s.params.PruneOffscreen {
		s.prune()
	}

	res.Ended = s.phase == PhaseGameOver
	return res
}

// end records the first reason the run ended.
func (s *Session) end(reason EndReason) {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.endReason = reason
}

func (s *Session) prune() {
	kept := s.pipes[:0]
	for _, p := range s.pipes {
		if p.X+p.Width > 0 {
			kept = append(kept, p)
		}
	}
	s.pipes = kept
}

// MaybeSpawn advances the spawn clock by elapsed and appends one pipe pair
// for every full spawn period that has passed. It returns the number of
// pairs spawned. Nothing spawns once the game is over.
func (s *Session) MaybeSpawn(elapsed time.Duration) int {
	if s.phase != PhaseRunning || elapsed <= 0 {
		return 0
	}
	s.sinceSpawn += elapsed
	n := 0
	for s.sinceSpawn >= s.params.SpawnPeriod {
		s.sinceSpawn -= s.params.SpawnPeriod
		s.Spawn()
		n++
	}
	return n
}

// UntilSpawn returns the simulated time left before the next pair spawns.
func (s *Session) UntilSpawn() time.Duration {
	return s.params.SpawnPeriod - s.sinceSpawn
}

// Spawn appends a randomly placed pipe pair immediately.
func (s *Session) Spawn() {
	top, bottom := s.spawner.Next()
	s.pipes = append(s.pipes, top, bottom)
	s.pairs++
}

// Params returns the session's simulation parameters.
func (s *Session) Params() Params { return s.params }

// Bird returns a copy of the bird.
func (s *Session) Bird() Bird { return s.bird }

// VelocityY returns the bird's vertical velocity; positive is down.
func (s *Session) VelocityY() int { return s.velocityY }

// Pipes returns a copy of the active pipes in spawn order.
func (s *Session) Pipes() []Pipe {
	out := make([]Pipe, len(s.pipes))
	copy(out, s.pipes)
	return out
}

// Score returns the fractional score.
func (s *Session) Score() float64 { return s.score }

// HighScore returns the best whole score seen, including the persisted one.
func (s *Session) HighScore() int { return s.highScore }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// GameOver reports whether the run has ended.
func (s *Session) GameOver() bool { return s.phase == PhaseGameOver }

// EndReason returns why the run ended, or EndNone while running.
func (s *Session) EndReason() EndReason { return s.endReason }

// Ticks returns the number of ticks simulated since the last restart.
func (s *Session) Ticks() uint64 { return s.ticks }
