package flappy

// Snapshot is a read-only copy of a session for render adapters, tests and
// run history.
type Snapshot struct {
	Tick         uint64
	Phase        Phase
	Bird         Bird
	VelocityY    int
	Pipes        []Pipe
	Score        float64
	DisplayScore int // Score truncated to whole points
	HighScore    int
	GameOver     bool
	EndReason    EndReason
	PairsSpawned int
	PipesPassed  int
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:         s.ticks,
		Phase:        s.phase,
		Bird:         s.bird,
		VelocityY:    s.velocityY,
		Pipes:        s.Pipes(),
		Score:        s.score,
		DisplayScore: int(s.score),
		HighScore:    s.highScore,
		GameOver:     s.phase == PhaseGameOver,
		EndReason:    s.endReason,
		PairsSpawned: s.pairs,
		PipesPassed:  s.pipesPassed,
	}
}
