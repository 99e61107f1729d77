package flappy

import "time"

// Report summarizes one call to Scheduler.Advance.
type Report struct {
	Ticks        int
	Spawned      int // Pipe pairs spawned
	PipesPassed  int
	Ended        bool
	NewHighScore bool
}

// Scheduler replaces the two wall-clock timers of the classic game with one
// deterministic clock. Given an amount of simulated time it fires the
// simulation tick and the pipe spawner in time order, so the same elapsed
// sequence always produces the same session.
type Scheduler struct {
	tickPeriod time.Duration
	sinceTick  time.Duration
}

// NewScheduler creates a scheduler firing a tick every tickPeriod.
func NewScheduler(tickPeriod time.Duration) *Scheduler {
	return &Scheduler{tickPeriod: tickPeriod}
}

// Reset restarts the tick clock, as when both timers are restarted.
func (sc *Scheduler) Reset() {
	sc.sinceTick = 0
}

// Advance runs the session forward by elapsed simulated time. When a tick ends
// the run, both timers stop and the rest of elapsed is discarded. A spawn and
// a tick due at the same instant fire spawn first.
func (sc *Scheduler) Advance(s *Session, elapsed time.Duration) Report {
	var rep Report
	for elapsed > 0 && !s.GameOver() {
		step := min(elapsed, sc.tickPeriod-sc.sinceTick, s.UntilSpawn())
		elapsed -= step
		sc.sinceTick += step

		rep.Spawned += s.MaybeSpawn(step)

		if sc.sinceTick >= sc.tickPeriod {
			sc.sinceTick -= sc.tickPeriod
			res := s.Tick()
			rep.Ticks++
			rep.PipesPassed += res.PipesPassed
			rep.NewHighScore = rep.NewHighScore || res.NewHighScore
			if res.Ended {
				rep.Ended = true
				sc.sinceTick = 0
			}
		}
	}
	return rep
}
