package flappy

import (
	"errors"
	"fmt"
	"time"
)

// ScorePerPipe is awarded for every pipe the bird clears. Pipes come in
// top/bottom pairs at the same x, so one cleared pair is worth one point.
const ScorePerPipe = 0.5

// Params holds every simulation constant. A Params value is fixed for the
// lifetime of a session; the step functions read it and never change it.
type Params struct {
	BoardWidth  int
	BoardHeight int

	BirdX      int // Fixed horizontal position of the bird
	BirdY      int // Spawn height of the bird
	BirdWidth  int
	BirdHeight int

	PipeX        int // Spawn x of new pipes (right edge of the board)
	PipeBaseY    int // Nominal top-of-screen anchor for top pipes
	PipeWidth    int
	PipeHeight   int
	OpeningSpace int // Vertical gap between a top and bottom pipe

	Gravity     int // Added to the bird's vertical velocity every tick
	PipeSpeed   int // Pipes move left by this many units per tick
	JumpImpulse int // A jump sets vertical velocity to -JumpImpulse

	TickPeriod  time.Duration
	SpawnPeriod time.Duration

	// PruneOffscreen drops pipes once they have scrolled past the left edge.
	// Off by default: pipes accumulate for the whole session.
	PruneOffscreen bool
}

// DefaultParams returns the classic 360x640 board.
func DefaultParams() Params {
	const (
		boardW = 360
		boardH = 640
	)
	return Params{
		BoardWidth:   boardW,
		BoardHeight:  boardH,
		BirdX:        boardW / 8,
		BirdY:        boardH / 2,
		BirdWidth:    34,
		BirdHeight:   24,
		PipeX:        boardW,
		PipeBaseY:    0,
		PipeWidth:    64,
		PipeHeight:   512,
		OpeningSpace: boardH / 4,
		Gravity:      1,
		PipeSpeed:    4,
		JumpImpulse:  9,
		TickPeriod:   time.Second / 60,
		SpawnPeriod:  1500 * time.Millisecond,
	}
}

// Validate rejects sizes and periods the simulation cannot run with.
func (p Params) Validate() error {
	var errs []error
	positive := []struct {
		name string
		v    int
	}{
		{"board width", p.BoardWidth},
		{"board height", p.BoardHeight},
		{"bird width", p.BirdWidth},
		{"bird height", p.BirdHeight},
		{"pipe width", p.PipeWidth},
		{"pipe height", p.PipeHeight},
	}
	for _, f := range positive {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", f.name, f.v))
		}
	}
	if p.OpeningSpace < 0 {
		errs = append(errs, fmt.Errorf("opening space must not be negative, got %d", p.OpeningSpace))
	}
	if p.TickPeriod <= 0 {
		errs = append(errs, fmt.Errorf("tick period must be positive, got %s", p.TickPeriod))
	}
	if p.SpawnPeriod <= 0 {
		errs = append(errs, fmt.Errorf("spawn period must be positive, got %s", p.SpawnPeriod))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("flappy: invalid params: %w", err)
	}
	return nil
}
