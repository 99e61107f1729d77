package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/assets"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Spawner places pipe pairs at the right edge of the board.
type Spawner struct {
	params Params
	rng    RandomSource
}

// NewSpawner creates a spawner drawing gap positions from rng.
func NewSpawner(p Params, rng RandomSource) *Spawner {
	return &Spawner{params: p, rng: rng}
}

// TopY picks a random top-pipe y so that the opening lands in a band around
// the middle of the board: baseY - h/4 - U(0,1)*(h/2), truncated toward zero.
func (s *Spawner) TopY() int {
	h := s.params.PipeHeight
	return int(float64(s.params.PipeBaseY) - float64(h/4) - s.rng.Float64()*float64(h/2))
}

// PairAt builds a top/bottom pair whose top pipe starts at topY.
func (s *Spawner) PairAt(topY int) (top, bottom Pipe) {
	p := s.params
	top = Pipe{
		X:      p.PipeX,
		Y:      topY,
		Width:  p.PipeWidth,
		Height: p.PipeHeight,
		Sprite: assets.TopPipe,
	}
	bottom = Pipe{
		X:      p.PipeX,
		Y:      topY + p.PipeHeight + p.OpeningSpace,
		Width:  p.PipeWidth,
		Height: p.PipeHeight,
		Sprite: assets.BottomPipe,
	}
	return top, bottom
}

// Next returns a randomly placed pair.
func (s *Spawner) Next() (top, bottom Pipe) {
	return s.PairAt(s.TopY())
}
