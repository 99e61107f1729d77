package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player. X never changes after spawn; the world scrolls instead.
type Bird struct {
	X, Y          int
	Width, Height int
	Sprite        assets.Handle
}

// Rect returns the bird's bounding box.
func (b Bird) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

func newBird(p Params) Bird {
	return Bird{
		X:      p.BirdX,
		Y:      p.BirdY,
		Width:  p.BirdWidth,
		Height: p.BirdHeight,
		Sprite: assets.Bird,
	}
}

// Pipe is one half of an obstacle pair.
type Pipe struct {
	X, Y          int
	Width, Height int
	Sprite        assets.Handle // assets.TopPipe or assets.BottomPipe
	Passed        bool          // Set once the bird clears the trailing edge
}

// Rect returns the pipe's bounding box.
func (p Pipe) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Collides reports whether the bird overlaps the pipe.
// Touching edges do not collide.
func Collides(b Bird, p Pipe) bool {
	return b.Rect().Intersects(p.Rect())
}
