package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for the frame around the board.
const (
	BorderChar = '│'
	GroundChar = '═'
)

// viewport maps board units onto a block of terminal cells.
type viewport struct {
	x, y, w, h     int // Cell rectangle on the screen
	boardW, boardH int
}

// newViewport fits the board below the HUD row, keeping its aspect ratio
// with terminal cells about twice as tall as they are wide.
func newViewport(screenW, screenH, boardW, boardH int) viewport {
	h := max(screenH-2, 1) // HUD row on top, ground row at the bottom
	w := min(screenW-2, h*boardW*2/boardH)
	w = max(w, 1)
	return viewport{
		x:      (screenW - w) / 2,
		y:      1,
		w:      w,
		h:      h,
		boardW: boardW,
		boardH: boardH,
	}
}

// cells converts a board rectangle to the cells it covers, clipped to the view.
func (v viewport) cells(r core.Rect) core.Rect {
	x0 := v.x + floorDiv(r.X*v.w, v.boardW)
	x1 := v.x + ceilDiv(r.Right()*v.w, v.boardW)
	y0 := v.y + floorDiv(r.Y*v.h, v.boardH)
	y1 := v.y + ceilDiv(r.Bottom()*v.h, v.boardH)

	x0 = core.Clamp(x0, v.x, v.x+v.w)
	x1 = core.Clamp(x1, v.x, v.x+v.w)
	y0 = core.Clamp(y0, v.y, v.y+v.h)
	y1 = core.Clamp(y1, v.y, v.y+v.h)
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.sheet, g.params, g.Snapshot(), g.paused)
}

// RenderSnapshot draws a snapshot into a terminal screen buffer.
func RenderSnapshot(dst *core.Screen, sheet *assets.Sheet, p Params, snap Snapshot, paused bool) {
	dst.Clear()
	v := newViewport(dst.Width(), dst.Height(), p.BoardWidth, p.BoardHeight)

	bg := sheet.Sprite(assets.Background)
	dst.FillRect(core.NewRect(v.x, v.y, v.w, v.h), bg.Rune, bg.Color)
	for y := v.y; y < v.y+v.h; y++ {
		dst.SetColor(v.x-1, y, BorderChar, core.ColorGray)
		dst.SetColor(v.x+v.w, y, BorderChar, core.ColorGray)
	}
	dst.DrawHLine(v.x-1, v.y+v.h, v.w+2, GroundChar, core.ColorGray)

	for _, pipe := range snap.Pipes {
		drawPipe(dst, v, sheet, pipe)
	}

	bird := sheet.Sprite(snap.Bird.Sprite)
	birdCells := v.cells(snap.Bird.Rect())
	if birdCells.W > 0 && birdCells.H > 0 {
		dst.FillRect(birdCells, bird.Rune, bird.Color)
	}

	hud := fmt.Sprintf(" Score: %d  Best: %d ", snap.DisplayScore, snap.HighScore)
	dst.DrawTextColor(max(v.x, 0), 0, hud, core.ColorBrightWhite)

	if paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if snap.GameOver {
		drawCenteredMessage(dst, fmt.Sprintf("GAME OVER: %d", snap.DisplayScore), "Press Space to restart")
	}
}

// drawPipe renders a single pipe, with its cap on the edge facing the opening.
func drawPipe(dst *core.Screen, v viewport, sheet *assets.Sheet, p Pipe) {
	r := v.cells(p.Rect())
	if r.W <= 0 || r.H <= 0 {
		return
	}
	sp := sheet.Sprite(p.Sprite)
	dst.FillRect(r, sp.Rune, sp.Color)

	capY := r.Y
	if p.Sprite == assets.TopPipe {
		capY = r.Bottom() - 1
	}
	dst.DrawHLine(r.X, capY, r.W, sp.Cap, sp.Color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
