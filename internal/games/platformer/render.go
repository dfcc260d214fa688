package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Visual characters for rendering
const (
	HealthFull  = '━'
	HealthEmpty = '─'
)

// hudRows is the number of screen rows reserved above the play field.
const hudRows = 1

// Minimum screen size for a readable play field.
const (
	minScreenW = 30
	minScreenH = 12
)

// viewport maps world units to screen cells.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(worldW, worldH float64, screenW, screenH int) viewport {
	return viewport{
		sx:  float64(screenW) / worldW,
		sy:  float64(screenH-hudRows) / worldH,
		top: hudRows,
	}
}

// cells returns the screen rectangle covering r. Every non-empty world
// rectangle covers at least one cell.
func (v viewport) cells(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.Left() * v.sx))
	x1 := int(math.Ceil(r.Right() * v.sx))
	y0 := int(math.Floor(r.Top() * v.sy))
	y1 := int(math.Ceil(r.Bottom() * v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0+v.top, x1-x0, y1-y0)
}

// Render draws the current snapshot to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Screen too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	snap := g.Snapshot()
	view := newViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())

	for _, cmd := range snap.Commands {
		s, err := g.catalog.Resolve(cmd.Sprite)
		if err != nil {
			continue
		}
		dst.DrawRectColored(view.cells(cmd.Rect), s.Glyph, s.Color)
	}

	g.renderHealthBar(dst, view, snap.Health)
	g.renderHUD(dst, snap)
	g.renderOverlay(dst, snap)
}

// renderHealthBar draws the bar on the row above the player.
func (g *Game) renderHealthBar(dst *core.Screen, view viewport, bar HealthBar) {
	r := view.cells(bar.Frame)
	r.Y = view.cells(g.player.Body.Rect).Y - 1
	filled := core.Min(int(math.Round(bar.Ratio*float64(r.W))), r.W)

	color := core.ColorGreen
	switch {
	case bar.Ratio <= 0.25:
		color = core.ColorRed
	case bar.Ratio <= 0.5:
		color = core.ColorYellow
	}

	for i := 0; i < r.W; i++ {
		if i < filled {
			dst.SetColored(r.X+i, r.Y, HealthFull, color)
		} else {
			dst.SetColored(r.X+i, r.Y, HealthEmpty, core.ColorGray)
		}
	}
}

// renderHUD draws score, health and tick on the top row.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawHLine(0, 0, dst.Width(), ' ')

	score := fmt.Sprintf("Score: %d/%d", snap.Score, snap.Total)
	dst.DrawTextColored(1, 0, score, core.ColorBrightYellow)

	health := fmt.Sprintf("HP: %3.0f%%", snap.Health.Ratio*100)
	dst.DrawTextColored(len(score)+4, 0, health, core.ColorBrightGreen)

	tick := fmt.Sprintf("Tick %d", snap.Tick)
	dst.DrawText(dst.Width()-len(tick)-1, 0, tick)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, snap Snapshot) {
	switch {
	case snap.GameOver:
		subtitle := fmt.Sprintf("Score: %d  |  R restart  Q quit", snap.Score)
		drawCenteredBox(dst, "GAME OVER", subtitle)
	case snap.Won:
		subtitle := fmt.Sprintf("All %d collected  |  R restart  Q quit", snap.Total)
		drawCenteredBox(dst, "YOU WIN!", subtitle)
	case snap.Paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Clamp(core.Max(len([]rune(title)), len([]rune(subtitle)))+4, 0, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
