package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellWidth  = 2  // Screen columns per grid column
	panelWidth = 16 // Info panel to the right of the board
	panelGap   = 2
	hudHeight  = 1 // Title line above the board
)

// layout positions the board and panel on the screen.
type layout struct {
	fits   bool
	boardX int
	boardY int
	boardW int // Including borders
	boardH int // Including borders
	panelX int
	minW   int
	minH   int
}

func computeLayout(cfg config.TetrisConfig, screenW, screenH int) layout {
	visible := cfg.Board.Height - cfg.Board.SpawnRows
	l := layout{
		boardW: cfg.Board.Width*cellWidth + 2,
		boardH: visible + 2,
	}
	l.minW = l.boardW + panelGap + panelWidth
	l.minH = l.boardH + hudHeight
	l.fits = screenW >= l.minW && screenH >= l.minH

	l.boardX = max((screenW-l.minW)/2, 0)
	l.boardY = hudHeight + max((screenH-l.minH)/2, 0)
	l.panelX = l.boardX + l.boardW + panelGap
	return l
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	dst.DrawColorText(g.layout.boardX, g.layout.boardY-1, "TETRIS", core.ColorBrightWhite)
	g.renderBoard(dst, snap)
	g.renderPanel(dst, snap)
	g.renderOverlays(dst, snap)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d",
		g.layout.minW, g.layout.minH, g.screenW, g.screenH))
}

// renderBoard draws the visible rows of the grid inside a border.
// Hidden spawn rows are never drawn.
func (g *Game) renderBoard(dst *core.Screen, snap Snapshot) {
	l := g.layout
	dst.DrawBox(core.NewRect(l.boardX, l.boardY, l.boardW, l.boardH))

	spawnRows := g.cfg.Board.SpawnRows
	for row := spawnRows; row < snap.Grid.Height(); row++ {
		y := l.boardY + 1 + row - spawnRows
		for col := range snap.Grid.Width() {
			x := l.boardX + 1 + col*cellWidth
			kind, ok := snap.Grid.At(Location{Col: col, Row: row}).Kind()
			if !ok {
				dst.SetCell(x, y, ' ', core.ColorDefault)
				dst.SetCell(x+1, y, '·', core.ColorGray)
				continue
			}
			dst.SetCell(x, y, '█', kind.Color())
			dst.SetCell(x+1, y, '█', kind.Color())
		}
	}
}

// renderPanel draws level, score, rows, the next piece and spawn statistics.
func (g *Game) renderPanel(dst *core.Screen, snap Snapshot) {
	x := g.layout.panelX
	y := g.layout.boardY

	dst.DrawText(x, y, fmt.Sprintf("LEVEL %d", snap.Level))
	dst.DrawText(x, y+1, fmt.Sprintf("SCORE %d", snap.Score))
	dst.DrawText(x, y+2, fmt.Sprintf("ROWS  %d", snap.TotalRows))

	dst.DrawText(x, y+4, "NEXT")
	drawPreview(dst, x, y+5, snap.Next)

	dst.DrawText(x, y+9, "STATISTICS")
	for i, kind := range Kinds {
		row := y + 10 + i
		dst.SetCell(x, row, '█', kind.Color())
		dst.SetCell(x+1, row, '█', kind.Color())
		dst.DrawText(x+3, row, fmt.Sprintf("%s %4d", kind, snap.Statistics[kind]))
	}
}

// drawPreview draws a piece in its spawn orientation with its topmost and
// leftmost cells at (x, y).
func drawPreview(dst *core.Screen, x, y int, p Piece) {
	p.Rotation = 0
	lo, _ := p.Bounds()
	for _, loc := range p.Locations() {
		px := x + (loc.Col-lo.Col)*cellWidth
		py := y + loc.Row - lo.Row
		dst.SetCell(px, py, '█', p.Kind.Color())
		dst.SetCell(px+1, py, '█', p.Kind.Color())
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, snap Snapshot) {
	centerX := g.layout.boardX + g.layout.boardW/2
	centerY := g.layout.boardY + g.layout.boardH/2

	if snap.GameOver {
		g.drawOverlay(dst, centerX, centerY, "GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score), "R: restart")
		return
	}

	if snap.Paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "P: resume")
	}
}

// drawOverlay draws a centered boxed text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→: Move | ↓: Drop | ↑/Space: Rotate | P: Pause | N: New | Q: Quit"
}
