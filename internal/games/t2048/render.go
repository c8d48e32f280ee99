package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/t2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1  // +1 for right border
	boardH = BoardSize*cellHeight + 1 // +1 for bottom border

	minScreenW = boardW + 2
	minScreenH = hudHeight + 1 + boardH + 1
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY)

	footerY := boardY + boardH
	if footerY < g.screenH {
		dst.DrawTextColor(boardX, footerY, g.footer(), core.ColorGray)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws title, score, best and move count.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	s := g.engine.State()

	title := "2048"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", s.Score))
	best := fmt.Sprintf("Best: %d", g.bestScore())
	dst.DrawText(boardX+boardW-len(best), 1, best)

	dst.DrawText(boardX, 2, fmt.Sprintf("Moves: %d", s.MoveCount))
	maxStr := fmt.Sprintf("Max: %d", s.MaxTileSeen)
	dst.DrawText(boardX+boardW-len(maxStr), 2, maxStr)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColor(px, py, gridCorner(x, y), core.ColorGray)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	board := g.engine.State().Board
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if val == 0 {
				continue
			}

			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)

			color := core.TileColor(val)
			switch g.highlight.at(x, y) {
			case highlightMerged:
				dst.SetColor(cellX, cellY, '[', core.ColorBrightWhite)
				dst.SetColor(cellX+cellWidth-2, cellY, ']', core.ColorBrightWhite)
			case highlightSpawned:
				color = core.ColorCyan
			}

			dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
		}
	}
}

func gridCorner(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == BoardSize:
		return '┐'
	case y == BoardSize && x == 0:
		return '└'
	case y == BoardSize && x == BoardSize:
		return '┘'
	case y == 0:
		return '┬'
	case y == BoardSize:
		return '┴'
	case x == 0:
		return '├'
	case x == BoardSize:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws pause, win and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2
	s := g.engine.State()

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case s.Over:
		drawOverlay(dst, centerX, centerY, "GAME OVER",
			fmt.Sprintf("Score: %d", s.Score), "Press N for a new game")
	case g.winTicks > 0:
		drawOverlay(dst, centerX, centerY,
			fmt.Sprintf("%d!", g.engine.WinTile()), "You win! Keep going")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(0, 0, maxLen+4, len(lines)+2)
	box.X = centerX - box.W/2
	box.Y = centerY - box.H/2

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

func (g *Game) footer() string {
	if g.engine.CanUndo() {
		return "U: undo  N: new  ?: help"
	}
	return "N: new  ?: help"
}
