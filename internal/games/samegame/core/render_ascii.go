package core

import (
	"fmt"
	"strings"
)

// RenderASCII creates a plain-text view of a game for debugging and golden
// tests.
//
// Format:
//   - Header with move count, score and balls remaining
//   - Board top row first: R/G/B for balls, '.' for empty cells
//   - Column ruler under the board
func RenderASCII(g *Game) string {
	var sb strings.Builder
	grid := g.Grid()

	end := "running"
	if g.Done() {
		end = string(g.End())
	}
	sb.WriteString(fmt.Sprintf("Moves: %d | Score: %d | Remaining: %d | %s\n",
		len(g.moves), g.Score(), grid.Remaining(), end))

	for y := grid.Rows(); y >= 1; y-- {
		sb.WriteString(fmt.Sprintf("%2d ", y))
		for x := 1; x <= grid.Cols(); x++ {
			if b := grid.Get(P(x, y)); b != nil {
				sb.WriteRune(b.Color.Char())
			} else {
				sb.WriteRune('.')
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("   ")
	for x := 1; x <= grid.Cols(); x++ {
		sb.WriteString(fmt.Sprintf("%d", x%10))
	}
	sb.WriteString("\n")

	return sb.String()
}
