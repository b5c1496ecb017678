package samegame

import (
	"fmt"

	platformcore "github.com/vovakirdan/samegame/internal/core"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

const (
	cellW     = 2 // Terminal columns per board column
	hudHeight = 2
	ballRune  = '●'
	nextRune  = '◉'
	emptyRune = '·'
)

// ballColor maps a ball color to a screen color.
func ballColor(c core.Color) platformcore.Color {
	switch c {
	case core.Red:
		return platformcore.ColorRed
	case core.Green:
		return platformcore.ColorGreen
	case core.Blue:
		return platformcore.ColorBlue
	default:
		return platformcore.ColorDefault
	}
}

// Render draws the HUD, the board with the next cluster highlighted, and the
// last move.
func (g *Game) Render(dst *platformcore.Screen) {
	if g.game == nil {
		msg := "Board cannot be played"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg)
		return
	}

	grid := g.game.Grid()
	boxW := grid.Cols()*cellW + 3
	boxH := grid.Rows() + 2
	if dst.Width() < boxW || dst.Height() < boxH+hudHeight+2 {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	g.renderHUD(dst)

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-2)
	box := area.Centered(boxW, boxH)
	dst.DrawBox(box, platformcore.ColorGray)

	next := g.nextCluster()
	for y := grid.Rows(); y >= 1; y-- {
		sy := box.Y + 1 + grid.Rows() - y
		for x := 1; x <= grid.Cols(); x++ {
			sx := box.X + 2 + (x-1)*cellW
			b := grid.Get(core.P(x, y))
			switch {
			case b == nil:
				dst.SetColored(sx, sy, emptyRune, platformcore.ColorGray)
			case next != nil && next.Contains(b):
				dst.SetColored(sx, sy, nextRune, ballColor(b.Color))
			default:
				dst.SetColored(sx, sy, ballRune, ballColor(b.Color))
			}
		}
	}

	g.renderFooter(dst, box.Bottom())
}

// nextCluster returns the cluster the solver removes next, if any.
func (g *Game) nextCluster() *core.Cluster {
	if g.game.Done() {
		return nil
	}
	best := core.Greedy{}.BestCluster(g.game.Clusters())
	if best == nil || best.Len() < g.game.Rules().MinClusterSize {
		return nil
	}
	return best
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	s := g.State()
	dst.DrawTextColored(1, 0, g.board.Name, platformcore.ColorCyan)
	stats := fmt.Sprintf("Score: %d  Moves: %d  Left: %d", s.Score, s.Moves, s.Remaining)
	dst.DrawText(dst.Width()-len(stats)-1, 0, stats)

	status := fmt.Sprintf("Auto %dms", g.stepMillis)
	if g.paused {
		status = "Paused"
	}
	dst.DrawTextColored(1, 1, status, platformcore.ColorGray)
}

func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	moves := g.game.Moves()
	if n := len(moves); n > 0 {
		dst.DrawTextCentered(y, formats.FormatMove(moves[n-1]))
	}

	switch g.game.End() {
	case core.EndCleared:
		msg := fmt.Sprintf("Board cleared! +%d bonus", g.rules.ClearBonus)
		dst.DrawTextColored((dst.Width()-len([]rune(msg)))/2, y+1, msg, platformcore.ColorYellow)
	case core.EndStuck:
		msg := formats.FormatFinal(g.game.Score(), g.game.Remaining())
		dst.DrawTextColored((dst.Width()-len(msg))/2, y+1, msg, platformcore.ColorYellow)
	}
}
