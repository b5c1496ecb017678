package formats

import (
	"fmt"
	"io"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// Result is the outcome of one simulated board.
type Result struct {
	Game      int            `json:"game"`
	BoardID   string         `json:"board_id"`
	Moves     []core.Move    `json:"moves"`
	Score     int            `json:"score"`
	Remaining int            `json:"remaining"`
	End       core.EndReason `json:"end"`
}

// NewResult collects the outcome of a finished game.
func NewResult(number int, boardID string, g *core.Game) Result {
	return Result{
		Game:      number,
		BoardID:   boardID,
		Moves:     g.Moves(),
		Score:     g.Score(),
		Remaining: g.Remaining(),
		End:       g.End(),
	}
}

// FormatMove renders a move as a report line.
func FormatMove(m core.Move) string {
	return fmt.Sprintf("Move %d at (%d,%d): removed %d balls of color %s, got %d points.",
		m.Number, m.Row, m.Column, m.Removed, m.Color, m.Score)
}

// FormatFinal renders the closing line of a game report.
func FormatFinal(score, remaining int) string {
	return fmt.Sprintf("Final score: %d, with %d balls remaining.", score, remaining)
}

// WriteReport writes the text report of every result, separated by blank lines.
func WriteReport(w io.Writer, results []Result) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Game %d:\n", r.Game); err != nil {
			return err
		}
		for _, m := range r.Moves {
			if _, err := fmt.Fprintln(w, FormatMove(m)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, FormatFinal(r.Score, r.Remaining)); err != nil {
			return err
		}
	}
	return nil
}
