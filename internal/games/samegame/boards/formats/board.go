// Package formats provides board file parsers and writers.
package formats

import (
	"errors"
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/samegame/internal/core"
	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// Errors reported while reading board files. The messages of
// ErrInvalidGameCount and ErrInvalidSeparator are part of the batch output.
var (
	ErrInvalidGameCount = errors.New("Invalid count games")
	ErrInvalidSeparator = errors.New("Invalid separator for games")
	ErrFloatingBall     = errors.New("formats: ball above an empty cell")
	ErrUnexpectedEnd    = errors.New("formats: unexpected end of input")
)

// ParseError locates a parse failure in its source.
type ParseError struct {
	Line int   // 1-based input line, 0 when unknown
	Game int   // 1-based game number, 0 before the first board
	Err  error // Underlying error
}

func (e *ParseError) Error() string {
	if e.Game > 0 {
		return fmt.Sprintf("line %d (game %d): %v", e.Line, e.Game, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable message of a parse error without its
// location, the way the batch runner prints it.
func Message(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

// Board represents a parsed board ready for use.
type Board struct {
	ID       string
	Name     string
	Rows     int
	Cols     int
	Cells    [][]core.Cell // Top row first
	Metadata map[string]string
}

// ToGrid creates a Grid from the board cells.
func (b *Board) ToGrid() (*core.Grid, error) {
	return core.NewGrid(b.Cells, b.Rows, b.Cols)
}

// NewGame creates a greedy game over a fresh grid built from the board.
func (b *Board) NewGame(rules core.Rules) (*core.Game, error) {
	grid, err := b.ToGrid()
	if err != nil {
		return nil, err
	}
	return core.NewGame(grid, core.Greedy{}, rules), nil
}

// Balls returns the number of filled cells.
func (b *Board) Balls() int {
	n := 0
	for _, row := range b.Cells {
		for _, c := range row {
			if c.Filled {
				n++
			}
		}
	}
	return n
}

// Lines returns the board rows top row first, '.' for empty cells.
func (b *Board) Lines() []string {
	return CellLines(b.Cells)
}

// CellLines renders a cell matrix as text rows, '.' for empty cells.
func CellLines(cells [][]core.Cell) []string {
	lines := make([]string, len(cells))
	for i, row := range cells {
		var sb strings.Builder
		for _, c := range row {
			if c.Filled {
				sb.WriteRune(c.Color.Char())
			} else {
				sb.WriteByte('.')
			}
		}
		lines[i] = sb.String()
	}
	return lines
}

// Spec converts the board into the platform board description.
func (b *Board) Spec() platformcore.BoardSpec {
	return platformcore.BoardSpec{ID: b.ID, Name: b.Name, Rows: b.Lines()}
}

// FromSpec rebuilds a board from a platform board description.
func FromSpec(spec platformcore.BoardSpec) (Board, error) {
	cols := 0
	if len(spec.Rows) > 0 {
		cols = len([]rune(strings.TrimSpace(spec.Rows[0])))
	}
	return FromRows(spec.ID, spec.Name, spec.Rows, len(spec.Rows), cols)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}
