package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// YAMLBoard represents the YAML structure for a board file.
type YAMLBoard struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     *YAMLSize         `yaml:"size,omitempty"`
	Rows     []string          `yaml:"rows"` // Top row first, '.' for empty
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// ParseYAML parses a YAML board file. Without an explicit size the board
// takes its dimensions from the rows. Balls must rest on the bottom row or on
// another ball.
func ParseYAML(data []byte) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yb.ID == "" {
		return Board{}, fmt.Errorf("formats: board has no id")
	}
	if len(yb.Rows) == 0 {
		return Board{}, fmt.Errorf("formats: board %s has no rows", yb.ID)
	}

	rows, cols := len(yb.Rows), len([]rune(strings.TrimSpace(yb.Rows[0])))
	if yb.Size != nil {
		rows, cols = yb.Size.Rows, yb.Size.Cols
	}

	b, err := FromRows(yb.ID, yb.Name, yb.Rows, rows, cols)
	if err != nil {
		return Board{}, err
	}
	b.Metadata = yb.Metadata
	return b, nil
}

// FromRows builds a board from lines written top row first, '.' for empty
// cells. Balls must rest on the bottom row or on another ball.
func FromRows(id, name string, lines []string, rows, cols int) (Board, error) {
	if len(lines) != rows {
		return Board{}, fmt.Errorf("formats: board %s: %w", id,
			&core.ShapeError{Axis: "rows", Got: len(lines), Want: rows})
	}

	cells := make([][]core.Cell, rows)
	for i, line := range lines {
		tags := []rune(strings.TrimSpace(line))
		if len(tags) != cols {
			return Board{}, fmt.Errorf("formats: board %s row %d: %w", id, i+1,
				&core.ShapeError{Axis: "columns", Got: len(tags), Want: cols})
		}
		cells[i] = make([]core.Cell, cols)
		for j, tag := range tags {
			if tag == '.' {
				continue
			}
			c, err := core.ParseColor(tag)
			if err != nil {
				return Board{}, fmt.Errorf("formats: board %s row %d: %w", id, i+1, err)
			}
			cells[i][j] = core.FilledCell(c)
		}
	}

	if rows > 0 {
		if err := checkSettled(cells); err != nil {
			return Board{}, fmt.Errorf("formats: board %s: %w", id, err)
		}
	}

	if name == "" {
		name = id
	}
	return Board{
		ID:    id,
		Name:  name,
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}, nil
}

// checkSettled rejects a ball sitting above an empty cell, and a non-empty
// column right of an empty one on the bottom row.
func checkSettled(cells [][]core.Cell) error {
	rows := len(cells)
	bottom := cells[rows-1]
	for i := 0; i < rows-1; i++ {
		for j, c := range cells[i] {
			if c.Filled && !cells[i+1][j].Filled {
				return fmt.Errorf("%w at column %d, row %d", ErrFloatingBall, j+1, rows-i)
			}
		}
	}
	for j := 1; j < len(bottom); j++ {
		if bottom[j].Filled && !bottom[j-1].Filled {
			return fmt.Errorf("%w: column %d right of an empty column", ErrFloatingBall, j+1)
		}
	}
	return nil
}

// MarshalYAML encodes a board back into its YAML file form.
func MarshalYAML(b Board) ([]byte, error) {
	yb := YAMLBoard{
		ID:       b.ID,
		Name:     b.Name,
		Size:     &YAMLSize{Rows: b.Rows, Cols: b.Cols},
		Metadata: b.Metadata,
	}
	yb.Rows = b.Lines()
	return yaml.Marshal(yb)
}
