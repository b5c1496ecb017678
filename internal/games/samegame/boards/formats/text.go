package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// ParseText reads boards in the batch text format:
//
//	<number of games>
//	<empty line>
//	<rows lines of cols characters from R, G, B, top row first>
//	<empty line>
//	...
//
// Every board must be completely filled. Parsing stops at the first error;
// no partial result is returned.
func ParseText(r io.Reader, rows, cols int) ([]Board, error) {
	p := &textParser{scanner: bufio.NewScanner(r), rows: rows, cols: cols}

	line, err := p.next()
	if err != nil {
		return nil, p.fail(ErrInvalidGameCount)
	}
	count, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || count < 1 {
		return nil, p.fail(ErrInvalidGameCount)
	}

	var boards []Board
	for p.game = 1; p.game <= count; p.game++ {
		b, err := p.board()
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, nil
}

type textParser struct {
	scanner *bufio.Scanner
	rows    int
	cols    int
	line    int
	game    int
}

// next returns the next input line.
func (p *textParser) next() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("formats: reading input: %w", err)
		}
		return "", ErrUnexpectedEnd
	}
	p.line++
	return p.scanner.Text(), nil
}

func (p *textParser) fail(err error) error {
	return &ParseError{Line: p.line, Game: p.game, Err: err}
}

// board reads one separator line and one board.
func (p *textParser) board() (Board, error) {
	sep, err := p.next()
	if err != nil {
		return Board{}, p.fail(err)
	}
	if sep != "" {
		return Board{}, p.fail(ErrInvalidSeparator)
	}

	var cells [][]core.Cell
	for i := 0; i < p.rows; i++ {
		line, err := p.next()
		if err != nil {
			return Board{}, p.fail(err)
		}
		tags := []rune(line)
		if len(tags) != p.cols {
			return Board{}, p.fail(&core.ShapeError{Axis: "columns", Got: len(tags), Want: p.cols})
		}

		row := make([]core.Cell, len(tags))
		for j, tag := range tags {
			c, err := core.ParseColor(tag)
			if err != nil {
				return Board{}, p.fail(err)
			}
			row[j] = core.FilledCell(c)
		}
		cells = append(cells, row)
	}

	return Board{
		ID:    fmt.Sprintf("game-%d", p.game),
		Name:  fmt.Sprintf("Game %d", p.game),
		Rows:  p.rows,
		Cols:  p.cols,
		Cells: cells,
	}, nil
}

// WriteText writes boards in the batch text format. Empty cells are written
// as '.', which ParseText rejects; only full boards round-trip.
func WriteText(w io.Writer, boards []Board) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(boards))
	for _, b := range boards {
		bw.WriteString("\n")
		for _, row := range b.Cells {
			for _, c := range row {
				if c.Filled {
					bw.WriteRune(c.Color.Char())
				} else {
					bw.WriteByte('.')
				}
			}
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}
