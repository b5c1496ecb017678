package core

import "strings"

// Grid is the game board: a fixed Rows x Cols matrix where each cell holds
// at most one Ball. Cell (x, y) holds ball B iff B.Point == (x, y).
// Cells are stored bottom row first: cells[y-1][x-1].
type Grid struct {
	rows      int
	cols      int
	cells     [][]*Ball
	remaining int
}

// NewGrid builds a grid from a cell matrix given top row first, the way a
// board is written down. The matrix must have exactly rows rows of exactly
// cols cells each, and every filled cell must carry a valid color.
func NewGrid(cells [][]Cell, rows, cols int) (*Grid, error) {
	if len(cells) != rows {
		return nil, &ShapeError{Axis: "rows", Got: len(cells), Want: rows}
	}
	for _, row := range cells {
		if len(row) != cols {
			return nil, &ShapeError{Axis: "columns", Got: len(row), Want: cols}
		}
	}

	g := NewEmptyGrid(rows, cols)
	for i, row := range cells {
		y := rows - i
		for j, cell := range row {
			if !cell.Filled {
				continue
			}
			if !cell.Color.Valid() {
				return nil, &UnknownColorError{Tag: cell.Color.String()}
			}
			p := P(j+1, y)
			g.Set(p, NewBall(p, cell.Color))
		}
	}
	return g, nil
}

// NewEmptyGrid creates a grid with every cell empty.
func NewEmptyGrid(rows, cols int) *Grid {
	cells := make([][]*Ball, rows)
	for y := range cells {
		cells[y] = make([]*Ball, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Remaining returns the number of balls still on the board.
func (g *Grid) Remaining() int {
	return g.remaining
}

// InBounds reports whether p lies on the board.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 1 && p.X <= g.cols && p.Y >= 1 && p.Y <= g.rows
}

// Occupied reports whether a ball sits at p.
// Out-of-bounds points are never occupied.
func (g *Grid) Occupied(p Point) bool {
	return g.Get(p) != nil
}

// Get returns the ball at p, or nil if the cell is empty or out of bounds.
func (g *Grid) Get(p Point) *Ball {
	if !g.InBounds(p) {
		return nil
	}
	return g.cells[p.Y-1][p.X-1]
}

// Set places b at p, or clears the cell when b is nil.
// The ball's coordinates are rewritten to p. Out-of-bounds points are ignored.
func (g *Grid) Set(p Point, b *Ball) {
	if !g.InBounds(p) {
		return
	}
	old := g.cells[p.Y-1][p.X-1]
	switch {
	case old == nil && b != nil:
		g.remaining++
	case old != nil && b == nil:
		g.remaining--
	}
	if b != nil {
		b.Point = p
	}
	g.cells[p.Y-1][p.X-1] = b
}

// Move relocates b from its current cell to the empty cell at to.
func (g *Grid) Move(b *Ball, to Point) {
	if g.Get(b.Point) == b {
		g.Set(b.Point, nil)
	}
	g.Set(to, b)
}

// RemoveCluster clears the cell of every ball in c.
func (g *Grid) RemoveCluster(c *Cluster) {
	for _, b := range c.balls {
		if g.Get(b.Point) == b {
			g.Set(b.Point, nil)
		}
	}
}

// index converts a point to a flat bottom-first, row-major index.
func (g *Grid) index(p Point) int {
	return (p.Y-1)*g.cols + (p.X - 1)
}

// Balls returns every ball in scan order: bottom row first, left to right.
func (g *Grid) Balls() []*Ball {
	balls := make([]*Ball, 0, g.remaining)
	for y := 1; y <= g.rows; y++ {
		for x := 1; x <= g.cols; x++ {
			if b := g.cells[y-1][x-1]; b != nil {
				balls = append(balls, b)
			}
		}
	}
	return balls
}

// Cells returns a copy of the board as a cell matrix, top row first.
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, g.rows)
	for i := range out {
		y := g.rows - i
		row := make([]Cell, g.cols)
		for x := 1; x <= g.cols; x++ {
			if b := g.cells[y-1][x-1]; b != nil {
				row[x-1] = FilledCell(b.Color)
			}
		}
		out[i] = row
	}
	return out
}

// Clone returns a deep copy of the grid with fresh balls.
func (g *Grid) Clone() *Grid {
	clone := NewEmptyGrid(g.rows, g.cols)
	for _, b := range g.Balls() {
		clone.Set(b.Point, NewBall(b.Point, b.Color))
	}
	return clone
}

// Equal reports whether two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			a, b := g.cells[y][x], other.cells[y][x]
			if (a == nil) != (b == nil) {
				return false
			}
			if a != nil && a.Color != b.Color {
				return false
			}
		}
	}
	return true
}

// String renders the board top row first, '.' for empty cells.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.cols + 1) * g.rows)
	for y := g.rows; y >= 1; y-- {
		for x := 1; x <= g.cols; x++ {
			if b := g.cells[y-1][x-1]; b != nil {
				sb.WriteRune(b.Color.Char())
			} else {
				sb.WriteRune('.')
			}
		}
		if y > 1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
