// Package core implements the SameGame RGB simulation engine: cluster
// discovery, greedy cluster selection, board compression and the turn loop.
// This package is UI-agnostic, performs no I/O and is fully deterministic.
package core

import "fmt"

// Point is a 1-based board position.
// X is the column counted from the left, Y is the row counted from the
// bottom (row 1 is the bottom row).
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Precedes reports whether p has priority over other.
// The smaller column wins; within a column the lower row wins.
func (p Point) Precedes(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// Adjacent reports whether two points share an edge (no diagonals).
func (p Point) Adjacent(other Point) bool {
	dx := p.X - other.X
	dy := p.Y - other.Y
	switch {
	case dx == 0:
		return dy == 1 || dy == -1
	case dy == 0:
		return dx == 1 || dx == -1
	default:
		return false
	}
}

// Ball is a colored occupant of exactly one grid cell.
// Two balls are considered the same ball when color and position match.
type Ball struct {
	Point Point
	Color Color
}

// NewBall creates a ball of the given color at p.
func NewBall(p Point, c Color) *Ball {
	return &Ball{Point: p, Color: c}
}

// Equal reports whether b and other have the same color and position.
func (b *Ball) Equal(other *Ball) bool {
	return b.Color == other.Color && b.Point == other.Point
}

// Precedes reports whether b has priority over other.
func (b *Ball) Precedes(other *Ball) bool {
	return b.Point.Precedes(other.Point)
}

// Nearby reports whether b and other sit on edge-adjacent cells.
func (b *Ball) Nearby(other *Ball) bool {
	return b.Point.Adjacent(other.Point)
}

// Cell is a single input cell: either empty or carrying one color.
type Cell struct {
	Filled bool  // Whether the cell holds a ball
	Color  Color // Valid only when Filled is true
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Filled: false}
}

// FilledCell returns a cell holding a ball of color c.
func FilledCell(c Color) Cell {
	return Cell{Filled: true, Color: c}
}
