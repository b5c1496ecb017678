package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

func TestNewGridOrientation(t *testing.T) {
	g := mustGrid(t,
		"R.",
		"GB",
	)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Cols())
	assert.Equal(t, 3, g.Remaining())

	testCases := []struct {
		p     core.Point
		color core.Color
		empty bool
	}{
		{core.P(1, 2), core.Red, false},
		{core.P(2, 2), 0, true},
		{core.P(1, 1), core.Green, false},
		{core.P(2, 1), core.Blue, false},
	}

	for _, tc := range testCases {
		b := g.Get(tc.p)
		if tc.empty {
			assert.Nil(t, b, "at %v", tc.p)
			assert.False(t, g.Occupied(tc.p))
			continue
		}
		require.NotNil(t, b, "at %v", tc.p)
		assert.Equal(t, tc.color, b.Color)
		assert.Equal(t, tc.p, b.Point, "ball coordinates must match its cell")
	}
}

func TestNewGridShapeMismatch(t *testing.T) {
	row := []core.Cell{core.FilledCell(core.Red), core.FilledCell(core.Green)}

	tests := []struct {
		name    string
		cells   [][]core.Cell
		axis    string
		got     int
		message string
	}{
		{
			name:    "too few rows",
			cells:   [][]core.Cell{row},
			axis:    "rows",
			got:     1,
			message: "Invalid count of the board rows = 1. Necessary: 2",
		},
		{
			name:    "short row",
			cells:   [][]core.Cell{row, row[:1]},
			axis:    "columns",
			got:     1,
			message: "Invalid count of the board columns = 1. Necessary: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := core.NewGrid(tt.cells, 2, 2)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, core.ErrShapeMismatch))

			var se *core.ShapeError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.axis, se.Axis)
			assert.Equal(t, tt.got, se.Got)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestNewGridRejectsInvalidColor(t *testing.T) {
	cells := [][]core.Cell{{core.FilledCell(core.Color(42))}}
	_, err := core.NewGrid(cells, 1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownColor))
}

func TestGridOutOfBounds(t *testing.T) {
	g := mustGrid(t, "RG")

	for _, p := range []core.Point{core.P(0, 1), core.P(3, 1), core.P(1, 0), core.P(1, 2)} {
		assert.False(t, g.InBounds(p), "%v", p)
		assert.False(t, g.Occupied(p), "%v", p)
		assert.Nil(t, g.Get(p), "%v", p)
	}

	g.Set(core.P(5, 5), core.NewBall(core.P(5, 5), core.Red))
	assert.Equal(t, 2, g.Remaining(), "out-of-bounds Set must be ignored")
}

func TestGridSetAndMove(t *testing.T) {
	g := mustGrid(t,
		"..",
		"R.",
	)

	b := g.Get(core.P(1, 1))
	require.NotNil(t, b)

	g.Move(b, core.P(2, 2))
	assert.Equal(t, core.P(2, 2), b.Point)
	assert.Nil(t, g.Get(core.P(1, 1)))
	assert.Same(t, b, g.Get(core.P(2, 2)))
	assert.Equal(t, 1, g.Remaining())

	g.Set(core.P(2, 2), nil)
	assert.Equal(t, 0, g.Remaining())

	g.Set(core.P(1, 2), core.NewBall(core.P(9, 9), core.Blue))
	assert.Equal(t, 1, g.Remaining())
	assert.Equal(t, core.P(1, 2), g.Get(core.P(1, 2)).Point)
}

func TestGridRemoveCluster(t *testing.T) {
	g := mustGrid(t,
		"RG",
		"RR",
	)
	red := findCluster(t, core.BuildClusters(g), core.Red, core.P(1, 1))

	g.RemoveCluster(red)
	assert.Equal(t, 1, g.Remaining())
	assert.Equal(t, ".G\n..", g.String())
}

func TestGridCloneAndEqual(t *testing.T) {
	g := mustGrid(t,
		"RG.",
		"BBR",
	)
	clone := g.Clone()
	require.True(t, g.Equal(clone))

	g.Set(core.P(1, 2), nil)
	assert.False(t, g.Equal(clone), "clone must not share cells with the original")
	assert.Equal(t, 5, clone.Remaining())
	assert.Equal(t, "RG.\nBBR", clone.String())
}

func TestGridCellsTopFirst(t *testing.T) {
	g := mustGrid(t,
		"R.",
		"GB",
	)
	cells := g.Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, core.FilledCell(core.Red), cells[0][0])
	assert.Equal(t, core.Empty(), cells[0][1])
	assert.Equal(t, core.FilledCell(core.Blue), cells[1][1])
}

func TestGridBallsScanOrder(t *testing.T) {
	g := mustGrid(t,
		"BR",
		"G.",
	)
	balls := g.Balls()
	require.Len(t, balls, 3)
	assert.Equal(t, core.P(1, 1), balls[0].Point)
	assert.Equal(t, core.P(1, 2), balls[1].Point)
	assert.Equal(t, core.P(2, 2), balls[2].Point)
}
