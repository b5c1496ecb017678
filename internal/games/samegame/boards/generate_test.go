package boards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/samegame/internal/games/samegame/boards"
)

func TestGenerateDeterministic(t *testing.T) {
	a := boards.Generate(42, 3, 10, 15)
	b := boards.Generate(42, 3, 10, 15)
	require.Len(t, a, 3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a[0].Cells, a[1].Cells)

	for _, board := range a {
		assert.Equal(t, 150, board.Balls())
		_, err := board.ToGrid()
		assert.NoError(t, err)
	}

	c := boards.Generate(43, 1, 10, 15)
	assert.NotEqual(t, a[0].Cells, c[0].Cells)
}

func TestRNGIntn(t *testing.T) {
	rng := boards.NewRNG(0)
	for i := 0; i < 1000; i++ {
		v := rng.Intn(3)
		if v < 0 || v >= 3 {
			t.Fatalf("Intn(3) = %d, expected [0, 3)", v)
		}
	}
	if got := rng.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, expected 0", got)
	}
}
