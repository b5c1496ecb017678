package boards

import (
	"fmt"

	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// RNG is a deterministic pseudo-random number generator (xorshift64).
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &RNG{state: seed}
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Generate creates count full boards of random colors. The same seed always
// yields the same boards.
func Generate(seed uint64, count, rows, cols int) []formats.Board {
	rng := NewRNG(seed)
	colors := core.AllColors()

	out := make([]formats.Board, count)
	for n := range out {
		cells := make([][]core.Cell, rows)
		for i := range cells {
			cells[i] = make([]core.Cell, cols)
			for j := range cells[i] {
				cells[i][j] = core.FilledCell(colors[rng.Intn(len(colors))])
			}
		}
		out[n] = formats.Board{
			ID:    fmt.Sprintf("random-%d-%d", seed, n+1),
			Name:  fmt.Sprintf("Random %d #%d", seed, n+1),
			Rows:  rows,
			Cols:  cols,
			Cells: cells,
		}
	}
	return out
}
