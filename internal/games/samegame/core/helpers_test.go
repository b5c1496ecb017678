package core_test

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// mustGrid builds a grid from rows written top row first, '.' for empty.
func mustGrid(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	require.NotEmpty(t, rows, "grid needs at least one row")

	cells := make([][]core.Cell, len(rows))
	for i, line := range rows {
		for _, r := range line {
			if r == '.' {
				cells[i] = append(cells[i], core.Empty())
				continue
			}
			c, err := core.ParseColor(r)
			require.NoError(t, err)
			cells[i] = append(cells[i], core.FilledCell(c))
		}
	}

	g, err := core.NewGrid(cells, len(rows), len(rows[0]))
	require.NoError(t, err)
	return g
}

// randomRows returns a full board of random colors, top row first.
func randomRows(rng *rand.Rand, rows, cols int) []string {
	tags := []byte{'R', 'G', 'B'}
	out := make([]string, rows)
	for i := range out {
		line := make([]byte, cols)
		for j := range line {
			line[j] = tags[rng.Intn(len(tags))]
		}
		out[i] = string(line)
	}
	return out
}

// clusterKeys returns a canonical, order-independent description of clusters.
func clusterKeys(clusters []*core.Cluster) []string {
	keys := make([]string, 0, len(clusters))
	for _, c := range clusters {
		pts := c.Points()
		sort.Slice(pts, func(i, j int) bool { return pts[i].Precedes(pts[j]) })
		parts := make([]string, len(pts))
		for i, p := range pts {
			parts[i] = p.String()
		}
		keys = append(keys, fmt.Sprintf("%s:%s", c.Color(), strings.Join(parts, "")))
	}
	sort.Strings(keys)
	return keys
}

// findCluster returns the first cluster of color c containing p.
func findCluster(t *testing.T, clusters []*core.Cluster, c core.Color, p core.Point) *core.Cluster {
	t.Helper()
	for _, cl := range clusters {
		if cl.Color() != c {
			continue
		}
		for _, q := range cl.Points() {
			if q == p {
				return cl
			}
		}
	}
	t.Fatalf("no %s cluster at %v", c, p)
	return nil
}

// requireCompact asserts the gravity invariant for every column and the
// left-packing invariant for the bottom row.
func requireCompact(t *testing.T, g *core.Grid) {
	t.Helper()
	for x := 1; x <= g.Cols(); x++ {
		seenEmpty := false
		for y := 1; y <= g.Rows(); y++ {
			occupied := g.Occupied(core.P(x, y))
			if occupied && seenEmpty {
				t.Fatalf("column %d: ball at row %d floats over an empty cell\n%s", x, y, g)
			}
			if !occupied {
				seenEmpty = true
			}
		}
	}

	seenEmpty := false
	for x := 1; x <= g.Cols(); x++ {
		occupied := g.Occupied(core.P(x, 1))
		if occupied && seenEmpty {
			t.Fatalf("bottom row: column %d is occupied right of an empty column\n%s", x, g)
		}
		if !occupied {
			seenEmpty = true
		}
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
