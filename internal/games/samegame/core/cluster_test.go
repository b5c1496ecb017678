package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		tag     rune
		want    core.Color
		wantErr bool
	}{
		{'R', core.Red, false},
		{'G', core.Green, false},
		{'B', core.Blue, false},
		{'r', 0, true},
		{'X', 0, true},
		{'.', 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			got, err := core.ParseColor(tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrUnknownColor))
				assert.Equal(t, "Invalid color = "+string(tt.tag)+". Necessary: R, G or B", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.tag, got.Char())
		})
	}
}

func TestClusterAdd(t *testing.T) {
	c := core.NewCluster(core.Red)
	require.Nil(t, c.PriorityBall())

	require.NoError(t, c.Add(core.NewBall(core.P(3, 1), core.Red)))
	require.NoError(t, c.Add(core.NewBall(core.P(2, 5), core.Red)))
	require.NoError(t, c.Add(core.NewBall(core.P(2, 2), core.Red)))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, core.P(2, 2), c.PriorityBall().Point)

	// Same color and position counts as the same ball.
	require.NoError(t, c.Add(core.NewBall(core.P(2, 5), core.Red)))
	assert.Equal(t, 3, c.Len())

	err := c.Add(core.NewBall(core.P(1, 1), core.Blue))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrColorMismatch))
	assert.Equal(t, "Invalid color = B. Necessary: R", err.Error())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, core.P(2, 2), c.PriorityBall().Point)
}

func TestClusterCanBelongAndMerge(t *testing.T) {
	a := core.NewCluster(core.Green)
	require.NoError(t, a.Add(core.NewBall(core.P(1, 1), core.Green)))

	b := core.NewCluster(core.Green)
	require.NoError(t, b.Add(core.NewBall(core.P(2, 1), core.Green)))
	require.NoError(t, b.Add(core.NewBall(core.P(2, 2), core.Green)))

	diagonal := core.NewCluster(core.Green)
	require.NoError(t, diagonal.Add(core.NewBall(core.P(2, 2), core.Green)))

	other := core.NewCluster(core.Blue)
	require.NoError(t, other.Add(core.NewBall(core.P(1, 2), core.Blue)))

	assert.True(t, a.CanBelong(b))
	assert.False(t, a.CanBelong(diagonal), "diagonal neighbours are not adjacent")
	assert.False(t, a.CanBelong(other), "different colors never merge")

	require.NoError(t, a.Merge(b))
	require.NoError(t, a.Merge(diagonal))
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, core.P(1, 1), a.PriorityBall().Point)

	assert.True(t, errors.Is(a.Merge(other), core.ErrColorMismatch))
}

func TestBuildClustersAdjacency(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		sizes map[core.Point]int // cluster containing point -> size
		count int
	}{
		{
			name:  "diagonal balls stay apart",
			rows:  []string{"R.", ".R"},
			sizes: map[core.Point]int{core.P(1, 2): 1, core.P(2, 1): 1},
			count: 2,
		},
		{
			name:  "u shape joins through the bottom row",
			rows:  []string{"RGR", "RRR"},
			sizes: map[core.Point]int{core.P(1, 2): 5, core.P(2, 2): 1},
			count: 2,
		},
		{
			name:  "spiral",
			rows:  []string{"BBBB", "BRRB", "BRBB", "BBGG"},
			sizes: map[core.Point]int{core.P(1, 1): 11, core.P(2, 3): 3, core.P(3, 1): 2},
			count: 3,
		},
		{
			name:  "empty board",
			rows:  []string{"...", "..."},
			sizes: map[core.Point]int{},
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.rows...)
			clusters := core.BuildClusters(g)
			assert.Len(t, clusters, tt.count)

			for p, size := range tt.sizes {
				b := g.Get(p)
				require.NotNil(t, b, "no ball at %v", p)
				c := findCluster(t, clusters, b.Color, p)
				assert.Equal(t, size, c.Len(), "cluster at %v", p)
			}
		})
	}
}

func TestBuildClustersScanOrder(t *testing.T) {
	g := mustGrid(t,
		"GGB",
		"RBB",
	)
	clusters := core.BuildClusters(g)
	require.Len(t, clusters, 3)

	// Ordered by first ball in scan order: (1,1) R, (2,1) B, (1,2) G.
	assert.Equal(t, core.Red, clusters[0].Color())
	assert.Equal(t, core.Blue, clusters[1].Color())
	assert.Equal(t, core.Green, clusters[2].Color())
	assert.Equal(t, []core.Point{core.P(2, 1), core.P(3, 1), core.P(3, 2)}, clusters[1].Points())
}

func TestBuildClustersProperties(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := mustGrid(t, randomRows(newRand(seed), 10, 15)...)
		clusters := core.BuildClusters(g)

		// Idempotent on an unchanged grid.
		assert.Equal(t, clusterKeys(clusters), clusterKeys(core.BuildClusters(g)), "seed %d", seed)

		owner := make(map[core.Point]int)
		total := 0
		for i, c := range clusters {
			total += c.Len()
			for _, b := range c.Balls() {
				require.Equal(t, c.Color(), b.Color, "seed %d: cluster %d is not homogeneous", seed, i)
				owner[b.Point] = i
			}
			require.True(t, connected(c.Points()), "seed %d: cluster %d is not connected", seed, i)
		}
		require.Equal(t, g.Remaining(), total, "seed %d: every ball belongs to exactly one cluster", seed)

		// Maximal: adjacent same-colored balls share a cluster.
		for _, b := range g.Balls() {
			for _, n := range []core.Point{core.P(b.Point.X+1, b.Point.Y), core.P(b.Point.X, b.Point.Y+1)} {
				nb := g.Get(n)
				if nb != nil && nb.Color == b.Color {
					require.Equal(t, owner[b.Point], owner[n], "seed %d: %v and %v split", seed, b.Point, n)
				}
			}
		}
	}
}

// connected reports whether pts form one edge-connected component.
func connected(pts []core.Point) bool {
	if len(pts) == 0 {
		return false
	}
	in := make(map[core.Point]bool, len(pts))
	for _, p := range pts {
		in[p] = true
	}
	visited := map[core.Point]bool{pts[0]: true}
	queue := []core.Point{pts[0]}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range []core.Point{core.P(p.X-1, p.Y), core.P(p.X+1, p.Y), core.P(p.X, p.Y-1), core.P(p.X, p.Y+1)} {
			if in[n] && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(pts)
}

func TestGreedyBestCluster(t *testing.T) {
	cluster := func(c core.Color, pts ...core.Point) *core.Cluster {
		cl := core.NewCluster(c)
		for _, p := range pts {
			require.NoError(t, cl.Add(core.NewBall(p, c)))
		}
		return cl
	}

	small := cluster(core.Red, core.P(1, 1), core.P(1, 2))
	large := cluster(core.Blue, core.P(5, 1), core.P(5, 2), core.P(6, 1))
	tieLeft := cluster(core.Green, core.P(2, 3), core.P(3, 3), core.P(4, 3))
	tieLow := cluster(core.Red, core.P(2, 1), core.P(3, 1), core.P(3, 2))

	tests := []struct {
		name     string
		clusters []*core.Cluster
		want     *core.Cluster
	}{
		{"empty", nil, nil},
		{"single", []*core.Cluster{small}, small},
		{"largest wins", []*core.Cluster{small, large}, large},
		{"tie smaller column", []*core.Cluster{large, tieLeft}, tieLeft},
		{"tie lower row", []*core.Cluster{tieLeft, tieLow}, tieLow},
		{"tie order independent", []*core.Cluster{tieLow, tieLeft, large}, tieLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.Greedy{}.BestCluster(tt.clusters)
			assert.Same(t, tt.want, got)
		})
	}
}
