package core

import "fmt"

// disjointSet is a union-find structure over flat cell indices.
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSet{parent: parent, rank: make([]uint8, n)}
}

// find returns the representative of i, halving paths along the way.
func (d *disjointSet) find(i int) int {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

// union joins the sets containing a and b.
func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
}

// BuildClusters groups the balls of g into maximal same-color clusters of
// edge-adjacent balls.
//
// The board is scanned bottom row first, left to right. Each ball is joined
// with its left and lower neighbours when they share its color, so a single
// pass yields the same partition as repeatedly merging touching clusters
// until nothing merges. Clusters are returned in the scan order of their
// first ball, and each cluster lists its balls in scan order.
//
// Time: O(W·H·α(W·H)). Memory: O(W·H).
func BuildClusters(g *Grid) []*Cluster {
	ds := newDisjointSet(g.rows * g.cols)

	for y := 1; y <= g.rows; y++ {
		for x := 1; x <= g.cols; x++ {
			p := P(x, y)
			b := g.Get(p)
			if b == nil {
				continue
			}
			if left := g.Get(P(x-1, y)); left != nil && left.Color == b.Color {
				ds.union(g.index(p), g.index(left.Point))
			}
			if below := g.Get(P(x, y-1)); below != nil && below.Color == b.Color {
				ds.union(g.index(p), g.index(below.Point))
			}
		}
	}

	byRoot := make(map[int]*Cluster)
	var clusters []*Cluster
	for _, b := range g.Balls() {
		root := ds.find(g.index(b.Point))
		c, ok := byRoot[root]
		if !ok {
			c = NewCluster(b.Color)
			byRoot[root] = c
			clusters = append(clusters, c)
		}
		if err := c.Add(b); err != nil {
			// Roots only ever join same-colored balls.
			panic(fmt.Sprintf("core: cluster builder joined %v: %v", b.Point, err))
		}
	}
	return clusters
}
