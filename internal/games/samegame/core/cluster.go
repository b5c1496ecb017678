package core

// Cluster is a non-empty, color-homogeneous group of balls in insertion
// order. It tracks its priority ball: the one with the smallest column,
// then the smallest row.
type Cluster struct {
	color    Color
	balls    []*Ball
	seen     map[Point]struct{}
	priority int // index into balls, -1 while empty
}

// NewCluster creates an empty cluster of the given color.
func NewCluster(c Color) *Cluster {
	return &Cluster{
		color:    c,
		seen:     make(map[Point]struct{}),
		priority: -1,
	}
}

// Color returns the cluster color.
func (c *Cluster) Color() Color {
	return c.color
}

// Len returns the number of balls in the cluster.
func (c *Cluster) Len() int {
	return len(c.balls)
}

// Ball returns the i-th ball in insertion order.
func (c *Cluster) Ball(i int) *Ball {
	return c.balls[i]
}

// Balls returns a copy of the cluster's balls in insertion order.
func (c *Cluster) Balls() []*Ball {
	out := make([]*Ball, len(c.balls))
	copy(out, c.balls)
	return out
}

// PriorityBall returns the most prioritized ball, or nil for an empty cluster.
func (c *Cluster) PriorityBall() *Ball {
	if c.priority < 0 {
		return nil
	}
	return c.balls[c.priority]
}

// Contains reports whether a ball equal to b (same color and position) is in the cluster.
func (c *Cluster) Contains(b *Ball) bool {
	if b.Color != c.color {
		return false
	}
	_, ok := c.seen[b.Point]
	return ok
}

// Add appends b to the cluster. A ball already present is not added twice.
// Returns a *ColorMismatchError if b has a different color.
func (c *Cluster) Add(b *Ball) error {
	if b.Color != c.color {
		return &ColorMismatchError{Got: b.Color, Want: c.color}
	}
	if c.Contains(b) {
		return nil
	}

	c.balls = append(c.balls, b)
	c.seen[b.Point] = struct{}{}

	last := len(c.balls) - 1
	if c.priority < 0 || b.Precedes(c.balls[c.priority]) {
		c.priority = last
	}
	return nil
}

// CanBelong reports whether c could be merged into other: same color and at
// least one pair of edge-adjacent balls.
func (c *Cluster) CanBelong(other *Cluster) bool {
	if c.color != other.color {
		return false
	}
	for _, b := range c.balls {
		for _, ob := range other.balls {
			if b.Nearby(ob) {
				return true
			}
		}
	}
	return false
}

// Merge adds every ball of other that is not already present.
func (c *Cluster) Merge(other *Cluster) error {
	for _, b := range other.balls {
		if err := c.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Points returns the positions of the cluster's balls in insertion order.
func (c *Cluster) Points() []Point {
	out := make([]Point, len(c.balls))
	for i, b := range c.balls {
		out[i] = b.Point
	}
	return out
}
