package core

// axis maps one compression pass onto the board. The parametric coordinate
// is the one balls travel along; the fixed coordinate selects the line.
type axis interface {
	limit(g *Grid) int
	point(param, fixed int) Point
	param(p Point) int
	fixed(p Point) int
}

// verticalAxis moves balls down their column.
type verticalAxis struct{}

func (verticalAxis) limit(g *Grid) int { return g.rows }
func (verticalAxis) point(param, fixed int) Point { return P(fixed, param) }
func (verticalAxis) param(p Point) int { return p.Y }
func (verticalAxis) fixed(p Point) int { return p.X }

// horizontalAxis moves whole columns left along the bottom row.
type horizontalAxis struct{}

func (horizontalAxis) limit(g *Grid) int { return g.cols }
func (horizontalAxis) point(param, fixed int) Point { return P(param, fixed) }
func (horizontalAxis) param(p Point) int { return p.X }
func (horizontalAxis) fixed(p Point) int { return p.Y }

// shiftRange is a run of occupied cells that has to travel offset cells
// back towards the start of an empty range.
type shiftRange struct {
	left   int
	right  int
	offset int
}

// compressor runs one pass along a single axis.
type compressor struct {
	grid   *Grid
	axis   axis
	legacy bool
	offset int // accumulated shift
}

// scanLimit is the last coordinate that may open a shift range.
// Legacy scanning never looks at the final row or column.
func (c *compressor) scanLimit() int {
	limit := c.axis.limit(c.grid)
	if c.legacy {
		return limit - 1
	}
	return limit
}

// buildRange finds the occupied run that follows the empty range at start.
func (c *compressor) buildRange(start Point) (shiftRange, bool) {
	fixed := c.axis.fixed(start)

	left, ok := c.leftBorder(start)
	if !ok {
		return shiftRange{}, false
	}
	right := c.rightBorder(c.axis.point(left, fixed))

	return shiftRange{
		left:   left,
		right:  right,
		offset: left - c.axis.param(start),
	}, true
}

// leftBorder returns the first occupied coordinate at or after start.
func (c *compressor) leftBorder(start Point) (int, bool) {
	fixed := c.axis.fixed(start)
	for v := c.axis.param(start); v <= c.scanLimit(); v++ {
		if c.grid.Occupied(c.axis.point(v, fixed)) {
			return v, true
		}
	}
	return 0, false
}

// rightBorder returns the last coordinate of the contiguous occupied run
// that begins at from.
func (c *compressor) rightBorder(from Point) int {
	fixed := c.axis.fixed(from)
	limit := c.axis.limit(c.grid)
	for v := c.axis.param(from) + 1; v <= limit; v++ {
		if !c.grid.Occupied(c.axis.point(v, fixed)) {
			return v - 1
		}
	}
	return limit
}

// Compress closes the gaps left by a removed cluster: balls first fall down
// their columns, then columns slide left over emptied bottom cells.
// The grid is mutated in place. With legacy set, the final row and column
// are never considered as the start of a run to shift, which reproduces the
// historical scanning limits.
func Compress(g *Grid, removed *Cluster, legacy bool) {
	if removed == nil || removed.Len() == 0 {
		return
	}
	compressVertically(g, removed, legacy)
	compressHorizontally(g, removed, legacy)
}

// compressVertically lets the balls above each removed column segment fall.
func compressVertically(g *Grid, removed *Cluster, legacy bool) {
	c := &compressor{grid: g, axis: verticalAxis{}, legacy: legacy}
	limit := c.axis.limit(g)

	for _, start := range columnStarts(removed) {
		r, ok := c.buildRange(start)
		if !ok {
			continue
		}

		fixed := c.axis.fixed(start)
		c.offset = r.offset
		for v := r.left; v <= limit; v++ {
			b := g.Get(c.axis.point(v, fixed))
			if b == nil {
				c.offset++
				continue
			}
			g.Move(b, c.axis.point(v-c.offset, fixed))
		}
	}
}

// columnStarts returns, for every column the cluster touched, the lowest
// removed position. Columns appear in the order the cluster first touched them.
func columnStarts(removed *Cluster) []Point {
	byColumn := make(map[int]int)
	var starts []Point
	for _, b := range removed.balls {
		i, ok := byColumn[b.Point.X]
		if !ok {
			byColumn[b.Point.X] = len(starts)
			starts = append(starts, b.Point)
			continue
		}
		if b.Point.Y < starts[i].Y {
			starts[i] = b.Point
		}
	}
	return starts
}

// compressHorizontally slides columns left over empty bottom cells that
// appeared at or right of the removed cluster.
func compressHorizontally(g *Grid, removed *Cluster, legacy bool) {
	c := &compressor{grid: g, axis: horizontalAxis{}, legacy: legacy}
	cross := verticalAxis{}.limit(g)

	for _, start := range c.rowStarts(removed.PriorityBall().Point.X) {
		r, ok := c.buildRange(start)
		if !ok {
			continue
		}

		c.offset += r.offset
		for v := r.left; v <= r.right; v++ {
			for f := 1; f <= cross; f++ {
				b := g.Get(c.axis.point(v, f))
				if b == nil {
					break
				}
				g.Move(b, c.axis.point(v-c.offset, f))
			}
		}
	}
}

// rowStarts returns the first column of every empty range on the bottom row,
// scanning from the removed cluster's leftmost column.
func (c *compressor) rowStarts(fromColumn int) []Point {
	const row = 1
	var starts []Point

	x := fromColumn
	if x <= 1 {
		if !c.grid.Occupied(P(1, row)) {
			starts = append(starts, P(1, row))
		}
		x = 2
	}

	for ; x <= c.scanLimit(); x++ {
		if c.grid.Occupied(P(x-1, row)) && !c.grid.Occupied(P(x, row)) {
			starts = append(starts, P(x, row))
		}
	}
	return starts
}
