package core

// Snapshot captures the complete game state for determinism tests, replays
// and API responses.
type Snapshot struct {
	Rows      int
	Cols      int
	Cells     [][]Cell // Top row first
	Moves     int
	Score     int
	Remaining int
	Clusters  int
	Largest   int // Size of the largest cluster on the board
	LastMove  *Move
	End       EndReason
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Rows:      g.grid.Rows(),
		Cols:      g.grid.Cols(),
		Cells:     g.grid.Cells(),
		Moves:     len(g.moves),
		Score:     g.player.Score(),
		Remaining: g.grid.Remaining(),
		Clusters:  len(g.clusters),
		End:       g.end,
	}
	for _, c := range g.clusters {
		if c.Len() > s.Largest {
			s.Largest = c.Len()
		}
	}
	if n := len(g.moves); n > 0 {
		last := g.moves[n-1]
		s.LastMove = &last
	}
	return s
}
