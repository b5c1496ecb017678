package core

import "fmt"

// Rules holds the scoring and termination parameters of a game.
type Rules struct {
	MinClusterSize int  // Smallest cluster that may be removed
	ClearBonus     int  // Awarded once when the board is emptied
	LegacyEdgeScan bool // Reproduce the historical compression scan limits
}

// DefaultRules returns the standard rules: clusters of two or more balls,
// 1000 points for clearing the board.
func DefaultRules() Rules {
	return Rules{
		MinClusterSize: 2,
		ClearBonus:     1000,
	}
}

// ScoreFor returns the points for removing a cluster of n balls: (n-2)².
func ScoreFor(n int) int {
	d := n - 2
	return d * d
}

// Move records a single turn. Row and Column are the priority ball's
// position at the moment of removal, before compression.
type Move struct {
	Number  int   `json:"number"`  // 1-based sequence number
	Row     int   `json:"row"`     // Row of the priority ball
	Column  int   `json:"column"`  // Column of the priority ball
	Removed int   `json:"removed"` // Number of balls removed
	Color   Color `json:"color"`   // Color of the removed cluster
	Score   int   `json:"score"`   // Points earned by this move
}

// String returns a compact description of the move.
func (m Move) String() string {
	return fmt.Sprintf("#%d %s@(%d,%d) x%d +%d", m.Number, m.Color, m.Row, m.Column, m.Removed, m.Score)
}

// Player holds the running score of a game.
type Player struct {
	score int
}

// Score returns the current score.
func (p *Player) Score() int {
	return p.score
}

// AddScore adds points to the score. Negative amounts are ignored so the
// score never decreases.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.score += points
	}
}

// EndReason describes why a game terminated.
type EndReason string

const (
	EndNone    EndReason = ""        // Still running
	EndCleared EndReason = "cleared" // No balls left, bonus awarded
	EndStuck   EndReason = "stuck"   // Balls left but no removable cluster
)

// Game runs the turn loop over a single board. A Game exclusively owns its
// grid; independent games share no state.
type Game struct {
	grid     *Grid
	strategy Strategy
	rules    Rules
	player   Player
	clusters []*Cluster
	moves    []Move
	end      EndReason
}

// NewGame creates a game over grid. A nil strategy selects Greedy.
func NewGame(grid *Grid, strategy Strategy, rules Rules) *Game {
	if strategy == nil {
		strategy = Greedy{}
	}
	if rules.MinClusterSize < 1 {
		rules.MinClusterSize = DefaultRules().MinClusterSize
	}
	return &Game{
		grid:     grid,
		strategy: strategy,
		rules:    rules,
		clusters: BuildClusters(grid),
	}
}

// Step plays one turn. It returns the recorded move and true, or a zero
// Move and false once the game has terminated.
func (g *Game) Step() (Move, bool) {
	if g.end != EndNone {
		return Move{}, false
	}

	best := g.strategy.BestCluster(g.clusters)
	if best == nil {
		g.player.AddScore(g.rules.ClearBonus)
		g.end = EndCleared
		return Move{}, false
	}
	if best.Len() < g.rules.MinClusterSize {
		g.end = EndStuck
		return Move{}, false
	}

	priority := best.PriorityBall()
	move := Move{
		Number:  len(g.moves) + 1,
		Row:     priority.Point.Y,
		Column:  priority.Point.X,
		Removed: best.Len(),
		Color:   best.Color(),
		Score:   ScoreFor(best.Len()),
	}
	g.moves = append(g.moves, move)
	g.player.AddScore(move.Score)

	g.grid.RemoveCluster(best)
	Compress(g.grid, best, g.rules.LegacyEdgeScan)
	g.clusters = BuildClusters(g.grid)

	return move, true
}

// Run plays until the game terminates and returns the move log.
func (g *Game) Run() []Move {
	for {
		if _, ok := g.Step(); !ok {
			return g.Moves()
		}
	}
}

// Moves returns a copy of the move log.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// Score returns the player's current score.
func (g *Game) Score() int {
	return g.player.Score()
}

// Remaining returns the number of balls left on the board.
func (g *Game) Remaining() int {
	return g.grid.Remaining()
}

// Done reports whether the game has terminated.
func (g *Game) Done() bool {
	return g.end != EndNone
}

// End returns why the game terminated, or EndNone while running.
func (g *Game) End() EndReason {
	return g.end
}

// Grid returns the board. Callers must not mutate it.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Clusters returns the clusters present on the current board.
func (g *Game) Clusters() []*Cluster {
	out := make([]*Cluster, len(g.clusters))
	copy(out, g.clusters)
	return out
}

// Rules returns the rules the game was created with.
func (g *Game) Rules() Rules {
	return g.rules
}
