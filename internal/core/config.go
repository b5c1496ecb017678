package core

// BoardSpec describes the board a game starts from.
// Rows are written top row first with '.' for empty cells.
type BoardSpec struct {
	ID   string
	Name string
	Rows []string
}

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW        int       // Screen width in characters
	ScreenH        int       // Screen height in characters
	TickMillis     int       // Wall time covered by one Step call
	StepMillis     int       // Delay between automatic moves, 0 for manual stepping
	MinClusterSize int       // Smallest removable cluster, 0 for the game default
	ClearBonus     int       // Bonus for emptying the board
	Board          BoardSpec // Board to play
}

// DefaultConfig returns a RuntimeConfig with sensible defaults and no board.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:        80,
		ScreenH:        24,
		TickMillis:     50,
		StepMillis:     400,
		MinClusterSize: 2,
		ClearBonus:     1000,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	Moves     int    // Moves played so far
	Remaining int    // Balls left on the board
	GameOver  bool   // Whether the game has ended
	Paused    bool   // Whether automatic stepping is paused
	End       string // Why the game ended, empty while running
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	Moved bool // Whether a move was played this tick
}
