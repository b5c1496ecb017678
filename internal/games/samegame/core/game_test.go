package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

func TestScoreFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{2, 0},
		{3, 1},
		{4, 4},
		{5, 9},
		{10, 64},
		{150, 21904},
	}

	for _, tt := range tests {
		if got := core.ScoreFor(tt.n); got != tt.want {
			t.Errorf("ScoreFor(%d) = %d, expected %d", tt.n, got, tt.want)
		}
	}
}

func TestGameScenarios(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		moves     []core.Move
		score     int
		remaining int
		end       core.EndReason
	}{
		{
			name: "uniform board clears in one move",
			rows: []string{"RR", "RR"},
			moves: []core.Move{
				{Number: 1, Row: 1, Column: 1, Removed: 4, Color: core.Red, Score: 4},
			},
			score:     1004,
			remaining: 0,
			end:       core.EndCleared,
		},
		{
			name:      "single ball is stuck",
			rows:      []string{"..", "R."},
			score:     0,
			remaining: 1,
			end:       core.EndStuck,
		},
		{
			name:      "diagonal balls are stuck",
			rows:      []string{"R.", ".R"},
			score:     0,
			remaining: 2,
			end:       core.EndStuck,
		},
		{
			name:      "empty board earns the bonus",
			rows:      []string{"..", ".."},
			score:     1000,
			remaining: 0,
			end:       core.EndCleared,
		},
		{
			name: "three moves",
			rows: []string{"RGG", "RGB", "RRB"},
			moves: []core.Move{
				{Number: 1, Row: 1, Column: 1, Removed: 4, Color: core.Red, Score: 4},
				{Number: 2, Row: 1, Column: 1, Removed: 2, Color: core.Green, Score: 0},
				{Number: 3, Row: 1, Column: 1, Removed: 2, Color: core.Blue, Score: 0},
			},
			score:     4,
			remaining: 1,
			end:       core.EndStuck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := core.NewGame(mustGrid(t, tt.rows...), nil, core.DefaultRules())
			moves := game.Run()

			if len(tt.moves) == 0 {
				assert.Empty(t, moves)
			} else {
				assert.Equal(t, tt.moves, moves)
			}
			assert.Equal(t, tt.score, game.Score())
			assert.Equal(t, tt.remaining, game.Remaining())
			assert.Equal(t, tt.end, game.End())
			assert.True(t, game.Done())

			_, ok := game.Step()
			assert.False(t, ok, "a finished game does not step")
			assert.Equal(t, tt.score, game.Score(), "bonus is awarded once")
		})
	}
}

func TestGameLegacyEdgeScan(t *testing.T) {
	rows := []string{"RGG", "RGB", "RRB"}

	rules := core.DefaultRules()
	corrected := core.NewGame(mustGrid(t, rows...), nil, rules)
	rules.LegacyEdgeScan = true
	legacy := core.NewGame(mustGrid(t, rows...), nil, rules)

	assert.Equal(t, corrected.Run(), legacy.Run())
	assert.Equal(t, corrected.Score(), legacy.Score())

	// The last ball only falls with the corrected scan.
	assert.Equal(t, "...\n...\nG..", corrected.Grid().String())
	assert.Equal(t, "G..\n...\n...", legacy.Grid().String())
}

func TestGameMinClusterSize(t *testing.T) {
	rules := core.DefaultRules()
	rules.MinClusterSize = 3

	game := core.NewGame(mustGrid(t, "RRB", "GGB"), nil, rules)
	assert.Empty(t, game.Run())
	assert.Equal(t, core.EndStuck, game.End())
	assert.Equal(t, 6, game.Remaining())

	rules.MinClusterSize = 0
	game = core.NewGame(mustGrid(t, "R"), nil, rules)
	assert.Equal(t, 2, game.Rules().MinClusterSize, "non-positive minimum falls back to the default")
}

func TestGameInvariants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		game := core.NewGame(mustGrid(t, randomRows(newRand(seed), 10, 15)...), nil, core.DefaultRules())
		expected := 0

		for {
			before := game.Remaining()
			prevScore := game.Score()
			move, ok := game.Step()
			if !ok {
				break
			}

			require.GreaterOrEqual(t, move.Removed, 2, "seed %d", seed)
			require.Equal(t, before-move.Removed, game.Remaining(), "seed %d move %d", seed, move.Number)
			require.Equal(t, core.ScoreFor(move.Removed), move.Score)
			require.GreaterOrEqual(t, game.Score(), prevScore, "score never decreases")
			requireCompact(t, game.Grid())

			clusters := game.Clusters()
			require.Equal(t, clusterKeys(clusters), clusterKeys(core.BuildClusters(game.Grid())))
			expected += move.Score
		}

		if game.End() == core.EndCleared {
			expected += core.DefaultRules().ClearBonus
			require.Zero(t, game.Remaining())
		} else {
			for _, c := range game.Clusters() {
				require.Equal(t, 1, c.Len(), "seed %d: stuck with a removable cluster", seed)
			}
		}
		require.Equal(t, expected, game.Score(), "seed %d", seed)
	}
}

func TestGameDeterministic(t *testing.T) {
	rows := randomRows(newRand(7), 10, 15)

	first := core.NewGame(mustGrid(t, rows...), nil, core.DefaultRules())
	second := core.NewGame(mustGrid(t, rows...), nil, core.DefaultRules())
	first.Run()
	second.Run()

	assert.Equal(t, first.Snapshot(), second.Snapshot())
	assert.True(t, first.Grid().Equal(second.Grid()))
}

func TestGameSnapshot(t *testing.T) {
	game := core.NewGame(mustGrid(t, "RGG", "RGB", "RRB"), nil, core.DefaultRules())

	s := game.Snapshot()
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 3, s.Cols)
	assert.Equal(t, 9, s.Remaining)
	assert.Equal(t, 3, s.Clusters)
	assert.Equal(t, 4, s.Largest)
	assert.Nil(t, s.LastMove)
	assert.Equal(t, core.EndNone, s.End)

	move, ok := game.Step()
	require.True(t, ok)
	s = game.Snapshot()
	require.NotNil(t, s.LastMove)
	assert.Equal(t, move, *s.LastMove)
	assert.Equal(t, 1, s.Moves)
	assert.Equal(t, 5, s.Remaining)
}

func TestRenderASCII(t *testing.T) {
	game := core.NewGame(mustGrid(t, "RR", "RR"), nil, core.DefaultRules())

	want := "Moves: 0 | Score: 0 | Remaining: 4 | running\n" +
		" 2 RR\n" +
		" 1 RR\n" +
		"   12\n"
	assert.Equal(t, want, core.RenderASCII(game))

	game.Run()
	want = "Moves: 1 | Score: 1004 | Remaining: 0 | cleared\n" +
		" 2 ..\n" +
		" 1 ..\n" +
		"   12\n"
	assert.Equal(t, want, core.RenderASCII(game))
}
