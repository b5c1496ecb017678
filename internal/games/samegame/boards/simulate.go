package boards

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// SimulateOne plays a board to the end. number is the 1-based position of
// the board in its batch.
func SimulateOne(number int, b formats.Board, rules core.Rules) (formats.Result, error) {
	game, err := b.NewGame(rules)
	if err != nil {
		return formats.Result{}, fmt.Errorf("boards: game %d: %w", number, err)
	}
	game.Run()
	return formats.NewResult(number, b.ID, game), nil
}

// Simulate plays every board and returns the results in input order.
// Up to parallel boards run at once; values below 2 run them sequentially.
// Each board gets its own game, so boards never share state.
func Simulate(ctx context.Context, list []formats.Board, rules core.Rules, parallel int) ([]formats.Result, error) {
	results := make([]formats.Result, len(list))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))

	for i := range list {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := SimulateOne(i+1, list[i], rules)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
