package careervalue

import (
	"context"

	"github.com/pfrederiksen/nfl-combine/internal/combine"
	"golang.org/x/sync/errgroup"
)

// Pool runs Compute for many players with bounded parallelism.
// With one worker the players are processed strictly in order.
type Pool struct {
	agg     *Aggregator
	workers int
}

// NewPool creates a pool. Fewer than one worker means one.
func NewPool(agg *Aggregator, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{agg: agg, workers: workers}
}

// ComputeAll returns one Result per player, in the order given.
// It only fails when ctx is canceled.
func (p *Pool) ComputeAll(ctx context.Context, players []string, urls *combine.URLMap) ([]Result, error) {
	results := make([]Result, len(players))

	if p.workers == 1 {
		for i, player := range players {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = p.agg.Compute(ctx, player, urls)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, player := range players {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = p.agg.Compute(gctx, player, urls)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
