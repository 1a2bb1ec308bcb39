package experiment

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/world"
)

// Ensemble runs independent worlds that differ only in seed
// (base seed + run index). Worlds share no state.
type Ensemble struct {
	base    *config.Config
	numRuns int
	logger  *slog.Logger
}

func NewEnsemble(base *config.Config, numRuns int, logger *slog.Logger) *Ensemble {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ensemble{base: base.Clone(), numRuns: numRuns, logger: logger}
}

// Run returns one result per seed, in seed order. The first failure
// cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, rc Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < e.numRuns; i++ {
		i := i
		cfg := e.base.Clone()
		cfg.Seed = e.base.Seed + int64(i)
		g.Go(func() error {
			logger := e.logger.With("seed", cfg.Seed)
			w, err := world.New(cfg, world.WithLogger(logger))
			if err != nil {
				return err
			}
			r := NewRunner(w, metrics.Defaults()...)
			r.SetLogger(logger)
			res, err := r.Run(ctx, rc)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
