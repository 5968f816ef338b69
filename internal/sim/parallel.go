package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/stablefluid/internal/config"
)

// Ensemble runs independent copies of one configuration, each with its
// own seed and its own fluid, on separate goroutines.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int) *Ensemble {
	return &Ensemble{base: cfg, numRuns: numRuns, seedStart: cfg.Seed}
}

// Run starts every member and waits for all of them. The first failure
// cancels the others. The error joins the real failures and leaves out the
// cancellations they caused.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seeds := e.Seeds()
	results := make([]*Result, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = e.member(ctx, seed, cfg)
			if errs[i] != nil {
				cancel()
			}
		}()
	}
	wg.Wait()

	var failed []error
	for i, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			failed = append(failed, fmt.Errorf("run %d (seed %d): %w", i, seeds[i], err))
		}
	}
	if len(failed) > 0 {
		return nil, errors.Join(failed...)
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (e *Ensemble) member(ctx context.Context, seed int64, cfg Config) (*Result, error) {
	c := e.base.Clone()
	c.Seed = seed
	r, err := FromConfig(c)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, cfg)
}

// Seeds returns the seed used by each run, in result order.
func (e *Ensemble) Seeds() []int64 {
	out := make([]int64, e.numRuns)
	for i := range out {
		out[i] = e.seedStart + int64(i)
	}
	return out
}
