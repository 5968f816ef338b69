// Package optim searches solver parameters for the run that minimises a
// metric.
package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/sim"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("got %d parameter names but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Evaluator runs one candidate and returns its metrics.
type Evaluator func(ctx context.Context, params map[string]float64) (map[string]float64, error)

// Search tries every combination and returns the one with the smallest
// value of metricName. Candidates that fail to evaluate are skipped. An
// error is returned only when ctx ends or nothing succeeded.
func (g *GridSearch) Search(ctx context.Context, eval Evaluator, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), eval, metricName, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("no candidate produced metric %q", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval Evaluator,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		metrics, err := eval(ctx, current)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Debug("candidate skipped", "params", current, "err", err)
			return nil
		}

		val, ok := metrics[metricName]
		if ok && val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// ConfigEvaluator runs base with each candidate's parameters applied.
func ConfigEvaluator(base *config.Config) Evaluator {
	return func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		r, err := sim.FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		runCfg := sim.ConfigFrom(cfg)
		runCfg.FrameEvery = 0
		result, err := r.Run(ctx, runCfg)
		if err != nil {
			return nil, err
		}
		return result.Metrics, nil
	}
}
