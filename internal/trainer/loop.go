package trainer

import (
	"context"
	"fmt"
	"log"
	"time"

	"catmodel/internal/metrics"
	"catmodel/internal/model"

	"gonum.org/v1/gonum/mat"
)

const defaultLogEvery = 100

// Options captures the knobs required by the training loop.
type Options struct {
	// Examples must equal the number of columns of X.
	Examples     int
	Iterations   int
	LearningRate float64
	LogEvery     int
	Logger       *log.Logger
}

// Result is the outcome of a completed run.
type Result struct {
	Params model.Params
	// Grads are the gradients from the last iteration, zero when no iteration ran.
	Grads model.Grads
	// Costs holds the cost at every LogEvery-th iteration, starting with iteration 0.
	Costs []float64
}

// Train fits logistic regression weights to x (features x examples) and y (1 x examples)
// with batch gradient descent starting from zero weights.
func Train(ctx context.Context, x, y mat.Matrix, opts Options) (Result, error) {
	if opts.Examples <= 0 {
		return Result{}, fmt.Errorf("trainer: %w: examples must be > 0 (got %d)", model.ErrDomain, opts.Examples)
	}
	if opts.Iterations < 0 {
		return Result{}, fmt.Errorf("trainer: %w: iterations must be >= 0 (got %d)", model.ErrDomain, opts.Iterations)
	}
	if opts.LearningRate <= 0 {
		return Result{}, fmt.Errorf("trainer: %w: learning rate must be > 0 (got %g)", model.ErrDomain, opts.LearningRate)
	}
	if opts.LogEvery <= 0 {
		opts.LogEvery = defaultLogEvery
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	features, examples := x.Dims()
	if examples != opts.Examples {
		return Result{}, fmt.Errorf("trainer: %w: examples=%d but X has %d columns", model.ErrShapeMismatch, opts.Examples, examples)
	}
	if err := model.CheckBatch(x, y); err != nil {
		return Result{}, fmt.Errorf("trainer: %w", err)
	}
	params, err := model.NewParams(features)
	if err != nil {
		return Result{}, fmt.Errorf("trainer: %w", err)
	}
	res := Result{Params: params, Grads: model.ZeroGrads(features)}
	var window metrics.Window

	for i := 0; i < opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		start := time.Now()
		grads, cost, err := model.Propagate(opts.Examples, params.W, params.B, x, y)
		if err != nil {
			return Result{}, fmt.Errorf("trainer: iteration %d: %w", i, err)
		}
		params, err = params.Descend(grads, opts.LearningRate)
		if err != nil {
			return Result{}, fmt.Errorf("trainer: iteration %d: %w", i, err)
		}
		res.Grads = grads

		window.Record(opts.Examples, time.Since(start), cost)

		if i%opts.LogEvery == 0 {
			res.Costs = append(res.Costs, cost)
			snap := window.Snapshot()
			logger.Printf("iter=%d cost=%.6f examples_per_sec=%.1f compute_ms=%.3f",
				i,
				snap.LastCost,
				snap.ExamplesPerSec,
				snap.AvgComputeMS,
			)
		}
	}

	res.Params = params
	return res, nil
}
