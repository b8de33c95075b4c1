package metrics

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Window accumulates timing stats across multiple iterations.
type Window struct {
	examples int
	compute  time.Duration
	steps    int
	lastCost float64
}

// Record adds a new measurement to the window.
func (w *Window) Record(examples int, computeTime time.Duration, cost float64) {
	w.examples += examples
	w.compute += computeTime
	w.steps++
	w.lastCost = cost
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{}
	if w.compute > 0 {
		snap.ExamplesPerSec = float64(w.examples) / w.compute.Seconds()
	}
	if w.steps > 0 {
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.steps)
	}
	snap.Steps = w.steps
	snap.LastCost = w.lastCost

	w.examples = 0
	w.compute = 0
	w.steps = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps          int
	ExamplesPerSec float64
	AvgComputeMS   float64
	LastCost       float64
}

// Accuracy returns the fraction of predictions equal to the matching label in the 1 x k row labels.
func Accuracy(pred mat.Vector, labels mat.Matrix) (float64, error) {
	k := pred.Len()
	r, c := labels.Dims()
	if r != 1 || c != k {
		return 0, fmt.Errorf("accuracy: %d predictions for %dx%d labels", k, r, c)
	}
	if k == 0 {
		return 0, nil
	}
	hits := make([]float64, k)
	for i := range hits {
		if pred.AtVec(i) == labels.At(0, i) {
			hits[i] = 1
		}
	}
	return floats.Sum(hits) / float64(k), nil
}
