package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShapeMismatch reports incompatible dimensions between w, X and Y.
	ErrShapeMismatch = errors.New("model: shape mismatch")
	// ErrDomain reports out-of-range inputs such as non-binary labels.
	ErrDomain = errors.New("model: value out of domain")
)

// Batch pairs a feature matrix X (features x examples) with its label row Y (1 x examples).
type Batch struct {
	X *mat.Dense
	Y *mat.Dense
}

// NewBatch validates shapes and labels before wrapping them.
func NewBatch(x, y *mat.Dense) (Batch, error) {
	if x == nil || y == nil {
		return Batch{}, fmt.Errorf("%w: nil features or labels", ErrShapeMismatch)
	}
	if err := CheckBatch(x, y); err != nil {
		return Batch{}, err
	}
	return Batch{X: x, Y: y}, nil
}

// Features returns the number of rows of X.
func (b Batch) Features() int {
	n, _ := b.X.Dims()
	return n
}

// Examples returns the number of columns of X.
func (b Batch) Examples() int {
	_, m := b.X.Dims()
	return m
}

// CheckBatch verifies every entry of x is finite and y is a 1 x cols(x) row of binary labels.
func CheckBatch(x, y mat.Matrix) error {
	if isNil(x) || isNil(y) {
		return fmt.Errorf("%w: nil features or labels", ErrShapeMismatch)
	}
	n, m := x.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if v := x.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: feature %d of example %d is %g", ErrDomain, i, j, v)
			}
		}
	}
	yr, yc := y.Dims()
	if yr != 1 || yc != m {
		return fmt.Errorf("%w: labels are %dx%d, want 1x%d", ErrShapeMismatch, yr, yc, m)
	}
	for j := 0; j < yc; j++ {
		if v := y.At(0, j); v != 0 && v != 1 {
			return fmt.Errorf("%w: label %d is %g, want 0 or 1", ErrDomain, j, v)
		}
	}
	return nil
}

// isNil reports a missing matrix, including a nil *mat.Dense held in the interface.
func isNil(a mat.Matrix) bool {
	if a == nil {
		return true
	}
	d, ok := a.(*mat.Dense)
	return ok && d == nil
}
