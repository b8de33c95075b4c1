package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// Threshold separates the positive class; an activation equal to it predicts 0.
	Threshold = 0.5

	// maxExponent bounds the argument to math.Exp in Sigmoid.
	maxExponent = 500
	// logEpsilon keeps activations away from 0 and 1 before taking logs.
	logEpsilon = 1e-12
)

// Params holds the trained weight column and bias.
type Params struct {
	W *mat.Dense
	B float64
}

// Grads holds the cost gradient with respect to Params.
type Grads struct {
	DW *mat.Dense
	DB float64
}

// NewParams returns zero weights for the given number of features and a zero bias.
func NewParams(features int) (Params, error) {
	if features <= 0 {
		return Params{}, fmt.Errorf("%w: features must be > 0 (got %d)", ErrDomain, features)
	}
	return Params{W: mat.NewDense(features, 1, nil), B: 0}, nil
}

// ZeroGrads returns gradients of the right shape with every entry zero.
func ZeroGrads(features int) Grads {
	return Grads{DW: mat.NewDense(features, 1, nil)}
}

// Descend takes one gradient-descent step and returns the updated record.
// p is left untouched.
func (p Params) Descend(g Grads, learningRate float64) (Params, error) {
	if isNil(p.W) || isNil(g.DW) {
		return Params{}, fmt.Errorf("%w: params or grads have no weights", ErrShapeMismatch)
	}
	n, c := p.W.Dims()
	gr, gc := g.DW.Dims()
	if c != 1 || gr != n || gc != 1 {
		return Params{}, fmt.Errorf("%w: weights are %dx%d, grads are %dx%d", ErrShapeMismatch, n, c, gr, gc)
	}
	w := mat.NewDense(n, 1, nil)
	w.Scale(learningRate, g.DW)
	w.Sub(p.W, w)
	return Params{W: w, B: p.B - learningRate*g.DB}, nil
}

// Score computes Z = wᵀX + b as a 1 x m row.
func Score(w, x mat.Matrix, b float64) (*mat.Dense, error) {
	if isNil(w) || isNil(x) {
		return nil, fmt.Errorf("%w: nil weights or features", ErrShapeMismatch)
	}
	wr, wc := w.Dims()
	xr, xc := x.Dims()
	if wc != 1 {
		return nil, fmt.Errorf("%w: weights are %dx%d, want a column", ErrShapeMismatch, wr, wc)
	}
	if wr != xr {
		return nil, fmt.Errorf("%w: %d weights for %d features", ErrShapeMismatch, wr, xr)
	}
	if xc == 0 {
		return nil, fmt.Errorf("%w: no examples", ErrShapeMismatch)
	}
	z := mat.NewDense(1, xc, nil)
	z.Mul(w.T(), x)
	z.Apply(func(_, _ int, v float64) float64 { return v + b }, z)
	return z, nil
}

// Sigmoid returns 1/(1+e^-z) with the exponent clamped to avoid overflow.
func Sigmoid(z float64) float64 {
	if z > maxExponent {
		z = maxExponent
	} else if z < -maxExponent {
		z = -maxExponent
	}
	return 1 / (1 + math.Exp(-z))
}

// Activate applies Sigmoid elementwise.
func Activate(z mat.Matrix) *mat.Dense {
	var a mat.Dense
	a.Apply(func(_, _ int, v float64) float64 { return Sigmoid(v) }, z)
	return &a
}

// Cost returns the mean cross-entropy of activations a against labels y.
func Cost(a, y mat.Matrix, m int) (float64, error) {
	if m <= 0 {
		return 0, fmt.Errorf("%w: example count must be > 0 (got %d)", ErrDomain, m)
	}
	ar, ac := a.Dims()
	yr, yc := y.Dims()
	if ar != 1 || ac != m || yr != 1 || yc != m {
		return 0, fmt.Errorf("%w: activations %dx%d and labels %dx%d, want 1x%d", ErrShapeMismatch, ar, ac, yr, yc, m)
	}
	terms := make([]float64, m)
	for j := range terms {
		av := clampProb(a.At(0, j))
		yv := y.At(0, j)
		terms[j] = yv*math.Log(av) + (1-yv)*math.Log(1-av)
	}
	return -floats.Sum(terms) / float64(m), nil
}

// Propagate runs one forward and backward pass and returns the gradients and cost.
// None of the inputs are modified.
func Propagate(m int, w mat.Matrix, b float64, x, y mat.Matrix) (Grads, float64, error) {
	if m <= 0 {
		return Grads{}, 0, fmt.Errorf("%w: example count must be > 0 (got %d)", ErrDomain, m)
	}
	if isNil(w) || isNil(x) || isNil(y) {
		return Grads{}, 0, fmt.Errorf("%w: nil weights, features or labels", ErrShapeMismatch)
	}
	n, xc := x.Dims()
	if xc != m {
		return Grads{}, 0, fmt.Errorf("%w: m=%d but X has %d examples", ErrShapeMismatch, m, xc)
	}
	if err := CheckBatch(x, y); err != nil {
		return Grads{}, 0, err
	}

	z, err := Score(w, x, b)
	if err != nil {
		return Grads{}, 0, err
	}
	a := Activate(z)
	cost, err := Cost(a, y, m)
	if err != nil {
		return Grads{}, 0, err
	}

	var dz mat.Dense
	dz.Sub(a, y)

	inv := 1 / float64(m)
	dw := mat.NewDense(n, 1, nil)
	dw.Mul(x, dz.T())
	dw.Scale(inv, dw)
	db := inv * floats.Sum(dz.RawRowView(0))

	return Grads{DW: dw, DB: db}, cost, nil
}

// Predict labels each column of x with 1 when its activation exceeds Threshold.
func Predict(p Params, x mat.Matrix) (*mat.VecDense, error) {
	if isNil(p.W) {
		return nil, fmt.Errorf("%w: params have no weights", ErrShapeMismatch)
	}
	z, err := Score(p.W, x, p.B)
	if err != nil {
		return nil, err
	}
	a := Activate(z)
	_, k := a.Dims()
	out := mat.NewVecDense(k, nil)
	for i := 0; i < k; i++ {
		if a.At(0, i) > Threshold {
			out.SetVec(i, 1)
		}
	}
	return out, nil
}

func clampProb(v float64) float64 {
	return math.Min(math.Max(v, logEpsilon), 1-logEpsilon)
}
