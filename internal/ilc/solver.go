package ilc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
)

// pinvSolve returns the minimum-norm least squares solution of a*x = b via
// a thin SVD, discarding singular values below the usual rank cutoff
// eps * max(m, n) * sigma_max.
func pinvSolve(a *mat.Dense, b []float64) ([]float64, error) {
	m, n := a.Dims()
	if len(b) != m {
		return nil, fmt.Errorf("solve: rhs has %d entries, matrix has %d rows", len(b), m)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("solve: svd failed on %dx%d system", m, n)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	cutoff := 0.0
	if len(s) > 0 {
		eps := math.Nextafter(1, 2) - 1
		cutoff = eps * float64(max(m, n)) * s[0]
	}

	// w = Sigma^+ U^T b
	w := make([]float64, len(s))
	for j := range s {
		if s[j] <= cutoff {
			continue
		}
		dot := 0.0
		for i := 0; i < m; i++ {
			dot += u.At(i, j) * b[i]
		}
		w[j] = dot / s[j]
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := range w {
			sum += v.At(i, j) * w[j]
		}
		x[i] = sum
	}
	return x, nil
}

// solveUpdate computes the control correction for one trial: the
// minimum-norm solution of the operator stacked over the damped control
// penalty,
//
//	[ J ]          [ -err ]
//	[ w*W ] du  =  [  0   ]
//
// scaled by the step size alpha. W is the diagonal per-channel
// normalization, tiled over the horizon.
func solveUpdate(op *mat.Dense, errVec, tiledScale []float64, weight, alpha float64) ([]float64, error) {
	r, c := op.Dims()
	if len(errVec) != r {
		return nil, fmt.Errorf("solve: error vector has %d entries, operator has %d rows", len(errVec), r)
	}
	if len(tiledScale) != c {
		return nil, fmt.Errorf("solve: scale has %d entries, operator has %d columns", len(tiledScale), c)
	}
	if !dynamo.State(errVec).IsValid() {
		return nil, dynamo.ErrNonFinite
	}

	stacked := mat.NewDense(r+c, c, nil)
	stacked.Slice(0, r, 0, c).(*mat.Dense).Copy(op)
	for i := 0; i < c; i++ {
		stacked.Set(r+i, i, weight*tiledScale[i])
	}

	rhs := make([]float64, r+c)
	for i, e := range errVec {
		rhs[i] = -e
	}

	update, err := pinvSolve(stacked, rhs)
	if err != nil {
		return nil, err
	}
	for i := range update {
		update[i] *= alpha
	}
	if !dynamo.State(update).IsValid() {
		return nil, dynamo.ErrNonFinite
	}
	return update, nil
}
