package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
)

// jacobianFunc returns the one-step discrete Jacobians of the nominal model
// at a linearization point: A = I + dt*dF/dx, B = dt*dF/du.
type jacobianFunc func(x dynamo.State, u dynamo.Control, dt float64) (a, b *mat.Dense)

// liftOperator assembles the lifted sensitivity matrix from per-step
// linearizations. states and controls hold one pair per step plus a
// repeated final pair. Row block i is the output at sample i+1, column
// block j the control applied over step j.
//
// A position output reads the state-transition recursion directly. A
// difference output is the change between consecutive samples over dt; its
// final sample has no successor and contributes a zero row.
func liftOperator(dt float64, states []dynamo.State, controls []dynamo.Control, jac jacobianFunc, c *mat.Dense, kind dynamo.OutputKind) *mat.Dense {
	n := len(states) - 1
	outDim, stateDim := c.Dims()

	as := make([]*mat.Dense, n+1)
	bs := make([]*mat.Dense, n+1)
	for k := 0; k <= n; k++ {
		as[k], bs[k] = jac(states[k], controls[k], dt)
	}
	_, ctrlDim := bs[0].Dims()

	// v[i][j] = output rows of the state sensitivity d x_{i+1} / d u_j
	v := make([][]*mat.Dense, n)
	for i := range v {
		v[i] = make([]*mat.Dense, n)
	}
	for j := 0; j < n; j++ {
		s := mat.DenseCopyOf(bs[j])
		for i := j; i < n; i++ {
			if i > j {
				next := mat.NewDense(stateDim, ctrlDim, nil)
				next.Mul(as[i], s)
				s = next
			}
			blk := mat.NewDense(outDim, ctrlDim, nil)
			blk.Mul(c, s)
			v[i][j] = blk
		}
	}

	op := mat.NewDense(n*outDim, n*ctrlDim, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch kind {
			case dynamo.OutputPosition:
				if j <= i {
					setBlock(op, i, j, v[i][j], 1)
				}
			case dynamo.OutputAcceleration:
				if i+1 < n && j <= i+1 {
					setBlock(op, i, j, v[i+1][j], 1/dt)
					if j <= i {
						addBlock(op, i, j, v[i][j], -1/dt)
					}
				}
			}
		}
	}
	return op
}

func setBlock(dst *mat.Dense, i, j int, blk *mat.Dense, scale float64) {
	r, c := blk.Dims()
	for ri := 0; ri < r; ri++ {
		for ci := 0; ci < c; ci++ {
			dst.Set(i*r+ri, j*c+ci, scale*blk.At(ri, ci))
		}
	}
}

func addBlock(dst *mat.Dense, i, j int, blk *mat.Dense, scale float64) {
	r, c := blk.Dims()
	for ri := 0; ri < r; ri++ {
		for ci := 0; ci < c; ci++ {
			cur := dst.At(i*r+ri, j*c+ci)
			dst.Set(i*r+ri, j*c+ci, cur+scale*blk.At(ri, ci))
		}
	}
}
