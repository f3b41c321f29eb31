package aemultigrid

import (
	"math"

	"github.com/cvfish/ae-multigrid/sparse"
)

// NormalizeDegrees computes the symmetric degree normalization
//
//	P = D^(-1/2) * W * D^(-1/2),  D = diag(d + eps)
//
// returning P together with the diagonal scalings dsqrt[i] = sqrt(d[i]+eps)
// and dsqrtinv[i] = 1/sqrt(d[i]+eps).  The eps floor keeps isolated vertices
// from dividing by zero; floored counts how many entries needed it.  W is not
// modified, and a Hermitian W yields a Hermitian P since the scaling is a
// real diagonal.
func NormalizeDegrees(W *sparse.Matrix, d []float64, eps float64) (P *sparse.Matrix, dsqrt, dsqrtinv []float64, floored int) {
	n, _ := W.Dims()
	if len(d) != n {
		panic("aemultigrid: degree vector length does not match weight matrix")
	}

	dsqrt = make([]float64, n)
	dsqrtinv = make([]float64, n)
	for i, v := range d {
		if v <= eps {
			floored++
		}
		dsqrt[i] = math.Sqrt(v + eps)
		dsqrtinv[i] = 1 / dsqrt[i]
	}

	P = W.Clone()
	sparse.ScaleRows(P, dsqrtinv)
	sparse.ScaleCols(P, dsqrtinv)
	return P, dsqrt, dsqrtinv, floored
}
