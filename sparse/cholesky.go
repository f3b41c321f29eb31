package sparse

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrNotPositiveDefinite is returned when factorization hits a non-positive
// pivot.  Normal-equations matrices square the condition number of the
// operator they come from, so this surfaces readily on rank-deficient input.
var ErrNotPositiveDefinite = errors.New("sparse: matrix is not positive definite")

type Cholesky struct {
	// L is the lower-triangular factor, L*conj(L') ~= A.
	L *Matrix
}

// IChol computes an incomplete Cholesky factorization of the Hermitian
// matrix A.  Off-diagonal fill with magnitude below droptol times the largest
// magnitude of the source column is discarded; droptol = 0 keeps everything,
// giving the complete factorization.  Only the lower triangle of A is read.
func IChol(A *Matrix, droptol float64) (*Cholesky, error) {
	size, c := A.Dims()
	if size != c {
		return nil, fmt.Errorf("sparse: cannot factor %vx%v non-square matrix", size, c)
	}
	if droptol < 0 {
		return nil, fmt.Errorf("sparse: negative drop tolerance %v", droptol)
	}
	L := A.Clone()

	var thresh []float64
	if droptol > 0 {
		thresh = make([]float64, size)
		for j := 0; j < size; j++ {
			max := 0.0
			for _, v := range A.NonzeroRows(j) {
				if m := cmplx.Abs(v); m > max {
					max = m
				}
			}
			thresh[j] = droptol * max
		}
	}

	for k := 0; k < size; k++ {
		// diag
		akk := real(L.At(k, k))
		if akk <= 0 {
			return nil, fmt.Errorf("%w: pivot %v at column %v", ErrNotPositiveDefinite, akk, k)
		}
		diag := complex(math.Sqrt(akk), 0)
		L.Set(k, k, diag)

		// below diag
		for i, aik := range L.NonzeroRows(k) {
			if i > k && aik != 0 {
				L.Set(i, k, aik/diag)
			}
		}

		for j, ajk := range L.NonzeroRows(k) {
			if j <= k {
				continue
			}
			cjk := cmplx.Conj(ajk)
			for i, aik := range L.NonzeroRows(k) {
				if i >= j {
					aij := L.At(i, j) - aik*cjk
					if i != j && thresh != nil && cmplx.Abs(aij) < thresh[j] {
						aij = 0
					}
					L.Set(i, j, aij)
				}
			}
		}
	}

	// discard the strict upper triangle carried over from the copy of A
	for i := 0; i < size; i++ {
		for j := range L.NonzeroCols(i) {
			if j > i {
				L.Set(i, j, 0)
			}
		}
	}
	return &Cholesky{L: L}, nil
}

// Solve solves L*conj(L')*x = b by two triangular substitutions.
func (c *Cholesky) Solve(b []complex128) (x []complex128, err error) {
	size, _ := c.L.Dims()
	if len(b) != size {
		return nil, fmt.Errorf("sparse: rhs length %v does not match %vx%v factor", len(b), size, size)
	}

	// Solve L*y = b via forward substitution
	y := make([]complex128, size)
	for i := 0; i < size; i++ {
		tot := complex128(0)
		div := complex128(0)
		for _, j := range sortedKeys(c.L.NonzeroCols(i)) {
			if j == i {
				div = c.L.nonzeroCol[i][j]
			} else {
				tot += y[j] * c.L.nonzeroCol[i][j]
			}
		}
		y[i] = (b[i] - tot) / div
	}

	// Solve conj(L')*x = y via backward substitution; sweeping column i of L
	// walks row i of the transposed factor.
	x = make([]complex128, size)
	for i := size - 1; i >= 0; i-- {
		tot := complex128(0)
		div := complex128(0)
		for _, j := range sortedKeys(c.L.NonzeroRows(i)) {
			if j == i {
				div = cmplx.Conj(c.L.nonzeroRow[i][j])
			} else {
				tot += x[j] * cmplx.Conj(c.L.nonzeroRow[i][j])
			}
		}
		x[i] = (y[i] - tot) / div
	}
	return x, nil
}

// SolveMat solves L*conj(L')*X = B column by column.
func (c *Cholesky) SolveMat(B *Matrix) (*Matrix, error) {
	size, _ := c.L.Dims()
	br, bc := B.Dims()
	if br != size {
		return nil, fmt.Errorf("sparse: rhs is %vx%v but factor is %vx%v", br, bc, size, size)
	}

	X := New(br, bc)
	b := make([]complex128, size)
	for j := 0; j < bc; j++ {
		col := B.NonzeroRows(j)
		if len(col) == 0 {
			continue
		}
		for i := range b {
			b[i] = 0
		}
		for i, v := range col {
			b[i] = v
		}
		x, err := c.Solve(b)
		if err != nil {
			return nil, err
		}
		for i, v := range x {
			if v != 0 {
				X.Set(i, j, v)
			}
		}
	}
	return X, nil
}
