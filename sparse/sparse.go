// Package sparse provides complex-valued sparse matrices and the incomplete
// Cholesky factorization used to assemble angular-embedding pyramid
// operators.  Matrices satisfy gonum's mat.CMatrix interface.
package sparse

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	// map[col]map[row]val
	nonzeroRow []map[int]complex128
	// map[row]map[col]val
	nonzeroCol []map[int]complex128
	rows, cols int
}

var _ mat.CMatrix = (*Matrix)(nil)

func New(rows, cols int) *Matrix {
	return &Matrix{
		nonzeroRow: make([]map[int]complex128, cols),
		nonzeroCol: make([]map[int]complex128, rows),
		rows:       rows,
		cols:       cols,
	}
}

func (m *Matrix) Clone() *Matrix {
	clone := New(m.rows, m.cols)
	for i, row := range m.nonzeroCol {
		for j, v := range row {
			clone.Set(i, j, v)
		}
	}
	return clone
}

// NonzeroRows returns the nonzero entries of column col keyed by row index.
func (m *Matrix) NonzeroRows(col int) (rows map[int]complex128) { return m.nonzeroRow[col] }

// NonzeroCols returns the nonzero entries of row row keyed by column index.
func (m *Matrix) NonzeroCols(row int) (cols map[int]complex128) { return m.nonzeroCol[row] }

func (m *Matrix) H() mat.CMatrix         { return mat.ConjTranspose{CMatrix: m} }
func (m *Matrix) T() mat.CMatrix         { return mat.CTranspose{CMatrix: m} }
func (m *Matrix) Dims() (int, int)       { return m.rows, m.cols }
func (m *Matrix) At(i, j int) complex128 { return m.nonzeroCol[i][j] }

func (m *Matrix) Set(i, j int, v complex128) {
	if v == 0 {
		delete(m.nonzeroCol[i], j)
		delete(m.nonzeroRow[j], i)
		return
	}
	if m.nonzeroCol[i] == nil {
		m.nonzeroCol[i] = make(map[int]complex128)
	}
	if m.nonzeroRow[j] == nil {
		m.nonzeroRow[j] = make(map[int]complex128)
	}

	m.nonzeroCol[i][j] = v
	m.nonzeroRow[j][i] = v
}

func (m *Matrix) NNZ() int {
	n := 0
	for _, row := range m.nonzeroCol {
		n += len(row)
	}
	return n
}

// ConjTranspose returns a newly allocated conjugate transpose of m.
func (m *Matrix) ConjTranspose() *Matrix {
	t := New(m.cols, m.rows)
	for i, row := range m.nonzeroCol {
		for j, v := range row {
			t.Set(j, i, cmplx.Conj(v))
		}
	}
	return t
}

// Mul computes a*b.
func Mul(a, b *Matrix) *Matrix {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(fmt.Sprintf("sparse: dimension mismatch in Mul: %vx%v times %vx%v", ar, ac, br, bc))
	}

	out := New(ar, bc)
	acc := make(map[int]complex128)
	for i := 0; i < ar; i++ {
		clear(acc)
		// accumulate in column order so sums are reproducible
		for _, j := range sortedKeys(a.NonzeroCols(i)) {
			av := a.nonzeroCol[i][j]
			for k, bv := range b.NonzeroCols(j) {
				acc[k] += av * bv
			}
		}
		for k, v := range acc {
			out.Set(i, k, v)
		}
	}
	return out
}

// MulH computes conj(a')*b, the conjugate-transpose product.  It is how
// normal-equations matrices U'*U are formed.
func MulH(a, b *Matrix) *Matrix {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br {
		panic(fmt.Sprintf("sparse: dimension mismatch in MulH: %vx%v times %vx%v", ac, ar, br, bc))
	}

	out := New(ac, bc)
	accs := make([]map[int]complex128, ac)
	for i := 0; i < ar; i++ {
		for _, j := range sortedKeys(a.NonzeroCols(i)) {
			av := cmplx.Conj(a.nonzeroCol[i][j])
			if accs[j] == nil {
				accs[j] = make(map[int]complex128)
			}
			for k, bv := range b.NonzeroCols(i) {
				accs[j][k] += av * bv
			}
		}
	}
	for j, acc := range accs {
		for k, v := range acc {
			out.Set(j, k, v)
		}
	}
	return out
}

// Add computes a+b.
func Add(a, b *Matrix) *Matrix {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(fmt.Sprintf("sparse: dimension mismatch in Add: %vx%v plus %vx%v", ar, ac, br, bc))
	}

	out := a.Clone()
	for i := 0; i < br; i++ {
		for j, v := range b.NonzeroCols(i) {
			out.Set(i, j, out.At(i, j)+v)
		}
	}
	return out
}

// Scale multiplies every entry of m by v in place.
func Scale(m *Matrix, v complex128) {
	for i := range m.nonzeroCol {
		for j, mv := range m.nonzeroCol[i] {
			m.Set(i, j, mv*v)
		}
	}
}

// ScaleRows multiplies row i of m by d[i] in place, i.e. m = diag(d)*m.
func ScaleRows(m *Matrix, d []float64) {
	if len(d) != m.rows {
		panic("sparse: inconsistent diagonal length for row scaling")
	}
	for i, row := range m.nonzeroCol {
		for j, v := range row {
			m.Set(i, j, v*complex(d[i], 0))
		}
	}
}

// ScaleCols multiplies column j of m by d[j] in place, i.e. m = m*diag(d).
func ScaleCols(m *Matrix, d []float64) {
	if len(d) != m.cols {
		panic("sparse: inconsistent diagonal length for column scaling")
	}
	for j, col := range m.nonzeroRow {
		for i, v := range col {
			m.Set(i, j, v*complex(d[j], 0))
		}
	}
}

// SubMatrix extracts the half-open block m[r0:r1, c0:c1] into a new matrix.
func SubMatrix(m *Matrix, r0, r1, c0, c1 int) *Matrix {
	if r0 < 0 || r1 > m.rows || c0 < 0 || c1 > m.cols || r0 > r1 || c0 > c1 {
		panic(fmt.Sprintf("sparse: block [%v:%v, %v:%v] out of bounds for %vx%v matrix", r0, r1, c0, c1, m.rows, m.cols))
	}

	out := New(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		for j, v := range m.NonzeroCols(i) {
			if c0 <= j && j < c1 {
				out.Set(i-r0, j-c0, v)
			}
		}
	}
	return out
}

// RowAbsSums returns the per-row sums of entry magnitudes - the degree vector
// of a weight matrix.
func RowAbsSums(m *Matrix) []float64 {
	d := make([]float64, m.rows)
	for i := range d {
		tot := 0.0
		for _, j := range sortedKeys(m.NonzeroCols(i)) {
			tot += cmplx.Abs(m.nonzeroCol[i][j])
		}
		d[i] = tot
	}
	return d
}

// IsHermitian reports whether m is conjugate-symmetric within tol.
func IsHermitian(m *Matrix, tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	for i, row := range m.nonzeroCol {
		for j, v := range row {
			if cmplx.Abs(v-cmplx.Conj(m.At(j, i))) > tol {
				return false
			}
		}
		if math.Abs(imag(m.At(i, i))) > tol {
			return false
		}
	}
	return true
}

func sortedKeys(m map[int]complex128) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
