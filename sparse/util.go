package sparse

import "gonum.org/v1/gonum/mat"

// MulVec computes m*b.
func MulVec(m *Matrix, b []complex128) []complex128 {
	if len(b) != m.cols {
		panic("sparse: inconsistent lengths for matrix-vector product")
	}
	result := make([]complex128, m.rows)
	for i := 0; i < m.rows; i++ {
		tot := complex128(0)
		for _, j := range sortedKeys(m.NonzeroCols(i)) {
			tot += b[j] * m.nonzeroCol[i][j]
		}
		result[i] = tot
	}
	return result
}

// Dense converts m into a gonum dense complex matrix, mostly useful for
// reference computations in tests and for debugging dumps.
func (m *Matrix) Dense() *mat.CDense {
	d := mat.NewCDense(m.rows, m.cols, nil)
	for i, row := range m.nonzeroCol {
		for j, v := range row {
			d.Set(i, j, v)
		}
	}
	return d
}
