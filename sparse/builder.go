package sparse

import "fmt"

// Builder accumulates coordinate triplets and compresses them into a Matrix.
// Triplets addressed to the same entry accumulate.  The later pipeline stages
// only ever need matrix-level operations, so the triplet form stops here.
type Builder struct {
	rows, cols int
	ris, cis   []int
	vals       []complex128
}

func NewBuilder(rows, cols int) *Builder {
	return &Builder{rows: rows, cols: cols}
}

func (b *Builder) Add(i, j int, v complex128) {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic(fmt.Sprintf("sparse: triplet (%v,%v) out of bounds for %vx%v builder", i, j, b.rows, b.cols))
	}
	b.ris = append(b.ris, i)
	b.cis = append(b.cis, j)
	b.vals = append(b.vals, v)
}

// Len returns the number of triplets added so far.
func (b *Builder) Len() int { return len(b.ris) }

func (b *Builder) Build() *Matrix {
	m := New(b.rows, b.cols)
	for k, v := range b.vals {
		i, j := b.ris[k], b.cis[k]
		m.Set(i, j, m.At(i, j)+v)
	}
	return m
}
