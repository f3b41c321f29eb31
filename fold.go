package aemultigrid

import (
	"github.com/cvfish/ae-multigrid/sparse"
)

// foldDrop produces the (W, d) state for the next coarser level by
// truncation: the weight matrix is rebuilt from the coarser level's own edge
// triplets and the degree vector is the matching prefix of the full-graph
// degrees.  The finer level's weights are thrown away entirely.
func foldDrop(p *Problem, level int) (*sparse.Matrix, []float64) {
	nea := p.VertexCum[level-1]
	W := p.weightMatrix(nea, p.WeightCum[level-1])
	d := append([]float64(nil), p.Degrees[:nea]...)
	return W, d
}

// foldTransform produces the (W, d) state for the next coarser level by
// analytic elimination: the fine partition's weight block Wb is projected
// onto the surviving nea vertices through the constraint blocks,
//
//	Wt1 = ua * (ua'*ua)^-1 * (-ub'*Wb)
//	Wt2 = ua * (ua'*ua)^-1 * (-ub'*Wt1')
//	Wnew = Wa + Wt2'
//
// with every application of (ua'*ua)^-1 going through the two triangular
// solves of ra.  Off-diagonal coupling blocks of W are discarded; only the
// block-diagonal part is foldable.  The Wa + Wt2' form keeps Wnew Hermitian.
// With no incremental blocks the correction is zero and Wnew is just Wa.
func foldTransform(W *sparse.Matrix, blk *incrementalBlocks, nea int) (*sparse.Matrix, []float64, error) {
	n, _ := W.Dims()
	Wa := sparse.SubMatrix(W, 0, nea, 0, nea)
	if blk == nil {
		return Wa, sparse.RowAbsSums(Wa), nil
	}
	Wb := sparse.SubMatrix(W, nea, n, nea, n)

	t := sparse.MulH(blk.ub, Wb)
	sparse.Scale(t, -1)
	y, err := blk.ra.SolveMat(t)
	if err != nil {
		return nil, nil, err
	}
	Wt1 := sparse.Mul(blk.ua, y)

	t = sparse.MulH(blk.ub, Wt1.ConjTranspose())
	sparse.Scale(t, -1)
	y, err = blk.ra.SolveMat(t)
	if err != nil {
		return nil, nil, err
	}
	Wt2 := sparse.Mul(blk.ua, y)

	Wnew := sparse.Add(Wa, Wt2.ConjTranspose())
	return Wnew, sparse.RowAbsSums(Wnew), nil
}
