package aemultigrid

import (
	"github.com/cvfish/ae-multigrid/sparse"
)

// assembleConstraints builds the degree-normalized constraint operator for a
// level from the full (non-incremental) constraint slice, together with the
// factor of its normal-equations matrix.  A level with no active constraint
// columns or no entries gets (nil, nil, nil); callers branch on that before
// touching U or R.
func assembleConstraints(p *Problem, level, n int, dsqrtinv []float64, droptol float64) (*sparse.Matrix, *sparse.Cholesky, error) {
	cols := p.ColumnCum[level]
	if cols == 0 {
		return nil, nil, nil
	}

	b := sparse.NewBuilder(n, cols)
	for k := 0; k < p.ConstraintCum[level]; k++ {
		b.Add(p.ConstraintRows[k], p.ConstraintCols[k], complex(p.ConstraintVals[k], 0))
	}
	if b.Len() == 0 {
		return nil, nil, nil
	}

	U := b.Build()
	sparse.ScaleRows(U, dsqrtinv)
	R, err := sparse.IChol(sparse.MulH(U, U), droptol)
	if err != nil {
		return nil, nil, &FactorError{Level: level, Stage: "constraint", Err: err}
	}
	return U, R, nil
}

// incrementalBlocks holds the constraint rows newly introduced at a level,
// split at the coarse/fine vertex boundary.  The raw blocks and ra feed the
// transform fold; the degree-normalized Ua/Ub and Rb are what the level
// record exports for interpolation.
type incrementalBlocks struct {
	ua, ub *sparse.Matrix
	ra     *sparse.Cholesky

	Ua, Ub *sparse.Matrix
	Rb     *sparse.Cholesky
}

// splitIncremental partitions the constraints introduced at level into the
// coarse-indexed block ua (rows < nea) and the fine-only block ub (rows
// re-based past nea), with column indices re-based to the level's own column
// window.  ra, the factor of ua'*ua, is only computed when the transform fold
// will consume it.  A level introducing no constraints returns nil: the
// interpolation blocks are absent and the elimination correction is zero.
func splitIncremental(p *Problem, level, nea, n int, dsqrt, dsqrtinv []float64, droptol float64, needRa bool) (*incrementalBlocks, error) {
	nu := p.ColumnCount(level)
	if nu == 0 {
		return nil, nil
	}

	colBase := p.ColumnCum[level-1]
	ba := sparse.NewBuilder(nea, nu)
	bb := sparse.NewBuilder(n-nea, nu)
	for k := p.ConstraintCum[level-1]; k < p.ConstraintCum[level]; k++ {
		i, j, v := p.ConstraintRows[k], p.ConstraintCols[k]-colBase, complex(p.ConstraintVals[k], 0)
		if i < nea {
			ba.Add(i, j, v)
		} else {
			bb.Add(i-nea, j, v)
		}
	}
	if ba.Len() == 0 && bb.Len() == 0 {
		return nil, nil
	}

	blk := &incrementalBlocks{ua: ba.Build(), ub: bb.Build()}

	var err error
	if needRa {
		blk.ra, err = sparse.IChol(sparse.MulH(blk.ua, blk.ua), droptol)
		if err != nil {
			return nil, &FactorError{Level: level, Stage: "incremental", Err: err}
		}
	}
	blk.Rb, err = sparse.IChol(sparse.MulH(blk.ub, blk.ub), droptol)
	if err != nil {
		return nil, &FactorError{Level: level, Stage: "incremental", Err: err}
	}

	blk.Ua = blk.ua.Clone()
	sparse.ScaleRows(blk.Ua, dsqrtinv[:nea])
	blk.Ub = blk.ub.Clone()
	sparse.ScaleRows(blk.Ub, dsqrt[nea:])
	return blk, nil
}
