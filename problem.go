package aemultigrid

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cvfish/ae-multigrid/sparse"
)

// Problem is the flat, vectorized description of a multilevel angular
// embedding problem.  Level 0 is the coarsest level and Levels-1 the finest,
// full graph.  All indices are 0-based; the cumulative arrays have one entry
// per level and entry s counts everything active up to and including level s.
//
// Edge weights are stored as magnitude/phase pairs and become complex values
// mag*exp(i*phase) on assembly; constraint values are real.  A Problem is
// read-only for the assembly: Build never mutates it.
type Problem struct {
	Levels int

	// weight triplets for the full graph, and their per-level cumulative count
	WeightRows   []int
	WeightCols   []int
	WeightMags   []float64
	WeightPhases []float64
	WeightCum    []int

	// constraint triplets for the full constraint system, their per-level
	// cumulative triplet count, and the per-level cumulative column count
	ConstraintRows []int
	ConstraintCols []int
	ConstraintVals []float64
	ConstraintCum  []int
	ColumnCum      []int

	// per-level cumulative vertex count and the full-graph degree vector
	VertexCum []int
	Degrees   []float64
}

// VertexCount returns the number of vertices introduced at the given level.
func (p *Problem) VertexCount(level int) int {
	if level == 0 {
		return p.VertexCum[0]
	}
	return p.VertexCum[level] - p.VertexCum[level-1]
}

// ColumnCount returns the number of constraint columns introduced at the
// given level.
func (p *Problem) ColumnCount(level int) int {
	if level == 0 {
		return p.ColumnCum[0]
	}
	return p.ColumnCum[level] - p.ColumnCum[level-1]
}

// Validate checks the problem for structural consistency before any matrix
// work happens.  All failures wrap ErrInvalidProblem.
func (p *Problem) Validate() error {
	if p.Levels < 1 {
		return fmt.Errorf("%w: level count %v", ErrInvalidProblem, p.Levels)
	}
	nw, nc := len(p.WeightRows), len(p.ConstraintRows)
	if len(p.WeightCols) != nw || len(p.WeightMags) != nw || len(p.WeightPhases) != nw {
		return fmt.Errorf("%w: weight triplet vectors have inconsistent lengths %v/%v/%v/%v",
			ErrInvalidProblem, nw, len(p.WeightCols), len(p.WeightMags), len(p.WeightPhases))
	}
	if len(p.ConstraintCols) != nc || len(p.ConstraintVals) != nc {
		return fmt.Errorf("%w: constraint triplet vectors have inconsistent lengths %v/%v/%v",
			ErrInvalidProblem, nc, len(p.ConstraintCols), len(p.ConstraintVals))
	}

	cums := []struct {
		name  string
		cum   []int
		total int
	}{
		{"WeightCum", p.WeightCum, nw},
		{"ConstraintCum", p.ConstraintCum, nc},
		{"ColumnCum", p.ColumnCum, -1},
		{"VertexCum", p.VertexCum, len(p.Degrees)},
	}
	for _, c := range cums {
		if len(c.cum) != p.Levels {
			return fmt.Errorf("%w: %s has %v entries for %v levels", ErrInvalidProblem, c.name, len(c.cum), p.Levels)
		}
		prev := 0
		for s, v := range c.cum {
			if v < prev {
				return fmt.Errorf("%w: %s decreases at level %v (%v -> %v)", ErrInvalidProblem, c.name, s, prev, v)
			}
			prev = v
		}
		if c.total >= 0 && c.cum[p.Levels-1] != c.total {
			return fmt.Errorf("%w: %s ends at %v but %v entries exist", ErrInvalidProblem, c.name, c.cum[p.Levels-1], c.total)
		}
	}

	// each triplet must index within the bounds of the level it first
	// becomes active at
	prevW, prevC := 0, 0
	for s := 0; s < p.Levels; s++ {
		ne := p.VertexCum[s]
		for k := prevW; k < p.WeightCum[s]; k++ {
			if p.WeightRows[k] < 0 || p.WeightRows[k] >= ne || p.WeightCols[k] < 0 || p.WeightCols[k] >= ne {
				return fmt.Errorf("%w: weight triplet %v at (%v,%v) outside the %v vertices of level %v",
					ErrInvalidProblem, k, p.WeightRows[k], p.WeightCols[k], ne, s)
			}
			if p.WeightMags[k] < 0 || math.IsNaN(p.WeightMags[k]) || math.IsInf(p.WeightMags[k], 0) {
				return fmt.Errorf("%w: weight triplet %v has magnitude %v", ErrInvalidProblem, k, p.WeightMags[k])
			}
			if math.IsNaN(p.WeightPhases[k]) || math.IsInf(p.WeightPhases[k], 0) {
				return fmt.Errorf("%w: weight triplet %v has phase %v", ErrInvalidProblem, k, p.WeightPhases[k])
			}
		}
		nu := p.ColumnCum[s]
		colBase := 0
		if s > 0 {
			colBase = p.ColumnCum[s-1]
		}
		for k := prevC; k < p.ConstraintCum[s]; k++ {
			if p.ConstraintRows[k] < 0 || p.ConstraintRows[k] >= ne {
				return fmt.Errorf("%w: constraint triplet %v at row %v outside the %v vertices of level %v",
					ErrInvalidProblem, k, p.ConstraintRows[k], ne, s)
			}
			// triplets introduced at a level may only address that level's own
			// column window; earlier columns are closed
			if p.ConstraintCols[k] < colBase || p.ConstraintCols[k] >= nu {
				return fmt.Errorf("%w: constraint triplet %v at column %v outside columns [%v,%v) of level %v",
					ErrInvalidProblem, k, p.ConstraintCols[k], colBase, nu, s)
			}
			if math.IsNaN(p.ConstraintVals[k]) || math.IsInf(p.ConstraintVals[k], 0) {
				return fmt.Errorf("%w: constraint triplet %v has value %v", ErrInvalidProblem, k, p.ConstraintVals[k])
			}
		}
		prevW, prevC = p.WeightCum[s], p.ConstraintCum[s]
	}

	for i, d := range p.Degrees {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: degree %v of vertex %v", ErrInvalidProblem, d, i)
		}
	}
	return nil
}

// weightMatrix assembles the first count edge triplets into an n x n complex
// weight matrix.  Magnitude/phase converts to a complex value here and
// nowhere else.
func (p *Problem) weightMatrix(n, count int) *sparse.Matrix {
	b := sparse.NewBuilder(n, n)
	for k := 0; k < count; k++ {
		b.Add(p.WeightRows[k], p.WeightCols[k], cmplx.Rect(p.WeightMags[k], p.WeightPhases[k]))
	}
	return b.Build()
}
