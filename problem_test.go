package aemultigrid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aemultigrid "github.com/cvfish/ae-multigrid"
)

func TestProblemValidate(t *testing.T) {
	require.NoError(t, twoLevelProblem().Validate())

	tests := []struct {
		name   string
		mutate func(p *aemultigrid.Problem)
	}{
		{"zero levels", func(p *aemultigrid.Problem) { p.Levels = 0 }},
		{"negative levels", func(p *aemultigrid.Problem) { p.Levels = -1 }},
		{"weight vector lengths", func(p *aemultigrid.Problem) { p.WeightMags = p.WeightMags[:3] }},
		{"constraint vector lengths", func(p *aemultigrid.Problem) { p.ConstraintVals = p.ConstraintVals[:1] }},
		{"cum length", func(p *aemultigrid.Problem) { p.WeightCum = []int{6} }},
		{"decreasing cum", func(p *aemultigrid.Problem) { p.VertexCum = []int{4, 2} }},
		{"cum total short", func(p *aemultigrid.Problem) { p.WeightCum = []int{2, 5} }},
		{"degree total", func(p *aemultigrid.Problem) { p.Degrees = p.Degrees[:3] }},
		{"weight row out of level bounds", func(p *aemultigrid.Problem) { p.WeightRows[0] = 3 }},
		{"weight col negative", func(p *aemultigrid.Problem) { p.WeightCols[0] = -1 }},
		{"negative magnitude", func(p *aemultigrid.Problem) { p.WeightMags[2] = -1 }},
		{"nan phase", func(p *aemultigrid.Problem) { p.WeightPhases[1] = math.NaN() }},
		{"constraint row out of bounds", func(p *aemultigrid.Problem) { p.ConstraintRows[0] = 4 }},
		{"constraint col out of bounds", func(p *aemultigrid.Problem) { p.ConstraintCols[3] = 2 }},
		// shifting the column windows makes the level-1 triplets on column 0
		// address a column owned by level 0
		{"constraint col before level window", func(p *aemultigrid.Problem) { p.ColumnCum = []int{1, 2} }},
		{"inf constraint value", func(p *aemultigrid.Problem) { p.ConstraintVals[0] = math.Inf(1) }},
		{"negative degree", func(p *aemultigrid.Problem) { p.Degrees[2] = -0.5 }},
		{"nan degree", func(p *aemultigrid.Problem) { p.Degrees[0] = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := twoLevelProblem()
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, aemultigrid.ErrInvalidProblem)

			// Build surfaces the same error before any matrix work
			_, berr := aemultigrid.Build(p)
			assert.ErrorIs(t, berr, aemultigrid.ErrInvalidProblem)
		})
	}
}

func TestProblemCounts(t *testing.T) {
	p := chainProblem(3)
	assert.Equal(t, 2, p.VertexCount(0))
	assert.Equal(t, 2, p.VertexCount(2))
	assert.Equal(t, 0, p.ColumnCount(0))
	assert.Equal(t, 2, p.ColumnCount(1))
	assert.Equal(t, 2, p.ColumnCount(2))
}
