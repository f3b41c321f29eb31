package aemultigrid_test

import (
	"fmt"
	"log"

	aemultigrid "github.com/cvfish/ae-multigrid"
)

func ExampleBuild() {
	// Two levels: a coarse pair of vertices and a fine pair, each fine
	// vertex tied to its coarse parent by one constraint column.
	p := &aemultigrid.Problem{
		Levels:       2,
		WeightRows:   []int{0, 1, 2, 3},
		WeightCols:   []int{1, 0, 3, 2},
		WeightMags:   []float64{2, 2, 1, 1},
		WeightPhases: []float64{0.3, -0.3, -0.2, 0.2},
		WeightCum:    []int{2, 4},

		ConstraintRows: []int{0, 2, 1, 3},
		ConstraintCols: []int{0, 0, 1, 1},
		ConstraintVals: []float64{1, -1, 1, -1},
		ConstraintCum:  []int{0, 4},
		ColumnCum:      []int{0, 2},

		VertexCum: []int{2, 4},
		Degrees:   []float64{2, 2, 1, 1},
	}

	levels, err := aemultigrid.Build(p, aemultigrid.WithTransform(true))
	if err != nil {
		log.Fatal(err)
	}

	for s := range levels {
		r, c := levels[s].P.Dims()
		_, _, hasU := levels[s].Constraint()
		_, _, _, hasInterp := levels[s].Interp()
		fmt.Printf("level %v: P is %vx%v, constraints=%v, interpolation=%v\n",
			s, r, c, hasU, hasInterp)
	}

	// Output:
	// level 0: P is 2x2, constraints=false, interpolation=false
	// level 1: P is 4x4, constraints=true, interpolation=true
}
