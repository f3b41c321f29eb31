package aemultigrid

import (
	"errors"
	"fmt"
)

// ErrInvalidProblem is wrapped by every validation failure of a Problem.
// Check with errors.Is; the wrapping message names the offending field.
var ErrInvalidProblem = errors.New("aemultigrid: invalid multilevel problem")

// FactorError reports a failed incomplete factorization or triangular solve.
// Level is the pyramid level being assembled (0 is coarsest) and Stage is
// "constraint", "incremental", or "solve".  Assembly is all-or-nothing: the
// error is never retried internally at a looser tolerance.
type FactorError struct {
	Level int
	Stage string
	Err   error
}

func (e *FactorError) Error() string {
	return fmt.Sprintf("aemultigrid: level %v %s factorization: %v", e.Level, e.Stage, e.Err)
}

func (e *FactorError) Unwrap() error { return e.Err }
