package aemultigrid

import (
	"github.com/cvfish/ae-multigrid/sparse"
	"go.uber.org/zap"
)

// Defaults for the assembly configuration, queryable through DefaultOptions.
const (
	// DefaultDropTol is the incomplete-factorization drop tolerance, 2^-20.
	// The factors are only ever used through normal-equations solves, which
	// square the effective condition number, so the default is conservative.
	DefaultDropTol = 1.0 / (1 << 20)

	// DefaultDegreeEps is the floor added to degrees before the inverse
	// square root, guarding isolated vertices.
	DefaultDegreeEps = 1e-12
)

// Options is the resolved assembly configuration.
type Options struct {
	// DropTol is the drop tolerance passed to every incomplete factorization.
	DropTol float64
	// Transform selects analytic elimination over truncation when folding a
	// level's weights into the next coarser level.
	Transform bool
	// DegreeEps is the degree floor used by the normalizer.
	DegreeEps float64
	// Logger receives per-level progress and numeric warnings.
	Logger *zap.Logger
}

// DefaultOptions returns the configuration Build uses when no options are
// given.  It needs no problem instance.
func DefaultOptions() Options {
	return Options{
		DropTol:   DefaultDropTol,
		Transform: false,
		DegreeEps: DefaultDegreeEps,
		Logger:    zap.NewNop(),
	}
}

type Option func(*Options)

// WithDropTol sets the incomplete-factorization drop tolerance.  Panics on a
// negative tolerance (programmer error).
func WithDropTol(tol float64) Option {
	if tol < 0 {
		panic("aemultigrid: negative drop tolerance")
	}
	return func(o *Options) { o.DropTol = tol }
}

// WithTransform selects between analytic elimination (true) and truncation
// (false) when folding levels.
func WithTransform(on bool) Option {
	return func(o *Options) { o.Transform = on }
}

// WithDegreeEps sets the degree floor.  Panics unless eps > 0.
func WithDegreeEps(eps float64) Option {
	if eps <= 0 {
		panic("aemultigrid: degree eps must be positive")
	}
	return func(o *Options) { o.DegreeEps = eps }
}

// WithLogger sets the logger; nil restores the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Level is the operator set of one pyramid level.  P is always populated;
// the constraint and interpolation operators are tagged-optional and exposed
// through accessors that report absence explicitly.
type Level struct {
	// P is the degree-normalized diffusion operator over the level's active
	// vertex set.
	P *sparse.Matrix

	u  *sparse.Matrix
	r  *sparse.Cholesky
	ua *sparse.Matrix
	ub *sparse.Matrix
	rb *sparse.Cholesky
}

// Constraint returns the level's degree-normalized constraint operator U and
// the factor R of its normal-equations matrix.  ok is false - and U, R are
// not usable - when the level has no active constraint columns.
func (l *Level) Constraint() (U *sparse.Matrix, R *sparse.Cholesky, ok bool) {
	return l.u, l.r, l.u != nil
}

// Interp returns the incremental constraint blocks Ua, Ub and the fine-block
// factor Rb used to interpolate to the adjacent finer level.  ok is false at
// the coarsest level and at levels that introduce no constraints.
func (l *Level) Interp() (Ua, Ub *sparse.Matrix, Rb *sparse.Cholesky, ok bool) {
	return l.ua, l.ub, l.rb, l.ua != nil
}

// Build assembles the per-level operator sets of the multilevel problem,
// walking from the finest level down to the coarsest and folding the running
// (weight, degree) state at each step.  The returned slice has one entry per
// level with index 0 the coarsest.  Build is a pure function of its inputs;
// any sub-step failure aborts the whole assembly.
func Build(p *Problem, opts ...Option) ([]Level, error) {
	o := gatherOptions(opts...)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	nlev := p.Levels
	levels := make([]Level, nlev)

	n := p.VertexCum[nlev-1]
	W := p.weightMatrix(n, p.WeightCum[nlev-1])
	d := append([]float64(nil), p.Degrees...)

	for level := nlev - 1; level >= 0; level-- {
		n = len(d)
		P, dsqrt, dsqrtinv, floored := NormalizeDegrees(W, d, o.DegreeEps)
		if floored > 0 {
			o.Logger.Warn("degree floor engaged",
				zap.Int("level", level), zap.Int("vertices", floored))
		}

		lv := &levels[level]
		lv.P = P

		var err error
		lv.u, lv.r, err = assembleConstraints(p, level, n, dsqrtinv, o.DropTol)
		if err != nil {
			return nil, err
		}

		o.Logger.Info("assembled level",
			zap.Int("level", level),
			zap.Int("vertices", n),
			zap.Int("weights", W.NNZ()),
			zap.Int("constraintCols", p.ColumnCum[level]))

		if level == 0 {
			break
		}

		nea := p.VertexCum[level-1]
		blk, err := splitIncremental(p, level, nea, n, dsqrt, dsqrtinv, o.DropTol, o.Transform)
		if err != nil {
			return nil, err
		}
		if blk != nil {
			lv.ua, lv.ub, lv.rb = blk.Ua, blk.Ub, blk.Rb
		}

		if o.Transform {
			W, d, err = foldTransform(W, blk, nea)
			if err != nil {
				return nil, &FactorError{Level: level, Stage: "solve", Err: err}
			}
		} else {
			W, d = foldDrop(p, level)
		}
	}
	return levels, nil
}
