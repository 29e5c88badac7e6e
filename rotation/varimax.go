// SPDX-License-Identifier: MIT

package rotation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/lvfactor/matrix"
)

// Operation and stage tags for error wrapping.
const (
	opRotate    = "Rotate"
	opRotateAll = "RotateAll"

	stageGradient = "gradient"
	stageSVD      = "procrustes"
	stageRestart  = "restart"
)

// rotationErrorf wraps err with an operation tag, preserving it for errors.Is.
func rotationErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// numericalErrorf marks err as ErrNumericalFailure while keeping the matrix
// sentinel underneath matchable.
func numericalErrorf(stage string, err error) error {
	return fmt.Errorf("%s: %w: %w", stage, ErrNumericalFailure, err)
}

// Rotate returns B = A·T for the orthogonal T maximizing the gamma-family
// criterion, with column signs normalized.
//
// Implementation:
//   - Stage 1: validate A (non-nil, finite); copy it into a *matrix.Dense.
//   - Stage 2: m == 1 ⇒ return the copy untouched.
//   - Stage 3: warm start T = polar(G(A)); restart from a random orthogonal
//     matrix when T is within tolerance of I.
//   - Stage 4: refine until k ≥ minIter and |D − D_prev|/D < tol, or maxIter.
//   - Stage 5: NormalizeSigns.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNaNInf (input).
//   - ErrNumericalFailure (SVD/QR failure or overflow during refinement).
//
// Hitting the iteration cap is not an error.
func Rotate(a matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	b, err := rotateWith(a, &o)
	if err != nil {
		return nil, rotationErrorf(opRotate, err)
	}

	return b, nil
}

// rotateWith validates a and runs the rotation under resolved options.
func rotateWith(a matrix.Matrix, o *Options) (*matrix.Dense, error) {
	if err := matrix.ValidateFinite(a); err != nil {
		return nil, err
	}
	ad, err := matrix.DenseOf(a)
	if err != nil {
		return nil, err
	}
	if ad.Cols() == 1 {
		return ad, nil
	}

	b, err := rotate(ad, o, o.source(DefaultStream))
	if err != nil {
		return nil, err
	}
	NormalizeSigns(b)

	return b, nil
}

// rotate runs stages 3–4 on a (d×m, m ≥ 2) and returns the unsigned B.
func rotate(a *matrix.Dense, o *Options, src rand.Source) (*matrix.Dense, error) {
	at, err := matrix.Transpose(a)
	if err != nil {
		return nil, err
	}
	_, b, err := warmStart(a, at, o, src)
	if err != nil {
		return nil, err
	}

	var (
		g      *matrix.Dense
		t      *matrix.Dense
		d, rel float64
		dPrev  float64
	)
	for k := 1; k <= o.maxIter; k++ {
		if g, err = gradient(at, b, o.gamma); err != nil {
			return nil, err
		}
		if t, d, err = procrustes(g); err != nil {
			return nil, err
		}
		if b, err = matrix.Mul(a, t); err != nil {
			return nil, numericalErrorf(stageSVD, err)
		}

		rel = relativeChange(d, dPrev)
		if o.onIteration != nil {
			o.onIteration(Iteration{Index: k, Criterion: d, RelativeChange: rel})
		}
		if k >= o.minIter && converged(d, dPrev, rel, o.relTol) {
			break
		}
		dPrev = d
	}

	return b, nil
}

// warmStart performs the first Procrustes step from T = I and applies the
// degenerate-start guard. It returns the starting T and B = A·T.
func warmStart(a, at *matrix.Dense, o *Options, src rand.Source) (t, b *matrix.Dense, err error) {
	g, err := gradient(at, a, o.gamma)
	if err != nil {
		return nil, nil, err
	}
	if t, _, err = procrustes(g); err != nil {
		return nil, nil, err
	}

	m := a.Cols()
	id, err := matrix.NewIdentity(m)
	if err != nil {
		return nil, nil, err
	}
	diff, err := matrix.Sub(t, id)
	if err != nil {
		return nil, nil, err
	}
	dist, err := matrix.FrobeniusNorm(diff)
	if err != nil {
		return nil, nil, err
	}
	if dist < o.relTol {
		if t, err = randomOrthogonal(m, src); err != nil {
			return nil, nil, err
		}
	}

	if b, err = matrix.Mul(a, t); err != nil {
		return nil, nil, numericalErrorf(stageSVD, err)
	}

	return t, b, nil
}

// gradient returns G = Aᵀ·Z with Z = d·B.^3 − γ·B·diag(Σ_i B.^2).
// at is Aᵀ (m×d), b is the current d×m iterate.
func gradient(at, b *matrix.Dense, gamma float64) (*matrix.Dense, error) {
	rows, cols := b.Shape()
	buf := b.Data()

	colSq := make([]float64, cols)
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v = buf[i*cols+j]
			colSq[j] += v * v
		}
	}

	scale := float64(rows)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v = buf[i*cols+j]
			buf[i*cols+j] = scale*v*v*v - gamma*v*colSq[j]
		}
	}

	z, err := matrix.NewDenseFrom(rows, cols, buf)
	if err != nil {
		return nil, numericalErrorf(stageGradient, err)
	}
	g, err := matrix.Mul(at, z)
	if err != nil {
		return nil, numericalErrorf(stageGradient, err)
	}

	return g, nil
}

// procrustes solves max trace(Tᵀ·G) over orthogonal T: with G = U·S·Vᵀ,
// T = U·Vᵀ and the attained value is D = Σ s.
func procrustes(g *matrix.Dense) (*matrix.Dense, float64, error) {
	u, s, v, err := matrix.SVD(g)
	if err != nil {
		return nil, 0, numericalErrorf(stageSVD, err)
	}
	vt, err := matrix.Transpose(v)
	if err != nil {
		return nil, 0, numericalErrorf(stageSVD, err)
	}
	t, err := matrix.Mul(u, vt)
	if err != nil {
		return nil, 0, numericalErrorf(stageSVD, err)
	}

	return t, floats.Sum(s), nil
}

// randomOrthogonal draws an m×m standard-normal matrix from src and returns
// the Q factor of its QR decomposition (Haar-distributed, diag(R) ≥ 0).
func randomOrthogonal(m int, src rand.Source) (*matrix.Dense, error) {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	buf := make([]float64, m*m)
	for k := range buf {
		buf[k] = normal.Rand()
	}
	x, err := matrix.NewDenseFrom(m, m, buf)
	if err != nil {
		return nil, numericalErrorf(stageRestart, err)
	}
	q, _, err := matrix.QR(x)
	if err != nil {
		return nil, numericalErrorf(stageRestart, err)
	}

	return q, nil
}

// relativeChange returns |d − prev| / d.
// d == 0: 0 when prev is also 0, +Inf otherwise.
func relativeChange(d, prev float64) float64 {
	if d == 0 {
		if prev == 0 {
			return 0
		}

		return math.Inf(1)
	}

	return math.Abs(d-prev) / d
}

// converged reports the stopping test. Two consecutive zero criteria count as
// converged regardless of tol.
func converged(d, prev, rel, tol float64) bool {
	if d == 0 {
		return prev == 0
	}

	return rel < tol
}
