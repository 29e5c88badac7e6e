// SPDX-License-Identifier: MIT

// Package matrix - factorizations backed by gonum.
//
// Purpose:
//   - Expose the two decompositions the rotation kernels need (SVD, QR) on top
//     of the package's own Dense type.
//   - Keep gonum an implementation detail: inputs and outputs are *Dense,
//     failures surface as ErrFactorizationFailed.
//
// Determinism:
//   - gonum's LAPACK-style kernels are deterministic for identical inputs.
//   - QR applies a sign canonicalization (diag(R) ≥ 0), so Q is unique for
//     full-rank input.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// toGonum copies m into a freshly allocated *mat.Dense.
// Fast path copies the flat buffer (both layouts are row-major).
func toGonum(m Matrix) (*mat.Dense, error) {
	r, c := m.Rows(), m.Cols()
	if d, ok := m.(*Dense); ok {
		buf := make([]float64, len(d.data))
		copy(buf, d.data)

		return mat.NewDense(r, c, buf), nil
	}
	g := mat.NewDense(r, c, nil)
	var (
		v   float64
		err error
	)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			g.Set(i, j, v)
		}
	}

	return g, nil
}

// fromGonum copies g into a new *Dense, honoring g's stride.
// Non-finite entries are reported as ErrFactorizationFailed.
func fromGonum(g *mat.Dense) (*Dense, error) {
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	raw := g.RawMatrix()
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v = raw.Data[i*raw.Stride+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrFactorizationFailed
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// SVD computes the full singular value decomposition m = U·diag(s)·Vᵀ.
// Implementation:
//   - Stage 1: ValidateFinite(m).
//   - Stage 2: gonum mat.SVD with mat.SVDFull.
//   - Stage 3: copy U (r×r), V (c×c) and the min(r,c) singular values out.
//
// Returns:
//   - u: r×r orthogonal, s: singular values in descending order, v: c×c orthogonal.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf, ErrFactorizationFailed (non-convergence).
//
// Complexity:
//   - Time O(r*c*min(r,c)), Space O(r² + c²).
//
// AI-Hints:
//   - For the orthogonal Procrustes problem max trace(Tᵀ·G), take T = U·Vᵀ.
func SVD(m Matrix) (u *Dense, s []float64, v *Dense, err error) {
	if err = ValidateFinite(m); err != nil {
		return nil, nil, nil, matrixErrorf(opSVD, err)
	}
	g, err := toGonum(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opSVD, err)
	}

	var fact mat.SVD
	if ok := fact.Factorize(g, mat.SVDFull); !ok {
		return nil, nil, nil, matrixErrorf(opSVD, ErrFactorizationFailed)
	}
	var gu, gv mat.Dense
	fact.UTo(&gu)
	fact.VTo(&gv)
	s = fact.Values(nil)
	for _, sv := range s {
		if math.IsNaN(sv) || math.IsInf(sv, 0) {
			return nil, nil, nil, matrixErrorf(opSVD, ErrFactorizationFailed)
		}
	}
	if u, err = fromGonum(&gu); err != nil {
		return nil, nil, nil, matrixErrorf(opSVD, err)
	}
	if v, err = fromGonum(&gv); err != nil {
		return nil, nil, nil, matrixErrorf(opSVD, err)
	}

	return u, s, v, nil
}

// QR computes a Householder factorization m = Q·R for rows ≥ cols.
// Implementation:
//   - Stage 1: ValidateFinite(m); require rows ≥ cols.
//   - Stage 2: gonum mat.QR; extract Q (r×r) and R (r×c).
//   - Stage 3: canonicalize diag(R) ≥ 0 by flipping the matching columns of Q
//     and rows of R, which preserves Q·R = m.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf, ErrDimensionMismatch (rows < cols),
//     ErrFactorizationFailed (non-finite factors).
//
// Complexity:
//   - Time O(r*c²), Space O(r² + r*c).
//
// Notes:
//   - Sign canonicalization makes Q of a standard-normal square matrix
//     Haar-distributed over the orthogonal group.
func QR(m Matrix) (q, r *Dense, err error) {
	if err = ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	if m.Rows() < m.Cols() {
		return nil, nil, matrixErrorf(opQR, ErrDimensionMismatch)
	}
	g, err := toGonum(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	var fact mat.QR
	fact.Factorize(g)
	var gq, gr mat.Dense
	fact.QTo(&gq)
	fact.RTo(&gr)
	if q, err = fromGonum(&gq); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	if r, err = fromGonum(&gr); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	// Flip column k of Q and row k of R whenever R[k,k] < 0.
	var k, i int
	for k = 0; k < r.c; k++ {
		if r.data[k*r.c+k] >= 0 {
			continue
		}
		for i = 0; i < q.r; i++ {
			q.data[i*q.c+k] = -q.data[i*q.c+k]
		}
		for i = k; i < r.c; i++ {
			r.data[k*r.c+i] = -r.data[k*r.c+i]
		}
	}

	return q, r, nil
}
