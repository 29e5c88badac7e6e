// SPDX-License-Identifier: MIT
// Package rotation_test contains shared fixtures for rotation tests.

package rotation_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/lvfactor/loading"
	"github.com/katalvlaran/lvfactor/matrix"
	"github.com/stretchr/testify/require"
)

// Shared tolerances.
const (
	atolInvariant = 1e-9
	atolExact     = 1e-12
)

// hide wraps any Matrix to hide its concrete type from type assertions.
type hide struct{ matrix.Matrix }

// nanAt reports NaN at (i, j) and delegates everything else.
type nanAt struct {
	matrix.Matrix
	i, j int
}

func (m nanAt) At(i, j int) (float64, error) {
	if i == m.i && j == m.j {
		return math.NaN(), nil
	}

	return m.Matrix.At(i, j)
}

// onesLoading returns the rows×cols lower-triangular matrix of ones.
func onesLoading(t testing.TB, rows, cols int) *matrix.Dense {
	t.Helper()
	n, err := loading.Nnz(rows, cols)
	require.NoError(t, err)
	vals := make([]float64, n)
	for k := range vals {
		vals[k] = 1
	}
	l, err := loading.Build(vals, rows, cols)
	require.NoError(t, err)

	return l
}

// randomLoading returns a lower-triangular loading matrix with entries uniform
// in [-1, 1), deterministic per seed.
func randomLoading(t testing.TB, rows, cols int, seed uint64) *matrix.Dense {
	t.Helper()
	n, err := loading.Nnz(rows, cols)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(seed, 1))
	vals := make([]float64, n)
	for k := range vals {
		vals[k] = rng.Float64()*2 - 1
	}
	l, err := loading.Build(vals, rows, cols)
	require.NoError(t, err)

	return l
}

// gramRows returns M·Mᵀ, which any orthogonal right factor and any column
// sign flip leave unchanged.
func gramRows(t *testing.T, m matrix.Matrix) *matrix.Dense {
	t.Helper()
	mt, err := matrix.Transpose(m)
	require.NoError(t, err)
	g, err := matrix.Mul(m, mt)
	require.NoError(t, err)

	return g
}

// requireClose fails unless a and b agree element-wise within atol.
func requireClose(t *testing.T, a, b matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, 0, atol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ beyond atol=%g:\n%v\nvs\n%v", atol, a, b)
}

// requireOrthogonal fails unless QᵀQ ≈ I.
func requireOrthogonal(t *testing.T, q matrix.Matrix, atol float64) {
	t.Helper()
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	qtq, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(q.Cols())
	require.NoError(t, err)
	requireClose(t, qtq, id, atol)
}

// requireSignConvention fails unless every column's max is at least as large
// in magnitude as its min.
func requireSignConvention(t *testing.T, b *matrix.Dense) {
	t.Helper()
	for j := 0; j < b.Cols(); j++ {
		col, err := b.Col(j)
		require.NoError(t, err)
		lo, hi := col[0], col[0]
		for _, v := range col[1:] {
			lo, hi = min(lo, v), max(hi, v)
		}
		require.GreaterOrEqual(t, math.Abs(hi), math.Abs(lo), "column %d", j)
	}
}
