// SPDX-License-Identifier: MIT
package rotation_test

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvfactor/matrix"
	"github.com/katalvlaran/lvfactor/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// draws returns n loading-matrix samples, one axis-aligned so the random
// restart is exercised.
func draws(t *testing.T, n int) []matrix.Matrix {
	t.Helper()
	out := make([]matrix.Matrix, n)
	for i := range out {
		out[i] = randomLoading(t, 6, 3, uint64(100+i))
	}
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	out[n/2] = id

	return out
}

// TestRotateAll_MatchesRotate checks that sample i equals Rotate with the
// PCG(seed, DefaultStream+i) source.
func TestRotateAll_MatchesRotate(t *testing.T) {
	t.Parallel()

	samples := draws(t, 6)
	const seed = 21
	got, err := rotation.RotateAll(context.Background(), samples, rotation.WithSeed(seed))
	require.NoError(t, err)
	require.Len(t, got, len(samples))

	for i, s := range samples {
		want, err := rotation.Rotate(s, rotation.WithSource(rand.NewPCG(seed, rotation.DefaultStream+uint64(i))))
		require.NoError(t, err)
		assert.Equal(t, want.Data(), got[i].Data(), "sample %d", i)
	}

	first, err := rotation.Rotate(samples[0], rotation.WithSeed(seed))
	require.NoError(t, err)
	assert.Equal(t, first.Data(), got[0].Data())
}

// TestRotateAll_IndependentOfConcurrency compares one worker against many.
func TestRotateAll_IndependentOfConcurrency(t *testing.T) {
	t.Parallel()

	samples := draws(t, 9)
	serial, err := rotation.RotateAll(context.Background(), samples, rotation.WithConcurrency(1))
	require.NoError(t, err)
	parallel, err := rotation.RotateAll(context.Background(), samples, rotation.WithConcurrency(4))
	require.NoError(t, err)
	for i := range samples {
		assert.Equal(t, serial[i].Data(), parallel[i].Data(), "sample %d", i)
	}

	// An explicit source is expanded up front, so it is reproducible as well.
	s1, err := rotation.RotateAll(context.Background(), samples, rotation.WithSource(rand.NewPCG(8, 8)), rotation.WithConcurrency(3))
	require.NoError(t, err)
	s2, err := rotation.RotateAll(context.Background(), samples, rotation.WithSource(rand.NewPCG(8, 8)), rotation.WithConcurrency(2))
	require.NoError(t, err)
	for i := range samples {
		assert.Equal(t, s1[i].Data(), s2[i].Data(), "sample %d", i)
	}
}

func TestRotateAll_HookSeesEverySample(t *testing.T) {
	t.Parallel()

	samples := draws(t, 4)
	var calls atomic.Int64
	_, err := rotation.RotateAll(context.Background(), samples,
		rotation.WithMinIterations(3),
		rotation.WithMaxIterations(3),
		rotation.WithOnIteration(func(rotation.Iteration) { calls.Add(1) }),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(3*len(samples)), calls.Load())
}

func TestRotateAll_Empty(t *testing.T) {
	t.Parallel()

	got, err := rotation.RotateAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRotateAll_FirstErrorWins(t *testing.T) {
	t.Parallel()

	samples := draws(t, 3)
	samples[1] = nil
	got, err := rotation.RotateAll(context.Background(), samples, rotation.WithConcurrency(1))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	assert.Contains(t, err.Error(), "sample 1")
}

func TestRotateAll_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := rotation.RotateAll(ctx, draws(t, 4))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.Canceled)
}
