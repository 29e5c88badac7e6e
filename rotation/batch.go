// SPDX-License-Identifier: MIT

package rotation

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/lvfactor/matrix"
)

// RotateAll rotates every sample (typically posterior draws of one loading
// matrix) with the same options and returns the results in input order.
//
// Concurrency:
//   - At most WithConcurrency(n) samples are in flight (default GOMAXPROCS).
//   - Sample i restarts from its own PCG source: (seed, DefaultStream+i) under
//     WithSeed / the default seed, or a pair drawn sequentially from the
//     WithSource source before any work starts. Results therefore do not
//     depend on scheduling.
//   - An OnIteration hook may be called from several goroutines at once.
//
// Errors:
//   - The first failing sample cancels the rest; its error is returned wrapped
//     with the sample index. No partial results are returned.
//   - ctx cancellation is observed between samples and returns ctx.Err().
func RotateAll(ctx context.Context, samples []matrix.Matrix, opts ...Option) ([]*matrix.Dense, error) {
	o := gatherOptions(opts...)
	sources := sampleSources(&o, len(samples))
	out := make([]*matrix.Dense, len(samples))

	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(o.concurrency).
		WithCancelOnError().
		WithFirstError()
	for i := range samples {
		if ctx.Err() != nil {
			break
		}
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			local := o
			local.src = sources[i]
			b, err := rotateWith(samples[i], &local)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			out[i] = b

			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, rotationErrorf(opRotateAll, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, rotationErrorf(opRotateAll, err)
	}

	return out, nil
}

// sampleSources builds one independent source per sample.
func sampleSources(o *Options, n int) []rand.Source {
	out := make([]rand.Source, n)
	if o.src != nil {
		r := rand.New(o.src)
		for i := range out {
			out[i] = rand.NewPCG(r.Uint64(), r.Uint64())
		}

		return out
	}
	for i := range out {
		out[i] = rand.NewPCG(o.seed, DefaultStream+uint64(i))
	}

	return out
}
