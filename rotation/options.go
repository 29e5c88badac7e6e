// SPDX-License-Identifier: MIT

// Package rotation: functional configuration for the gamma-family rotation.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state; randomness only from an explicit,
//     seedable source (DefaultSeed when none is given).
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
package rotation

import (
	"math"
	"math/rand/v2"
	"runtime"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultGamma selects the varimax criterion.
	DefaultGamma = 1.0

	// DefaultMinIterations is the lower bound on refinement steps before the
	// convergence test is honored.
	DefaultMinIterations = 20

	// DefaultMaxIterations is the hard cap on refinement steps.
	DefaultMaxIterations = 1000

	// DefaultRelativeTolerance is the threshold on |D − D_prev| / D.
	DefaultRelativeTolerance = 1e-12

	// DefaultSeed seeds the PCG source used for the random restart when the
	// caller supplies neither WithSource nor WithSeed.
	DefaultSeed uint64 = 0x6c76666163746f72

	// DefaultStream is the PCG stream selector paired with the seed.
	// RotateAll offsets it by the sample index.
	DefaultStream uint64 = 0x385ab5285169b1ac
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicGammaInvalid       = "rotation: WithGamma: gamma must be finite"
	panicMinIterInvalid     = "rotation: WithMinIterations: n must be >= 0"
	panicMaxIterInvalid     = "rotation: WithMaxIterations: n must be >= 0"
	panicToleranceInvalid   = "rotation: WithRelativeTolerance: tol must be finite, non-negative"
	panicSourceNil          = "rotation: WithSource: source must be non-nil"
	panicConcurrencyInvalid = "rotation: WithConcurrency: n must be >= 1"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (last-writer-wins).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Iteration is the per-step report handed to an OnIteration hook.
type Iteration struct {
	Index          int     // 1-based refinement step
	Criterion      float64 // D: sum of singular values of the gradient matrix
	RelativeChange float64 // |D − D_prev| / D; 0 when both are 0, +Inf when only D is 0
}

// Options stores the effective configuration after applying Option setters.
type Options struct {
	gamma       float64
	minIter     int
	maxIter     int
	relTol      float64
	seed        uint64
	src         rand.Source // nil ⇒ fresh PCG(seed, DefaultStream) per call
	onIteration func(Iteration)
	concurrency int // RotateAll workers
}

// ---------- Constructors (WithX) ----------

// WithGamma sets the criterion weight: 0 quartimax, 1 varimax, m/2 equamax,
// d(m-1)/(d+m-2) parsimax. See Quartimax, Varimax, Equamax, Parsimax.
// Panics if gamma is NaN or ±Inf.
func WithGamma(gamma float64) Option {
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		panic(panicGammaInvalid)
	}

	return func(o *Options) { o.gamma = gamma }
}

// WithMinIterations sets the number of refinement steps that always run
// before the convergence test may stop the loop. Panics if n < 0.
func WithMinIterations(n int) Option {
	if n < 0 {
		panic(panicMinIterInvalid)
	}

	return func(o *Options) { o.minIter = n }
}

// WithMaxIterations sets the hard cap on refinement steps. Reaching the cap is
// not an error; the current iterate is returned. Panics if n < 0.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithRelativeTolerance sets the convergence threshold on the relative change
// of the criterion. It is also the Frobenius-distance threshold below which
// the warm start is considered stuck at the identity.
// Panics if tol is negative, NaN or ±Inf.
func WithRelativeTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.relTol = tol }
}

// WithSource injects the randomness used by the random restart.
// The source is owned by the call: do not share it across concurrent Rotate calls.
// Panics if src is nil.
func WithSource(src rand.Source) Option {
	if src == nil {
		panic(panicSourceNil)
	}

	return func(o *Options) { o.src = src }
}

// WithSeed selects a PCG source seeded with seed. It clears any source set by
// an earlier WithSource.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.seed = seed
		o.src = nil
	}
}

// WithOnIteration registers a hook called after every refinement step.
// The hook runs synchronously on the rotating goroutine; in RotateAll it may
// be invoked from several goroutines at once.
func WithOnIteration(fn func(Iteration)) Option {
	return func(o *Options) { o.onIteration = fn }
}

// WithConcurrency bounds the number of RotateAll workers. Panics if n < 1.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic(panicConcurrencyInvalid)
	}

	return func(o *Options) { o.concurrency = n }
}

// --------------------------- Option Resolution ---------------------------

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		gamma:       DefaultGamma,
		minIter:     DefaultMinIterations,
		maxIter:     DefaultMaxIterations,
		relTol:      DefaultRelativeTolerance,
		seed:        DefaultSeed,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// gatherOptions applies user setters on top of defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}

// source returns the configured source, or a fresh PCG(seed, stream).
func (o *Options) source(stream uint64) rand.Source {
	if o.src != nil {
		return o.src
	}

	return rand.NewPCG(o.seed, stream)
}
