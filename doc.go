// Package lvfactor is the numeric core of a Bayesian factor-analysis
// workflow: it lays out identified loading matrices for a sampler and
// rotates the sampled matrices afterwards so they can be compared.
//
// 🚀 What is lvfactor?
//
//	A small library that brings together:
//		• Loading layout: lower-triangular loading matrices from flat parameter vectors
//		• Gradients: the closed-form pullback of that layout for external samplers
//		• Rotation: the gamma family (quartimax, varimax, equamax, parsimax)
//		• Batches: concurrent, deterministic rotation of many posterior draws
//
// ✨ Why choose lvfactor?
//
//   - Deterministic – seedable randomness, no global state
//   - Explicit errors – sentinels matched with errors.Is, never panics on input
//   - Observable – OnIteration hook for the rotation criterion trace
//
// Under the hood, everything is organized under three subpackages:
//
//	loading/  — Nnz, Build, Unpack, Pullback
//	matrix/   — Dense storage, kernels, SVD/QR (gonum-backed)
//	rotation/ — Rotate, RotateAll, NormalizeSigns, gamma helpers
//
// Quick example:
//
//	L, _ := loading.Build(theta, 6, 2)          // sampler draw → 6×2 loadings
//	B, _ := rotation.Rotate(L, rotation.WithSeed(1))
//
// See examples/ for a full posterior post-processing run.
//
//	go get github.com/katalvlaran/lvfactor
package lvfactor
