// SPDX-License-Identifier: MIT

// Package rotation implements the gamma-parameterized orthogonal rotation
// family (quartimax, varimax, equamax, parsimax) for factor-loading matrices.
//
// 🚀 What does it do?
//
//	Given a d×m loading matrix A, Rotate finds an m×m orthogonal T that
//	maximizes
//
//	    Σ_j [ Σ_i b_ij⁴ − (γ/d)·(Σ_i b_ij²)² ],   B = A·T
//
//	and returns B with a canonical column sign (largest-magnitude extreme
//	positive). Each step solves an orthogonal Procrustes problem through the
//	SVD of the gradient G = Aᵀ·(d·B.^3 − γ·B·diag(Σ_i B.^2)).
//
// ✨ Key features:
//   - Rotate          — single matrix, deterministic for a given seed.
//   - RotateAll       — batch of sampler draws on a bounded worker group.
//   - NormalizeSigns  — the sign convention on its own, idempotent.
//   - Quartimax / Varimax / Equamax / Parsimax — gamma helpers.
//
// ⚙️ Usage:
//
//	B, err := rotation.Rotate(L,
//		rotation.WithGamma(rotation.Equamax(L.Cols())),
//		rotation.WithSeed(42),
//	)
//
// Randomness is used only when the first Procrustes step lands on the
// identity; the restart draws from the configured source (WithSource or
// WithSeed), never from global state.
//
// Performance:
//
//   - per step: O(d·m²) products + O(m³) SVD
//   - total:    bounded by WithMaxIterations
package rotation
