// Package matrix offers the dense linear-algebra layer used by the loading
// and rotation packages.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set that
//     refuses NaN/Inf, so loading matrices and rotations stay finite.
//   - Kernels: Mul, Transpose, Sub, FrobeniusNorm, AllClose, NewIdentity.
//   - Factorizations: SVD (full) and QR (diag(R) ≥ 0) backed by gonum.
//   - Validators and sentinel errors shared by every kernel.
//
// All kernels accept the Matrix interface and return a fresh *Dense; passing
// *Dense operands unlocks flat-slice fast paths.
package matrix
