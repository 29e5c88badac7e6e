// Package loading lays out structurally constrained factor-loading matrices.
//
// 🚀 What is a loading matrix?
//
//	In a linear factor model, a rows×cols loading matrix L maps cols latent
//	factors onto rows observed variables. Fixing every entry above the main
//	diagonal to zero removes the rotational ambiguity of L and leaves
//
//	    Nnz(rows, cols) = ((2*rows + 1)*cols - cols²) / 2
//
//	free parameters.
//
// ✨ Key features:
//   - Nnz      — free-parameter count for a shape (rows ≥ cols ≥ 1).
//   - Build    — materialize L from a flat parameter vector.
//   - Unpack   — read the parameter vector back out of L.
//   - Pullback — closed-form gradient of Build for external samplers.
//
// Fill order is column-major over the lower triangle: for j = 0..cols-1,
// rows i = j..rows-1 consume one value each.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvfactor/loading"
//
//	n, _ := loading.Nnz(5, 3)         // 12
//	L, err := loading.Build(draw, 5, 3)
//
// Performance:
//
//   - Nnz:   O(1)
//   - Build: O(rows·cols) time & memory
package loading
