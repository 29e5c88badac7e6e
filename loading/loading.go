// SPDX-License-Identifier: MIT

package loading

import (
	"fmt"

	"github.com/katalvlaran/lvfactor/matrix"
)

// Operation tags for error wrapping.
const (
	opNnz      = "Nnz"
	opBuild    = "Build"
	opUnpack   = "Unpack"
	opPullback = "Pullback"
)

// loadingErrorf wraps err with an operation tag, preserving it for errors.Is.
func loadingErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// validateShape enforces rows >= cols >= 1.
func validateShape(rows, cols int) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("rows=%d cols=%d: %w", rows, cols, ErrInvalidDimension)
	}
	if cols > rows {
		return fmt.Errorf("cols=%d > rows=%d: %w", cols, rows, ErrInvalidDimension)
	}

	return nil
}

// nnz evaluates the closed form without validation.
// (2r+1)c - c² is always even, so integer division is exact.
func nnz(rows, cols int) int {
	return ((2*rows+1)*cols - cols*cols) / 2
}

// Nnz returns the number of entries on or below the main diagonal of a
// rows×cols matrix, i.e. Σ_{j=1..cols} (rows - j + 1).
//
// Errors:
//   - ErrInvalidDimension if cols > rows or either dimension is < 1.
//
// Complexity: O(1).
func Nnz(rows, cols int) (int, error) {
	if err := validateShape(rows, cols); err != nil {
		return 0, loadingErrorf(opNnz, err)
	}

	return nnz(rows, cols), nil
}

// Build materializes a rows×cols loading matrix from values.
//
// Implementation:
//   - Stage 1: validate shape, then len(values) == Nnz(rows, cols).
//   - Stage 2: allocate a zero matrix (strictly-upper cells stay exactly 0).
//   - Stage 3: walk j = 0..cols-1, i = j..rows-1, consuming values in order.
//
// Errors:
//   - ErrInvalidDimension (shape), ErrInvalidArgument (length mismatch),
//     matrix.ErrNaNInf if a value is not finite.
//
// Determinism:
//   - Pure function of its inputs; values is never retained.
//
// Complexity:
//   - Time O(rows·cols), Space O(rows·cols).
func Build(values []float64, rows, cols int) (*matrix.Dense, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, loadingErrorf(opBuild, err)
	}
	if want := nnz(rows, cols); len(values) != want {
		return nil, loadingErrorf(opBuild,
			fmt.Errorf("len(values)=%d, want %d: %w", len(values), want, ErrInvalidArgument))
	}

	l, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, loadingErrorf(opBuild, err)
	}
	var i, j, k int
	for j = 0; j < cols; j++ {
		for i = j; i < rows; i++ {
			if err = l.Set(i, j, values[k]); err != nil {
				return nil, loadingErrorf(opBuild, err)
			}
			k++
		}
	}

	return l, nil
}

// Unpack is the inverse of Build: it reads the lower triangle of l in fill
// order.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrInvalidDimension (cols > rows),
//     ErrInvalidArgument if any strictly-upper entry is non-zero.
//
// Complexity: O(rows·cols).
func Unpack(l matrix.Matrix) ([]float64, error) {
	return readLower(opUnpack, l, true)
}

// Pullback returns ∂f/∂values given upstream = ∂f/∂L for L = Build(values, ...).
//
// Each parameter lands in exactly one cell of L, so the Jacobian of Build is a
// 0/1 selection and the gradient is the lower triangle of upstream read in
// fill order. Strictly-upper entries of upstream are ignored: those cells are
// constants.
//
// Example: for f(values) = Σ L², upstream is 2·L and Pullback returns 2·values.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrInvalidDimension (cols > rows).
//
// Complexity: O(rows·cols).
func Pullback(upstream matrix.Matrix) ([]float64, error) {
	return readLower(opPullback, upstream, false)
}

// readLower collects m[i,j] for j = 0..cols-1, i = j..rows-1. When strict is
// set, any non-zero strictly-upper entry is rejected.
func readLower(tag string, m matrix.Matrix, strict bool) ([]float64, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, loadingErrorf(tag, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if err := validateShape(rows, cols); err != nil {
		return nil, loadingErrorf(tag, err)
	}

	out := make([]float64, 0, nnz(rows, cols))
	var (
		i, j int
		v    float64
		err  error
	)
	for j = 0; j < cols; j++ {
		if strict {
			for i = 0; i < j; i++ {
				if v, err = m.At(i, j); err != nil {
					return nil, loadingErrorf(tag, err)
				}
				if v != 0 {
					return nil, loadingErrorf(tag,
						fmt.Errorf("entry (%d,%d)=%g above diagonal: %w", i, j, v, ErrInvalidArgument))
				}
			}
		}
		for i = j; i < rows; i++ {
			if v, err = m.At(i, j); err != nil {
				return nil, loadingErrorf(tag, err)
			}
			out = append(out, v)
		}
	}

	return out, nil
}
