// SPDX-License-Identifier: MIT

package loading

import "errors"

var (
	// ErrInvalidDimension indicates a shape that cannot carry a lower-triangular
	// loading matrix: cols > rows, or a non-positive dimension.
	ErrInvalidDimension = errors.New("loading: invalid dimension (need rows >= cols >= 1)")

	// ErrInvalidArgument indicates a parameter vector whose length differs from
	// Nnz(rows, cols), or a matrix with non-zero entries above the diagonal.
	ErrInvalidArgument = errors.New("loading: invalid argument")
)
