// SPDX-License-Identifier: MIT

package rotation

import "errors"

// ErrNumericalFailure indicates that a decomposition inside the rotation did
// not converge or the iterate left the finite range. The underlying matrix
// sentinel (matrix.ErrFactorizationFailed or matrix.ErrNaNInf) stays
// matchable with errors.Is.
var ErrNumericalFailure = errors.New("rotation: numerical failure")
