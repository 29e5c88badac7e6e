// SPDX-License-Identifier: MIT

package rotation

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfactor/matrix"
)

// NormalizeSigns negates, in place, every column of b whose minimum entry is
// larger in magnitude than its maximum entry. Afterwards each column's
// largest-magnitude extreme is non-negative; ties keep their sign.
//
// Applying it twice equals applying it once. A nil b is a no-op.
//
// Complexity: O(rows·cols).
func NormalizeSigns(b *matrix.Dense) {
	if b == nil {
		return
	}
	for j := 0; j < b.Cols(); j++ {
		col, err := b.Col(j)
		if err != nil {
			return
		}
		if math.Abs(floats.Max(col)) < math.Abs(floats.Min(col)) {
			_ = b.NegateCol(j) // j is in range
		}
	}
}
