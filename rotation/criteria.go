// SPDX-License-Identifier: MIT

package rotation

// Gamma weights of the classic members of the orthomax family.
// d is the number of rows (observed variables), m the number of factors.

// Quartimax returns gamma = 0.
func Quartimax() float64 { return 0 }

// Varimax returns gamma = 1.
func Varimax() float64 { return 1 }

// Equamax returns gamma = m/2.
func Equamax(m int) float64 { return float64(m) / 2 }

// Parsimax returns gamma = d(m-1)/(d+m-2).
// The d+m-2 == 0 case (d = m = 1) has no rotation to weight and yields 0.
func Parsimax(d, m int) float64 {
	den := d + m - 2
	if den == 0 {
		return 0
	}

	return float64(d*(m-1)) / float64(den)
}
