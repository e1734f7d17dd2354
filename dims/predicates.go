// SPDX-License-Identifier: MIT

package dims

// IsScalar reports whether every dimension of d equals 1.
func IsScalar(d Vector) bool {
	if len(d) == 0 {
		return false
	}

	return AllOnes(d)
}

// IsVector reports whether d is 2-D with one of its two dimensions equal to 1
// (row vectors, column vectors and scalars).
func IsVector(d Vector) bool {
	n := d.Normalize()

	return len(n) == 2 && (n[0] == 1 || n[1] == 1)
}

// VectorEquivalent reports whether at most one dimension of d differs from 1,
// i.e. d can be reshaped into a vector without reordering elements.
func VectorEquivalent(d Vector) bool {
	found := false
	for _, x := range d {
		if x != 1 {
			if found {
				return false
			}
			found = true
		}
	}

	return true
}

// IsMatrix reports whether d is exactly two-dimensional after normalization.
func IsMatrix(d Vector) bool { return len(d.Normalize()) == 2 }

// Conformant reports whether an elementwise operation between shapes a and b
// is defined: identical shapes, or either side holding exactly one element.
func Conformant(a, b Vector) bool {
	if a.Numel() == 1 || b.Numel() == 1 {
		return true
	}

	return a.Equal(b)
}
