// SPDX-License-Identifier: MIT

// Package dims - column-major index arithmetic.
//
// Purpose:
//   - Translate N-d coordinates to linear offsets (first dimension fastest).
//   - Drive generic N-d iteration without recursion (IncrementIndex).
//
// Determinism & Performance:
//   - No allocation except the folded shape in ComputeIndex and the result of Ind2Sub.

package dims

// ComputeIndex returns the column-major linear offset of coords within d.
// MAIN DESCRIPTION:
//   - When fewer coordinates than dimensions are given, the trailing
//     dimensions are folded into the last addressed one (d.Redim(len(coords))),
//     so a single coordinate addresses the array linearly.
//   - When more coordinates are given, the extra dimensions have extent 1.
//
// Implementation:
//   - Stage 1: fold d to len(coords) dimensions.
//   - Stage 2: validate each coordinate against its extent.
//   - Stage 3: accumulate coordinate * stride.
//
// Errors:
//   - ErrBadShape for an empty coordinate vector.
//   - *IndexError (wraps ErrIndexOutOfBounds) for a negative or too-large coordinate.
//
// Complexity:
//   - Time O(len(coords)), Space O(len(coords)).
func ComputeIndex(coords []int, d Vector) (int, error) {
	n := len(coords)
	if n == 0 {
		return 0, dimsErrorf("ComputeIndex", ErrBadShape)
	}
	dv := d.Redim(n)

	idx, stride := 0, 1
	for i := 0; i < n; i++ {
		if coords[i] < 0 || coords[i] >= dv[i] {
			return 0, &IndexError{Pos: i, NDims: n, Index: coords[i], Extent: dv[i], Dims: d.Normalize()}
		}
		idx += coords[i] * stride
		stride *= dv[i]
	}

	return idx, nil
}

// LinearIndex is the variadic form of ComputeIndex: LinearIndex(d, i, j, k).
func LinearIndex(d Vector, coords ...int) (int, error) {
	return ComputeIndex(coords, d)
}

// IncrementIndex advances coords by one position in column-major order,
// carrying overflow into higher dimensions, starting at dimension start.
// coords is modified in place. The last coordinate is never wrapped, so a
// loop terminates once IncrementIndex reports false.
//
// Example (d = 2x3): [0 0] -> [1 0] -> [0 1] -> ... -> [1 2] -> [0 3] (false).
//
// Complexity: O(len(coords)) worst case, O(1) amortized.
func IncrementIndex(coords []int, d Vector, start int) bool {
	if start < 0 || start >= len(coords) {
		return false
	}
	coords[start]++

	last := len(coords) - 1
	nd := len(d)
	var bound int
	for i := start; i < last; i++ {
		bound = 1
		if i < nd {
			bound = d[i]
		}
		if coords[i] < bound {
			break
		}
		coords[i] = 0
		coords[i+1]++
	}

	return IndexInBounds(coords, d)
}

// IndexInBounds reports whether every coordinate lies inside d (with d folded
// or padded to len(coords) dimensions).
func IndexInBounds(coords []int, d Vector) bool {
	if len(coords) == 0 {
		return false
	}
	dv := d.Redim(len(coords))
	for i, c := range coords {
		if c < 0 || c >= dv[i] {
			return false
		}
	}

	return true
}

// Ind2Sub converts a linear offset into per-dimension coordinates of d.
// Errors:
//   - *IndexError when linear is outside [0, numel).
//
// Complexity: O(ndims).
func Ind2Sub(linear int, d Vector) ([]int, error) {
	n := d.Normalize()
	numel := n.Numel()
	if linear < 0 || linear >= numel {
		return nil, &IndexError{Pos: 0, NDims: 1, Index: linear, Extent: numel, Dims: n}
	}
	out := make([]int, len(n))
	for i, ext := range n {
		out[i] = linear % ext
		linear /= ext
	}

	return out, nil
}

// NumOnes counts the entries equal to 1.
func NumOnes(v []int) int {
	n := 0
	for _, x := range v {
		if x == 1 {
			n++
		}
	}

	return n
}

// AnyOnes reports whether some entry equals 1.
func AnyOnes(v []int) bool {
	for _, x := range v {
		if x == 1 {
			return true
		}
	}

	return false
}

// AllOnes reports whether every entry equals 1 (true for an empty slice).
func AllOnes(v []int) bool {
	for _, x := range v {
		if x != 1 {
			return false
		}
	}

	return true
}
