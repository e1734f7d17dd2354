// SPDX-License-Identifier: MIT

// Package dims - Vector: the shape of an N-dimensional array.
//
// Purpose:
//   - Hold sizes per axis with the normalization rules shared by every
//     container: at least two entries, trailing singletons dropped.
//   - Provide shape algebra (Redim, Concat, Transpose) used by kernels.
//
// Complexity quicksheet:
//   - All methods are O(ndims).

package dims

import (
	"math/bits"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Vector is an ordered list of non-negative dimension sizes.
// A Vector built through New is normalized; literal Vectors are accepted by
// every method and compared in normalized form.
type Vector []int

// New builds a normalized Vector.
//   - New() is 0x0.
//   - New(n) is n x 1.
//   - Trailing size-1 dimensions beyond the second are dropped.
//
// Complexity: O(len(d)).
func New(d ...int) Vector {
	var v Vector
	switch len(d) {
	case 0:
		v = Vector{0, 0}
	case 1:
		v = Vector{d[0], 1}
	default:
		v = make(Vector, len(d))
		copy(v, d)
	}

	return v.chop()
}

// chop drops trailing singleton dimensions beyond the second.
func (v Vector) chop() Vector {
	n := len(v)
	for n > 2 && v[n-1] == 1 {
		n--
	}

	return v[:n]
}

// Normalize returns a normalized copy of v (at least two entries, no
// trailing singletons beyond the second).
func (v Vector) Normalize() Vector {
	switch len(v) {
	case 0:
		return Vector{0, 0}
	case 1:
		return Vector{v[0], 1}
	}
	out := make(Vector, len(v))
	copy(out, v)

	return out.chop()
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)

	return out
}

// NDims returns the number of dimensions after normalization.
func (v Vector) NDims() int { return len(v.Normalize()) }

// Rows returns the first dimension (0 for an empty Vector).
func (v Vector) Rows() int {
	if len(v) == 0 {
		return 0
	}

	return v[0]
}

// Cols returns the second dimension (1 when v has a single entry).
func (v Vector) Cols() int {
	switch len(v) {
	case 0:
		return 0
	case 1:
		return 1
	}

	return v[1]
}

// Numel returns the product of all dimensions without overflow checking.
// Use CheckedNumel when sizes come from untrusted input.
func (v Vector) Numel() int {
	if len(v) == 0 {
		return 0
	}
	n := 1
	for _, d := range v {
		n *= d
	}

	return n
}

// CheckedNumel returns the product of all dimensions.
// Implementation:
//   - Stage 1: reject negative sizes (ErrBadShape).
//   - Stage 2: multiply in uint64 with bits.Mul64; any high word is overflow.
//   - Stage 3: narrow the product back to int with safecast.
//
// Complexity: O(ndims).
func (v Vector) CheckedNumel() (int, error) {
	if len(v) == 0 {
		return 0, nil
	}
	var total uint64 = 1
	for _, d := range v {
		ud, err := safecast.Conv[uint64](d)
		if err != nil {
			return 0, dimsErrorf("CheckedNumel", ErrBadShape)
		}
		hi, lo := bits.Mul64(total, ud)
		if hi != 0 {
			return 0, dimsErrorf("CheckedNumel", ErrOverflow)
		}
		total = lo
	}
	n, err := safecast.Conv[int](total)
	if err != nil {
		return 0, dimsErrorf("CheckedNumel", ErrOverflow)
	}

	return n, nil
}

// Validate reports ErrBadShape when any dimension is negative.
func (v Vector) Validate() error {
	for i, d := range v {
		if d < 0 {
			return dimsErrorf("Validate: dim "+strconv.Itoa(i), ErrBadShape)
		}
	}

	return nil
}

// IsEmpty reports whether the array holds no elements.
func (v Vector) IsEmpty() bool {
	if len(v) == 0 {
		return true
	}
	for _, d := range v {
		if d == 0 {
			return true
		}
	}

	return false
}

// Equal compares two Vectors in normalized form.
func (v Vector) Equal(o Vector) bool {
	a, b := v.Normalize(), o.Normalize()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// String renders the shape as "2x3x4".
func (v Vector) String() string {
	n := v.Normalize()
	parts := make([]string, len(n))
	for i, d := range n {
		parts[i] = strconv.Itoa(d)
	}

	return strings.Join(parts, "x")
}

// Transpose swaps the first two dimensions. Only meaningful for 2-D shapes;
// higher dimensions are carried unchanged.
func (v Vector) Transpose() Vector {
	out := v.Normalize()
	out[0], out[1] = out[1], out[0]

	return out
}

// Redim folds or pads v to exactly n dimensions.
//   - n > ndims: pad with 1s.
//   - n < ndims: the last kept dimension absorbs the product of the dropped ones.
//   - n == 1 yields {numel, 1} so the result always has two entries.
//
// The result is deliberately not normalized: callers index it by position.
//
// Complexity: O(max(n, ndims)).
func (v Vector) Redim(n int) Vector {
	src := v.Normalize()
	nd := len(src)
	if n < 1 {
		n = 1
	}
	if n == nd {
		return src
	}
	if n > nd {
		out := make(Vector, n)
		copy(out, src)
		for i := nd; i < n; i++ {
			out[i] = 1
		}

		return out
	}
	size := n
	if size == 1 {
		size = 2
	}
	out := make(Vector, size)
	out[1] = 1
	copy(out, src[:n-1])
	k := src[n-1]
	for i := n; i < nd; i++ {
		k *= src[i]
	}
	out[n-1] = k

	return out
}

// Concat computes the shape of concatenating an array of shape o onto v
// along axis. It reports false when the operands disagree on any other
// dimension. A 0x0 operand is always compatible and contributes nothing.
//
// Implementation:
//   - Stage 1: pad both shapes to the larger of their ranks and axis+1.
//   - Stage 2: compare every non-axis dimension.
//   - Stage 3: on mismatch, accept only when one side is 0x0.
//
// Complexity: O(ndims).
func (v Vector) Concat(o Vector, axis int) (Vector, bool) {
	if axis < 0 {
		return nil, false
	}
	a, b := v.Normalize(), o.Normalize()
	nd := len(a)
	if len(b) > nd {
		nd = len(b)
	}
	if axis+1 > nd {
		nd = axis + 1
	}
	a, b = a.Redim(nd), b.Redim(nd)

	match := true
	for i := 0; i < nd; i++ {
		if i != axis && a[i] != b[i] {
			match = false
			break
		}
	}
	if match {
		a[axis] += b[axis]

		return a.chop(), true
	}
	// The only tolerated mismatch is an empty 0x0 operand.
	if isZeroByZero(o) {
		return v.Normalize(), true
	}
	if isZeroByZero(v) {
		return o.Normalize(), true
	}

	return nil, false
}

// isZeroByZero reports whether v is exactly the 2-D empty shape 0x0.
func isZeroByZero(v Vector) bool {
	n := v.Normalize()

	return len(n) == 2 && n[0] == 0 && n[1] == 0
}

// Strides returns the column-major stride of each dimension.
func (v Vector) Strides() []int {
	n := v.Normalize()
	out := make([]int, len(n))
	s := 1
	for i, d := range n {
		out[i] = s
		s *= d
	}

	return out
}
