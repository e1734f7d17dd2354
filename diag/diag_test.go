// SPDX-License-Identifier: MIT

package diag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ndarith/array"
	"github.com/katalvlaran/ndarith/diag"
	"github.com/katalvlaran/ndarith/dims"
)

type DiagSuite struct {
	suite.Suite
	d *diag.Array[float64]
}

func (s *DiagSuite) SetupTest() {
	d, err := diag.New[float64](3, 5)
	s.Require().NoError(err)
	s.Require().NoError(d.Set(0, 0, 1))
	s.Require().NoError(d.Set(1, 1, 2))
	s.Require().NoError(d.Set(2, 2, 3))
	s.d = d
}

func (s *DiagSuite) TestShape() {
	s.Require().Equal(dims.Vector{3, 5}, s.d.Dims())
	s.Require().Equal(3, s.d.Len())
	s.Require().Len(s.d.Data(), 3)
	s.Require().Equal(15, s.d.Numel())
}

func (s *DiagSuite) TestOffDiagonalReadsZero() {
	for r := 0; r < s.d.Rows(); r++ {
		for c := 0; c < s.d.Cols(); c++ {
			v, err := s.d.At(r, c)
			s.Require().NoError(err)
			if r != c {
				s.Require().Zero(v, "(%d,%d)", r, c)
			}
		}
	}
}

func (s *DiagSuite) TestOffDiagonalWriteRejected() {
	before := s.d.Clone()
	for r := 0; r < s.d.Rows(); r++ {
		for c := 0; c < s.d.Cols(); c++ {
			if r == c {
				continue
			}
			err := s.d.Set(r, c, 9)
			s.Require().ErrorIs(err, diag.ErrInvalidAssignment, "(%d,%d)", r, c)
		}
	}
	s.Require().True(s.d.Equal(before), "rejected writes must not mutate")
	s.Require().Contains(s.d.Set(0, 1, 9).Error(), "invalid off-diagonal assignment")
}

func (s *DiagSuite) TestOutOfBounds() {
	_, err := s.d.At(3, 0)
	s.Require().ErrorIs(err, dims.ErrIndexOutOfBounds)

	var ie *dims.IndexError
	s.Require().True(errors.As(err, &ie))
	s.Require().Equal(3, ie.Index)
	s.Require().Equal("3x5", ie.Dims.String())

	s.Require().ErrorIs(s.d.Set(0, 5, 1), dims.ErrIndexOutOfBounds)
}

func (s *DiagSuite) TestTransposeRoundTrip() {
	tr := s.d.Transpose()
	s.Require().Equal(dims.Vector{5, 3}, tr.Dims())
	s.Require().Equal(s.d.Data(), tr.Data())
	s.Require().True(tr.Transpose().Equal(s.d))
}

func (s *DiagSuite) TestResize() {
	s.Require().NoError(s.d.ResizeFill(4, 4, 7))
	s.Require().Equal([]float64{1, 2, 3, 7}, s.d.Data())

	s.Require().NoError(s.d.Resize(2, 6))
	s.Require().Equal([]float64{1, 2}, s.d.Data())
	s.Require().Equal(dims.Vector{2, 6}, s.d.Dims())

	s.Require().ErrorIs(s.d.Resize(-1, 2), dims.ErrBadShape)
}

func (s *DiagSuite) TestDiag() {
	s.Require().Equal([]float64{1, 2, 3}, s.d.Diag(0))
	s.Require().Len(s.d.Diag(1), 3)  // min(5-1, 3)
	s.Require().Len(s.d.Diag(3), 2)  // min(5-3, 3)
	s.Require().Len(s.d.Diag(-1), 2) // min(3-1, 5)
	s.Require().Empty(s.d.Diag(5))
	s.Require().Empty(s.d.Diag(-3))
}

func (s *DiagSuite) TestToDense() {
	m := s.d.ToDense()
	s.Require().Equal(dims.Vector{3, 5}, m.Dims())
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			got, err := m.At(r, c)
			s.Require().NoError(err)
			s.Require().Equal(s.d.Elem(r, c), got)
		}
	}
}

func TestDiagSuite(t *testing.T) {
	suite.Run(t, new(DiagSuite))
}

func TestFromVector(t *testing.T) {
	t.Parallel()

	v, err := array.FromSlice(dims.New(1, 3), []float64{4, 5, 6})
	require.NoError(t, err)
	d, err := diag.FromVector(v)
	require.NoError(t, err)
	require.Equal(t, dims.Vector{3, 3}, d.Dims())
	require.Equal(t, []float64{4, 5, 6}, d.Data())

	m, err := array.New[float64](dims.New(2, 2))
	require.NoError(t, err)
	_, err = diag.FromVector(m)
	require.ErrorIs(t, err, diag.ErrNotVector)
}

func TestFromDense(t *testing.T) {
	t.Parallel()

	m, err := array.FromSlice(dims.New(2, 3), []float64{1, 0, 0, 2, 0, 0})
	require.NoError(t, err)
	d, err := diag.FromDense(m)
	require.NoError(t, err)
	require.Equal(t, dims.Vector{2, 3}, d.Dims())
	require.Equal(t, []float64{1, 2}, d.Data())

	require.NoError(t, m.Set(5, 0, 2))
	_, err = diag.FromDense(m)
	require.ErrorIs(t, err, diag.ErrNotDiagonal)
}

func TestHermitian(t *testing.T) {
	t.Parallel()

	d := diag.FromDiagonal([]complex128{1 + 2i, 3 - 1i})
	require.NoError(t, d.Resize(2, 4))
	h := d.Hermitian()
	require.Equal(t, dims.Vector{4, 2}, h.Dims())
	require.Equal(t, []complex128{1 - 2i, 3 + 1i}, h.Data())

	r := diag.FromDiagonal([]float32{1, -2})
	require.Equal(t, r.Data(), r.Hermitian().Data())
}

func TestNew_BadShape(t *testing.T) {
	t.Parallel()

	_, err := diag.New[complex64](-1, 2)
	require.ErrorIs(t, err, dims.ErrBadShape)

	e, err := diag.New[float64](0, 4)
	require.NoError(t, err)
	require.Zero(t, e.Len())
	require.Equal(t, "diag 0x4\n", e.String())
}
