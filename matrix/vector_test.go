// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for ColVec and RowVec.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/matrix"
)

// TestColVec_Basics covers construction, access, shape and transposition.
func TestColVec_Basics(t *testing.T) {
	t.Parallel()

	v := matrix.ColVecFrom(1.0, 2, 3)
	require.Equal(t, 3, v.Len())
	require.Equal(t, 3, v.Rows())
	require.Equal(t, 1, v.Cols())

	require.NoError(t, v.Set(1, 20))
	x, err := v.At(1)
	require.NoError(t, err)
	require.Equal(t, 20.0, x)
	_, err = v.At(3)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)

	tr := v.T()
	require.Equal(t, 1, tr.Rows())
	require.Equal(t, 3, tr.Cols())
	requireViewEqual(t, [][]float64{{1, 20, 3}}, tr)

	s, err := v.Slice(1, 3)
	require.NoError(t, err)
	got, err := s.ToSlice()
	require.NoError(t, err)
	require.Equal(t, []float64{20, 3}, got)

	require.Equal(t, "[1]\n[20]\n[3]\n", v.String())

	z, err := matrix.NewColVec[float64](0)
	require.NoError(t, err)
	require.Zero(t, z.Len())
	_, err = matrix.NewColVec[float64](-2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestRowVec_Basics mirrors TestColVec_Basics for the 1×n shape.
func TestRowVec_Basics(t *testing.T) {
	t.Parallel()

	v, err := matrix.NewRowVec[int](4)
	require.NoError(t, err)
	require.Equal(t, 1, v.Rows())
	require.Equal(t, 4, v.Cols())

	w := v.ViewMut()
	for i := 0; i < w.Len(); i++ {
		require.NoError(t, w.Set(i, i*i))
	}
	require.Equal(t, []int{0, 1, 4, 9}, v.ToSlice())

	col := v.T()
	require.Equal(t, 4, col.Rows())
	require.Equal(t, 1, col.Cols())

	var back []int
	for x := range v.Iter().Backward() {
		back = append(back, x)
	}
	require.Equal(t, []int{9, 4, 1, 0}, back)

	require.Equal(t, "[0, 1, 4, 9]\n", v.String())

	c := v.Clone()
	require.NoError(t, c.Set(0, 7))
	x, err := v.At(0)
	require.NoError(t, err)
	require.Zero(t, x)
}

// TestVec_BorrowSemantics: vector views follow the owner's borrow rules.
func TestVec_BorrowSemantics(t *testing.T) {
	t.Parallel()

	v := matrix.ColVecFrom(1.0, 2)
	view := v.View()
	require.NoError(t, v.Set(0, 5))
	_, err := view.At(0)
	require.ErrorIs(t, err, matrix.ErrBorrowConflict)

	w := v.ViewMut()
	_ = v.ToSlice()
	require.ErrorIs(t, w.Set(0, 1), matrix.ErrBorrowConflict)
}
