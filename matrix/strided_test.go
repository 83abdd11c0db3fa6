// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for 1-D strided views.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/matrix"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

// TestNewStrided_Validation covers stride, length and window checks.
func TestNewStrided_Validation(t *testing.T) {
	t.Parallel()

	data := seq(10)
	tests := []struct {
		name              string
		offset, n, stride int
		wantErr           error
	}{
		{"ok", 1, 4, 2, nil},
		{"empty", 10, 0, 1, nil},
		{"zero stride", 0, 3, 0, matrix.ErrInvalidStride},
		{"negative length", 0, -1, 1, matrix.ErrInvalidDimensions},
		{"past end", 1, 4, 3, matrix.ErrOutOfBounds},
		{"negative offset", -1, 2, 1, matrix.ErrOutOfBounds},
		{"overflow", 0, matrix.MaxDim, matrix.MaxDim, matrix.ErrIntegerOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.NewStrided(data, tc.offset, tc.n, tc.stride)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestStrided_AtAndSlice checks element mapping and that Slice keeps the stride.
func TestStrided_AtAndSlice(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewStrided(seq(10), 1, 4, 2) // 1 3 5 7
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
	require.Equal(t, 2, s.Stride())

	got, err := s.ToSlice()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 5, 7}, got)

	_, err = s.At(4)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)
	_, err = s.At(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)

	sub, err := s.Slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, 2, sub.Stride())
	got, err = sub.ToSlice()
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5}, got)

	empty, err := s.Slice(4, 4)
	require.NoError(t, err)
	require.Zero(t, empty.Len())

	_, err = s.Slice(3, 1)
	require.ErrorIs(t, err, matrix.ErrInvalidSlice)
	_, err = s.Slice(0, 5)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)
	_, err = s.Slice(-1, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)
}

// TestStrided_InvalidSliceBeatsBounds: start > end reports InvalidSlice even when
// end is also out of range.
func TestStrided_InvalidSliceBeatsBounds(t *testing.T) {
	s, err := matrix.NewStrided(seq(4), 0, 4, 1)
	require.NoError(t, err)
	_, err = s.Slice(9, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidSlice)
}

// TestStridedMut_SetSplitCopy covers writes, disjoint halves and overlapping copies.
func TestStridedMut_SetSplitCopy(t *testing.T) {
	t.Parallel()

	data := seq(6)
	s, err := matrix.NewStridedMut(data, 0, 6, 1)
	require.NoError(t, err)

	require.NoError(t, s.Set(2, 42))
	require.Equal(t, 42.0, data[2])
	require.ErrorIs(t, s.Set(6, 1), matrix.ErrOutOfBounds)

	left, right, err := s.SplitAtMut(2)
	require.NoError(t, err)
	require.Equal(t, 2, left.Len())
	require.Equal(t, 4, right.Len())
	require.NoError(t, left.Fill(-1))
	require.NoError(t, right.Set(0, 7))
	require.Equal(t, []float64{-1, -1, 7, 3, 4, 5}, data)

	_, _, err = s.SplitAtMut(7)
	require.ErrorIs(t, err, matrix.ErrOutOfBounds)

	// A mutable sub-view takes the borrow over from s.
	dst, err := s.SliceMut(1, 4)
	require.NoError(t, err)
	_, err = s.Slice(0, 3)
	require.ErrorIs(t, err, matrix.ErrBorrowConflict)

	// A raw view over the same slice overlaps dst: the copy shifts right by one.
	src, err := matrix.NewStrided(data, 0, 3, 1)
	require.NoError(t, err)
	require.NoError(t, dst.CopyFrom(src))
	require.Equal(t, []float64{-1, -1, -1, 7, 4, 5}, data)

	short, err := matrix.NewStrided(data, 0, 2, 1)
	require.NoError(t, err)
	require.ErrorIs(t, dst.CopyFrom(short), matrix.ErrDimensionMismatch)
}

// TestStrided_AsMatrix checks the n×1 and 1×n matrix readings of a vector view.
func TestStrided_AsMatrix(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewStrided(seq(9), 0, 3, 3) // 0 3 6
	require.NoError(t, err)

	col := s.AsCol()
	require.Equal(t, 3, col.Rows())
	require.Equal(t, 1, col.Cols())
	requireViewEqual(t, [][]float64{{0}, {3}, {6}}, col)

	row := s.T()
	require.Equal(t, 1, row.Rows())
	require.Equal(t, 3, row.Cols())
	requireViewEqual(t, [][]float64{{0, 3, 6}}, row)
}
