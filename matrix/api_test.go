// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the public API facades.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/matrix"
)

// TestZerosLikeIdentityLike covers shape propagation and the square requirement.
func TestZerosLikeIdentityLike(t *testing.T) {
	t.Parallel()

	a := mustFromRows(t, grid(2, 3))
	z, err := matrix.ZerosLike[float64](a)
	require.NoError(t, err)
	require.Equal(t, 2, z.Rows())
	require.Equal(t, 3, z.Cols())
	require.Equal(t, make([]float64, 6), z.ToSlice())

	_, err = matrix.IdentityLike[float64](a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	sq := mustFromRows(t, grid(2, 2))
	id, err := matrix.IdentityLike[int](sq.View(), matrix.WithOrder(matrix.RowMajor))
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 0, 1}, id.ToSlice())
	require.Equal(t, matrix.RowMajor, id.Order())

	_, err = matrix.ZerosLike[float64](nil)
	require.ErrorIs(t, err, matrix.ErrNilOperand)
	_, err = matrix.IdentityLike[float64](nil)
	require.ErrorIs(t, err, matrix.ErrNilOperand)
}

// TestMatMulMatVec compares the allocating facades with gonum.
func TestMatMulMatVec(t *testing.T) {
	t.Parallel()

	a := mustFromRows(t, randRows(50, 3, 4))
	b := mustFromRows(t, randRows(51, 4, 2))
	c, err := matrix.MatMul(a, b)
	require.NoError(t, err)
	requireDenseClose(t, denseMul(toDense(t, a.View()), toDense(t, b.View())), c.ToSlice())

	col, err := b.Col(1)
	require.NoError(t, err)
	y, err := matrix.MatVec(a, col)
	require.NoError(t, err)
	require.Equal(t, 3, y.Len())
	want, err := c.Col(1)
	require.NoError(t, err)
	wantVals, _ := want.ToSlice()
	require.InDeltaSlice(t, wantVals, y.ToSlice(), tol)

	_, err = matrix.MatMul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec[float64](nil, col)
	require.ErrorIs(t, err, matrix.ErrNilOperand)
}

// TestAxpyFacade: y += alpha·x through strided views.
func TestAxpyFacade(t *testing.T) {
	t.Parallel()

	x := matrix.ColVecFrom(1.0, 2, 3)
	y := matrix.ColVecFrom(1.0, 1, 1)
	require.NoError(t, matrix.Axpy(2.0, x, y))
	require.Equal(t, []float64{3, 5, 7}, y.ToSlice())

	m := mustFromRows(t, grid(3, 3))
	d, err := m.ViewMut().DiagMut(0)
	require.NoError(t, err)
	require.NoError(t, matrix.Axpy(-1.0, x, d))
	requireViewEqual(t, [][]float64{{-1, 1, 2}, {3, 2, 5}, {6, 7, 5}}, m.View())

	require.ErrorIs(t, matrix.Axpy(1.0, x, matrix.ColVecFrom(1.0)), matrix.ErrDimensionMismatch)
}

// TestTransposeCopy materializes a transpose into a fresh buffer.
func TestTransposeCopy(t *testing.T) {
	t.Parallel()

	for _, order := range bothOrders {
		a := mustFromRows(t, grid(2, 3), matrix.WithOrder(order))
		tc, err := matrix.TransposeCopy(a)
		require.NoError(t, err)
		requireViewEqual(t, [][]float64{{0, 3}, {1, 4}, {2, 5}}, tc.View())

		// Independent storage: writing the copy leaves a untouched.
		require.NoError(t, tc.Set(0, 1, 99))
		v, err := a.At(1, 0)
		require.NoError(t, err)
		require.Equal(t, 3.0, v)
	}

	s, err := matrix.TransposeCopy(matrix.Scale(2.0, matrix.ColVecFrom(1.0, 2)))
	require.NoError(t, err)
	require.Equal(t, 1, s.Rows())
	require.Equal(t, []float64{2, 4}, s.ToSlice())
}
