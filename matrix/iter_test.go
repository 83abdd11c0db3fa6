// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for element, line and stripe iterators.
package matrix_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/matrix"
)

// TestIter_CountAndReverse: forward yields exactly Len items and reversed backward
// traversal equals forward traversal.
func TestIter_CountAndReverse(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewStrided(seq(20), 2, 6, 3)
	require.NoError(t, err)

	var fwd, bwd []float64
	for v := range s.Iter().All() {
		fwd = append(fwd, v)
	}
	for v := range s.Iter().Backward() {
		bwd = append(bwd, v)
	}
	require.Len(t, fwd, s.Len())
	slices.Reverse(bwd)
	require.Equal(t, fwd, bwd)
	require.Equal(t, []float64{2, 5, 8, 11, 14, 17}, fwd)
}

// TestIter_MixedEnds: alternating Next/NextBack never double-yields and Len is exact.
func TestIter_MixedEnds(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewStrided(seq(5), 0, 5, 1)
	require.NoError(t, err)
	it := s.Iter()
	require.Equal(t, 5, it.Len())

	v, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 0.0, v)
	v, ok = it.NextBack()
	require.True(t, ok)
	require.Equal(t, 4.0, v)
	require.Equal(t, 3, it.Len())

	v, _ = it.NextBack()
	require.Equal(t, 3.0, v)
	v, _ = it.Next()
	require.Equal(t, 1.0, v)
	v, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, 2.0, v)
	require.Zero(t, it.Len())

	_, ok = it.Next()
	require.False(t, ok)
	_, ok = it.NextBack()
	require.False(t, ok)
	require.NoError(t, it.Err())
}

// TestMatIter_LogicalOrder: matrix iteration is logical row-major in both storage orders
// and through transposes.
func TestMatIter_LogicalOrder(t *testing.T) {
	t.Parallel()

	for _, order := range bothOrders {
		t.Run(order.String(), func(t *testing.T) {
			m := mustFromRows(t, grid(3, 4), matrix.WithOrder(order))

			var got []float64
			var idx []matrix.Index
			for ix, v := range m.Iter().All() {
				idx = append(idx, ix)
				got = append(got, v)
			}
			require.Equal(t, flatten(grid(3, 4)), got)
			require.Equal(t, matrix.Index{Row: 0, Col: 1}, idx[1])
			require.Equal(t, matrix.Index{Row: 2, Col: 3}, idx[11])

			it := m.T().Iter()
			require.Equal(t, 12, it.Len())
			first, _ := it.Next()
			last, _ := it.NextBack()
			second, _ := it.Next()
			require.Equal(t, 0.0, first)
			require.Equal(t, 11.0, last)
			require.Equal(t, 4.0, second) // Tᵀ(0,1) == M(1,0)
			require.Equal(t, 9, it.Len())
		})
	}
}

// TestIter_ZeroSized: iteration over zero-sized element types still yields every position.
func TestIter_ZeroSized(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewStrided(make([]struct{}, 7), 0, 7, 1)
	require.NoError(t, err)
	n := 0
	for range s.Iter().All() {
		n++
	}
	require.Equal(t, 7, n)

	m, err := matrix.NewMat[struct{}](3, 4)
	require.NoError(t, err)
	it := m.Iter()
	require.Equal(t, 12, it.Len())
	n = 0
	for {
		if _, ok := it.NextBack(); !ok {
			break
		}
		n++
	}
	require.Equal(t, 12, n)
}

// TestLineIter_RowsAndCols walks rows and columns in both directions.
func TestLineIter_RowsAndCols(t *testing.T) {
	t.Parallel()

	for _, order := range bothOrders {
		v := mustFromRows(t, grid(3, 2), matrix.WithOrder(order)).View()

		var rows [][]float64
		for r := range v.RowIter().All() {
			vals, err := r.ToSlice()
			require.NoError(t, err)
			rows = append(rows, vals)
		}
		require.Equal(t, grid(3, 2), rows)

		var cols [][]float64
		for c := range v.ColIter().Backward() {
			vals, err := c.ToSlice()
			require.NoError(t, err)
			cols = append(cols, vals)
		}
		require.Equal(t, [][]float64{{1, 3, 5}, {0, 2, 4}}, cols)
	}
}

// TestStripes_Boundaries: 5 rows in stripes of 2 gives heights 2,2,1 forward and
// 1,2,2 backward with identical boundaries.
func TestStripes_Boundaries(t *testing.T) {
	t.Parallel()

	v := mustFromRows(t, grid(5, 3)).View()

	it, err := v.HStripes(2)
	require.NoError(t, err)
	require.Equal(t, 3, it.Len())
	var heights []int
	var firsts []float64
	for s := range it.All() {
		heights = append(heights, s.Rows())
		require.Equal(t, 3, s.Cols())
		x, err := s.At(0, 0)
		require.NoError(t, err)
		firsts = append(firsts, x)
	}
	require.Equal(t, []int{2, 2, 1}, heights)
	require.Equal(t, []float64{0, 6, 12}, firsts)

	it, err = v.HStripes(2)
	require.NoError(t, err)
	heights, firsts = nil, nil
	for s := range it.Backward() {
		heights = append(heights, s.Rows())
		x, _ := s.At(0, 0)
		firsts = append(firsts, x)
	}
	require.Equal(t, []int{1, 2, 2}, heights)
	require.Equal(t, []float64{12, 6, 0}, firsts)

	vit, err := v.VStripes(2)
	require.NoError(t, err)
	var widths []int
	for s := range vit.All() {
		widths = append(widths, s.Cols())
	}
	require.Equal(t, []int{2, 1}, widths)

	big, err := v.HStripes(10)
	require.NoError(t, err)
	require.Equal(t, 1, big.Len())

	_, err = v.VStripes(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = v.HStripes(-3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestIterMut_Doubling writes through element pointers, line views and stripes.
func TestIterMut_Doubling(t *testing.T) {
	t.Parallel()

	for _, order := range bothOrders {
		m := mustFromRows(t, grid(3, 3), matrix.WithOrder(order))

		it := m.ViewMut().IterMut()
		for {
			p, ok := it.Next()
			if !ok {
				break
			}
			*p *= 2
		}
		require.NoError(t, it.Err())

		col, err := m.ViewMut().ColMut(0)
		require.NoError(t, err)
		for p := range col.IterMut().All() {
			*p = -*p
		}

		rows := m.ViewMut().RowIterMut()
		require.Equal(t, 3, rows.Len())
		last, ok := rows.NextBack()
		require.True(t, ok)
		require.NoError(t, last.Fill(1))

		requireViewEqual(t, [][]float64{{0, 2, 4}, {-6, 8, 10}, {1, 1, 1}}, m.View())

		stripes, err := m.ViewMut().VStripesMut(2)
		require.NoError(t, err)
		for s := range stripes.All() {
			require.NoError(t, s.Fill(float64(s.Cols())))
		}
		requireViewEqual(t, [][]float64{{2, 2, 1}, {2, 2, 1}, {2, 2, 1}}, m.View())
	}
}

// TestIter_BorrowConflictStops: a write to the owner mid-iteration stops the
// iterator and records ErrBorrowConflict.
func TestIter_BorrowConflictStops(t *testing.T) {
	t.Parallel()

	m := mustFromRows(t, grid(2, 2))
	it := m.Iter()
	_, ok := it.Next()
	require.True(t, ok)

	require.NoError(t, m.Set(0, 0, 5))

	_, ok = it.Next()
	require.False(t, ok)
	require.ErrorIs(t, it.Err(), matrix.ErrBorrowConflict)
	require.Zero(t, it.Len())

	mit := m.ViewMut().IterMut()
	_, err := m.At(0, 0) // shared borrow ends the writer
	require.NoError(t, err)
	_, ok = mit.Next()
	require.False(t, ok)
	require.ErrorIs(t, mit.Err(), matrix.ErrBorrowConflict)

	rows := m.View().RowIter()
	require.NoError(t, m.Set(1, 1, 0))
	for range rows.All() {
		t.Fatal("iterator must not yield after conflict")
	}
	require.ErrorIs(t, rows.Err(), matrix.ErrBorrowConflict)
}

// TestIterMut_Backward drains every mutable iterator, and the whole-matrix reader,
// from the back.
func TestIterMut_Backward(t *testing.T) {
	t.Parallel()

	for _, order := range bothOrders {
		t.Run(order.String(), func(t *testing.T) {
			m := mustFromRows(t, grid(2, 3), matrix.WithOrder(order))

			var seen []matrix.Index
			var vals []float64
			for ix, v := range m.View().Iter().Backward() {
				seen = append(seen, ix)
				vals = append(vals, v)
			}
			require.Equal(t, []float64{5, 4, 3, 2, 1, 0}, vals)
			require.Equal(t, matrix.Index{Row: 1, Col: 2}, seen[0])
			require.Equal(t, matrix.Index{Row: 0, Col: 0}, seen[5])

			k := 0.0
			for _, p := range m.ViewMut().IterMut().Backward() {
				*p = k
				k++
			}
			requireViewEqual(t, [][]float64{{5, 4, 3}, {2, 1, 0}}, m.View())

			for ix, p := range m.ViewMut().IterMut().All() {
				*p = float64(10*ix.Row + ix.Col)
			}
			requireViewEqual(t, [][]float64{{0, 1, 2}, {10, 11, 12}}, m.View())

			row, err := m.ViewMut().RowMut(1)
			require.NoError(t, err)
			it := row.IterMut()
			back, ok := it.NextBack()
			require.True(t, ok)
			*back = -1
			front, ok := it.Next()
			require.True(t, ok)
			*front = -2
			require.Equal(t, 1, it.Len())
			for p := range it.Backward() {
				*p = -3
			}
			require.Zero(t, it.Len())
			requireViewEqual(t, [][]float64{{0, 1, 2}, {-2, -3, -1}}, m.View())

			fill := 7.0
			for r := range m.ViewMut().RowIterMut().Backward() {
				require.NoError(t, r.Fill(fill))
				fill++
			}
			requireViewEqual(t, [][]float64{{8, 8, 8}, {7, 7, 7}}, m.View())

			stripes, err := m.ViewMut().VStripesMut(2)
			require.NoError(t, err)
			var widths []int
			for s := range stripes.Backward() {
				widths = append(widths, s.Cols())
				require.NoError(t, s.Fill(float64(len(widths))))
			}
			require.NoError(t, stripes.Err())
			require.Equal(t, []int{1, 2}, widths)
			requireViewEqual(t, [][]float64{{2, 2, 1}, {2, 2, 1}}, m.View())
		})
	}
}
