// SPDX-License-Identifier: MIT

// Package matrix - row, column and stripe iterators.
//
// Rows/columns re-derive one Strided view per step; stripes re-derive a sub-matrix of
// `size` rows (HStripes) or columns (VStripes). The stripe partition is fixed up front:
// blocks [0,size), [size,2*size), ... with the remainder in the last block, so walking
// from the back yields the same boundaries in reverse.
package matrix

import (
	"fmt"
	"iter"
)

type axis uint8

const (
	alongRows axis = iota
	alongCols
)

// LineIter yields the rows or the columns of a matrix as Strided views.
type LineIter[T any] struct {
	cursor
	m    StridedMat[T]
	axis axis
	err  error
}

// RowIter returns an iterator over the rows of m.
func (m StridedMat[T]) RowIter() *LineIter[T] {
	return &LineIter[T]{cursor: cursor{back: m.rows}, m: m, axis: alongRows}
}

// ColIter returns an iterator over the columns of m.
func (m StridedMat[T]) ColIter() *LineIter[T] {
	return &LineIter[T]{cursor: cursor{back: m.cols}, m: m, axis: alongCols}
}

func (it *LineIter[T]) load(i int) (Strided[T], bool) {
	if err := it.m.l.check(); err != nil {
		it.err = err
		it.exhaust()

		return Strided[T]{}, false
	}
	if it.axis == alongRows {
		return it.m.row(i), true
	}

	return it.m.col(i), true
}

// Next yields the front line.
func (it *LineIter[T]) Next() (Strided[T], bool) {
	i, ok := it.advance()
	if !ok {
		return Strided[T]{}, false
	}

	return it.load(i)
}

// NextBack yields the back line.
func (it *LineIter[T]) NextBack() (Strided[T], bool) {
	i, ok := it.retreat()
	if !ok {
		return Strided[T]{}, false
	}

	return it.load(i)
}

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *LineIter[T]) Err() error { return it.err }

// All drains the iterator front to back.
func (it *LineIter[T]) All() iter.Seq[Strided[T]] {
	return func(yield func(Strided[T]) bool) {
		for {
			s, ok := it.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front.
func (it *LineIter[T]) Backward() iter.Seq[Strided[T]] {
	return func(yield func(Strided[T]) bool) {
		for {
			s, ok := it.NextBack()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// LineIterMut yields the rows or the columns of a mutable matrix. Distinct lines are
// disjoint, so every yielded view shares the parent borrow.
type LineIterMut[T any] struct {
	inner LineIter[T]
}

// RowIterMut returns a mutable iterator over the rows of m.
func (m StridedMatMut[T]) RowIterMut() *LineIterMut[T] {
	return &LineIterMut[T]{inner: *m.RowIter()}
}

// ColIterMut returns a mutable iterator over the columns of m.
func (m StridedMatMut[T]) ColIterMut() *LineIterMut[T] {
	return &LineIterMut[T]{inner: *m.ColIter()}
}

// Len returns the exact number of lines not yet yielded.
func (it *LineIterMut[T]) Len() int { return it.inner.Len() }

func (it *LineIterMut[T]) wrap(s Strided[T], ok bool) (StridedMut[T], bool) {
	if !ok {
		return StridedMut[T]{}, false
	}
	if err := s.l.checkWrite(); err != nil {
		it.inner.err = err
		it.inner.exhaust()

		return StridedMut[T]{}, false
	}

	return StridedMut[T]{s}, true
}

// Next yields the front line.
func (it *LineIterMut[T]) Next() (StridedMut[T], bool) { return it.wrap(it.inner.Next()) }

// NextBack yields the back line.
func (it *LineIterMut[T]) NextBack() (StridedMut[T], bool) { return it.wrap(it.inner.NextBack()) }

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *LineIterMut[T]) Err() error { return it.inner.err }

// All drains the iterator front to back.
func (it *LineIterMut[T]) All() iter.Seq[StridedMut[T]] {
	return func(yield func(StridedMut[T]) bool) {
		for {
			s, ok := it.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front.
func (it *LineIterMut[T]) Backward() iter.Seq[StridedMut[T]] {
	return func(yield func(StridedMut[T]) bool) {
		for {
			s, ok := it.NextBack()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// StripeIter yields consecutive blocks of `size` rows or columns; the last block
// holds the remainder.
type StripeIter[T any] struct {
	cursor
	m    StridedMat[T]
	axis axis
	size int
	err  error
}

// HStripes partitions m into horizontal stripes of size rows each.
//
// Errors: ErrBorrowConflict, ErrInvalidDimensions (size < 1).
// Complexity: O(1) to create; O(1) per stripe.
func (m StridedMat[T]) HStripes(size int) (*StripeIter[T], error) {
	return m.stripes(size, alongRows, "HStripes")
}

// VStripes partitions m into vertical stripes of size columns each.
//
// Errors: ErrBorrowConflict, ErrInvalidDimensions (size < 1).
func (m StridedMat[T]) VStripes(size int) (*StripeIter[T], error) {
	return m.stripes(size, alongCols, "VStripes")
}

func (m StridedMat[T]) stripes(size int, a axis, tag string) (*StripeIter[T], error) {
	if err := m.l.check(); err != nil {
		return nil, fmt.Errorf("StridedMat.%s(%d): %w", tag, size, err)
	}
	if size < 1 {
		return nil, fmt.Errorf("StridedMat.%s(%d): %w", tag, size, ErrInvalidDimensions)
	}
	extent := m.rows
	if a == alongCols {
		extent = m.cols
	}
	count := (extent + size - 1) / size

	return &StripeIter[T]{cursor: cursor{back: count}, m: m, axis: a, size: size}, nil
}

func (it *StripeIter[T]) load(k int) (StridedMat[T], bool) {
	if err := it.m.l.check(); err != nil {
		it.err = err
		it.exhaust()

		return StridedMat[T]{}, false
	}
	lo := k * it.size
	if it.axis == alongRows {
		hi := min(lo+it.size, it.m.rows)
		return it.m.sub(Index{lo, 0}, Index{hi, it.m.cols}), true
	}
	hi := min(lo+it.size, it.m.cols)

	return it.m.sub(Index{0, lo}, Index{it.m.rows, hi}), true
}

// Next yields the front stripe.
func (it *StripeIter[T]) Next() (StridedMat[T], bool) {
	k, ok := it.advance()
	if !ok {
		return StridedMat[T]{}, false
	}

	return it.load(k)
}

// NextBack yields the back stripe (the remainder stripe first, if any).
func (it *StripeIter[T]) NextBack() (StridedMat[T], bool) {
	k, ok := it.retreat()
	if !ok {
		return StridedMat[T]{}, false
	}

	return it.load(k)
}

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *StripeIter[T]) Err() error { return it.err }

// All drains the iterator front to back.
func (it *StripeIter[T]) All() iter.Seq[StridedMat[T]] {
	return func(yield func(StridedMat[T]) bool) {
		for {
			s, ok := it.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front.
func (it *StripeIter[T]) Backward() iter.Seq[StridedMat[T]] {
	return func(yield func(StridedMat[T]) bool) {
		for {
			s, ok := it.NextBack()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// StripeIterMut yields disjoint mutable stripes sharing the parent borrow.
type StripeIterMut[T any] struct {
	inner StripeIter[T]
}

// HStripesMut is HStripes over a mutable matrix.
func (m StridedMatMut[T]) HStripesMut(size int) (*StripeIterMut[T], error) {
	return m.stripesMut(size, alongRows, "HStripesMut")
}

// VStripesMut is VStripes over a mutable matrix.
func (m StridedMatMut[T]) VStripesMut(size int) (*StripeIterMut[T], error) {
	return m.stripesMut(size, alongCols, "VStripesMut")
}

func (m StridedMatMut[T]) stripesMut(size int, a axis, tag string) (*StripeIterMut[T], error) {
	if err := m.l.checkWrite(); err != nil {
		return nil, fmt.Errorf("StridedMatMut.%s(%d): %w", tag, size, err)
	}
	it, err := m.stripes(size, a, tag)
	if err != nil {
		return nil, err
	}

	return &StripeIterMut[T]{inner: *it}, nil
}

// Len returns the exact number of stripes not yet yielded.
func (it *StripeIterMut[T]) Len() int { return it.inner.Len() }

func (it *StripeIterMut[T]) wrap(s StridedMat[T], ok bool) (StridedMatMut[T], bool) {
	if !ok {
		return StridedMatMut[T]{}, false
	}
	if err := s.l.checkWrite(); err != nil {
		it.inner.err = err
		it.inner.exhaust()

		return StridedMatMut[T]{}, false
	}

	return StridedMatMut[T]{s}, true
}

// Next yields the front stripe.
func (it *StripeIterMut[T]) Next() (StridedMatMut[T], bool) { return it.wrap(it.inner.Next()) }

// NextBack yields the back stripe.
func (it *StripeIterMut[T]) NextBack() (StridedMatMut[T], bool) {
	return it.wrap(it.inner.NextBack())
}

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *StripeIterMut[T]) Err() error { return it.inner.err }

// All drains the iterator front to back.
func (it *StripeIterMut[T]) All() iter.Seq[StridedMatMut[T]] {
	return func(yield func(StridedMatMut[T]) bool) {
		for {
			s, ok := it.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front.
func (it *StripeIterMut[T]) Backward() iter.Seq[StridedMatMut[T]] {
	return func(yield func(StridedMatMut[T]) bool) {
		for {
			s, ok := it.NextBack()
			if !ok || !yield(s) {
				return
			}
		}
	}
}
