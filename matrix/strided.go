// SPDX-License-Identifier: MIT

// Package matrix - 1-D strided views.
//
// Purpose:
//   - Strided / StridedMut describe n elements spaced `stride` apart inside a shared
//     buffer: element i lives at data[off + i*stride]. They own nothing.
//   - Rows, columns and diagonals of every matrix are Strided views.
//
// Behavior highlights:
//   - At/Set are bounds-checked (ErrOutOfBounds) and borrow-checked (ErrBorrowConflict).
//   - Slice keeps the stride and advances the start by start*stride.
//   - Zero-size element types need no special casing: positions are counted, never
//     derived from addresses.
//
// Complexity quicksheet:
//   - At/Set/Slice: O(1); Iter: O(1) to create, O(1) per step; ToSlice: O(n).
package matrix

import "fmt"

// Strided is an immutable view over a strided run of elements.
// The zero value is an empty view whose accessors report ErrNilOperand.
type Strided[T any] struct {
	l      lease[T]
	off    int // offset of element 0 in l.buf.data
	n      int // logical length
	stride int // distance between consecutive elements (≥ 1)
}

// StridedMut is a mutable view over a strided run of elements.
// It embeds the read-only API; Slice/Iter on the embedded value reborrow immutably.
type StridedMut[T any] struct {
	Strided[T]
}

// NewStrided wraps data as an immutable strided view of n elements starting at offset.
// The caller's slice gets its own borrow guard; only views derived from the
// returned value are tracked by it.
//
// Errors:
//   - ErrInvalidDimensions (n < 0), ErrInvalidStride (stride < 1),
//     ErrIntegerOverflow, ErrOutOfBounds (window exceeds len(data)).
//
// Complexity: O(1).
func NewStrided[T any](data []T, offset, n, stride int) (Strided[T], error) {
	if err := validateStridedWindow(len(data), offset, n, stride); err != nil {
		return Strided[T]{}, fmt.Errorf("NewStrided(off=%d,n=%d,stride=%d): %w", offset, n, stride, err)
	}

	return Strided[T]{l: sharedLease(newBuffer(data)), off: offset, n: n, stride: stride}, nil
}

// NewStridedMut is NewStrided returning a mutable view.
func NewStridedMut[T any](data []T, offset, n, stride int) (StridedMut[T], error) {
	if err := validateStridedWindow(len(data), offset, n, stride); err != nil {
		return StridedMut[T]{}, fmt.Errorf("NewStridedMut(off=%d,n=%d,stride=%d): %w", offset, n, stride, err)
	}

	return StridedMut[T]{Strided[T]{l: exclusiveLease(newBuffer(data)), off: offset, n: n, stride: stride}}, nil
}

func validateStridedWindow(bufLen, offset, n, stride int) error {
	span, err := vectorSpan(n, stride)
	if err != nil {
		return err
	}

	return validateWindow(offset, span, bufLen)
}

// Len returns the number of elements. Complexity: O(1).
func (s Strided[T]) Len() int { return s.n }

// Stride returns the element distance between consecutive entries. Complexity: O(1).
func (s Strided[T]) Stride() int { return s.stride }

// Rows reports the view as an n×1 column operand.
func (s Strided[T]) Rows() int { return s.n }

// Cols reports the view as an n×1 column operand.
func (s Strided[T]) Cols() int { return 1 }

// Valid reports whether the view's borrow is still live.
func (s Strided[T]) Valid() bool { return s.l.check() == nil }

// At returns element i.
//
// Errors: ErrBorrowConflict, ErrOutOfBounds (i < 0 or i >= Len()).
// Complexity: O(1).
func (s Strided[T]) At(i int) (T, error) {
	var zero T
	if err := s.l.check(); err != nil {
		return zero, fmt.Errorf("Strided.At(%d): %w", i, err)
	}
	if i < 0 || i >= s.n {
		return zero, fmt.Errorf("Strided.At(%d): %w", i, ErrOutOfBounds)
	}

	return s.l.buf.data[s.off+i*s.stride], nil
}

// Slice returns the sub-view [start, end). The stride is unchanged.
//
// Errors: ErrBorrowConflict, ErrInvalidSlice (start > end),
// ErrOutOfBounds (start < 0 or end > Len()).
// Complexity: O(1).
func (s Strided[T]) Slice(start, end int) (Strided[T], error) {
	if err := s.l.check(); err != nil {
		return Strided[T]{}, fmt.Errorf("Strided.Slice(%d,%d): %w", start, end, err)
	}
	if err := checkRange(start, end, s.n); err != nil {
		return Strided[T]{}, fmt.Errorf("Strided.Slice(%d,%d): %w", start, end, err)
	}

	return s.sub(start, end), nil
}

// sub assumes a validated range.
func (s Strided[T]) sub(start, end int) Strided[T] {
	return Strided[T]{l: s.l, off: s.off + start*s.stride, n: end - start, stride: s.stride}
}

// checkRange validates [start, end) against length n, start > end first.
func checkRange(start, end, n int) error {
	if start > end {
		return ErrInvalidSlice
	}
	if start < 0 || end > n {
		return ErrOutOfBounds
	}

	return nil
}

// Iter returns a fresh double-ended iterator; each call restarts from the ends.
func (s Strided[T]) Iter() *Iter[T] { return newIter(s) }

// ToSlice copies the elements into a new contiguous slice.
//
// Errors: ErrBorrowConflict.
// Complexity: O(n).
func (s Strided[T]) ToSlice() ([]T, error) {
	if err := s.l.check(); err != nil {
		return nil, fmt.Errorf("Strided.ToSlice: %w", err)
	}
	out := make([]T, s.n)
	for i := range out {
		out[i] = s.l.buf.data[s.off+i*s.stride]
	}

	return out, nil
}

// AsCol returns the view as an n×1 matrix descriptor.
func (s Strided[T]) AsCol() StridedMat[T] {
	return StridedMat[T]{l: s.l, off: s.off, rows: s.n, cols: 1, stride: s.stride, order: RowMajor}
}

// T returns the view as a 1×n row matrix descriptor (O(1), no copy).
func (s Strided[T]) T() StridedMat[T] {
	return s.AsCol().T()
}

// Set stores v at element i.
//
// Errors: ErrBorrowConflict, ErrOutOfBounds.
// Complexity: O(1).
func (s StridedMut[T]) Set(i int, v T) error {
	if err := s.l.checkWrite(); err != nil {
		return fmt.Errorf("StridedMut.Set(%d): %w", i, err)
	}
	if i < 0 || i >= s.n {
		return fmt.Errorf("StridedMut.Set(%d): %w", i, ErrOutOfBounds)
	}
	s.l.buf.data[s.off+i*s.stride] = v

	return nil
}

// SliceMut returns the mutable sub-view [start, end). The borrow moves to the result:
// s and every view sharing its borrow become stale.
func (s StridedMut[T]) SliceMut(start, end int) (StridedMut[T], error) {
	if err := s.l.checkWrite(); err != nil {
		return StridedMut[T]{}, fmt.Errorf("StridedMut.SliceMut(%d,%d): %w", start, end, err)
	}
	if err := checkRange(start, end, s.n); err != nil {
		return StridedMut[T]{}, fmt.Errorf("StridedMut.SliceMut(%d,%d): %w", start, end, err)
	}
	out := s.sub(start, end)
	out.l = s.l.handOver()

	return StridedMut[T]{out}, nil
}

// SplitAtMut partitions the view into [0, i) and [i, n). The halves are disjoint
// and share this borrow.
func (s StridedMut[T]) SplitAtMut(i int) (StridedMut[T], StridedMut[T], error) {
	if err := s.l.checkWrite(); err != nil {
		return StridedMut[T]{}, StridedMut[T]{}, fmt.Errorf("StridedMut.SplitAtMut(%d): %w", i, err)
	}
	if i < 0 || i > s.n {
		return StridedMut[T]{}, StridedMut[T]{}, fmt.Errorf("StridedMut.SplitAtMut(%d): %w", i, ErrOutOfBounds)
	}

	return StridedMut[T]{s.sub(0, i)}, StridedMut[T]{s.sub(i, s.n)}, nil
}

// IterMut returns a fresh double-ended iterator over element pointers.
func (s StridedMut[T]) IterMut() *IterMut[T] { return newIterMut(s) }

// AsConst reborrows the view immutably. The writer ends; further readers may join.
func (s StridedMut[T]) AsConst() Strided[T] {
	out := s.Strided
	out.l = s.l.downgrade()

	return out
}

// AsColMut returns the view as a mutable n×1 matrix descriptor, moving the borrow.
func (s StridedMut[T]) AsColMut() StridedMatMut[T] {
	out := s.Strided.AsCol()
	out.l = s.l.handOver()

	return StridedMatMut[T]{out}
}

// TMut returns the view as a mutable 1×n row matrix descriptor, moving the borrow.
func (s StridedMut[T]) TMut() StridedMatMut[T] {
	out := s.Strided.T()
	out.l = s.l.handOver()

	return StridedMatMut[T]{out}
}

// Fill stores v in every element.
func (s StridedMut[T]) Fill(v T) error {
	if err := s.l.checkWrite(); err != nil {
		return fmt.Errorf("StridedMut.Fill: %w", err)
	}
	for i := 0; i < s.n; i++ {
		s.l.buf.data[s.off+i*s.stride] = v
	}

	return nil
}

// CopyFrom copies src element-wise into the view.
//
// Errors: ErrBorrowConflict, ErrDimensionMismatch (length differs).
func (s StridedMut[T]) CopyFrom(src Strided[T]) error {
	if err := s.l.checkWrite(); err != nil {
		return fmt.Errorf("StridedMut.CopyFrom: %w", err)
	}
	if err := src.l.check(); err != nil {
		return fmt.Errorf("StridedMut.CopyFrom: src: %w", err)
	}
	if src.n != s.n {
		return fmt.Errorf("StridedMut.CopyFrom(len %d←%d): %w", s.n, src.n, ErrDimensionMismatch)
	}
	// Overlapping windows (one buffer, or raw views over a shared slice) copy through
	// a temporary.
	if base, ok := relativeBase(s.l.buf, src.l.buf); ok && spansOverlap(s.off, s.span(), src.off+base, src.span()) {
		tmp, _ := src.ToSlice()
		for i, v := range tmp {
			s.l.buf.data[s.off+i*s.stride] = v
		}

		return nil
	}
	for i := 0; i < s.n; i++ {
		s.l.buf.data[s.off+i*s.stride] = src.l.buf.data[src.off+i*src.stride]
	}

	return nil
}

// span returns the number of buffer elements covered by the view.
func (s Strided[T]) span() int {
	if s.n == 0 {
		return 0
	}

	return (s.n-1)*s.stride + 1
}

// window returns the buffer sub-slice covered by the view (kernel argument).
func (s Strided[T]) window() []T {
	return s.l.buf.data[s.off : s.off+s.span()]
}

// spansOverlap reports whether [a, a+an) and [b, b+bn) intersect.
func spansOverlap(a, an, b, bn int) bool {
	if an == 0 || bn == 0 {
		return false
	}

	return a < b+bn && b < a+an
}
