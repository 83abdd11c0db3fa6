// SPDX-License-Identifier: MIT

// Package matrix - owned column and row vectors.
//
// ColVec is an n×1 operand, RowVec a 1×n operand; both own a contiguous buffer with
// stride 1 and follow the Mat borrow semantics (reads shared, writes exclusive).
package matrix

import (
	"fmt"
	"strings"
)

// ColVec is an owned column vector.
type ColVec[T any] struct {
	buf *buffer[T]
}

// RowVec is an owned row vector.
type RowVec[T any] struct {
	buf *buffer[T]
}

var (
	_ Shape = (*ColVec[float64])(nil)
	_ Shape = (*RowVec[float64])(nil)
)

func newVecBuffer[T any](tag string, n int) (*buffer[T], error) {
	if _, err := validateDims(n, 1); err != nil {
		return nil, fmt.Errorf("%s(%d): %w", tag, n, err)
	}

	return newBuffer(make([]T, n)), nil
}

// NewColVec allocates a zero column vector of length n.
//
// Errors: ErrInvalidDimensions (n < 0), ErrIntegerOverflow.
func NewColVec[T any](n int) (*ColVec[T], error) {
	b, err := newVecBuffer[T]("NewColVec", n)
	if err != nil {
		return nil, err
	}

	return &ColVec[T]{buf: b}, nil
}

// ColVecFrom copies data into a new column vector.
func ColVecFrom[T any](data ...T) *ColVec[T] {
	return &ColVec[T]{buf: newBuffer(append([]T(nil), data...))}
}

// NewRowVec allocates a zero row vector of length n.
//
// Errors: ErrInvalidDimensions (n < 0), ErrIntegerOverflow.
func NewRowVec[T any](n int) (*RowVec[T], error) {
	b, err := newVecBuffer[T]("NewRowVec", n)
	if err != nil {
		return nil, err
	}

	return &RowVec[T]{buf: b}, nil
}

// RowVecFrom copies data into a new row vector.
func RowVecFrom[T any](data ...T) *RowVec[T] {
	return &RowVec[T]{buf: newBuffer(append([]T(nil), data...))}
}

// ---------- ColVec ----------

// Len returns the number of elements.
func (v *ColVec[T]) Len() int { return len(v.buf.data) }

// Rows returns Len().
func (v *ColVec[T]) Rows() int { return len(v.buf.data) }

// Cols returns 1.
func (v *ColVec[T]) Cols() int { return 1 }

// At returns element i. Takes a shared borrow.
//
// Errors: ErrOutOfBounds.
func (v *ColVec[T]) At(i int) (T, error) { return vecAt(v.buf, "ColVec", i) }

// Set stores x at element i. Takes an exclusive borrow.
//
// Errors: ErrOutOfBounds.
func (v *ColVec[T]) Set(i int, x T) error { return vecSet(v.buf, "ColVec", i, x) }

// View returns an immutable strided view of the vector.
func (v *ColVec[T]) View() Strided[T] { return vecView(v.buf) }

// ViewMut returns a mutable strided view, ending every other view.
func (v *ColVec[T]) ViewMut() StridedMut[T] { return vecViewMut(v.buf) }

// Slice returns the immutable sub-view [start, end).
func (v *ColVec[T]) Slice(start, end int) (Strided[T], error) { return v.View().Slice(start, end) }

// T returns the vector as a 1×n row descriptor (no copy).
func (v *ColVec[T]) T() StridedMat[T] { return v.View().T() }

// Iter returns a double-ended iterator over the elements.
func (v *ColVec[T]) Iter() *Iter[T] { return v.View().Iter() }

// ToSlice copies the elements.
func (v *ColVec[T]) ToSlice() []T { return vecCopy(v.buf) }

// Clone returns a deep copy.
func (v *ColVec[T]) Clone() *ColVec[T] { return &ColVec[T]{buf: newBuffer(vecCopy(v.buf))} }

// String renders the vector as one bracketed line per element.
func (v *ColVec[T]) String() string {
	var b strings.Builder
	for _, x := range vecCopy(v.buf) {
		fmt.Fprintf(&b, "%s%v%s", _fmtRowOpen, x, _fmtRowClose)
	}

	return b.String()
}

// ---------- RowVec ----------

// Len returns the number of elements.
func (v *RowVec[T]) Len() int { return len(v.buf.data) }

// Rows returns 1.
func (v *RowVec[T]) Rows() int { return 1 }

// Cols returns Len().
func (v *RowVec[T]) Cols() int { return len(v.buf.data) }

// At returns element i. Takes a shared borrow.
func (v *RowVec[T]) At(i int) (T, error) { return vecAt(v.buf, "RowVec", i) }

// Set stores x at element i. Takes an exclusive borrow.
func (v *RowVec[T]) Set(i int, x T) error { return vecSet(v.buf, "RowVec", i, x) }

// View returns an immutable strided view of the vector.
func (v *RowVec[T]) View() Strided[T] { return vecView(v.buf) }

// ViewMut returns a mutable strided view, ending every other view.
func (v *RowVec[T]) ViewMut() StridedMut[T] { return vecViewMut(v.buf) }

// Slice returns the immutable sub-view [start, end).
func (v *RowVec[T]) Slice(start, end int) (Strided[T], error) { return v.View().Slice(start, end) }

// T returns the vector as an n×1 column descriptor (no copy).
func (v *RowVec[T]) T() StridedMat[T] { return v.View().AsCol() }

// Iter returns a double-ended iterator over the elements.
func (v *RowVec[T]) Iter() *Iter[T] { return v.View().Iter() }

// ToSlice copies the elements.
func (v *RowVec[T]) ToSlice() []T { return vecCopy(v.buf) }

// Clone returns a deep copy.
func (v *RowVec[T]) Clone() *RowVec[T] { return &RowVec[T]{buf: newBuffer(vecCopy(v.buf))} }

// String renders the vector on one bracketed line.
func (v *RowVec[T]) String() string {
	var b strings.Builder
	b.WriteString(_fmtRowOpen)
	for i, x := range vecCopy(v.buf) {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		fmt.Fprintf(&b, "%v", x)
	}
	b.WriteString(_fmtRowClose)

	return b.String()
}

// ---------- shared helpers ----------

func vecAt[T any](b *buffer[T], tag string, i int) (T, error) {
	if i < 0 || i >= len(b.data) {
		var zero T
		return zero, fmt.Errorf("%s.At(%d): %w", tag, i, ErrOutOfBounds)
	}
	b.acquireShared()

	return b.data[i], nil
}

func vecSet[T any](b *buffer[T], tag string, i int, x T) error {
	if i < 0 || i >= len(b.data) {
		return fmt.Errorf("%s.Set(%d): %w", tag, i, ErrOutOfBounds)
	}
	b.acquireExclusive()
	b.data[i] = x

	return nil
}

func vecView[T any](b *buffer[T]) Strided[T] {
	return Strided[T]{l: sharedLease(b), n: len(b.data), stride: 1}
}

func vecViewMut[T any](b *buffer[T]) StridedMut[T] {
	return StridedMut[T]{Strided[T]{l: exclusiveLease(b), n: len(b.data), stride: 1}}
}

func vecCopy[T any](b *buffer[T]) []T {
	b.acquireShared()

	return append([]T(nil), b.data...)
}
