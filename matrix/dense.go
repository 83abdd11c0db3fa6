// SPDX-License-Identifier: MIT

// Package matrix - Mat, the owned dense matrix.
//
// Purpose:
//   - Own a contiguous buffer of exactly rows*cols elements in a fixed storage order
//     (ColMajor by default, see WithOrder); the stride equals the leading dimension.
//   - Present the same contract as StridedMat through View/ViewMut, so every
//     descriptor operation applies to owned matrices unchanged.
//
// Borrow semantics:
//   - At, View and every read-only accessor take a shared borrow: they end any live
//     mutable view of the matrix.
//   - Set, Apply and ViewMut take an exclusive borrow: they end every live view.
//
// AI-Hints:
//   - Use FromRows for literal-style construction; FromElements when the data is
//     already in storage order.
//   - Mat[T any] accepts any element type; arithmetic needs T Scalar.
//
// Complexity quicksheet:
//   - NewMat: O(r*c) zero-init; At/Set/View: O(1); Clone: O(r*c).
package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"
	ctxSet   = "Set"
	ctxApply = "Apply"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// matErrorf wraps an error with a uniform Mat context and call-site indices.
func matErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Mat.%s(%d,%d): %w", method, row, col, err)
}

// Mat is an owned rows×cols matrix.
type Mat[T any] struct {
	buf   *buffer[T] // len(buf.data) == rows*cols
	rows  int
	cols  int
	order Order
}

// Compile-time assertions for Shape and fmt.Stringer conformance.
var (
	_ Shape        = (*Mat[float64])(nil)
	_ fmt.Stringer = (*Mat[float64])(nil)
)

// NewMat allocates a rows×cols zero matrix in the configured order.
// Empty shapes (0×n, n×0) are legal.
//
// Errors:
//   - ErrInvalidDimensions (negative dimension), ErrIntegerOverflow (rows*cols > MaxDim).
//
// Complexity: O(r*c).
func NewMat[T any](rows, cols int, opts ...Option) (*Mat[T], error) {
	n, err := validateDims(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("NewMat(%d,%d): %w", rows, cols, err)
	}
	o := gatherOptions(opts...)

	return &Mat[T]{buf: newBuffer(make([]T, n)), rows: rows, cols: cols, order: o.order}, nil
}

// Zeros is NewMat with an intention-revealing name.
func Zeros[T any](rows, cols int, opts ...Option) (*Mat[T], error) {
	return NewMat[T](rows, cols, opts...)
}

// Identity returns the n×n identity.
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func Identity[T Scalar](n int, opts ...Option) (*Mat[T], error) {
	m, err := NewMat[T](n, n, opts...)
	if err != nil {
		return nil, fmt.Errorf("Identity(%d): %w", n, err)
	}
	step := m.stride() + 1
	for i := 0; i < n; i++ {
		m.buf.data[i*step] = 1
	}

	return m, nil
}

// FromElements copies data, laid out in the configured storage order, into a new
// rows×cols matrix.
//
// Errors:
//   - ErrInvalidDimensions (negative shape or len(data) != rows*cols), ErrIntegerOverflow.
//
// Complexity: O(r*c).
func FromElements[T any](data []T, rows, cols int, opts ...Option) (*Mat[T], error) {
	n, err := validateDims(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("FromElements(%d,%d): %w", rows, cols, err)
	}
	if len(data) != n {
		return nil, fmt.Errorf("FromElements(%d,%d): len=%d: %w", rows, cols, len(data), ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)
	cp := make([]T, n)
	copy(cp, data)

	return &Mat[T]{buf: newBuffer(cp), rows: rows, cols: cols, order: o.order}, nil
}

// FromRows builds a matrix from row slices, e.g. FromRows([][]T{{1, 2}, {3, 4}}).
//
// Errors:
//   - ErrInvalidDimensions (ragged rows).
//
// Complexity: O(r*c).
func FromRows[T any](rows [][]T, opts ...Option) (*Mat[T], error) {
	r, c := len(rows), 0
	if r > 0 {
		c = len(rows[0])
	}
	m, err := NewMat[T](r, c, opts...)
	if err != nil {
		return nil, fmt.Errorf("FromRows: %w", err)
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d elements, want %d: %w", i, len(row), c, ErrInvalidDimensions)
		}
		for j, v := range row {
			m.buf.data[m.index(i, j)] = v
		}
	}

	return m, nil
}

// FromCols builds a matrix from column slices.
//
// Errors:
//   - ErrInvalidDimensions (ragged columns).
func FromCols[T any](cols [][]T, opts ...Option) (*Mat[T], error) {
	c, r := len(cols), 0
	if c > 0 {
		r = len(cols[0])
	}
	m, err := NewMat[T](r, c, opts...)
	if err != nil {
		return nil, fmt.Errorf("FromCols: %w", err)
	}
	for j, col := range cols {
		if len(col) != r {
			return nil, fmt.Errorf("FromCols: column %d has %d elements, want %d: %w", j, len(col), r, ErrInvalidDimensions)
		}
		for i, v := range col {
			m.buf.data[m.index(i, j)] = v
		}
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Mat[T]) Rows() int { return m.rows }

// Cols returns the column count. Complexity: O(1).
func (m *Mat[T]) Cols() int { return m.cols }

// Shape packs Rows() and Cols() into a single call.
func (m *Mat[T]) Shape() (rows, cols int) { return m.rows, m.cols }

// Order returns the storage order fixed at construction.
func (m *Mat[T]) Order() Order { return m.order }

// Stride returns the leading dimension of the owned buffer.
func (m *Mat[T]) Stride() int { return m.stride() }

func (m *Mat[T]) stride() int {
	return max(1, leadingDim(m.order, m.rows, m.cols))
}

func (m *Mat[T]) index(row, col int) int {
	return m.order.offset(row, col, m.stride())
}

func (m *Mat[T]) inBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// At returns element (row, col). Takes a shared borrow.
//
// Errors: ErrOutOfBounds.
// Complexity: O(1).
func (m *Mat[T]) At(row, col int) (T, error) {
	if !m.inBounds(row, col) {
		var zero T
		return zero, matErrorf(ctxAt, row, col, ErrOutOfBounds)
	}
	m.buf.acquireShared()

	return m.buf.data[m.index(row, col)], nil
}

// Set stores v at (row, col). Takes an exclusive borrow.
//
// Errors: ErrOutOfBounds.
// Complexity: O(1).
func (m *Mat[T]) Set(row, col int, v T) error {
	if !m.inBounds(row, col) {
		return matErrorf(ctxSet, row, col, ErrOutOfBounds)
	}
	m.buf.acquireExclusive()
	m.buf.data[m.index(row, col)] = v

	return nil
}

// View returns an immutable descriptor of the whole matrix.
func (m *Mat[T]) View() StridedMat[T] {
	return StridedMat[T]{l: sharedLease(m.buf), rows: m.rows, cols: m.cols, stride: m.stride(), order: m.order}
}

// ViewMut returns a mutable descriptor of the whole matrix, ending every other view.
func (m *Mat[T]) ViewMut() StridedMatMut[T] {
	return StridedMatMut[T]{StridedMat[T]{l: exclusiveLease(m.buf), rows: m.rows, cols: m.cols, stride: m.stride(), order: m.order}}
}

// Row returns row i as an immutable view.
func (m *Mat[T]) Row(i int) (Strided[T], error) { return m.View().Row(i) }

// Col returns column j as an immutable view.
func (m *Mat[T]) Col(j int) (Strided[T], error) { return m.View().Col(j) }

// Diag returns diagonal k as an immutable view.
func (m *Mat[T]) Diag(k int) (Strided[T], error) { return m.View().Diag(k) }

// Slice returns the immutable sub-matrix [start, end).
func (m *Mat[T]) Slice(start, end Index) (StridedMat[T], error) { return m.View().Slice(start, end) }

// T returns the transposed immutable view (no copy).
func (m *Mat[T]) T() StridedMat[T] { return m.View().T() }

// Iter returns a whole-matrix iterator in logical row-major order.
func (m *Mat[T]) Iter() *MatIter[T] { return m.View().Iter() }

// ToSlice copies the elements in logical row-major order.
func (m *Mat[T]) ToSlice() []T {
	out, _ := m.View().ToSlice()

	return out
}

// Data returns a copy of the buffer in storage order.
func (m *Mat[T]) Data() []T {
	m.buf.acquireShared()
	cp := make([]T, len(m.buf.data))
	copy(cp, m.buf.data)

	return cp
}

// Clone returns a deep copy with the same shape and order.
// Complexity: O(r*c).
func (m *Mat[T]) Clone() *Mat[T] {
	return &Mat[T]{buf: newBuffer(m.Data()), rows: m.rows, cols: m.cols, order: m.order}
}

// String renders one bracketed line per row for diagnostics.
// Complexity: O(r*c).
func (m *Mat[T]) String() string {
	var b strings.Builder
	m.buf.acquireShared()
	for i := 0; i < m.rows; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < m.cols; j++ {
			fmt.Fprintf(&b, "%v", m.buf.data[m.index(i, j)])
			if j+1 < m.cols {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each element in logical row-major order; stops early when f returns false.
//
// Complexity: O(r*c), no allocations.
func (m *Mat[T]) Do(f func(i, j int, v T) bool) {
	m.buf.acquireShared()
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if !f(i, j, m.buf.data[m.index(i, j)]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i, j, v) in logical row-major order.
// Takes an exclusive borrow.
//
// Errors: ErrNilOperand (nil f).
func (m *Mat[T]) Apply(f func(i, j int, v T) T) error {
	if f == nil {
		return matErrorf(ctxApply, 0, 0, ErrNilOperand)
	}
	m.buf.acquireExclusive()
	var off int
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			off = m.index(i, j)
			m.buf.data[off] = f(i, j, m.buf.data[off])
		}
	}

	return nil
}
