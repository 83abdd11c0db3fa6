// SPDX-License-Identifier: MIT

// Package matrix - 2-D strided views and transposition.
//
// Purpose:
//   - StridedMat / StridedMatMut describe rows×cols elements of a shared buffer with a
//     leading stride and a storage Order. Element (r,c) lives at
//     data[off + Order.offset(r, c, stride)].
//   - Row/Col/Diag produce Strided views; Slice/HSplitAt/VSplitAt produce sub-matrices
//     that inherit the stride unchanged.
//   - T is O(1): swap rows/cols and flip the order. Every derived operation on a
//     transposed view therefore equals the swapped operation on the original, and
//     T().T() is the identity descriptor.
//
// Natural direction:
//   - RowMajor rows (ColMajor columns) come out with stride 1; the other direction is
//     `stride`-strided. The dispatch layer relies on this to pick contiguous lines.
//
// Complexity quicksheet:
//   - Every accessor and view constructor: O(1). ToSlice: O(r*c).
package matrix

import "fmt"

// StridedMat is an immutable 2-D view.
type StridedMat[T any] struct {
	l      lease[T]
	off    int
	rows   int
	cols   int
	stride int // leading dimension: ≥ rows (ColMajor) or ≥ cols (RowMajor), ≥ 1
	order  Order
}

// StridedMatMut is a mutable 2-D view. The embedded StridedMat reborrows immutably.
type StridedMatMut[T any] struct {
	StridedMat[T]
}

// NewStridedMat wraps data as an immutable rows×cols view with the given stride and order.
//
// Errors:
//   - ErrInvalidDimensions, ErrInvalidStride (stride < max(1, leading dimension)),
//     ErrIntegerOverflow, ErrOutOfBounds (window exceeds len(data)).
//
// Complexity: O(1).
func NewStridedMat[T any](data []T, offset, rows, cols, stride int, order Order) (StridedMat[T], error) {
	if err := validateMatWindow(len(data), offset, rows, cols, stride, order); err != nil {
		return StridedMat[T]{}, fmt.Errorf("NewStridedMat(off=%d,%dx%d,stride=%d,%v): %w", offset, rows, cols, stride, order, err)
	}

	return StridedMat[T]{l: sharedLease(newBuffer(data)), off: offset, rows: rows, cols: cols, stride: stride, order: order}, nil
}

// NewStridedMatMut is NewStridedMat returning a mutable view.
func NewStridedMatMut[T any](data []T, offset, rows, cols, stride int, order Order) (StridedMatMut[T], error) {
	if err := validateMatWindow(len(data), offset, rows, cols, stride, order); err != nil {
		return StridedMatMut[T]{}, fmt.Errorf("NewStridedMatMut(off=%d,%dx%d,stride=%d,%v): %w", offset, rows, cols, stride, order, err)
	}
	m := StridedMat[T]{l: exclusiveLease(newBuffer(data)), off: offset, rows: rows, cols: cols, stride: stride, order: order}

	return StridedMatMut[T]{m}, nil
}

func validateMatWindow(bufLen, offset, rows, cols, stride int, order Order) error {
	if order != RowMajor && order != ColMajor {
		return ErrInvalidDimensions
	}
	span, err := matrixSpan(order, rows, cols, stride)
	if err != nil {
		return err
	}

	return validateWindow(offset, span, bufLen)
}

// Rows returns the row count. Complexity: O(1).
func (m StridedMat[T]) Rows() int { return m.rows }

// Cols returns the column count. Complexity: O(1).
func (m StridedMat[T]) Cols() int { return m.cols }

// Shape packs Rows() and Cols(). Complexity: O(1).
func (m StridedMat[T]) Shape() (rows, cols int) { return m.rows, m.cols }

// Stride returns the leading dimension. Complexity: O(1).
func (m StridedMat[T]) Stride() int { return m.stride }

// Order returns the storage order. Complexity: O(1).
func (m StridedMat[T]) Order() Order { return m.order }

// Valid reports whether the view's borrow is still live.
func (m StridedMat[T]) Valid() bool { return m.l.check() == nil }

// IsContiguous reports whether the elements occupy one gap-free run of the buffer.
func (m StridedMat[T]) IsContiguous() bool {
	if m.order == RowMajor {
		return m.stride == m.cols || m.rows <= 1
	}

	return m.stride == m.rows || m.cols <= 1
}

// rowStep is the buffer distance between (r,c) and (r+1,c).
func (m StridedMat[T]) rowStep() int {
	if m.order == RowMajor {
		return m.stride
	}

	return 1
}

// colStep is the buffer distance between (r,c) and (r,c+1).
func (m StridedMat[T]) colStep() int {
	if m.order == RowMajor {
		return 1
	}

	return m.stride
}

func (m StridedMat[T]) index(row, col int) int {
	return m.off + m.order.offset(row, col, m.stride)
}

func (m StridedMat[T]) inBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// At returns element (row, col).
//
// Errors: ErrBorrowConflict, ErrOutOfBounds.
// Complexity: O(1).
func (m StridedMat[T]) At(row, col int) (T, error) {
	var zero T
	if err := m.l.check(); err != nil {
		return zero, fmt.Errorf("StridedMat.At(%d,%d): %w", row, col, err)
	}
	if !m.inBounds(row, col) {
		return zero, fmt.Errorf("StridedMat.At(%d,%d): %w", row, col, ErrOutOfBounds)
	}

	return m.l.buf.data[m.index(row, col)], nil
}

// Row returns row i as a Strided view of length Cols().
//
// Errors: ErrBorrowConflict, ErrOutOfBounds.
func (m StridedMat[T]) Row(i int) (Strided[T], error) {
	if err := m.l.check(); err != nil {
		return Strided[T]{}, fmt.Errorf("StridedMat.Row(%d): %w", i, err)
	}
	if i < 0 || i >= m.rows {
		return Strided[T]{}, fmt.Errorf("StridedMat.Row(%d): %w", i, ErrOutOfBounds)
	}

	return m.row(i), nil
}

func (m StridedMat[T]) row(i int) Strided[T] {
	return Strided[T]{l: m.l, off: m.off + i*m.rowStep(), n: m.cols, stride: m.colStep()}
}

// Col returns column j as a Strided view of length Rows().
//
// Errors: ErrBorrowConflict, ErrOutOfBounds.
func (m StridedMat[T]) Col(j int) (Strided[T], error) {
	if err := m.l.check(); err != nil {
		return Strided[T]{}, fmt.Errorf("StridedMat.Col(%d): %w", j, err)
	}
	if j < 0 || j >= m.cols {
		return Strided[T]{}, fmt.Errorf("StridedMat.Col(%d): %w", j, ErrOutOfBounds)
	}

	return m.col(j), nil
}

func (m StridedMat[T]) col(j int) Strided[T] {
	return Strided[T]{l: m.l, off: m.off + j*m.colStep(), n: m.rows, stride: m.rowStep()}
}

// Diag returns the k-th diagonal: k > 0 above the main diagonal, k < 0 below it.
// Element i of Diag(k) is (i, i+k) for k ≥ 0 and (i-k, i) for k < 0.
// Length: min(rows, cols-k) for k ≥ 0; min(rows+k, cols) for k < 0.
//
// Errors: ErrBorrowConflict, ErrNoSuchDiagonal (k outside (-rows, cols)).
// Complexity: O(1).
func (m StridedMat[T]) Diag(k int) (Strided[T], error) {
	if err := m.l.check(); err != nil {
		return Strided[T]{}, fmt.Errorf("StridedMat.Diag(%d): %w", k, err)
	}
	if k <= -m.rows || k >= m.cols {
		return Strided[T]{}, fmt.Errorf("StridedMat.Diag(%d) of %dx%d: %w", k, m.rows, m.cols, ErrNoSuchDiagonal)
	}

	return m.diag(k), nil
}

func (m StridedMat[T]) diag(k int) Strided[T] {
	step := m.rowStep() + m.colStep()
	if k >= 0 {
		return Strided[T]{l: m.l, off: m.index(0, k), n: min(m.rows, m.cols-k), stride: step}
	}

	return Strided[T]{l: m.l, off: m.index(-k, 0), n: min(m.rows+k, m.cols), stride: step}
}

// Slice returns the sub-matrix covering rows [start.Row, end.Row) and columns
// [start.Col, end.Col). The stride is inherited unchanged.
//
// Errors: ErrBorrowConflict, ErrInvalidSlice (start > end on either axis),
// ErrOutOfBounds (negative start or end beyond the shape).
// Complexity: O(1).
func (m StridedMat[T]) Slice(start, end Index) (StridedMat[T], error) {
	if err := m.l.check(); err != nil {
		return StridedMat[T]{}, fmt.Errorf("StridedMat.Slice(%v,%v): %w", start, end, err)
	}
	if err := m.checkWindow(start, end); err != nil {
		return StridedMat[T]{}, fmt.Errorf("StridedMat.Slice(%v,%v) of %dx%d: %w", start, end, m.rows, m.cols, err)
	}

	return m.sub(start, end), nil
}

func (m StridedMat[T]) checkWindow(start, end Index) error {
	if err := checkRange(start.Row, end.Row, m.rows); err != nil {
		return err
	}

	return checkRange(start.Col, end.Col, m.cols)
}

// sub assumes a validated window. Empty windows keep the parent offset so that the
// descriptor never points past the buffer.
func (m StridedMat[T]) sub(start, end Index) StridedMat[T] {
	out := StridedMat[T]{l: m.l, off: m.off, rows: end.Row - start.Row, cols: end.Col - start.Col, stride: m.stride, order: m.order}
	if out.rows > 0 && out.cols > 0 {
		out.off = m.index(start.Row, start.Col)
	}

	return out
}

// HSplitAt cuts the matrix horizontally: top holds rows [0, i), bottom rows [i, Rows()).
// Concatenating top.Col(c) and bottom.Col(c) reproduces Col(c).
//
// Errors: ErrBorrowConflict, ErrOutOfBounds (i outside [0, Rows()]).
func (m StridedMat[T]) HSplitAt(i int) (top, bottom StridedMat[T], err error) {
	if err = m.l.check(); err != nil {
		return top, bottom, fmt.Errorf("StridedMat.HSplitAt(%d): %w", i, err)
	}
	if i < 0 || i > m.rows {
		return top, bottom, fmt.Errorf("StridedMat.HSplitAt(%d): %w", i, ErrOutOfBounds)
	}
	top, bottom = m.hsplit(i)

	return top, bottom, nil
}

func (m StridedMat[T]) hsplit(i int) (StridedMat[T], StridedMat[T]) {
	return m.sub(Index{}, Index{i, m.cols}), m.sub(Index{i, 0}, Index{m.rows, m.cols})
}

// VSplitAt cuts the matrix vertically: left holds columns [0, j), right columns [j, Cols()).
//
// Errors: ErrBorrowConflict, ErrOutOfBounds (j outside [0, Cols()]).
func (m StridedMat[T]) VSplitAt(j int) (left, right StridedMat[T], err error) {
	if err = m.l.check(); err != nil {
		return left, right, fmt.Errorf("StridedMat.VSplitAt(%d): %w", j, err)
	}
	if j < 0 || j > m.cols {
		return left, right, fmt.Errorf("StridedMat.VSplitAt(%d): %w", j, ErrOutOfBounds)
	}
	left, right = m.vsplit(j)

	return left, right, nil
}

func (m StridedMat[T]) vsplit(j int) (StridedMat[T], StridedMat[T]) {
	return m.sub(Index{}, Index{m.rows, j}), m.sub(Index{0, j}, Index{m.rows, m.cols})
}

// T returns the transposed view: Cols()×Rows(), opposite order, same buffer and stride.
// Complexity: O(1), no copy.
func (m StridedMat[T]) T() StridedMat[T] {
	return StridedMat[T]{l: m.l, off: m.off, rows: m.cols, cols: m.rows, stride: m.stride, order: m.order.flip()}
}

// Iter returns a whole-matrix iterator in logical row-major order.
func (m StridedMat[T]) Iter() *MatIter[T] { return newMatIter(m) }

// ToSlice copies the elements in logical row-major order.
//
// Errors: ErrBorrowConflict.
// Complexity: O(r*c).
func (m StridedMat[T]) ToSlice() ([]T, error) {
	if err := m.l.check(); err != nil {
		return nil, fmt.Errorf("StridedMat.ToSlice: %w", err)
	}
	out := make([]T, 0, m.rows*m.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out = append(out, m.l.buf.data[m.index(r, c)])
		}
	}

	return out, nil
}

// span returns the number of buffer elements between the first and last element.
func (m StridedMat[T]) span() int {
	if m.rows == 0 || m.cols == 0 {
		return 0
	}

	return m.order.offset(m.rows-1, m.cols-1, m.stride) + 1
}

// window returns the buffer sub-slice covered by the view (kernel argument).
func (m StridedMat[T]) window() []T {
	return m.l.buf.data[m.off : m.off+m.span()]
}

// majorLen / minorLen: number of storage lines and their length.
func (m StridedMat[T]) majorLen() int {
	if m.order == RowMajor {
		return m.rows
	}

	return m.cols
}

// line returns storage line i (row i for RowMajor, column i for ColMajor); stride 1.
func (m StridedMat[T]) line(i int) Strided[T] {
	if m.order == RowMajor {
		return m.row(i)
	}

	return m.col(i)
}

// asVector returns the single row or column of a vector-shaped view.
func (m StridedMat[T]) asVector() (Strided[T], bool) {
	switch {
	case m.cols == 1:
		return m.col(0), true
	case m.rows == 1:
		return m.row(0), true
	default:
		return Strided[T]{}, false
	}
}

// ---------- mutable surface ----------

// Set stores v at (row, col).
//
// Errors: ErrBorrowConflict, ErrOutOfBounds.
// Complexity: O(1).
func (m StridedMatMut[T]) Set(row, col int, v T) error {
	if err := m.l.checkWrite(); err != nil {
		return fmt.Errorf("StridedMatMut.Set(%d,%d): %w", row, col, err)
	}
	if !m.inBounds(row, col) {
		return fmt.Errorf("StridedMatMut.Set(%d,%d): %w", row, col, ErrOutOfBounds)
	}
	m.l.buf.data[m.index(row, col)] = v

	return nil
}

// AsConst reborrows the view immutably. The writer ends; further readers may join.
func (m StridedMatMut[T]) AsConst() StridedMat[T] {
	out := m.StridedMat
	out.l = m.l.downgrade()

	return out
}

// RowMut returns row i as a mutable view. The borrow moves to the row: m and every
// view sharing its borrow become stale; re-borrow from the owner to continue.
func (m StridedMatMut[T]) RowMut(i int) (StridedMut[T], error) {
	if err := m.l.checkWrite(); err != nil {
		return StridedMut[T]{}, fmt.Errorf("StridedMatMut.RowMut(%d): %w", i, err)
	}
	if i < 0 || i >= m.rows {
		return StridedMut[T]{}, fmt.Errorf("StridedMatMut.RowMut(%d): %w", i, ErrOutOfBounds)
	}
	s := m.row(i)
	s.l = m.l.handOver()

	return StridedMut[T]{s}, nil
}

// ColMut returns column j as a mutable view, moving the borrow like RowMut.
func (m StridedMatMut[T]) ColMut(j int) (StridedMut[T], error) {
	if err := m.l.checkWrite(); err != nil {
		return StridedMut[T]{}, fmt.Errorf("StridedMatMut.ColMut(%d): %w", j, err)
	}
	if j < 0 || j >= m.cols {
		return StridedMut[T]{}, fmt.Errorf("StridedMatMut.ColMut(%d): %w", j, ErrOutOfBounds)
	}
	s := m.col(j)
	s.l = m.l.handOver()

	return StridedMut[T]{s}, nil
}

// DiagMut returns diagonal k as a mutable view, moving the borrow like RowMut.
func (m StridedMatMut[T]) DiagMut(k int) (StridedMut[T], error) {
	if err := m.l.checkWrite(); err != nil {
		return StridedMut[T]{}, fmt.Errorf("StridedMatMut.DiagMut(%d): %w", k, err)
	}
	s, err := m.Diag(k)
	if err != nil {
		return StridedMut[T]{}, err
	}
	s.l = m.l.handOver()

	return StridedMut[T]{s}, nil
}

// SliceMut returns a mutable sub-matrix, moving the borrow like RowMut.
func (m StridedMatMut[T]) SliceMut(start, end Index) (StridedMatMut[T], error) {
	if err := m.l.checkWrite(); err != nil {
		return StridedMatMut[T]{}, fmt.Errorf("StridedMatMut.SliceMut(%v,%v): %w", start, end, err)
	}
	s, err := m.Slice(start, end)
	if err != nil {
		return StridedMatMut[T]{}, err
	}
	s.l = m.l.handOver()

	return StridedMatMut[T]{s}, nil
}

// HSplitAtMut is HSplitAt yielding two disjoint mutable halves. Both share this
// borrow and may be written concurrently.
func (m StridedMatMut[T]) HSplitAtMut(i int) (top, bottom StridedMatMut[T], err error) {
	if err = m.l.checkWrite(); err != nil {
		return top, bottom, fmt.Errorf("StridedMatMut.HSplitAtMut(%d): %w", i, err)
	}
	t, b, err := m.HSplitAt(i)

	return StridedMatMut[T]{t}, StridedMatMut[T]{b}, err
}

// VSplitAtMut is VSplitAt yielding two disjoint mutable halves.
func (m StridedMatMut[T]) VSplitAtMut(j int) (left, right StridedMatMut[T], err error) {
	if err = m.l.checkWrite(); err != nil {
		return left, right, fmt.Errorf("StridedMatMut.VSplitAtMut(%d): %w", j, err)
	}
	l, r, err := m.VSplitAt(j)

	return StridedMatMut[T]{l}, StridedMatMut[T]{r}, err
}

// TMut returns the mutable transposed view, moving the borrow like RowMut.
func (m StridedMatMut[T]) TMut() StridedMatMut[T] {
	out := m.StridedMat.T()
	out.l = m.l.handOver()

	return StridedMatMut[T]{out}
}

// IterMut returns a whole-matrix pointer iterator in logical row-major order.
func (m StridedMatMut[T]) IterMut() *MatIterMut[T] {
	return &MatIterMut[T]{cursor: cursor{back: m.rows * m.cols}, m: m.StridedMat}
}

// Fill stores v in every element.
func (m StridedMatMut[T]) Fill(v T) error {
	if err := m.l.checkWrite(); err != nil {
		return fmt.Errorf("StridedMatMut.Fill: %w", err)
	}
	for i := 0; i < m.majorLen(); i++ {
		ln := m.line(i)
		for k := 0; k < ln.n; k++ {
			m.l.buf.data[ln.off+k*ln.stride] = v
		}
	}

	return nil
}

// CopyFrom copies src into the view element by element (any orders/strides).
//
// Errors: ErrBorrowConflict, ErrDimensionMismatch, ErrAliasedOperands (src memory
// overlaps the destination).
func (m StridedMatMut[T]) CopyFrom(src StridedMat[T]) error {
	if err := m.l.checkWrite(); err != nil {
		return fmt.Errorf("StridedMatMut.CopyFrom: %w", err)
	}
	if err := src.l.check(); err != nil {
		return fmt.Errorf("StridedMatMut.CopyFrom: src: %w", err)
	}
	if err := ValidateSameShape(m, src); err != nil {
		return fmt.Errorf("StridedMatMut.CopyFrom: %w", err)
	}
	if overlaps(m.StridedMat, src) {
		return fmt.Errorf("StridedMatMut.CopyFrom: %w", ErrAliasedOperands)
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			m.l.buf.data[m.index(r, c)] = src.l.buf.data[src.index(r, c)]
		}
	}

	return nil
}

// overlaps reports whether two descriptors address a common element, including
// descriptors over distinct buffers that share a backing array.
// Views sharing a stride are compared as storage rectangles (exact, so the halves of
// HSplitAt/VSplitAt never overlap); otherwise buffer windows are compared, which may
// report interleaved but disjoint views as overlapping.
func overlaps[T any](a, b StridedMat[T]) bool {
	if a.span() == 0 || b.span() == 0 {
		return false
	}
	base, ok := relativeBase(a.l.buf, b.l.buf)
	if !ok {
		return false
	}
	// Rebase b onto a's buffer; shift both when that goes negative.
	b.off += base
	if b.off < 0 {
		a.off -= b.off
		b.off = 0
	}
	if a.stride == b.stride {
		ra, okA := a.storageRect()
		rb, okB := b.storageRect()
		if okA && okB {
			return ra.major0 < rb.major1 && rb.major0 < ra.major1 &&
				ra.minor0 < rb.minor1 && rb.minor0 < ra.minor1
		}
	}

	return spansOverlap(a.off, a.span(), b.off, b.span())
}

// rect is a block of storage lines [major0, major1) × positions [minor0, minor1).
type rect struct {
	major0, major1 int
	minor0, minor1 int
}

// storageRect locates the view in (line, position) coordinates of its buffer.
// It fails when the view wraps across a line boundary.
func (m StridedMat[T]) storageRect() (rect, bool) {
	lines, width := m.cols, m.rows
	if m.order == RowMajor {
		lines, width = m.rows, m.cols
	}
	major, minor := m.off/m.stride, m.off%m.stride
	if minor+width > m.stride {
		return rect{}, false
	}

	return rect{major0: major, major1: major + lines, minor0: minor, minor1: minor + width}, true
}
