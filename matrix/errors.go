// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All operations MUST return these sentinels and tests MUST check them
// via errors.Is. No library code path panics on user-triggered conditions except
// the explicit Must* convenience wrappers.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping. Detection sites
// wrap with call-site context (fmt.Errorf("Type.Method(...): %w", ErrX)); callers
// still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// borrow conflict -> shape/stride/overflow -> index/slice/diagonal -> dimension mismatch
// -> aliasing between destination and operands.

var (
	// ErrOutOfBounds indicates that an index or sub-range exceeds the declared extent.
	ErrOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrInvalidSlice indicates a range whose start exceeds its end.
	ErrInvalidSlice = errors.New("matrix: slice start exceeds end")

	// ErrNoSuchDiagonal indicates a diagonal index outside (-rows, cols).
	ErrNoSuchDiagonal = errors.New("matrix: no such diagonal")

	// ErrDimensionMismatch indicates incompatible operand shapes,
	// e.g. AddAssign on different shapes, or a product where lhs.Cols != rhs.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrIntegerOverflow indicates that a size or offset computation would exceed
	// the bounded index range (MaxDim).
	ErrIntegerOverflow = errors.New("matrix: integer overflow")

	// ErrInvalidDimensions indicates negative dimensions or a buffer that does not
	// match the requested shape.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrInvalidStride indicates a zero stride, or a matrix stride smaller than its
	// leading dimension.
	ErrInvalidStride = errors.New("matrix: invalid stride")

	// ErrBorrowConflict indicates access through a view whose borrow was ended by a
	// conflicting borrow of the same buffer (one writer xor many readers).
	ErrBorrowConflict = errors.New("matrix: view invalidated by conflicting borrow")

	// ErrAliasedOperands indicates that a destination overlaps the memory of an operand.
	ErrAliasedOperands = errors.New("matrix: destination aliases an operand")

	// ErrNilOperand indicates that a nil operand or expression was passed.
	ErrNilOperand = errors.New("matrix: nil operand")

	// ErrNaNInf indicates a NaN or ±Inf where a finite value is required
	// (e.g. AllClose tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
