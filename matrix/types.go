// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by descriptors, owned containers and the
// dispatch layer. Errors and options live in dedicated files (errors.go,
// options.go) per the package conventions.
package matrix

import "fmt"

// MaxDim bounds every length, row/column count, stride and linear offset.
// Sizes beyond it fail with ErrIntegerOverflow instead of wrapping.
const MaxDim = 1<<31 - 1

// Scalar is the set of element types accepted by the arithmetic layer.
// Exact float32/float64/complex64/complex128 reach the BLAS kernels; every other
// member (integers, named types) is served by generic loops.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Order fixes how (row, col) maps to a linear offset.
//   - ColMajor: offset = col*stride + row (stride ≥ rows).
//   - RowMajor: offset = row*stride + col (stride ≥ cols).
type Order uint8

const (
	// ColMajor stores columns contiguously (BLAS/Fortran convention).
	ColMajor Order = iota
	// RowMajor stores rows contiguously.
	RowMajor
)

// String implements fmt.Stringer.
func (o Order) String() string {
	switch o {
	case ColMajor:
		return "ColMajor"
	case RowMajor:
		return "RowMajor"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// flip returns the opposite order. Transposition is exactly "swap dims, flip order".
func (o Order) flip() Order {
	if o == RowMajor {
		return ColMajor
	}

	return RowMajor
}

// offset maps (row, col) to a linear offset under order o and leading stride.
// Callers guarantee bounds; this is the single place where order matters.
func (o Order) offset(row, col, stride int) int {
	if o == RowMajor {
		return row*stride + col
	}

	return col*stride + row
}

// Index is a (row, col) coordinate pair used by Slice and whole-matrix iteration.
type Index struct {
	Row int
	Col int
}

// Shape is the minimal capability every 2-D operand exposes.
// Complexity: O(1).
type Shape interface {
	Rows() int
	Cols() int
}
