// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for shape, stride and overflow checks.
//  - Keep descriptors and the dispatch layer minimal by delegating guards here.
//  - Return plain sentinel errors (no wrapping) so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// AI-Hints:
//  - Every size product or offset that reaches a buffer index goes through checkedMul/checkedAdd.
//  - Use ValidateSameShape for element-wise ops, ValidateMulCompatible for products.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkedMul returns a*b or ErrIntegerOverflow when the product leaves [0, MaxDim].
// Inputs are expected non-negative.
func checkedMul(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidDimensions
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > MaxDim/b {
		return 0, ErrIntegerOverflow
	}

	return a * b, nil
}

// checkedAdd returns a+b or ErrIntegerOverflow when the sum leaves [0, MaxDim].
func checkedAdd(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidDimensions
	}
	if a > MaxDim-b {
		return 0, ErrIntegerOverflow
	}

	return a + b, nil
}

// validateDims checks a rows×cols shape and returns its element count.
func validateDims(rows, cols int) (int, error) {
	if rows < 0 || cols < 0 {
		return 0, ErrInvalidDimensions
	}
	if rows > MaxDim || cols > MaxDim {
		return 0, ErrIntegerOverflow
	}

	return checkedMul(rows, cols)
}

// leadingDim returns the extent the stride must cover: rows for ColMajor, cols for RowMajor.
func leadingDim(order Order, rows, cols int) int {
	if order == RowMajor {
		return cols
	}

	return rows
}

// vectorSpan returns the number of buffer elements covered by n elements at stride:
// (n-1)*stride + 1, or 0 for n == 0.
func vectorSpan(n, stride int) (int, error) {
	if n < 0 {
		return 0, ErrInvalidDimensions
	}
	if stride < 1 {
		return 0, ErrInvalidStride
	}
	if n == 0 {
		return 0, nil
	}
	last, err := checkedMul(n-1, stride)
	if err != nil {
		return 0, err
	}

	return checkedAdd(last, 1)
}

// matrixSpan returns the number of buffer elements covered by a strided matrix:
// offset(rows-1, cols-1) + 1, or 0 for an empty shape. It also enforces
// stride ≥ max(1, leading dimension).
func matrixSpan(order Order, rows, cols, stride int) (int, error) {
	if _, err := validateDims(rows, cols); err != nil {
		return 0, err
	}
	if stride < 1 || stride < leadingDim(order, rows, cols) {
		return 0, ErrInvalidStride
	}
	if stride > MaxDim {
		return 0, ErrIntegerOverflow
	}
	if rows == 0 || cols == 0 {
		return 0, nil
	}
	major, minor := cols-1, rows-1 // ColMajor: col*stride + row
	if order == RowMajor {
		major, minor = rows-1, cols-1
	}
	last, err := checkedMul(major, stride)
	if err != nil {
		return 0, err
	}
	if last, err = checkedAdd(last, minor); err != nil {
		return 0, err
	}

	return checkedAdd(last, 1)
}

// validateWindow checks that [offset, offset+span) lies inside a buffer of length n.
func validateWindow(offset, span, n int) error {
	if offset < 0 {
		return ErrOutOfBounds
	}
	end, err := checkedAdd(offset, span)
	if err != nil {
		return err
	}
	if end > n {
		return ErrOutOfBounds
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
//
// Inputs: two non-nil Shape values.
// Returns: nil or wrapped ErrDimensionMismatch / ErrNilOperand.
// Complexity: O(1).
// AI-Hints: Use for AddAssign/SubAssign and element-wise comparison.
func ValidateSameShape(a, b Shape) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilOperand)
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols() == b.Rows().
//
// Complexity: O(1).
func ValidateMulCompatible(a, b Shape) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateMulCompatible", ErrNilOperand)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf(
			fmt.Sprintf("ValidateMulCompatible: (%d×%d)·(%d×%d)", a.Rows(), a.Cols(), b.Rows(), b.Cols()),
			ErrDimensionMismatch)
	}

	return nil
}
