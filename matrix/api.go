// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Facades never change the loop orders or kernel selection of the dispatch layer.
//   - Validation is performed in the canonical operations; facades only compose or forward.
//
// AI-Hints:
//   - MatMul/MatVec allocate their result; use Assign/AddAssign to reuse a destination.
//   - TransposeCopy materializes; T() is the zero-copy alternative.

package matrix

import "fmt"

// ZerosLike returns a new zero matrix with the same shape as s.
// Complexity: O(r*c) zeroing.
func ZerosLike[T any](s Shape, opts ...Option) (*Mat[T], error) {
	if s == nil {
		return nil, fmt.Errorf("ZerosLike: %w", ErrNilOperand)
	}

	return NewMat[T](s.Rows(), s.Cols(), opts...)
}

// IdentityLike returns I with dimension Rows(s); requires a square shape.
//
// Errors: ErrNilOperand, ErrDimensionMismatch (not square).
func IdentityLike[T Scalar](s Shape, opts ...Option) (*Mat[T], error) {
	if s == nil {
		return nil, fmt.Errorf("IdentityLike: %w", ErrNilOperand)
	}
	if s.Rows() != s.Cols() {
		return nil, fmt.Errorf("IdentityLike(%dx%d): %w", s.Rows(), s.Cols(), ErrDimensionMismatch)
	}

	return Identity[T](s.Rows(), opts...)
}

// MatMul returns a·b as a new matrix. Thin alias of Eval(Mul(a, b)).
func MatMul[T Scalar](a, b Expr[T], opts ...Option) (*Mat[T], error) {
	return Eval[T](Mul(a, b), opts...)
}

// MatVec returns a·x as a new column vector (one gemv).
//
// Errors: as AddAssign.
func MatVec[T Scalar](a, x Expr[T], opts ...Option) (*ColVec[T], error) {
	if a == nil {
		return nil, fmt.Errorf("MatVec: %w", ErrNilOperand)
	}
	y, err := NewColVec[T](a.Rows())
	if err != nil {
		return nil, fmt.Errorf("MatVec: %w", err)
	}
	if err = Assign[T](y, Mul(a, x), opts...); err != nil {
		return nil, fmt.Errorf("MatVec: %w", err)
	}

	return y, nil
}

// Axpy computes y += alpha·x. Thin alias of AddAssign(y, Scale(alpha, x)).
func Axpy[T Scalar](alpha T, x Expr[T], y Dest[T], opts ...Option) error {
	return AddAssign(y, Scale(alpha, x), opts...)
}

// TransposeCopy materializes the transpose of e into a new matrix.
// Complexity: O(r*c).
func TransposeCopy[T Scalar](e Expr[T], opts ...Option) (*Mat[T], error) {
	ev := newEvaluator[T](opts...)
	d, err := ev.resolve(e)
	if err != nil {
		return nil, fmt.Errorf("TransposeCopy: %w", err)
	}

	return Eval[T](d.T(), opts...)
}
