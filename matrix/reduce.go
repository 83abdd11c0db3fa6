// SPDX-License-Identifier: MIT

// Package matrix - reductions: Norm2, Dot, AllClose.
//
// Composite expressions are evaluated into scratch first; leaves are read in place.
// Norm2 of a matrix is the Frobenius norm: one nrm2 per storage line, combined with
// hypot so no partial sum of squares can overflow.
package matrix

import (
	"fmt"
	"math"
)

// resolve returns a read borrow of e, materializing composite nodes.
func (ev *evaluator[T]) resolve(e Expr[T]) (StridedMat[T], error) {
	if e == nil {
		return StridedMat[T]{}, ErrNilOperand
	}
	if d, ok, err := e.operand(); ok || err != nil {
		return d, err
	}
	terms, err := ev.expand(e, 1)
	if err != nil {
		return StridedMat[T]{}, err
	}

	return ev.materialize(terms)
}

// Norm2 returns the Euclidean norm of a vector operand, or the Frobenius norm of a
// matrix operand.
//
// Errors: ErrNilOperand, ErrBorrowConflict, ErrDimensionMismatch (inside e).
// Complexity: O(r*c).
func Norm2[T Scalar](e Expr[T], opts ...Option) (float64, error) {
	ev := newEvaluator[T](opts...)
	d, err := ev.resolve(e)
	if err != nil {
		return 0, fmt.Errorf("Norm2: %w", err)
	}
	if d.rows == 0 || d.cols == 0 {
		return 0, nil
	}
	if v, ok := d.asVector(); ok {
		return ev.nrm2(v, d.rows, d.cols), nil
	}
	var r float64
	for i := 0; i < d.majorLen(); i++ {
		r = math.Hypot(r, ev.nrm2(d.line(i), d.rows, d.cols))
	}

	return r, nil
}

func (ev *evaluator[T]) nrm2(v Strided[T], rows, cols int) float64 {
	if ev.useKernel(v.n, v.stride) {
		ev.trace("nrm2", pathKernel, rows, cols)
		return ev.k.Nrm2(v.n, v.window(), v.stride)
	}
	ev.trace("nrm2", pathFallback, rows, cols)

	return nrm2Loop(v)
}

// Dot returns the unconjugated inner product Σ x[i]·y[i] of two vector operands
// (any mix of n×1 and 1×n).
//
// Errors: ErrNilOperand, ErrBorrowConflict, ErrDimensionMismatch (not vectors, or
// lengths differ).
// Complexity: O(n).
func Dot[T Scalar](x, y Expr[T], opts ...Option) (T, error) {
	var zero T
	ev := newEvaluator[T](opts...)
	dx, err := ev.resolve(x)
	if err != nil {
		return zero, fmt.Errorf("Dot: x: %w", err)
	}
	dy, err := ev.resolve(y)
	if err != nil {
		return zero, fmt.Errorf("Dot: y: %w", err)
	}
	vx, okX := dx.asVector()
	vy, okY := dy.asVector()
	if !okX || !okY || vx.n != vy.n {
		return zero, fmt.Errorf("Dot: (%dx%d)·(%dx%d): %w", dx.rows, dx.cols, dy.rows, dy.cols, ErrDimensionMismatch)
	}
	if err = dx.l.check(); err != nil {
		return zero, fmt.Errorf("Dot: x: %w", err)
	}
	if ev.useKernel(vx.n, vx.stride, vy.stride) && vx.n > 0 {
		ev.trace("dot", pathKernel, vx.n, 1)
		return ev.k.Dot(vx.n, vx.window(), vx.stride, vy.window(), vy.stride), nil
	}
	ev.trace("dot", pathFallback, vx.n, 1)

	return dotLoop(vx, vy), nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true, nil) if all elements satisfy the relation; (false, nil) otherwise.
//
// Policy:
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - For unsigned element types |a-b| is the distance, never the wrapped difference.
//
// Errors: ErrNaNInf (non-finite tolerance), ErrNilOperand, ErrBorrowConflict,
// ErrDimensionMismatch.
// Time: O(r*c). Space: O(1) for leaf operands.
func AllClose[T Scalar](a, b Expr[T], rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, fmt.Errorf("AllClose: %w", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	ev := newEvaluator[T]()
	da, err := ev.resolve(a)
	if err != nil {
		return false, fmt.Errorf("AllClose: a: %w", err)
	}
	db, err := ev.resolve(b)
	if err != nil {
		return false, fmt.Errorf("AllClose: b: %w", err)
	}
	if err = ValidateSameShape(da, db); err != nil {
		return false, fmt.Errorf("AllClose: %w", err)
	}
	if err = da.l.check(); err != nil {
		return false, fmt.Errorf("AllClose: a: %w", err)
	}

	ad, bd := da.l.buf.data, db.l.buf.data
	var av, bv T
	for i := 0; i < da.rows; i++ {
		for j := 0; j < da.cols; j++ {
			av, bv = ad[da.index(i, j)], bd[db.index(i, j)]
			diff := math.Min(magnitude(av-bv), magnitude(bv-av))
			if !(diff <= atol+rtol*magnitude(bv)) {
				return false, nil
			}
		}
	}

	return true, nil
}
