// SPDX-License-Identifier: MIT

// Package matrix - op-dispatch: expression → kernel call or generic loop.
//
// Implementation (every entry point):
//   - Stage 1: expand the expression into terms Σ coef_i · F_i1·F_i2·…, resolving every
//     leaf to a read borrow (ErrBorrowConflict, ErrNilOperand). A Sum used as a product
//     factor is materialized into a scratch buffer.
//   - Stage 2: check shapes (ErrDimensionMismatch) against each other and the destination.
//   - Stage 3: borrow the destination for writing, reject overlap with any operand
//     (ErrAliasedOperands), then re-check every operand borrow (ErrBorrowConflict).
//   - Stage 4: per term, one axpy (single factor) or a chain reduction ending in one
//     gemv/gemm into the destination (see chain.go).
//
// Kernel selection:
//   - T is float32/float64/complex64/complex128 (kernel.For) and WithKernel(true) and
//     every count/stride fits the kernel integer → kernel path.
//   - Otherwise the generic loops in fallback.go produce the same result.
//   - One zerolog Debug event per decision: op, path, kernel, rows, cols.
//
// AI-Hints:
//   - Use WithKernel(false) to get the generic loops as ground truth in tests.
//   - Must* wrappers panic with the wrapped error; use them only after validation.
package matrix

import (
	"fmt"

	"github.com/katalvlaran/lvlinalg/kernel"
)

const (
	pathKernel   = "kernel"
	pathFallback = "fallback"
)

// term is coef · factors[0] · factors[1] · …
type term[T Scalar] struct {
	coef    T
	factors []StridedMat[T]
}

// shape validates the factor chain and returns the product shape.
func (t term[T]) shape() (rows, cols int, err error) {
	for i := 1; i < len(t.factors); i++ {
		if err = ValidateMulCompatible(t.factors[i-1], t.factors[i]); err != nil {
			return 0, 0, err
		}
	}

	return t.factors[0].rows, t.factors[len(t.factors)-1].cols, nil
}

// evaluator carries the resolved options, kernel binding and scratch pool of one call.
type evaluator[T Scalar] struct {
	o    Options
	k    kernel.Kernel[T]
	kOK  bool
	pool scratch[T]
}

func newEvaluator[T Scalar](opts ...Option) *evaluator[T] {
	o := gatherOptions(opts...)
	k, ok := kernel.For[T]()

	return &evaluator[T]{o: o, k: k, kOK: ok && o.useKernel}
}

// useKernel reports whether the kernel path is open for the given integer arguments.
func (ev *evaluator[T]) useKernel(vals ...int) bool {
	return ev.kOK && kernel.Fits(vals...)
}

func (ev *evaluator[T]) trace(op, path string, rows, cols int) {
	e := ev.o.logger.Debug().Str("op", op).Str("path", path).Int("rows", rows).Int("cols", cols)
	if path == pathKernel {
		e = e.Str("kernel", ev.k.Name())
	}
	e.Msg("matrix dispatch")
}

// expand flattens e into terms scaled by coef.
func (ev *evaluator[T]) expand(e Expr[T], coef T) ([]term[T], error) {
	switch n := e.(type) {
	case nil:
		return nil, ErrNilOperand
	case *Scaled[T]:
		if n == nil {
			return nil, ErrNilOperand
		}
		return ev.expand(n.x, coef*n.alpha)
	case *Sum[T]:
		if n == nil {
			return nil, ErrNilOperand
		}
		ta, err := ev.expand(n.a, coef)
		if err != nil {
			return nil, err
		}
		cb := coef
		if n.neg {
			var zero T
			cb = zero - coef
		}
		tb, err := ev.expand(n.b, cb)
		if err != nil {
			return nil, err
		}
		return append(ta, tb...), nil
	case *Product[T]:
		if n == nil || len(n.factors) == 0 {
			return nil, ErrNilOperand
		}
		return ev.expandProduct(n, coef)
	default:
		d, ok, err := e.operand()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unsupported expression %T: %w", e, ErrNilOperand)
		}
		return []term[T]{{coef: coef, factors: []StridedMat[T]{d}}}, nil
	}
}

func (ev *evaluator[T]) expandProduct(p *Product[T], coef T) ([]term[T], error) {
	out := term[T]{coef: coef, factors: make([]StridedMat[T], 0, len(p.factors))}
	for _, f := range p.factors {
		ft, err := ev.expand(f, 1)
		if err != nil {
			return nil, err
		}
		if len(ft) == 1 {
			out.coef *= ft[0].coef
			out.factors = append(out.factors, ft[0].factors...)
			continue
		}
		tmp, err := ev.materialize(ft)
		if err != nil {
			return nil, err
		}
		out.factors = append(out.factors, tmp)
	}

	return []term[T]{out}, nil
}

// materialize evaluates terms into a scratch matrix owned by the evaluator.
func (ev *evaluator[T]) materialize(terms []term[T]) (StridedMat[T], error) {
	rows, cols, err := termsShape(terms)
	if err != nil {
		return StridedMat[T]{}, err
	}
	tmp := ev.pool.get(rows, cols)
	ev.apply(tmp, terms, true)

	return tmp.StridedMat, nil
}

// termsShape returns the common shape of all terms.
func termsShape[T Scalar](terms []term[T]) (rows, cols int, err error) {
	for i, t := range terms {
		r, c, err := t.shape()
		if err != nil {
			return 0, 0, err
		}
		if i == 0 {
			rows, cols = r, c
			continue
		}
		if r != rows || c != cols {
			return 0, 0, fmt.Errorf("term %d is %dx%d, want %dx%d: %w", i, r, c, rows, cols, ErrDimensionMismatch)
		}
	}

	return rows, cols, nil
}

// run is the shared body of AddAssign/SubAssign/Assign.
func (ev *evaluator[T]) run(dst Dest[T], e Expr[T], coef T, assign bool) error {
	if dst == nil {
		return ErrNilOperand
	}
	terms, err := ev.expand(e, coef)
	if err != nil {
		return err
	}
	rows, cols, err := termsShape(terms)
	if err != nil {
		return err
	}
	d, err := dst.destination()
	if err != nil {
		return err
	}
	if rows != d.rows || cols != d.cols {
		return fmt.Errorf("destination %dx%d, expression %dx%d: %w", d.rows, d.cols, rows, cols, ErrDimensionMismatch)
	}
	for _, t := range terms {
		for _, f := range t.factors {
			if overlaps(d.StridedMat, f) {
				return ErrAliasedOperands
			}
		}
	}
	for _, t := range terms {
		for _, f := range t.factors {
			if err = f.l.check(); err != nil {
				return err
			}
		}
	}

	ev.apply(d, terms, assign)

	return nil
}

// apply accumulates terms into d; with assign the first term overwrites d.
func (ev *evaluator[T]) apply(d StridedMatMut[T], terms []term[T], assign bool) {
	var zero T
	for i, t := range terms {
		beta := T(1)
		if assign && i == 0 {
			beta = zero
		}
		if len(t.factors) == 1 {
			if beta == zero {
				ev.fill(d, zero)
			}
			ev.axpy(d, t.factors[0], t.coef)
			continue
		}
		ev.chain(d, t.factors, t.coef, beta)
	}
}

// axpy computes d += alpha·s for equal shapes.
func (ev *evaluator[T]) axpy(d StridedMatMut[T], s StridedMat[T], alpha T) {
	if d.rows == 0 || d.cols == 0 {
		return
	}
	dv, vec := d.asVector()
	if vec {
		sv, _ := s.asVector()
		if ev.useKernel(dv.n, sv.stride, dv.stride) {
			ev.trace("axpy", pathKernel, d.rows, d.cols)
			ev.k.Axpy(dv.n, alpha, sv.window(), sv.stride, dv.window(), dv.stride)
			return
		}
		ev.trace("axpy", pathFallback, d.rows, d.cols)
		axpyLoop(alpha, sv, dv)
		return
	}
	n := d.rows * d.cols
	if d.order == s.order && d.IsContiguous() && s.IsContiguous() && ev.useKernel(n) {
		ev.trace("axpy", pathKernel, d.rows, d.cols)
		ev.k.Axpy(n, alpha, s.window(), 1, d.window(), 1)
		return
	}
	kern := ev.useKernel(d.stride, s.stride, max(d.rows, d.cols))
	if kern {
		ev.trace("axpy", pathKernel, d.rows, d.cols)
	} else {
		ev.trace("axpy", pathFallback, d.rows, d.cols)
	}
	for i := 0; i < d.majorLen(); i++ {
		dl := d.line(i)
		sl := s.row(i)
		if d.order == ColMajor {
			sl = s.col(i)
		}
		if kern {
			ev.k.Axpy(dl.n, alpha, sl.window(), sl.stride, dl.window(), dl.stride)
			continue
		}
		axpyLoop(alpha, sl, dl)
	}
}

// scale computes d *= alpha.
func (ev *evaluator[T]) scale(d StridedMatMut[T], alpha T) {
	if d.rows == 0 || d.cols == 0 {
		return
	}
	var zero T
	if alpha == zero {
		ev.fill(d, zero)
		return
	}
	if d.IsContiguous() && ev.useKernel(d.rows*d.cols) {
		ev.trace("scal", pathKernel, d.rows, d.cols)
		ev.k.Scal(d.rows*d.cols, alpha, d.window(), 1)
		return
	}
	kern := ev.useKernel(d.stride, max(d.rows, d.cols))
	if kern {
		ev.trace("scal", pathKernel, d.rows, d.cols)
	} else {
		ev.trace("scal", pathFallback, d.rows, d.cols)
	}
	for i := 0; i < d.majorLen(); i++ {
		dl := d.line(i)
		if kern {
			ev.k.Scal(dl.n, alpha, dl.window(), dl.stride)
			continue
		}
		scalLoop(alpha, dl)
	}
}

func (ev *evaluator[T]) fill(d StridedMatMut[T], v T) {
	for i := 0; i < d.majorLen(); i++ {
		dl := d.line(i)
		for k := 0; k < dl.n; k++ {
			dl.l.buf.data[dl.off+k*dl.stride] = v
		}
	}
}

// mulInto computes c = alpha·a·b + beta·c with c already shape-checked.
func (ev *evaluator[T]) mulInto(c StridedMatMut[T], a, b StridedMat[T], alpha, beta T) {
	m, n, k := a.rows, b.cols, a.cols
	if m == 0 || n == 0 {
		return
	}
	if k == 0 {
		ev.scale(c, beta)
		return
	}
	if !ev.useKernel(m, n, k, a.stride, b.stride, c.stride) {
		op := "gemm"
		if n == 1 || m == 1 {
			op = "gemv"
		}
		ev.trace(op, pathFallback, m, n)
		gemmLoop(alpha, a, b, beta, c.StridedMat)
		return
	}
	switch {
	case n == 1:
		ev.trace("gemv", pathKernel, m, n)
		ev.gemv(a, b.col(0), c.col(0), alpha, beta)
	case m == 1:
		// c_row = a_row·B  ⇔  c_rowᵀ = Bᵀ·a_rowᵀ
		ev.trace("gemv", pathKernel, m, n)
		ev.gemv(b.T(), a.row(0), c.row(0), alpha, beta)
	default:
		ev.trace("gemm", pathKernel, m, n)
		ev.gemm(c.StridedMat, a, b, alpha, beta)
	}
}

// transFlag maps a descriptor onto the row-major kernel: ColMajor data is the
// transpose of a row-major matrix with the same stride.
func transFlag(o Order) kernel.Transpose {
	if o == ColMajor {
		return kernel.Trans
	}

	return kernel.NoTrans
}

// gemv computes y = alpha·a·x + beta·y.
func (ev *evaluator[T]) gemv(a StridedMat[T], x, y Strided[T], alpha, beta T) {
	rows, cols := a.rows, a.cols
	if a.order == ColMajor {
		rows, cols = a.cols, a.rows
	}
	ev.k.Gemv(transFlag(a.order), rows, cols, alpha, a.window(), a.stride,
		x.window(), x.stride, beta, y.window(), y.stride)
}

// gemm computes c = alpha·a·b + beta·c. A ColMajor c is written through its
// row-major transpose: cᵀ = bᵀ·aᵀ.
func (ev *evaluator[T]) gemm(c, a, b StridedMat[T], alpha, beta T) {
	if c.order == ColMajor {
		c, a, b = c.T(), b.T(), a.T()
	}
	ev.k.Gemm(transFlag(a.order), transFlag(b.order), c.rows, c.cols, a.cols,
		alpha, a.window(), a.stride, b.window(), b.stride, beta, c.window(), c.stride)
}

// ---------- public entry points ----------

// AddAssign computes dst += e.
//
// Errors:
//   - ErrNilOperand, ErrBorrowConflict, ErrDimensionMismatch, ErrAliasedOperands.
//
// Complexity: one axpy per additive term, one chain reduction per product term.
func AddAssign[T Scalar](dst Dest[T], e Expr[T], opts ...Option) error {
	if err := newEvaluator[T](opts...).run(dst, e, 1, false); err != nil {
		return fmt.Errorf("AddAssign: %w", err)
	}

	return nil
}

// SubAssign computes dst -= e (a negated coefficient, never a second pass).
func SubAssign[T Scalar](dst Dest[T], e Expr[T], opts ...Option) error {
	var zero T
	if err := newEvaluator[T](opts...).run(dst, e, zero-1, false); err != nil {
		return fmt.Errorf("SubAssign: %w", err)
	}

	return nil
}

// Assign computes dst = e. A product overwrites dst through beta = 0.
func Assign[T Scalar](dst Dest[T], e Expr[T], opts ...Option) error {
	if err := newEvaluator[T](opts...).run(dst, e, 1, true); err != nil {
		return fmt.Errorf("Assign: %w", err)
	}

	return nil
}

// ScaleAssign computes dst *= alpha (scal kernel).
//
// Errors: ErrNilOperand, ErrBorrowConflict.
func ScaleAssign[T Scalar](dst Dest[T], alpha T, opts ...Option) error {
	if dst == nil {
		return fmt.Errorf("ScaleAssign: %w", ErrNilOperand)
	}
	d, err := dst.destination()
	if err != nil {
		return fmt.Errorf("ScaleAssign: %w", err)
	}
	newEvaluator[T](opts...).scale(d, alpha)

	return nil
}

// Eval materializes e into a new Mat in the configured storage order.
//
// Errors: as AddAssign, plus ErrIntegerOverflow when the result cannot be allocated.
func Eval[T Scalar](e Expr[T], opts ...Option) (*Mat[T], error) {
	ev := newEvaluator[T](opts...)
	terms, err := ev.expand(e, 1)
	if err != nil {
		return nil, fmt.Errorf("Eval: %w", err)
	}
	rows, cols, err := termsShape(terms)
	if err != nil {
		return nil, fmt.Errorf("Eval: %w", err)
	}
	out, err := NewMat[T](rows, cols, opts...)
	if err != nil {
		return nil, fmt.Errorf("Eval: %w", err)
	}
	for _, t := range terms {
		for _, f := range t.factors {
			if err = f.l.check(); err != nil {
				return nil, fmt.Errorf("Eval: %w", err)
			}
		}
	}
	ev.apply(out.ViewMut(), terms, true)

	return out, nil
}

// MustAddAssign is AddAssign that panics on error.
func MustAddAssign[T Scalar](dst Dest[T], e Expr[T], opts ...Option) {
	if err := AddAssign(dst, e, opts...); err != nil {
		panic(err)
	}
}

// MustSubAssign is SubAssign that panics on error.
func MustSubAssign[T Scalar](dst Dest[T], e Expr[T], opts ...Option) {
	if err := SubAssign(dst, e, opts...); err != nil {
		panic(err)
	}
}

// MustAssign is Assign that panics on error.
func MustAssign[T Scalar](dst Dest[T], e Expr[T], opts ...Option) {
	if err := Assign(dst, e, opts...); err != nil {
		panic(err)
	}
}

// MustEval is Eval that panics on error.
func MustEval[T Scalar](e Expr[T], opts ...Option) *Mat[T] {
	m, err := Eval(e, opts...)
	if err != nil {
		panic(err)
	}

	return m
}
