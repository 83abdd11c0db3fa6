// SPDX-License-Identifier: MIT

// Package matrix - expression tree for the arithmetic layer.
//
// Purpose:
//   - Expr is a closed sum type: every descriptor and owned container is a leaf;
//     Scaled, Product and Sum are the only composite nodes.
//   - Building an expression does no arithmetic and takes no borrows. Borrows are
//     taken, shapes are checked and the kernel/fallback decision is made only when the
//     expression is consumed by AddAssign/SubAssign/Assign/Eval.
//
// Algebra:
//   - Scale(a, Scale(b, x)) folds to one coefficient a*b.
//   - Mul flattens nested products, so Mul(Mul(A, B), C) is the chain A·B·C.
//   - Scale(a, Sub(X, Y)) distributes into two accumulations with coefficients a and
//     -a; no temporary holds X - Y.
//
// AI-Hints:
//   - AddAssign(y, Scale(alpha, x))       → one axpy.
//   - AddAssign(y, Mul(A, x))             → one gemv.
//   - Assign(c, Scale(alpha, Mul(A, B)))  → one gemm.
//   - Eval(Mul(A, B, C, x))               → chain reduction (see chain.go).
package matrix

// Expr is an arithmetic operand: a leaf (descriptor or owned container) or a node
// built with Scale, Neg, Mul, Add or Sub.
type Expr[T any] interface {
	Shape
	// operand resolves a leaf to a read borrow; composite nodes report ok == false.
	operand() (d StridedMat[T], ok bool, err error)
}

// Dest is a writable operand: mutable descriptors and owned containers.
type Dest[T any] interface {
	Shape
	destination() (StridedMatMut[T], error)
}

// Compile-time conformance of every leaf.
var (
	_ Expr[float64] = Strided[float64]{}
	_ Expr[float64] = StridedMut[float64]{}
	_ Expr[float64] = StridedMat[float64]{}
	_ Expr[float64] = StridedMatMut[float64]{}
	_ Expr[float64] = (*Mat[float64])(nil)
	_ Expr[float64] = (*ColVec[float64])(nil)
	_ Expr[float64] = (*RowVec[float64])(nil)

	_ Dest[float64] = StridedMut[float64]{}
	_ Dest[float64] = StridedMatMut[float64]{}
	_ Dest[float64] = (*Mat[float64])(nil)
	_ Dest[float64] = (*ColVec[float64])(nil)
	_ Dest[float64] = (*RowVec[float64])(nil)
)

// ---------- leaves ----------

func (s Strided[T]) operand() (StridedMat[T], bool, error) {
	if err := s.l.check(); err != nil {
		return StridedMat[T]{}, true, err
	}

	return s.AsCol(), true, nil
}

func (s StridedMut[T]) destination() (StridedMatMut[T], error) {
	if err := s.l.checkWrite(); err != nil {
		return StridedMatMut[T]{}, err
	}

	return StridedMatMut[T]{s.Strided.AsCol()}, nil
}

func (m StridedMat[T]) operand() (StridedMat[T], bool, error) {
	if err := m.l.check(); err != nil {
		return StridedMat[T]{}, true, err
	}

	return m, true, nil
}

func (m StridedMatMut[T]) destination() (StridedMatMut[T], error) {
	if err := m.l.checkWrite(); err != nil {
		return StridedMatMut[T]{}, err
	}

	return m, nil
}

func (m *Mat[T]) operand() (StridedMat[T], bool, error) {
	if m == nil || m.buf == nil {
		return StridedMat[T]{}, true, ErrNilOperand
	}

	return m.View(), true, nil
}

func (m *Mat[T]) destination() (StridedMatMut[T], error) {
	if m == nil || m.buf == nil {
		return StridedMatMut[T]{}, ErrNilOperand
	}

	return m.ViewMut(), nil
}

func (v *ColVec[T]) operand() (StridedMat[T], bool, error) {
	if v == nil || v.buf == nil {
		return StridedMat[T]{}, true, ErrNilOperand
	}

	return v.View().AsCol(), true, nil
}

func (v *ColVec[T]) destination() (StridedMatMut[T], error) {
	if v == nil || v.buf == nil {
		return StridedMatMut[T]{}, ErrNilOperand
	}

	return StridedMatMut[T]{v.ViewMut().Strided.AsCol()}, nil
}

func (v *RowVec[T]) operand() (StridedMat[T], bool, error) {
	if v == nil || v.buf == nil {
		return StridedMat[T]{}, true, ErrNilOperand
	}

	return v.View().T(), true, nil
}

func (v *RowVec[T]) destination() (StridedMatMut[T], error) {
	if v == nil || v.buf == nil {
		return StridedMatMut[T]{}, ErrNilOperand
	}

	return StridedMatMut[T]{v.ViewMut().Strided.T()}, nil
}

// ---------- composite nodes ----------

// Scaled is alpha·X.
type Scaled[T Scalar] struct {
	alpha T
	x     Expr[T]
}

// Product is the ordered product of two or more factors.
type Product[T Scalar] struct {
	factors []Expr[T]
}

// Sum is A + B, or A - B when neg is set.
type Sum[T Scalar] struct {
	a, b Expr[T]
	neg  bool
}

// Scale returns alpha·x.
func Scale[T Scalar](alpha T, x Expr[T]) *Scaled[T] {
	return &Scaled[T]{alpha: alpha, x: x}
}

// Neg returns -x. For unsigned element types this is the two's complement scale.
func Neg[T Scalar](x Expr[T]) *Scaled[T] {
	var zero, one T = 0, 1

	return &Scaled[T]{alpha: zero - one, x: x}
}

// Mul returns the product a·b·more[0]·… Nested products are flattened.
// Shape compatibility is checked when the expression is evaluated.
func Mul[T Scalar](a, b Expr[T], more ...Expr[T]) *Product[T] {
	p := &Product[T]{factors: make([]Expr[T], 0, 2+len(more))}
	for _, f := range append([]Expr[T]{a, b}, more...) {
		if inner, ok := f.(*Product[T]); ok && inner != nil {
			p.factors = append(p.factors, inner.factors...)
			continue
		}
		p.factors = append(p.factors, f)
	}

	return p
}

// Add returns a + b.
func Add[T Scalar](a, b Expr[T]) *Sum[T] { return &Sum[T]{a: a, b: b} }

// Sub returns a - b.
func Sub[T Scalar](a, b Expr[T]) *Sum[T] { return &Sum[T]{a: a, b: b, neg: true} }

// Alpha returns the scale coefficient.
func (s *Scaled[T]) Alpha() T { return s.alpha }

// Rows reports the row count of the scaled operand (0 for a nil operand).
func (s *Scaled[T]) Rows() int { return rowsOf(s.x) }

// Cols reports the column count of the scaled operand.
func (s *Scaled[T]) Cols() int { return colsOf(s.x) }

func (s *Scaled[T]) operand() (StridedMat[T], bool, error) { return StridedMat[T]{}, false, nil }

// Len returns the number of factors.
func (p *Product[T]) Len() int { return len(p.factors) }

// Rows reports the row count of the first factor.
func (p *Product[T]) Rows() int {
	if len(p.factors) == 0 {
		return 0
	}

	return rowsOf(p.factors[0])
}

// Cols reports the column count of the last factor.
func (p *Product[T]) Cols() int {
	if len(p.factors) == 0 {
		return 0
	}

	return colsOf(p.factors[len(p.factors)-1])
}

func (p *Product[T]) operand() (StridedMat[T], bool, error) { return StridedMat[T]{}, false, nil }

// Rows reports the row count of the left operand.
func (s *Sum[T]) Rows() int { return rowsOf(s.a) }

// Cols reports the column count of the left operand.
func (s *Sum[T]) Cols() int { return colsOf(s.a) }

func (s *Sum[T]) operand() (StridedMat[T], bool, error) { return StridedMat[T]{}, false, nil }

func rowsOf[T any](e Expr[T]) int {
	if e == nil {
		return 0
	}

	return e.Rows()
}

func colsOf[T any](e Expr[T]) int {
	if e == nil {
		return 0
	}

	return e.Cols()
}
