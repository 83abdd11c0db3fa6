// SPDX-License-Identifier: MIT

// Package kernel binds the matrix package to an external BLAS implementation.
//
// Purpose:
//   - Expose the six numeric kernels the dispatch layer needs (Axpy, Gemv, Gemm,
//     Nrm2, Dot, Scal) behind one generic interface, per element type.
//   - Keep all gonum-specific argument plumbing in one place.
//
// Storage order:
//   - The gonum native implementation is row-major: every matrix argument is
//     described by (rows, cols, ld) with element (i,j) at i*ld + j. Callers holding
//     column-major data must present it as the transpose of a row-major matrix.
//
// Integer width:
//   - Counts, strides and leading dimensions are checked against MaxInt (the width
//     of a Fortran-style BLAS integer) before any call; see Fits.
//
// AI-Hints:
//   - Use For[T]() once per operation; a false result means "take the generic loop".
package kernel

import (
	"math"

	"gonum.org/v1/gonum/blas"
)

// MaxInt is the largest count, stride or leading dimension accepted by a kernel.
const MaxInt = math.MaxInt32

// Transpose selects op(A) for Gemv/Gemm.
type Transpose = blas.Transpose

// Transposition flags (plain transpose only; conjugation is never requested).
const (
	NoTrans = blas.NoTrans
	Trans   = blas.Trans
)

// Kernel is the numeric-kernel contract for one element type T.
// All matrices are row-major; x/y are strided vectors with positive increments.
type Kernel[T any] interface {
	// Name identifies the binding in diagnostics (e.g. "blas64").
	Name() string

	// Axpy computes y := alpha*x + y over n elements.
	Axpy(n int, alpha T, x []T, incX int, y []T, incY int)

	// Gemv computes y := alpha*op(A)*x + beta*y where A is m×n with leading dimension lda.
	Gemv(tA Transpose, m, n int, alpha T, a []T, lda int, x []T, incX int, beta T, y []T, incY int)

	// Gemm computes C := alpha*op(A)*op(B) + beta*C, C is m×n and k is the inner dimension.
	Gemm(tA, tB Transpose, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int)

	// Nrm2 returns the Euclidean norm of x.
	Nrm2(n int, x []T, incX int) float64

	// Dot returns the unconjugated dot product Σ x[i]*y[i].
	Dot(n int, x []T, incX int, y []T, incY int) T

	// Scal computes x := alpha*x.
	Scal(n int, alpha T, x []T, incX int)
}

// For returns the kernel bound to T, or (nil, false) when T has no binding.
// Only the exact types float32, float64, complex64 and complex128 are bound;
// named types with those underlying kinds fall back to generic loops.
//
// Complexity: O(1); no allocation beyond boxing the zero-size binding value.
func For[T any]() (Kernel[T], bool) {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(float64Kernel{}).(Kernel[T]), true
	case float32:
		return any(float32Kernel{}).(Kernel[T]), true
	case complex128:
		return any(complex128Kernel{}).(Kernel[T]), true
	case complex64:
		return any(complex64Kernel{}).(Kernel[T]), true
	default:
		return nil, false
	}
}

// Supported reports whether For[T] would succeed.
func Supported[T any]() bool {
	_, ok := For[T]()
	return ok
}

// Fits reports whether every value is representable as a kernel integer (0 ≤ v ≤ MaxInt).
func Fits(vals ...int) bool {
	for _, v := range vals {
		if v < 0 || v > MaxInt {
			return false
		}
	}

	return true
}
