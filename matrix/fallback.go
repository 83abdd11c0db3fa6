// SPDX-License-Identifier: MIT

// Package matrix - generic loops for element types without a kernel binding.
//
// Every routine here mirrors one kernel operation with identical semantics,
// including beta == 0 meaning "overwrite" (the old contents are never read).
// Loops index the buffer directly: borrows were checked by the caller.
package matrix

import (
	"math"
	"math/cmplx"
	"reflect"
)

// axpyLoop computes y += alpha·x, zipping both views element by element.
func axpyLoop[T Scalar](alpha T, x, y Strided[T]) {
	xd, yd := x.l.buf.data, y.l.buf.data
	xi, yi := x.off, y.off
	for k := 0; k < y.n; k++ {
		yd[yi] += alpha * xd[xi]
		xi += x.stride
		yi += y.stride
	}
}

// scalLoop computes x *= alpha.
func scalLoop[T Scalar](alpha T, x Strided[T]) {
	xd := x.l.buf.data
	for k, i := 0, x.off; k < x.n; k, i = k+1, i+x.stride {
		xd[i] *= alpha
	}
}

// dotLoop returns Σ x[i]·y[i] (unconjugated).
func dotLoop[T Scalar](x, y Strided[T]) T {
	var s T
	xd, yd := x.l.buf.data, y.l.buf.data
	for k := 0; k < x.n; k++ {
		s += xd[x.off+k*x.stride] * yd[y.off+k*y.stride]
	}

	return s
}

// nrm2Loop returns the Euclidean norm of x, accumulated with hypot to avoid
// intermediate overflow.
func nrm2Loop[T Scalar](x Strided[T]) float64 {
	var r float64
	xd := x.l.buf.data
	for k := 0; k < x.n; k++ {
		r = math.Hypot(r, magnitude(xd[x.off+k*x.stride]))
	}

	return r
}

// gemmLoop computes c = alpha·a·b + beta·c (i-j-p order; the inner product runs
// along a's row and b's column).
func gemmLoop[T Scalar](alpha T, a, b StridedMat[T], beta T, c StridedMat[T]) {
	var zero T
	ad, bd, cd := a.l.buf.data, b.l.buf.data, c.l.buf.data
	aRow, aCol := a.rowStep(), a.colStep()
	bRow, bCol := b.rowStep(), b.colStep()
	var s T
	var ci int
	for i := 0; i < c.rows; i++ {
		for j := 0; j < c.cols; j++ {
			s = zero
			ai, bi := a.off+i*aRow, b.off+j*bCol
			for p := 0; p < a.cols; p++ {
				s += ad[ai] * bd[bi]
				ai += aCol
				bi += bRow
			}
			ci = c.index(i, j)
			if beta == zero {
				cd[ci] = alpha * s
				continue
			}
			cd[ci] = alpha*s + beta*cd[ci]
		}
	}
}

// magnitude returns |v| as float64 for every Scalar kind, named types included.
func magnitude[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case float32:
		return math.Abs(float64(x))
	case complex128:
		return cmplx.Abs(x)
	case complex64:
		return cmplx.Abs(complex128(x))
	case int:
		return math.Abs(float64(x))
	case int64:
		return math.Abs(float64(x))
	case int32:
		return math.Abs(float64(x))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return math.Abs(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return math.Abs(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		return cmplx.Abs(rv.Complex())
	default:
		return math.NaN()
	}
}
