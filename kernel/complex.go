// SPDX-License-Identifier: MIT

package kernel

import (
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/blas/cblas64"
)

// complex128Kernel forwards to the process-wide cblas128 implementation.
// Dot is the unconjugated Zdotu so that complex and real paths share one meaning.
type complex128Kernel struct{}

func (complex128Kernel) Name() string { return "cblas128" }

func (complex128Kernel) Axpy(n int, alpha complex128, x []complex128, incX int, y []complex128, incY int) {
	cblas128.Implementation().Zaxpy(n, alpha, x, incX, y, incY)
}

func (complex128Kernel) Gemv(tA Transpose, m, n int, alpha complex128, a []complex128, lda int, x []complex128, incX int, beta complex128, y []complex128, incY int) {
	cblas128.Implementation().Zgemv(tA, m, n, alpha, a, lda, x, incX, beta, y, incY)
}

func (complex128Kernel) Gemm(tA, tB Transpose, m, n, k int, alpha complex128, a []complex128, lda int, b []complex128, ldb int, beta complex128, c []complex128, ldc int) {
	cblas128.Implementation().Zgemm(tA, tB, m, n, k, alpha, a, lda, b, ldb, beta, c, ldc)
}

func (complex128Kernel) Nrm2(n int, x []complex128, incX int) float64 {
	return cblas128.Implementation().Dznrm2(n, x, incX)
}

func (complex128Kernel) Dot(n int, x []complex128, incX int, y []complex128, incY int) complex128 {
	return cblas128.Implementation().Zdotu(n, x, incX, y, incY)
}

func (complex128Kernel) Scal(n int, alpha complex128, x []complex128, incX int) {
	cblas128.Implementation().Zscal(n, alpha, x, incX)
}

// complex64Kernel forwards to the process-wide cblas64 implementation.
type complex64Kernel struct{}

func (complex64Kernel) Name() string { return "cblas64" }

func (complex64Kernel) Axpy(n int, alpha complex64, x []complex64, incX int, y []complex64, incY int) {
	cblas64.Implementation().Caxpy(n, alpha, x, incX, y, incY)
}

func (complex64Kernel) Gemv(tA Transpose, m, n int, alpha complex64, a []complex64, lda int, x []complex64, incX int, beta complex64, y []complex64, incY int) {
	cblas64.Implementation().Cgemv(tA, m, n, alpha, a, lda, x, incX, beta, y, incY)
}

func (complex64Kernel) Gemm(tA, tB Transpose, m, n, k int, alpha complex64, a []complex64, lda int, b []complex64, ldb int, beta complex64, c []complex64, ldc int) {
	cblas64.Implementation().Cgemm(tA, tB, m, n, k, alpha, a, lda, b, ldb, beta, c, ldc)
}

func (complex64Kernel) Nrm2(n int, x []complex64, incX int) float64 {
	return float64(cblas64.Implementation().Scnrm2(n, x, incX))
}

func (complex64Kernel) Dot(n int, x []complex64, incX int, y []complex64, incY int) complex64 {
	return cblas64.Implementation().Cdotu(n, x, incX, y, incY)
}

func (complex64Kernel) Scal(n int, alpha complex64, x []complex64, incX int) {
	cblas64.Implementation().Cscal(n, alpha, x, incX)
}
