// SPDX-License-Identifier: MIT

package kernel

import (
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// float64Kernel forwards to the process-wide blas64 implementation.
type float64Kernel struct{}

func (float64Kernel) Name() string { return "blas64" }

func (float64Kernel) Axpy(n int, alpha float64, x []float64, incX int, y []float64, incY int) {
	blas64.Implementation().Daxpy(n, alpha, x, incX, y, incY)
}

func (float64Kernel) Gemv(tA Transpose, m, n int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int) {
	blas64.Implementation().Dgemv(tA, m, n, alpha, a, lda, x, incX, beta, y, incY)
}

func (float64Kernel) Gemm(tA, tB Transpose, m, n, k int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int) {
	blas64.Implementation().Dgemm(tA, tB, m, n, k, alpha, a, lda, b, ldb, beta, c, ldc)
}

func (float64Kernel) Nrm2(n int, x []float64, incX int) float64 {
	return blas64.Implementation().Dnrm2(n, x, incX)
}

func (float64Kernel) Dot(n int, x []float64, incX int, y []float64, incY int) float64 {
	return blas64.Implementation().Ddot(n, x, incX, y, incY)
}

func (float64Kernel) Scal(n int, alpha float64, x []float64, incX int) {
	blas64.Implementation().Dscal(n, alpha, x, incX)
}

// float32Kernel forwards to the process-wide blas32 implementation.
type float32Kernel struct{}

func (float32Kernel) Name() string { return "blas32" }

func (float32Kernel) Axpy(n int, alpha float32, x []float32, incX int, y []float32, incY int) {
	blas32.Implementation().Saxpy(n, alpha, x, incX, y, incY)
}

func (float32Kernel) Gemv(tA Transpose, m, n int, alpha float32, a []float32, lda int, x []float32, incX int, beta float32, y []float32, incY int) {
	blas32.Implementation().Sgemv(tA, m, n, alpha, a, lda, x, incX, beta, y, incY)
}

func (float32Kernel) Gemm(tA, tB Transpose, m, n, k int, alpha float32, a []float32, lda int, b []float32, ldb int, beta float32, c []float32, ldc int) {
	blas32.Implementation().Sgemm(tA, tB, m, n, k, alpha, a, lda, b, ldb, beta, c, ldc)
}

func (float32Kernel) Nrm2(n int, x []float32, incX int) float64 {
	return float64(blas32.Implementation().Snrm2(n, x, incX))
}

func (float32Kernel) Dot(n int, x []float32, incX int, y []float32, incY int) float32 {
	return blas32.Implementation().Sdot(n, x, incX, y, incY)
}

func (float32Kernel) Scal(n int, alpha float32, x []float32, incX int) {
	blas32.Implementation().Sscal(n, alpha, x, incX)
}
