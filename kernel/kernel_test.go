// SPDX-License-Identifier: MIT

package kernel_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvlinalg/kernel"
	"github.com/stretchr/testify/require"
)

type myFloat float64

// TestForBindings checks which element types resolve to a binding.
func TestForBindings(t *testing.T) {
	k64, ok := kernel.For[float64]()
	require.True(t, ok)
	require.Equal(t, "blas64", k64.Name())

	k32, ok := kernel.For[float32]()
	require.True(t, ok)
	require.Equal(t, "blas32", k32.Name())

	kz, ok := kernel.For[complex128]()
	require.True(t, ok)
	require.Equal(t, "cblas128", kz.Name())

	kc, ok := kernel.For[complex64]()
	require.True(t, ok)
	require.Equal(t, "cblas64", kc.Name())

	require.False(t, kernel.Supported[int]())
	require.False(t, kernel.Supported[uint8]())
	require.False(t, kernel.Supported[myFloat]()) // named types take the generic path
}

// TestAxpyStrided verifies y := alpha*x + y honours both increments.
func TestAxpyStrided(t *testing.T) {
	k, _ := kernel.For[float64]()
	x := []float64{1, -1, 2, -1, 3}   // logical x = [1 2 3] at incX=2
	y := []float64{10, 20, 30}        // incY=1
	k.Axpy(3, 2, x, 2, y, 1)          // y += 2x
	require.Equal(t, []float64{12, 24, 36}, y)
}

// TestGemmRowMajor pins the row-major convention of the binding.
func TestGemmRowMajor(t *testing.T) {
	k, _ := kernel.For[float64]()
	a := []float64{1, 2, 3, 4, 5, 6}    // 2×3
	b := []float64{7, 8, 9, 10, 11, 12} // 3×2
	c := make([]float64, 4)             // 2×2
	k.Gemm(kernel.NoTrans, kernel.NoTrans, 2, 2, 3, 1, a, 3, b, 2, 0, c, 2)
	require.Equal(t, []float64{58, 64, 139, 154}, c)

	// op(A) = Aᵀ with A stored 3×2 gives the same product.
	at := []float64{1, 4, 2, 5, 3, 6}
	c2 := make([]float64, 4)
	k.Gemm(kernel.Trans, kernel.NoTrans, 2, 2, 3, 1, at, 2, b, 2, 0, c2, 2)
	require.Equal(t, c, c2)
}

// TestGemvAndNorm covers the level-2 kernel, nrm2, dot and scal.
func TestGemvAndNorm(t *testing.T) {
	k, _ := kernel.For[float32]()
	a := []float32{1, 2, 3, 4, 5, 6} // 2×3
	x := []float32{1, 0, 1}
	y := []float32{1, 1}
	k.Gemv(kernel.NoTrans, 2, 3, 1, a, 3, x, 1, 1, y, 1)
	require.Equal(t, []float32{5, 11}, y)

	require.InDelta(t, 5.0, k.Nrm2(2, []float32{3, 4}, 1), 1e-6)
	require.Equal(t, float32(11), k.Dot(2, []float32{1, 2}, 1, []float32{3, 4}, 1))

	v := []float32{1, 2}
	k.Scal(2, -3, v, 1)
	require.Equal(t, []float32{-3, -6}, v)
}

// TestComplexDotUnconjugated makes sure Dot never conjugates x.
func TestComplexDotUnconjugated(t *testing.T) {
	k, _ := kernel.For[complex128]()
	x := []complex128{1i, 2}
	y := []complex128{1i, 3}
	require.Equal(t, complex128(-1+6), k.Dot(2, x, 1, y, 1))
	require.InDelta(t, math.Sqrt(5), k.Nrm2(2, x, 1), 1e-12)
}

// TestFits checks the kernel integer range.
func TestFits(t *testing.T) {
	require.True(t, kernel.Fits(0, 1, kernel.MaxInt))
	require.False(t, kernel.Fits(-1))
	require.False(t, kernel.Fits(3, kernel.MaxInt+1))
}
