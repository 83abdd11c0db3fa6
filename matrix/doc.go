// SPDX-License-Identifier: MIT

// Package matrix offers strided dense matrices, vectors and the arithmetic over them.
//
// The matrix package provides:
//
//   - Strided and StridedMat: read views over a run of a buffer, described by an
//     offset, a length or shape, a stride and a storage Order. StridedMut and
//     StridedMatMut are their writable twins.
//   - Mat, ColVec and RowVec: owned containers. Every view taken from them is
//     checked against the owner's borrow state, so a view outliving a conflicting
//     access fails with ErrBorrowConflict instead of observing a half-written buffer.
//   - Transposition in O(1): T() swaps the shape and flips the Order.
//   - Iterators over elements, lines and stripes; HStripes and VStripes feed
//     ParallelHStripes and ParallelVStripes.
//   - Expressions built with Scale, Neg, Mul, Add and Sub, consumed by AddAssign,
//     SubAssign, Assign and Eval. Each consumed expression becomes a sequence of
//     axpy/gemv/gemm calls on the BLAS kernel (float32, float64, complex64,
//     complex128) or on the generic fallback (every other Scalar).
//
// Configuration is by functional options (WithOrder, WithChainOrder, WithKernel,
// WithLogger, WithWorkers). Errors wrap the sentinels in errors.go and are matched
// with errors.Is.
//
// See the examples in this package and the examples/ directory for usage patterns.
package matrix
