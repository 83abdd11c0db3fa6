// SPDX-License-Identifier: MIT

// Package lvlinalg is dense linear algebra over strided views, for any element type
// from int8 to complex128.
//
// 🚀 What is lvlinalg?
//
//	A small library built around one idea: a matrix is a buffer plus a stride.
//		• Views: row, column, diagonal, sub-block and transpose, all O(1), no copies
//		• Owned containers: Mat, ColVec, RowVec in RowMajor or ColMajor storage
//		• Iterators: forward, backward, mixed ends, stripes for parallel work
//		• Arithmetic: y += α·x, y += α·A·x, C += α·A·B, chains A·B·…·x
//		• Dispatch: BLAS (gonum) for float32/float64/complex64/complex128,
//		  a generic loop for every other numeric type
//
// ✨ Why choose lvlinalg?
//
//   - Borrow-checked views: a stale view reports ErrBorrowConflict instead of
//     reading torn data
//   - No hidden temporaries: expressions fuse into one kernel call when they can
//   - Aliasing caught up front: overlapping input and output fail with
//     ErrAliasedOperands before any write
//   - Pure Go: gonum's native BLAS, no cgo
//
// Layout:
//
//	kernel/   thin typed binding of gonum BLAS levels 1-3
//	matrix/   views, containers, iterators, expressions and dispatch
//	examples/ runnable programs
//
// Quick example:
//
//	a, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	x := matrix.ColVecFrom(1.0, 1)
//	y, _ := matrix.Eval(matrix.Mul(a, x)) // [3] [7]
//
//	go get github.com/katalvlaran/lvlinalg/matrix
package lvlinalg
