// SPDX-License-Identifier: MIT
// Package matrix exposes internal hooks for tests only.
// This file is compiled only during `go test` and is not part of the public API.
package matrix

// HeuristicCost returns the multiply count of the default association for a chain
// whose factor i is dims[i]×dims[i+1].
func HeuristicCost(dims []int) int {
	return chainCost(heuristicPlan(len(dims)-1, dims[len(dims)-1]), dims)
}

// OptimalCost returns the multiply count of the dynamic-programming association.
func OptimalCost(dims []int) int {
	return chainCost(optimalPlan(dims), dims)
}

// ChainScratchAllocs evaluates the product of fs into a fresh matrix and reports how
// many intermediate buffers the reduction had to allocate.
func ChainScratchAllocs[T Scalar](fs []StridedMat[T], opts ...Option) (*Mat[T], int, error) {
	ev := newEvaluator[T](opts...)
	t := term[T]{coef: 1, factors: fs}
	rows, cols, err := t.shape()
	if err != nil {
		return nil, 0, err
	}
	out, err := NewMat[T](rows, cols, opts...)
	if err != nil {
		return nil, 0, err
	}
	ev.chain(out.ViewMut(), fs, 1, 0)

	return out, ev.pool.allocs, nil
}

// Stable panic messages of the option guards.
const (
	PanicOrderInvalid_TestOnly      = panicOrderInvalid
	PanicChainOrderInvalid_TestOnly = panicChainOrderInvalid
	PanicWorkersInvalid_TestOnly    = panicWorkersInvalid
)
