// SPDX-License-Identifier: MIT

// Package matrix - chain-product reduction.
//
// Purpose:
//   - Reduce F0·F1·…·Fk (k ≥ 1) to a sequence of pairwise gemv/gemm calls, the last of
//     which writes straight into the destination with the caller's alpha/beta.
//
// Association (ChainHeuristic, default):
//   - result has one column (…·x): right to left, so every intermediate is a vector.
//   - result has one row (yᵀ·…): left to right, for the same reason.
//   - otherwise: left to right.
//   - Intermediates come from a free list: a left/right sweep alternates between two
//     buffers (ping-pong) instead of allocating one per step.
//
// ChainOptimal (opt-in):
//   - Classic matrix-chain dynamic program over the factor shapes; minimizes the
//     scalar multiply count. It may associate differently from the heuristic, so
//     floating-point results can differ in the last bits.
//
// Costs saturate at math.MaxInt, so chains of very long vectors never wrap into a
// spuriously cheap plan.
//
// Complexity:
//   - Heuristic plan: O(k). Optimal plan: O(k^3) time, O(k^2) space.
package matrix

import (
	"fmt"
	"math"
	"math/bits"
)

// ChainOrder selects how products of three or more factors are associated.
type ChainOrder uint8

const (
	// ChainHeuristic associates toward the vector end of the chain.
	ChainHeuristic ChainOrder = iota
	// ChainOptimal uses the matrix-chain dynamic program (minimum multiply count).
	ChainOptimal
)

// String implements fmt.Stringer.
func (c ChainOrder) String() string {
	switch c {
	case ChainHeuristic:
		return "ChainHeuristic"
	case ChainOptimal:
		return "ChainOptimal"
	default:
		return fmt.Sprintf("ChainOrder(%d)", uint8(c))
	}
}

// plan is a binary association tree over factor indices [lo, hi].
type plan struct {
	lo, hi      int
	left, right *plan
}

func (p *plan) leaf() bool { return p.left == nil }

// heuristicPlan builds the right-deep or left-deep tree.
func heuristicPlan(n, cols int) *plan {
	if cols == 1 {
		// F0·(F1·(…·(Fk-1·Fk)))
		p := &plan{lo: n - 1, hi: n - 1}
		for i := n - 2; i >= 0; i-- {
			p = &plan{lo: i, hi: n - 1, left: &plan{lo: i, hi: i}, right: p}
		}
		return p
	}
	// ((F0·F1)·F2)·…
	p := &plan{lo: 0, hi: 0}
	for i := 1; i < n; i++ {
		p = &plan{lo: 0, hi: i, left: p, right: &plan{lo: i, hi: i}}
	}

	return p
}

// optimalPlan solves the matrix-chain problem for dims d (factor i is d[i]×d[i+1]).
func optimalPlan(d []int) *plan {
	n := len(d) - 1
	cost := make([][]int, n)
	split := make([][]int, n)
	for i := range cost {
		cost[i] = make([]int, n)
		split[i] = make([]int, n)
	}
	for length := 2; length <= n; length++ {
		for i := 0; i+length-1 < n; i++ {
			j := i + length - 1
			cost[i][j] = -1
			for s := i; s < j; s++ {
				c := addSat(addSat(cost[i][s], cost[s+1][j]), mulSat(d[i], d[s+1], d[j+1]))
				if cost[i][j] < 0 || c < cost[i][j] {
					cost[i][j], split[i][j] = c, s
				}
			}
		}
	}

	var build func(i, j int) *plan
	build = func(i, j int) *plan {
		if i == j {
			return &plan{lo: i, hi: i}
		}
		s := split[i][j]

		return &plan{lo: i, hi: j, left: build(i, s), right: build(s+1, j)}
	}

	return build(0, n-1)
}

// chainCost counts scalar multiplies of a plan (diagnostics and tests).
func chainCost(p *plan, d []int) int {
	if p.leaf() {
		return 0
	}

	return addSat(addSat(chainCost(p.left, d), chainCost(p.right, d)), mulSat(d[p.lo], d[p.left.hi+1], d[p.hi+1]))
}

// mulSat returns a*b*c for non-negative operands, saturating at math.MaxInt.
func mulSat(a, b, c int) int {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}
	hi, lo = bits.Mul64(lo, uint64(c))
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}

	return int(lo)
}

// addSat returns a+b for non-negative operands, saturating at math.MaxInt.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}

	return a + b
}

// chain computes dst = alpha·F0·…·Fk + beta·dst for two or more factors. Shapes were
// checked by the caller.
func (ev *evaluator[T]) chain(dst StridedMatMut[T], fs []StridedMat[T], alpha, beta T) {
	dims := make([]int, 0, len(fs)+1)
	dims = append(dims, fs[0].rows)
	for _, f := range fs {
		dims = append(dims, f.cols)
	}
	var p *plan
	switch ev.o.chain {
	case ChainOptimal:
		p = optimalPlan(dims)
	default:
		p = heuristicPlan(len(fs), dst.cols)
	}
	ev.o.logger.Debug().
		Str("op", "chain").
		Stringer("order", ev.o.chain).
		Int("factors", len(fs)).
		Int("multiplies", chainCost(p, dims)).
		Msg("matrix dispatch")

	l, lt := ev.reduce(p.left, fs)
	r, rt := ev.reduce(p.right, fs)
	ev.mulInto(dst, l, r, alpha, beta)
	ev.pool.put(lt)
	ev.pool.put(rt)
}

// reduce evaluates a subtree. Inner nodes land in a scratch matrix that the caller
// releases once consumed; leaves return the factor itself and a nil scratch.
func (ev *evaluator[T]) reduce(p *plan, fs []StridedMat[T]) (StridedMat[T], *StridedMatMut[T]) {
	if p.leaf() {
		return fs[p.lo], nil
	}
	l, lt := ev.reduce(p.left, fs)
	r, rt := ev.reduce(p.right, fs)
	out := ev.pool.get(l.rows, r.cols)
	ev.mulInto(out, l, r, 1, 0)
	ev.pool.put(lt)
	ev.pool.put(rt)

	return out.StridedMat, &out
}

// scratch is a free list of intermediate buffers local to one evaluation.
type scratch[T any] struct {
	free   [][]T
	allocs int // buffers created, not reused
}

// get returns a ColMajor rows×cols scratch matrix, reusing a released buffer when one
// is large enough.
func (s *scratch[T]) get(rows, cols int) StridedMatMut[T] {
	n := rows * cols
	var data []T
	for i, b := range s.free {
		if cap(b) >= n {
			data = b[:n]
			s.free = append(s.free[:i], s.free[i+1:]...)
			break
		}
	}
	if data == nil {
		data = make([]T, n)
		s.allocs++
	}

	return StridedMatMut[T]{StridedMat[T]{
		l:      exclusiveLease(newBuffer(data)),
		rows:   rows,
		cols:   cols,
		stride: max(1, rows),
		order:  ColMajor,
	}}
}

// put releases a scratch matrix; nil is ignored.
func (s *scratch[T]) put(m *StridedMatMut[T]) {
	if m == nil {
		return
	}
	s.free = append(s.free, m.l.buf.data)
}
