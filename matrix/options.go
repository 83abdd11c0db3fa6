// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for constructors and the dispatch layer.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Constructors read only the storage order; dispatch entry points read the
//     kernel switch, chain strategy and logger; parallel helpers read workers.
package matrix

import (
	"runtime"

	"github.com/rs/zerolog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultOrder is the storage order of owned matrices (BLAS convention).
	DefaultOrder = ColMajor

	// DefaultChainOrder associates products toward the vector end (see chain.go).
	DefaultChainOrder = ChainHeuristic

	// DefaultUseKernel routes float32/float64/complex64/complex128 through BLAS.
	DefaultUseKernel = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicOrderInvalid      = "matrix: WithOrder: order must be RowMajor or ColMajor"
	panicChainOrderInvalid = "matrix: WithChainOrder: unknown chain order"
	panicWorkersInvalid    = "matrix: WithWorkers: workers must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	order     Order          // DefaultOrder
	chain     ChainOrder     // DefaultChainOrder
	useKernel bool           // DefaultUseKernel
	logger    zerolog.Logger // zerolog.Nop()
	workers   int            // runtime.GOMAXPROCS(0)
}

// WithOrder sets the storage order used by NewMat, FromElements, FromRows, FromCols
// and Eval results.
//
// Errors:
//   - Panics with a stable message when order is not RowMajor or ColMajor.
//
// Complexity: O(1).
func WithOrder(order Order) Option {
	if order != RowMajor && order != ColMajor {
		panic(panicOrderInvalid)
	}

	return func(o *Options) { o.order = order }
}

// WithChainOrder selects how products of three or more factors are associated.
// ChainOptimal is an opt-in cost-based strategy; see chain.go.
func WithChainOrder(c ChainOrder) Option {
	if c != ChainHeuristic && c != ChainOptimal {
		panic(panicChainOrderInvalid)
	}

	return func(o *Options) { o.chain = c }
}

// WithKernel enables or disables the BLAS kernel path. With false every element
// type takes the generic loops, which makes them usable as ground truth.
func WithKernel(enabled bool) Option {
	return func(o *Options) { o.useKernel = enabled }
}

// WithLogger attaches a zerolog logger; the dispatch layer emits one Debug event per
// kernel/fallback decision.
//
// AI-Hints:
//   - Pass zerolog.New(&buf).Level(zerolog.DebugLevel) in tests to observe the path taken.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithWorkers bounds the number of goroutines used by ParallelHStripes/ParallelVStripes.
//
// Errors:
//   - Panics when n <= 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// NewOptions resolves a snapshot of the effective options (diagnostics and tests).
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Order returns the configured storage order.
func (o Options) Order() Order { return o.order }

// ChainOrder returns the configured chain association strategy.
func (o Options) ChainOrder() ChainOrder { return o.chain }

// UseKernel reports whether the kernel path is enabled.
func (o Options) UseKernel() bool { return o.useKernel }

// Workers returns the parallel worker bound.
func (o Options) Workers() int { return o.workers }

// gatherOptions applies user-provided Option setters on top of defaults.
// Nil setters are skipped.
func gatherOptions(user ...Option) Options {
	o := Options{
		order:     DefaultOrder,
		chain:     DefaultChainOrder,
		useKernel: DefaultUseKernel,
		logger:    zerolog.Nop(),
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}

	return o
}
