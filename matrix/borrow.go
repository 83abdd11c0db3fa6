// SPDX-License-Identifier: MIT

// Package matrix - runtime borrow guard.
//
// Purpose:
//   - Enforce "one writer xor many readers" per buffer without a borrow checker.
//   - Fail fast (ErrBorrowConflict) on access through a view whose borrow ended.
//
// Model:
//   - Each buffer owns an atomic epoch word: gen<<1 | writeBit.
//   - A shared borrow keeps the current epoch unless a writer holds it, in which
//     case a fresh shared epoch starts (ending the writer).
//   - An exclusive borrow always starts a fresh writer epoch (ending everyone).
//   - A view is valid iff the epoch it captured is still current.
//   - Only provably disjoint splits (SplitAtMut, HSplitAtMut, VSplitAtMut, stripes,
//     line iterators) inherit the writer's epoch, so their pieces stay usable together,
//     also from several goroutines.
//   - Any other mutable derivation (SliceMut, RowMut, ColMut, DiagMut, TMut,
//     AsColMut) hands the borrow over: it starts a fresh writer epoch, ending the
//     parent and every sibling. AsConst turns the writer epoch into a shared one.
//   - Read accessors called on a mutable view (At, Row, Slice, T, ...) read through
//     that view's own borrow and live exactly as long as it does.
//
// Complexity:
//   - acquire: O(1) CAS loop; check: one atomic load.
package matrix

import (
	"sync/atomic"
	"unsafe"
)

const writeBit = 1

// buffer is the shared storage record behind every owned container and view.
type buffer[T any] struct {
	data  []T
	state atomic.Uint64 // gen<<1 | writeBit
}

func newBuffer[T any](data []T) *buffer[T] {
	return &buffer[T]{data: data}
}

// acquireShared returns the epoch an immutable view should capture.
func (b *buffer[T]) acquireShared() uint64 {
	for {
		s := b.state.Load()
		if s&writeBit == 0 {
			return s >> 1
		}
		next := ((s >> 1) + 1) << 1
		if b.state.CompareAndSwap(s, next) {
			return next >> 1
		}
	}
}

// acquireExclusive starts a new writer epoch and returns it.
func (b *buffer[T]) acquireExclusive() uint64 {
	for {
		s := b.state.Load()
		next := (((s >> 1) + 1) << 1) | writeBit
		if b.state.CompareAndSwap(s, next) {
			return next >> 1
		}
	}
}

// current reports whether gen is still the live epoch.
func (b *buffer[T]) current(gen uint64) bool {
	return b.state.Load()>>1 == gen
}

// writable reports whether gen is the live epoch and that epoch is a writer epoch.
func (b *buffer[T]) writable(gen uint64) bool {
	s := b.state.Load()

	return s>>1 == gen && s&writeBit == writeBit
}

// lease is the (buffer, epoch) pair captured by a view.
type lease[T any] struct {
	buf *buffer[T]
	gen uint64
}

// check returns ErrBorrowConflict when the lease's epoch has ended.
func (l lease[T]) check() error {
	if l.buf == nil {
		return ErrNilOperand
	}
	if !l.buf.current(l.gen) {
		return ErrBorrowConflict
	}

	return nil
}

// checkWrite is check plus "the epoch is a writer epoch".
func (l lease[T]) checkWrite() error {
	if l.buf == nil {
		return ErrNilOperand
	}
	if !l.buf.writable(l.gen) {
		return ErrBorrowConflict
	}

	return nil
}

// sharedLease / exclusiveLease start borrows on b.
func sharedLease[T any](b *buffer[T]) lease[T] {
	return lease[T]{buf: b, gen: b.acquireShared()}
}

func exclusiveLease[T any](b *buffer[T]) lease[T] {
	return lease[T]{buf: b, gen: b.acquireExclusive()}
}

// handOver moves a writer borrow to a new epoch. The returned lease is the only live
// one; when l is no longer the live writer it is returned unchanged (and stays stale).
func (l lease[T]) handOver() lease[T] {
	if l.buf == nil {
		return l
	}
	if l.buf.state.CompareAndSwap(l.gen<<1|writeBit, (l.gen+1)<<1|writeBit) {
		return lease[T]{buf: l.buf, gen: l.gen + 1}
	}

	return l
}

// downgrade turns a live writer borrow into a shared one, ending the writer.
func (l lease[T]) downgrade() lease[T] {
	if l.buf == nil {
		return l
	}
	if l.buf.state.CompareAndSwap(l.gen<<1|writeBit, (l.gen+1)<<1) {
		return lease[T]{buf: l.buf, gen: l.gen + 1}
	}

	return l
}

// relativeBase returns the element offset of b.data[0] from a.data[0] when both
// buffers share one backing array (raw constructors over a common slice), and
// ok == false when they cannot address a common element.
func relativeBase[T any](a, b *buffer[T]) (int, bool) {
	if a == b {
		return 0, true
	}
	size := unsafe.Sizeof(*new(T))
	if a == nil || b == nil || size == 0 || cap(a.data) == 0 || cap(b.data) == 0 {
		return 0, false
	}
	pa := uintptr(unsafe.Pointer(unsafe.SliceData(a.data)))
	pb := uintptr(unsafe.Pointer(unsafe.SliceData(b.data)))
	if pb >= pa+uintptr(cap(a.data))*size || pa >= pb+uintptr(cap(b.data))*size {
		return 0, false
	}
	if pb >= pa {
		return int((pb - pa) / size), true
	}

	return -int((pa - pb) / size), true
}
