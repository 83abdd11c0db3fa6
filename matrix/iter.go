// SPDX-License-Identifier: MIT

// Package matrix - double-ended iterators.
//
// Purpose:
//   - One state machine {front, back} shared by every iterator in the package:
//     Next yields front and advances it, NextBack retreats back and yields it,
//     both stop when front == back. Mixing directions never double-yields.
//   - Len always reports the exact remaining count.
//
// Borrow policy:
//   - Every step re-checks the captured lease. On conflict the iterator is
//     exhausted and Err reports ErrBorrowConflict (bufio.Scanner style).
//
// AI-Hints:
//   - Range with `for v := range it.All() {}` and check it.Err() afterwards.
package matrix

import "iter"

// cursor is the shared {front, back} state; positions are logical indices.
type cursor struct {
	front, back int
}

// Len returns the exact number of items not yet yielded.
func (c *cursor) Len() int { return c.back - c.front }

func (c *cursor) advance() (int, bool) {
	if c.front >= c.back {
		return 0, false
	}
	i := c.front
	c.front++

	return i, true
}

func (c *cursor) retreat() (int, bool) {
	if c.front >= c.back {
		return 0, false
	}
	c.back--

	return c.back, true
}

func (c *cursor) exhaust() { c.front = c.back }

// Iter walks a Strided view by value.
type Iter[T any] struct {
	cursor
	l      lease[T]
	off    int
	stride int
	err    error
}

func newIter[T any](s Strided[T]) *Iter[T] {
	return &Iter[T]{cursor: cursor{back: s.n}, l: s.l, off: s.off, stride: s.stride}
}

func (it *Iter[T]) load(i int) (T, bool) {
	if err := it.l.check(); err != nil {
		var zero T
		it.err = err
		it.exhaust()

		return zero, false
	}

	return it.l.buf.data[it.off+i*it.stride], true
}

// Next yields the front element.
func (it *Iter[T]) Next() (T, bool) {
	i, ok := it.advance()
	if !ok {
		var zero T
		return zero, false
	}

	return it.load(i)
}

// NextBack yields the back element.
func (it *Iter[T]) NextBack() (T, bool) {
	i, ok := it.retreat()
	if !ok {
		var zero T
		return zero, false
	}

	return it.load(i)
}

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *Iter[T]) Err() error { return it.err }

// All drains the iterator front to back.
func (it *Iter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front.
func (it *Iter[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.NextBack()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// IterMut walks a StridedMut view yielding element pointers.
// Pointers are valid only while the view's borrow is live.
type IterMut[T any] struct {
	cursor
	l      lease[T]
	off    int
	stride int
	err    error
}

func newIterMut[T any](s StridedMut[T]) *IterMut[T] {
	return &IterMut[T]{cursor: cursor{back: s.n}, l: s.l, off: s.off, stride: s.stride}
}

func (it *IterMut[T]) load(i int) (*T, bool) {
	if err := it.l.checkWrite(); err != nil {
		it.err = err
		it.exhaust()

		return nil, false
	}

	return &it.l.buf.data[it.off+i*it.stride], true
}

// Next yields a pointer to the front element.
func (it *IterMut[T]) Next() (*T, bool) {
	i, ok := it.advance()
	if !ok {
		return nil, false
	}

	return it.load(i)
}

// NextBack yields a pointer to the back element.
func (it *IterMut[T]) NextBack() (*T, bool) {
	i, ok := it.retreat()
	if !ok {
		return nil, false
	}

	return it.load(i)
}

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *IterMut[T]) Err() error { return it.err }

// All drains the iterator front to back.
func (it *IterMut[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for {
			p, ok := it.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front.
func (it *IterMut[T]) Backward() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for {
			p, ok := it.NextBack()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// MatIter walks a StridedMat in logical row-major order (row 0 left to right,
// then row 1, ...) regardless of storage order.
type MatIter[T any] struct {
	cursor
	m   StridedMat[T]
	err error
}

func newMatIter[T any](m StridedMat[T]) *MatIter[T] {
	return &MatIter[T]{cursor: cursor{back: m.rows * m.cols}, m: m}
}

func (it *MatIter[T]) load(k int) (Index, T, bool) {
	var zero T
	if err := it.m.l.check(); err != nil {
		it.err = err
		it.exhaust()

		return Index{}, zero, false
	}
	idx := Index{Row: k / it.m.cols, Col: k % it.m.cols}

	return idx, it.m.l.buf.data[it.m.off+it.m.order.offset(idx.Row, idx.Col, it.m.stride)], true
}

// Next yields the front element.
func (it *MatIter[T]) Next() (T, bool) {
	k, ok := it.advance()
	if !ok {
		var zero T
		return zero, false
	}
	_, v, ok := it.load(k)

	return v, ok
}

// NextBack yields the back element.
func (it *MatIter[T]) NextBack() (T, bool) {
	k, ok := it.retreat()
	if !ok {
		var zero T
		return zero, false
	}
	_, v, ok := it.load(k)

	return v, ok
}

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *MatIter[T]) Err() error { return it.err }

// All drains the iterator front to back, yielding logical coordinates with values.
func (it *MatIter[T]) All() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for {
			k, ok := it.advance()
			if !ok {
				return
			}
			idx, v, ok := it.load(k)
			if !ok || !yield(idx, v) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front, yielding logical coordinates with values.
func (it *MatIter[T]) Backward() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for {
			k, ok := it.retreat()
			if !ok {
				return
			}
			idx, v, ok := it.load(k)
			if !ok || !yield(idx, v) {
				return
			}
		}
	}
}

// MatIterMut is MatIter yielding element pointers.
type MatIterMut[T any] struct {
	cursor
	m   StridedMat[T]
	err error
}

func (it *MatIterMut[T]) load(k int) (Index, *T, bool) {
	if err := it.m.l.checkWrite(); err != nil {
		it.err = err
		it.exhaust()

		return Index{}, nil, false
	}
	idx := Index{Row: k / it.m.cols, Col: k % it.m.cols}

	return idx, &it.m.l.buf.data[it.m.off+it.m.order.offset(idx.Row, idx.Col, it.m.stride)], true
}

// Next yields a pointer to the front element.
func (it *MatIterMut[T]) Next() (*T, bool) {
	k, ok := it.advance()
	if !ok {
		return nil, false
	}
	_, p, ok := it.load(k)

	return p, ok
}

// NextBack yields a pointer to the back element.
func (it *MatIterMut[T]) NextBack() (*T, bool) {
	k, ok := it.retreat()
	if !ok {
		return nil, false
	}
	_, p, ok := it.load(k)

	return p, ok
}

// Err reports the borrow conflict that stopped the iterator, if any.
func (it *MatIterMut[T]) Err() error { return it.err }

// All drains the iterator front to back, yielding logical coordinates with pointers.
func (it *MatIterMut[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for {
			k, ok := it.advance()
			if !ok {
				return
			}
			idx, p, ok := it.load(k)
			if !ok || !yield(idx, p) {
				return
			}
		}
	}
}

// Backward drains the iterator back to front.
func (it *MatIterMut[T]) Backward() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for {
			k, ok := it.retreat()
			if !ok {
				return
			}
			idx, p, ok := it.load(k)
			if !ok || !yield(idx, p) {
				return
			}
		}
	}
}
