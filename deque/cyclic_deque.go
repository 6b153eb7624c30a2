// Package deque provides a generic double-ended queue backed by a cyclic
// buffer.
package deque

import (
	"math"

	"cyclicdeque/pkg/apperror"
)

const (
	// DefaultInitialCapacity is the buffer capacity used by
	// NewCyclicDequeDefault.
	DefaultInitialCapacity = 128
	// DefaultIncrementFactor is the growth factor used by
	// NewCyclicDequeDefault.
	DefaultIncrementFactor = 1.5

	// MinIncrementFactor and MaxIncrementFactor bound the growth factor
	// accepted by NewCyclicDeque.
	MinIncrementFactor = 1.1
	MaxIncrementFactor = 2.0
)

// A CyclicDeque is a double-ended queue over a single contiguous buffer used
// cyclically. The items occupy size many consecutive slots starting at the
// front index, wrapping past the end of the buffer back to slot zero. Push
// and pop at either end are O(1), except that a push into a full buffer first
// relocates the items into a larger one, growing the capacity by the
// increment factor chosen at construction. The capacity never shrinks.
//
// A CyclicDeque is not safe for concurrent use. Callers sharing one across
// goroutines must serialize every operation externally, as chann.UnboundedChan
// does with a mutex.
type CyclicDeque[T any] struct {
	buffer []T
	front  int
	size   int

	incrementFactor float64
	growthCount     int

	zero T
}

// NewCyclicDeque creates a deque with the given initial capacity and growth
// factor. The capacity must be at least 1 and the factor must lie in
// [MinIncrementFactor, MaxIncrementFactor], otherwise an error is returned
// and nothing is allocated.
func NewCyclicDeque[T any](initialCapacity int, incrementFactor float64) (*CyclicDeque[T], error) {
	if initialCapacity < 1 {
		return nil, apperror.ErrInvalidInitialCapacity.GenWithStackByArgs(initialCapacity)
	}
	// The inclusive-accept form also rejects NaN, for which every ordered
	// comparison is false.
	if !(incrementFactor >= MinIncrementFactor && incrementFactor <= MaxIncrementFactor) {
		return nil, apperror.ErrInvalidIncrementFactor.GenWithStackByArgs(incrementFactor)
	}
	return &CyclicDeque[T]{
		buffer:          make([]T, initialCapacity),
		incrementFactor: incrementFactor,
	}, nil
}

// NewCyclicDequeDefault creates a deque with capacity 128 growing by 1.5x.
func NewCyclicDequeDefault[T any]() *CyclicDeque[T] {
	d, err := NewCyclicDeque[T](DefaultInitialCapacity, DefaultIncrementFactor)
	if err != nil {
		panic(err)
	}
	return d
}

// Length returns the number of items currently stored.
func (d *CyclicDeque[T]) Length() int { return d.size }

// IsEmpty returns true when the deque holds no items.
func (d *CyclicDeque[T]) IsEmpty() bool { return d.size == 0 }

// Capacity returns the current buffer capacity.
func (d *CyclicDeque[T]) Capacity() int { return len(d.buffer) }

// GrowthCount returns how many times the buffer has been reallocated since
// construction. Clear does not reset it.
func (d *CyclicDeque[T]) GrowthCount() int { return d.growthCount }

// Front returns the front item without removing it.
func (d *CyclicDeque[T]) Front() (T, error) {
	if d.size == 0 {
		return d.zero, apperror.ErrDequeEmpty.FastGenByArgs()
	}
	return d.buffer[d.front], nil
}

// FrontRef returns a pointer to the front item, valid until the next
// mutating operation on the deque.
func (d *CyclicDeque[T]) FrontRef() (*T, error) {
	if d.size == 0 {
		return nil, apperror.ErrDequeEmpty.FastGenByArgs()
	}
	return &d.buffer[d.front], nil
}

// Back returns the back item without removing it.
func (d *CyclicDeque[T]) Back() (T, error) {
	if d.size == 0 {
		return d.zero, apperror.ErrDequeEmpty.FastGenByArgs()
	}
	return d.buffer[d.backIndex()], nil
}

// BackRef returns a pointer to the back item, valid until the next mutating
// operation on the deque.
func (d *CyclicDeque[T]) BackRef() (*T, error) {
	if d.size == 0 {
		return nil, apperror.ErrDequeEmpty.FastGenByArgs()
	}
	return &d.buffer[d.backIndex()], nil
}

// PushBack appends the item behind the current back.
func (d *CyclicDeque[T]) PushBack(item T) {
	if d.size == len(d.buffer) {
		d.grow()
	}
	d.buffer[d.wrap(d.front+d.size)] = item
	d.size++
}

// PushFront inserts the item ahead of the current front.
func (d *CyclicDeque[T]) PushFront(item T) {
	if d.size == len(d.buffer) {
		d.grow()
	}
	d.front = d.wrap(d.front - 1)
	d.buffer[d.front] = item
	d.size++
}

// PopFront removes and returns the front item.
func (d *CyclicDeque[T]) PopFront() (T, error) {
	if d.size == 0 {
		return d.zero, apperror.ErrDequeEmpty.FastGenByArgs()
	}
	item := d.buffer[d.front]
	d.buffer[d.front] = d.zero // Help GC
	d.front = d.wrap(d.front + 1)
	d.size--
	return item, nil
}

// PopBack removes and returns the back item.
func (d *CyclicDeque[T]) PopBack() (T, error) {
	if d.size == 0 {
		return d.zero, apperror.ErrDequeEmpty.FastGenByArgs()
	}
	back := d.backIndex()
	item := d.buffer[back]
	d.buffer[back] = d.zero // Help GC
	d.size--
	return item, nil
}

// Clear removes all items and moves the front index back to slot zero. The
// capacity and the growth count keep their values, so a cleared deque reuses
// its buffer instead of allocating a fresh one.
func (d *CyclicDeque[T]) Clear() {
	for i := 0; i < d.size; i++ {
		d.buffer[d.wrap(d.front+i)] = d.zero
	}
	d.front = 0
	d.size = 0
}

// Snapshot returns a newly allocated slice holding the items in front-to-back
// order. Later mutations of the deque do not affect the returned slice.
func (d *CyclicDeque[T]) Snapshot() []T {
	items := make([]T, d.size)
	for i := 0; i < d.size; i++ {
		items[i] = d.buffer[d.wrap(d.front+i)]
	}
	return items
}

// backIndex returns the slot of the back item. Only valid when size > 0.
func (d *CyclicDeque[T]) backIndex() int {
	return d.wrap(d.front + d.size - 1)
}

// wrap maps an index at most one capacity length outside [0, capacity) back
// into range. All index arithmetic in this file moves by less than one full
// capacity, so a single adjustment is always enough.
func (d *CyclicDeque[T]) wrap(i int) int {
	if i >= len(d.buffer) {
		return i - len(d.buffer)
	}
	if i < 0 {
		return i + len(d.buffer)
	}
	return i
}

// grow relocates the items into a larger buffer in front-to-back order
// starting at slot zero. The factor is strictly greater than 1, so the new
// capacity strictly exceeds the old one even at capacity 1.
func (d *CyclicDeque[T]) grow() {
	newCapacity := int(math.Ceil(float64(len(d.buffer)) * d.incrementFactor))
	newBuffer := make([]T, newCapacity)
	for i := 0; i < d.size; i++ {
		newBuffer[i] = d.buffer[d.wrap(d.front+i)]
	}
	d.buffer = newBuffer
	d.front = 0
	d.growthCount++
}
