package chann

import (
	"sync"

	"github.com/pingcap/log"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"cyclicdeque/deque"
)

// UnboundedChan is a channel with unlimited buffer, backed by a cyclic deque.
// It is safe for concurrent use, the lock serializes every deque operation.
// It supports popping multiple items at once, which is suitable for batch
// processing, and requeueing an item at the front for retries.
type UnboundedChan[T any] struct {
	queue deque.CyclicDeque[T]

	mu     sync.RWMutex
	cond   *sync.Cond
	closed bool

	pushed   *atomic.Int64
	requeued *atomic.Int64
	popped   *atomic.Int64
}

func NewUnboundedChan[T any]() *UnboundedChan[T] {
	ch := &UnboundedChan[T]{
		queue:    *deque.NewCyclicDequeDefault[T](),
		pushed:   atomic.NewInt64(0),
		requeued: atomic.NewInt64(0),
		popped:   atomic.NewInt64(0),
	}
	ch.cond = sync.NewCond(&ch.mu)
	return ch
}

// Close marks the channel closed. Buffered items remain poppable, further
// pushes panic.
func (c *UnboundedChan[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pending := c.queue.Length(); pending > 0 {
		log.Warn("closing unbounded chan with pending items", zap.Int("pending", pending))
	}
	c.closed = true
	c.cond.Broadcast()
}

func (c *UnboundedChan[T]) Push(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		panic("push to closed unbounded chan")
	}

	c.queue.PushBack(v)
	c.pushed.Inc()
	c.cond.Signal()
}

// Requeue returns an item to the front of the channel, so it is popped again
// before anything pushed after it. Consumers use it to put back an item whose
// processing has to be retried without losing its position.
func (c *UnboundedChan[T]) Requeue(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		panic("requeue to closed unbounded chan")
	}

	c.queue.PushFront(v)
	c.requeued.Inc()
	c.cond.Signal()
}

// Pop retrieves the front item, blocking while the channel is empty and open.
// Return the item and a boolean indicating whether the channel is available.
// Return false if the channel is closed and drained.
func (c *UnboundedChan[T]) Pop() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.closed && c.queue.IsEmpty() {
		c.cond.Wait()
	}
	if c.closed && c.queue.IsEmpty() {
		var zero T
		return zero, false
	}

	v, err := c.queue.PopFront()
	if err != nil {
		panic("unreachable")
	}
	c.popped.Inc()

	return v, true
}

// PopMultiple retrieves up to cap(buffer) items and appends them to buffer,
// blocking while the channel is empty and open.
// Return the filled buffer and a boolean indicating whether the channel is
// available. Return false if the channel is closed and drained.
func (c *UnboundedChan[T]) PopMultiple(buffer []T) ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.closed && c.queue.IsEmpty() {
		c.cond.Wait()
	}
	if c.closed && c.queue.IsEmpty() {
		return buffer, false
	}

	for len(buffer) < cap(buffer) {
		v, err := c.queue.PopFront()
		if err != nil {
			break
		}
		buffer = append(buffer, v)
		c.popped.Inc()
	}

	return buffer, true
}

func (c *UnboundedChan[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.Length()
}

// Metrics is a point-in-time snapshot of the channel's throughput counters.
// A requeued item is delivered twice, so Pending = Pushed + Requeued - Popped.
type Metrics struct {
	Pushed   int64
	Requeued int64
	Popped   int64
	Pending  int64
}

// GetMetrics reads the counters without taking the channel lock, so it never
// contends with producers and consumers. The numbers may trail in-flight
// operations by a few.
func (c *UnboundedChan[T]) GetMetrics() Metrics {
	pushed := c.pushed.Load()
	requeued := c.requeued.Load()
	popped := c.popped.Load()
	return Metrics{
		Pushed:   pushed,
		Requeued: requeued,
		Popped:   popped,
		Pending:  pushed + requeued - popped,
	}
}
