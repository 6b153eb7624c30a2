package chann

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zeebo/assert"
	"golang.org/x/sync/errgroup"
)

func TestUnboundedChan(t *testing.T) {
	ch := NewUnboundedChan[int]()
	total := 10000
	var sent atomic.Int64

	wgSend := &sync.WaitGroup{}
	for g := 0; g < 10; g++ {
		g := g
		wgSend.Add(1)
		go func() {
			for {
				cur := sent.Add(1)
				if cur > int64(total) {
					break
				}
				time.Sleep(time.Duration(g) * time.Nanosecond)
				ch.Push(1)
			}
			wgSend.Done()
		}()
	}

	go func() {
		wgSend.Wait()
		ch.Close()
	}()

	var result atomic.Int64
	wgReceive := &sync.WaitGroup{}

	for g := 0; g < 10; g++ {
		g := g
		wgReceive.Add(1)
		go func() {
			if g%2 == 0 {
				for {
					v, ok := ch.Pop()
					if !ok {
						break
					}
					result.Add(int64(v))
				}
			} else {
				for {
					buffer := make([]int, 0, 3)
					buffer, ok := ch.PopMultiple(buffer)
					if !ok {
						break
					}
					for _, v := range buffer {
						result.Add(int64(v))
					}
				}
			}
			wgReceive.Done()
		}()
	}

	wgReceive.Wait()

	assert.Equal(t, result.Load(), int64(total))

	m := ch.GetMetrics()
	assert.Equal(t, m.Pushed, int64(total))
	assert.Equal(t, m.Popped, int64(total))
	assert.Equal(t, m.Requeued, int64(0))
	assert.Equal(t, m.Pending, int64(0))
}

func TestPopOrder(t *testing.T) {
	ch := NewUnboundedChan[string]()
	ch.Push("a")
	ch.Push("b")
	ch.Push("c")
	assert.Equal(t, ch.Len(), 3)

	v, ok := ch.Pop()
	assert.True(t, ok)
	assert.Equal(t, v, "a")
	v, ok = ch.Pop()
	assert.True(t, ok)
	assert.Equal(t, v, "b")
	v, ok = ch.Pop()
	assert.True(t, ok)
	assert.Equal(t, v, "c")
	assert.Equal(t, ch.Len(), 0)
}

func TestRequeue(t *testing.T) {
	ch := NewUnboundedChan[int]()
	ch.Push(1)
	ch.Push(2)

	v, ok := ch.Pop()
	assert.True(t, ok)
	assert.Equal(t, v, 1)

	// The requeued item comes back before item 2.
	ch.Requeue(v)
	v, ok = ch.Pop()
	assert.True(t, ok)
	assert.Equal(t, v, 1)
	v, ok = ch.Pop()
	assert.True(t, ok)
	assert.Equal(t, v, 2)

	m := ch.GetMetrics()
	assert.Equal(t, m.Pushed, int64(2))
	assert.Equal(t, m.Requeued, int64(1))
	assert.Equal(t, m.Popped, int64(3))
	assert.Equal(t, m.Pending, int64(0))
}

func TestCloseDrainsBufferedItems(t *testing.T) {
	ch := NewUnboundedChan[int]()
	ch.Push(1)
	ch.Push(2)
	ch.Push(3)
	ch.Close()

	for want := 1; want <= 3; want++ {
		v, ok := ch.Pop()
		assert.True(t, ok)
		assert.Equal(t, v, want)
	}
	_, ok := ch.Pop()
	assert.False(t, ok)

	buffer, ok := ch.PopMultiple(make([]int, 0, 4))
	assert.False(t, ok)
	assert.Equal(t, len(buffer), 0)
}

func TestPushToClosedPanics(t *testing.T) {
	ch := NewUnboundedChan[int]()
	ch.Close()
	defer func() {
		assert.NotNil(t, recover())
	}()
	ch.Push(1)
}

func TestRequeueToClosedPanics(t *testing.T) {
	ch := NewUnboundedChan[int]()
	ch.Close()
	defer func() {
		assert.NotNil(t, recover())
	}()
	ch.Requeue(1)
}

func TestPopMultipleBatches(t *testing.T) {
	ch := NewUnboundedChan[int]()
	for i := 1; i <= 5; i++ {
		ch.Push(i)
	}

	buffer, ok := ch.PopMultiple(make([]int, 0, 3))
	assert.True(t, ok)
	assert.DeepEqual(t, buffer, []int{1, 2, 3})

	buffer, ok = ch.PopMultiple(buffer[:0])
	assert.True(t, ok)
	assert.DeepEqual(t, buffer, []int{4, 5})
	assert.Equal(t, ch.Len(), 0)
}

func TestConcurrentProducersThenRequeueDrain(t *testing.T) {
	ch := NewUnboundedChan[int]()

	var eg errgroup.Group
	for p := 0; p < 4; p++ {
		p := p
		eg.Go(func() error {
			for i := 0; i < 250; i++ {
				ch.Push(p*1000 + i)
			}
			return nil
		})
	}
	assert.NoError(t, eg.Wait())
	assert.Equal(t, ch.Len(), 1000)

	// Every tenth item models a failed delivery and goes back to the front
	// once, so the drain pops 1000 + 100 items in total.
	requeued := make(map[int]bool)
	popped := 0
	for popped < 1100 {
		v, ok := ch.Pop()
		assert.True(t, ok)
		popped++
		if v%10 == 0 && !requeued[v] {
			requeued[v] = true
			ch.Requeue(v)
		}
	}
	assert.Equal(t, ch.Len(), 0)
	assert.Equal(t, len(requeued), 100)

	m := ch.GetMetrics()
	assert.Equal(t, m.Pushed, int64(1000))
	assert.Equal(t, m.Requeued, int64(100))
	assert.Equal(t, m.Popped, int64(1100))
	assert.Equal(t, m.Pending, int64(0))
}

func TestPopBlocksUntilPush(t *testing.T) {
	ch := NewUnboundedChan[int]()
	got := make(chan int)
	go func() {
		v, ok := ch.Pop()
		assert.True(t, ok)
		got <- v
	}()

	time.Sleep(50 * time.Millisecond)
	ch.Push(42)
	select {
	case v := <-got:
		assert.Equal(t, v, 42)
	case <-time.After(2 * time.Second):
		t.Fatal("Pop did not wake up after Push")
	}
}
