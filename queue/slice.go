// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// ConsumerSlice is a batch view over the consumer side of an SPSC
// queue. It claims the currently-visible length with a single acquire
// load and then pops elements with plain, unsynchronized array access,
// amortizing the atomic-ordering cost across the whole batch. The
// advanced head is published with one release store when the slice is
// released (Commit), matching spec §4.1's try_slice contract.
type ConsumerSlice[T any] struct {
	c        *Consumer[T]
	start    uint64
	consumed uint64
	claimed  uint64
}

// TrySlice claims a batch view over everything currently dequeueable.
// Returns false if the queue is empty right now.
func (c *Consumer[T]) TrySlice() (*ConsumerSlice[T], bool) {
	n := c.core.availableLen()
	if n == 0 {
		return nil, false
	}
	return &ConsumerSlice[T]{c: c, start: c.core.head.LoadRelaxed(), claimed: uint64(n)}, true
}

// Len returns the number of elements remaining in this slice.
func (s *ConsumerSlice[T]) Len() int {
	return int(s.claimed - s.consumed)
}

// Pop removes and returns the next element from the claimed batch,
// without touching the shared atomics.
func (s *ConsumerSlice[T]) Pop() (T, bool) {
	var zero T
	if s.consumed >= s.claimed {
		return zero, false
	}
	core := s.c.core
	idx := (s.start + s.consumed) & core.mask
	v := core.buffer[idx]
	core.buffer[idx] = zero
	s.consumed++
	return v, true
}

// Commit publishes every popped element with a single release store
// and wakes the producer if the queue transitioned from full to
// non-full. Safe to call with zero elements consumed (no-op).
func (s *ConsumerSlice[T]) Commit() {
	if s.consumed == 0 {
		return
	}
	core := s.c.core
	wasAtCapacity := core.freeCapacity() == 0
	core.head.StoreRelease(s.start + s.consumed)
	if wasAtCapacity {
		notify(core.spaceReady)
	}
	s.start += s.consumed
	s.claimed -= s.consumed
	s.consumed = 0
}

// ProducerSlice is a batch view over the producer side of an SPSC
// queue, the dual of ConsumerSlice.
type ProducerSlice[T any] struct {
	p        *Producer[T]
	start    uint64
	produced uint64
	claimed  uint64
}

// TrySlice claims a batch view over every slot currently free for the
// producer. Returns false if the queue is full right now.
func (p *Producer[T]) TrySlice() (*ProducerSlice[T], bool) {
	n := p.core.freeCapacity()
	if n == 0 {
		return nil, false
	}
	return &ProducerSlice[T]{p: p, start: p.core.tail.LoadRelaxed(), claimed: uint64(n)}, true
}

// Cap returns the number of additional elements this slice can still
// accept.
func (s *ProducerSlice[T]) Cap() int {
	return int(s.claimed - s.produced)
}

// Push writes v into the next claimed slot. Returns false if the
// slice's claimed capacity is exhausted (call Commit and re-acquire).
func (s *ProducerSlice[T]) Push(v T) bool {
	if s.produced >= s.claimed {
		return false
	}
	core := s.p.core
	idx := (s.start + s.produced) & core.mask
	core.buffer[idx] = v
	s.produced++
	return true
}

// Commit publishes every pushed element with a single release store
// and wakes the consumer if the queue transitioned from empty to
// non-empty. Safe to call with zero elements produced (no-op).
func (s *ProducerSlice[T]) Commit() {
	if s.produced == 0 {
		return
	}
	core := s.p.core
	wasEmpty := core.availableLen() == 0
	core.tail.StoreRelease(s.start + s.produced)
	if wasEmpty {
		notify(core.itemReady)
	}
	s.start += s.produced
	s.claimed -= s.produced
	s.produced = 0
}
