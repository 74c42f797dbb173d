// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides the bounded SPSC and wakeup-aggregation queues
// that back a ring pair (see package ring). The SPSC queue is adapted
// from code.hybscloud.com/lfq's Lamport ring buffer (SPSC[T]): same
// cache-line padding and acquire/release discipline, generalized with
// a Producer/Consumer split (mirroring s2n-quic-core's sync::spsc
// Sender/Receiver) and notify channels so a cooperative scheduler can
// wait for readiness instead of spinning.
package queue

import (
	"code.hybscloud.com/atomix"
)

// pad occupies a cache line to keep hot atomics from false-sharing,
// following the layout lfq.SPSC uses.
type pad [64]byte

// core is the shared state between a Producer[T] and Consumer[T] pair.
// It is never exposed directly; Producer and Consumer each expose only
// the operations valid for their side.
type core[T any] struct {
	_          pad
	head       atomix.Uint64 // consumer's dequeue index
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer's enqueue index
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64

	producerClosed atomix.Bool
	consumerClosed atomix.Bool

	// itemReady is signaled (non-blocking send) whenever an Enqueue
	// transitions the queue from empty to non-empty. The consumer side
	// waits on it in Ready.
	itemReady chan struct{}
	// spaceReady is signaled whenever a Dequeue transitions the queue
	// from full to non-full. The producer side waits on it.
	spaceReady chan struct{}
}

func newCore[T any](capacity int) *core[T] {
	if capacity < 2 {
		panic("quicio/queue: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &core[T]{
		buffer:     make([]T, n),
		mask:       n - 1,
		itemReady:  make(chan struct{}, 1),
		spaceReady: make(chan struct{}, 1),
	}
}

func roundToPow2(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	v := 1
	for v < n+1 {
		v <<= 1
	}
	return v
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// cap returns the queue's total capacity (n, rounded to a power of 2).
func (c *core[T]) cap() int {
	return int(c.mask + 1)
}

// freeCapacity returns the number of slots currently free for the
// producer, reading head with acquire ordering.
func (c *core[T]) freeCapacity() int {
	tail := c.tail.LoadRelaxed()
	head := c.head.LoadAcquire()
	free := int(c.mask+1) - int(tail-head)
	if free < 0 {
		return 0
	}
	return free
}

// availableLen returns the number of slots currently available for the
// consumer, reading tail with acquire ordering.
func (c *core[T]) availableLen() int {
	head := c.head.LoadRelaxed()
	tail := c.tail.LoadAcquire()
	if tail < head {
		return 0
	}
	return int(tail - head)
}
