// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "code.hybscloud.com/quicio/ioerr"

// NewSPSC creates a bounded single-producer/single-consumer queue and
// returns its two ends. Capacity rounds up to the next power of 2,
// exactly as lfq.NewSPSC does.
//
// The two returned handles must each be used by exactly one goroutine:
// Producer by the sole enqueuer, Consumer by the sole dequeuer. This
// mirrors the non-shareable ring-pair-end contract in spec §5.
func NewSPSC[T any](capacity int) (*Producer[T], *Consumer[T]) {
	c := newCore[T](capacity)
	return &Producer[T]{core: c}, &Consumer[T]{core: c}
}

// Producer is the enqueue side of an SPSC queue.
type Producer[T any] struct {
	core *core[T]
}

// Enqueue moves v to the tail. Returns ioerr.ErrAtCapacity if the queue
// is full, ioerr.ErrClosed if the consumer has been closed.
func (p *Producer[T]) Enqueue(v T) error {
	if p.core.consumerClosed.LoadAcquire() {
		return ioerr.ErrClosed
	}

	c := p.core
	tail := c.tail.LoadRelaxed()
	if tail-c.cachedHead > c.mask {
		c.cachedHead = c.head.LoadAcquire()
		if tail-c.cachedHead > c.mask {
			return ioerr.ErrAtCapacity
		}
	}

	wasEmpty := tail == c.head.LoadAcquire()
	c.buffer[tail&c.mask] = v
	c.tail.StoreRelease(tail + 1)

	if wasEmpty {
		notify(c.itemReady)
	}
	return nil
}

// Capacity returns the number of free slots currently visible to the
// producer.
func (p *Producer[T]) Capacity() int {
	return p.core.freeCapacity()
}

// Close marks the producer as gone. The consumer's next Dequeue/Ready
// observes ioerr.ErrClosed once the queue has drained.
func (p *Producer[T]) Close() {
	p.core.producerClosed.StoreRelease(true)
	notify(p.core.itemReady)
}

// Consumer is the dequeue side of an SPSC queue.
type Consumer[T any] struct {
	core *core[T]
}

// Dequeue removes and returns the head element. Returns
// ioerr.ErrAtCapacity (queue empty) or ioerr.ErrClosed (producer gone
// and queue drained).
func (c *Consumer[T]) Dequeue() (T, error) {
	var zero T
	core := c.core
	head := core.head.LoadRelaxed()
	if head >= core.cachedTail {
		core.cachedTail = core.tail.LoadAcquire()
		if head >= core.cachedTail {
			if core.producerClosed.LoadAcquire() {
				return zero, ioerr.ErrClosed
			}
			return zero, ioerr.ErrAtCapacity
		}
	}

	wasAtCapacity := core.freeCapacity() == 0

	elem := core.buffer[head&core.mask]
	core.buffer[head&core.mask] = zero
	core.head.StoreRelease(head + 1)

	if wasAtCapacity {
		notify(core.spaceReady)
	}
	return elem, nil
}

// Len returns the number of filled slots currently visible to the
// consumer.
func (c *Consumer[T]) Len() int {
	return c.core.availableLen()
}

// Closed reports whether the producer has been closed and the queue is
// fully drained — i.e. the next Dequeue would return ErrClosed.
func (c *Consumer[T]) Closed() bool {
	return c.core.producerClosed.LoadAcquire() && c.core.availableLen() == 0
}

// Close marks the consumer as gone. The producer's next Enqueue
// observes ioerr.ErrClosed.
func (c *Consumer[T]) Close() {
	c.core.consumerClosed.StoreRelease(true)
	notify(c.core.spaceReady)
}

// Cap returns the queue's total capacity.
func (p *Producer[T]) Cap() int { return p.core.cap() }

// Cap returns the queue's total capacity.
func (c *Consumer[T]) Cap() int { return c.core.cap() }
