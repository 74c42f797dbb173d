// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Wakeup is a multi-producer/single-consumer signal queue used to
// implement reactor.Endpoint.Wakeups: any number of application
// goroutines may request that the event loop wake up and re-evaluate
// endpoint state, while only the event loop itself ever drains it.
//
// This is the one place in the packet I/O core where the
// single-producer constraint of queue.SPSC does not hold (spec §4.1 is
// explicitly SPSC-only), so it is built on the FAA-based MPSC algorithm
// adapted from lfq.MPSC[T] instead: producers claim slots with an
// atomic fetch-and-add over 2n physical slots, the sole consumer reads
// sequentially.
type Wakeup struct {
	_        pad
	head     atomix.Uint64
	_        pad
	tail     atomix.Uint64
	_        pad
	draining atomix.Bool
	_        pad
	buffer   []wakeupSlot
	capacity uint64
	size     uint64
	mask     uint64

	ready chan struct{}
}

type wakeupSlot struct {
	cycle atomix.Uint64
}

// NewWakeup creates a wakeup queue with room for `capacity` outstanding
// requests (rounded up to a power of 2) before producers start
// observing backpressure (request drops, since a wakeup request is
// idempotent signaling, not data: a dropped request just means an
// already-pending wakeup will cover it).
func NewWakeup(capacity int) *Wakeup {
	if capacity < 2 {
		capacity = 2
	}
	n := uint64(roundToPow2(capacity))
	size := n * 2
	w := &Wakeup{
		buffer:   make([]wakeupSlot, size),
		capacity: n,
		size:     size,
		mask:     size - 1,
		ready:    make(chan struct{}, 1),
	}
	for i := uint64(0); i < size; i++ {
		w.buffer[i].cycle.StoreRelaxed(i / n)
	}
	return w
}

// Request signals the event loop. It never blocks: if the queue is
// momentarily full, the request is dropped, which is safe because any
// wakeup already in flight will cause the loop to re-evaluate endpoint
// state anyway.
func (w *Wakeup) Request() {
	sw := spin.Wait{}
	for {
		tail := w.tail.LoadAcquire()
		head := w.head.LoadRelaxed()
		if tail >= head+w.capacity {
			return // drop: a pending wakeup already covers this request
		}

		myTail := w.tail.AddAcqRel(1) - 1
		slot := &w.buffer[myTail&w.mask]
		expected := myTail / w.capacity

		slotCycle := slot.cycle.LoadAcquire()
		if slotCycle == expected {
			slot.cycle.StoreRelease(expected + 1)
			notify(w.ready)
			return
		}
		if int64(slotCycle) < int64(expected) {
			return // full
		}
		sw.Once()
	}
}

// drainOnce dequeues everything currently visible without blocking and
// returns how many requests were collected.
func (w *Wakeup) drainOnce() int {
	const maxDrainRetries = 64
	draining := w.draining.LoadAcquire()
	count := 0
	retries := 0
	sw := spin.Wait{}
	for {
		head := w.head.LoadRelaxed()
		cycle := head / w.capacity
		slot := &w.buffer[head&w.mask]

		slotCycle := slot.cycle.LoadAcquire()
		if slotCycle != cycle+1 {
			if !draining || w.tail.LoadAcquire() <= head || retries >= maxDrainRetries {
				break
			}
			// draining: keep trying a bounded number of times to avoid
			// spinning forever on a slot a producer is still writing.
			retries++
			sw.Once()
			continue
		}

		nextEnqCycle := (head + w.size) / w.capacity
		slot.cycle.StoreRelease(nextEnqCycle)
		w.head.StoreRelaxed(head + 1)
		count++
	}
	return count
}

// Drain signals that producers have finished; future Count calls then
// retry, a bounded number of times, a slot a producer has claimed but
// not yet published, instead of leaving that just-enqueued item
// invisible until a later call.
func (w *Wakeup) Drain() {
	w.draining.StoreRelease(true)
}

// Count waits until at least one wakeup has been requested (or ctx is
// done), then drains and returns the number of pending requests
// observed. This implements the endpoint collaborator contract's
// `wakeups(clock) -> Future<Result<usize, Closed>>`.
func (w *Wakeup) Count(ctx context.Context) (int, error) {
	for {
		if n := w.drainOnce(); n > 0 {
			return n, nil
		}
		select {
		case <-w.ready:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// ReadyChan exposes the raw notify channel for use in a caller's own
// select.
func (w *Wakeup) ReadyChan() <-chan struct{} {
	return w.ready
}
