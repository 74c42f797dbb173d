// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"

	"code.hybscloud.com/quicio/ioerr"
)

// Ready blocks until at least one element is available to dequeue, the
// producer closes, or ctx is done. This is the Go-idiomatic equivalent
// of spec §4.1's poll_slice(cx): instead of registering a waker with a
// task context, the caller blocks here (reactor.Select runs it on its
// own goroutine), or selects over ReadyChan directly.
func (c *Consumer[T]) Ready(ctx context.Context) error {
	for {
		if c.core.availableLen() > 0 {
			return nil
		}
		if c.core.producerClosed.LoadAcquire() {
			return ioerr.ErrClosed
		}
		select {
		case <-c.core.itemReady:
			// spurious wakeups are permitted; loop re-checks the condition
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ReadyChan exposes the raw notify channel so a caller can fold this
// queue's readiness into a single multi-way select without spawning a
// goroutine per queue (ring.Set does this across its pairs).
func (c *Consumer[T]) ReadyChan() <-chan struct{} {
	return c.core.itemReady
}

// Ready blocks until at least one free slot is available to enqueue,
// the consumer closes, or ctx is done.
func (p *Producer[T]) Ready(ctx context.Context) error {
	for {
		if p.core.freeCapacity() > 0 {
			return nil
		}
		if p.core.consumerClosed.LoadAcquire() {
			return ioerr.ErrClosed
		}
		select {
		case <-p.core.spaceReady:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ReadyChan exposes the raw notify channel for space becoming
// available, for use in a caller's own select.
func (p *Producer[T]) ReadyChan() <-chan struct{} {
	return p.core.spaceReady
}
