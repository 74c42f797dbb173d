// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import (
	"context"
	"errors"

	"code.hybscloud.com/quicio/packet"
	"code.hybscloud.com/quicio/queue"
)

// Unfilled is the producer-facing end of a ring pair: it consumes
// empty slots from the unfilled queue and produces full ones into the
// filled queue. An application holds this end of a TX pair (Push, or
// TrySlice via reactor.Loop); a socket driver holds this end of an RX
// pair (PopFree/PushFilled).
type Unfilled struct {
	queueID uint16
	free    *queue.Consumer[*packet.Entry]
	filled  *queue.Producer[*packet.Entry]
	current *packet.Entry
}

// Filled is the consumer-facing end of a ring pair: it consumes full
// slots from the filled queue and returns emptied ones to the
// unfilled queue. A socket driver holds this end of a TX pair
// (Pop/Finish); an application holds this end of an RX pair (TrySlice
// via reactor.Loop).
type Filled struct {
	queueID uint16
	full    *queue.Consumer[*packet.Entry]
	free    *queue.Producer[*packet.Entry]
}

// Pair constructs a ring pair of count slots, each able to hold up to
// maxPayload bytes, and returns its two ends. All slots start in the
// unfilled queue, matching spec §4.3 step 3.
func Pair(maxPayload uint16, count int) (*Unfilled, *Filled) {
	return newPair(maxPayload, count, 0)
}

func newPair(maxPayload uint16, count int, queueID uint16) (*Unfilled, *Filled) {
	freeProd, freeCons := queue.NewSPSC[*packet.Entry](count)
	filledProd, filledCons := queue.NewSPSC[*packet.Entry](count)

	for i := 0; i < count; i++ {
		e := packet.NewEntry(uint16(i), queueID, maxPayload)
		_ = freeProd.Enqueue(e)
	}

	return &Unfilled{queueID: queueID, free: freeCons, filled: filledProd},
		&Filled{queueID: queueID, full: filledCons, free: freeProd}
}

// Push fills the currently buffered slot (popping a fresh one from
// the unfilled queue if none is buffered) with msg, flushing it to the
// filled queue when coalescing is no longer possible. Implements spec
// §4.2 steps 1-6.
func (u *Unfilled) Push(msg packet.Message) error {
	for {
		if u.current == nil {
			e, err := u.free.Dequeue()
			if err != nil {
				return err
			}
			e.Reset()
			u.current = e
		}

		forceFlush, err := u.current.TryPush(msg)
		if errors.Is(err, packet.ErrIncompatible) {
			if ferr := u.flush(); ferr != nil {
				return ferr
			}
			continue
		}
		if err != nil {
			return err
		}
		if forceFlush {
			return u.flush()
		}
		return nil
	}
}

// Flush force-flushes any buffered, non-empty slot. Spec §5:
// "Dropping a TX slice flushes any buffered non-empty slot."
func (u *Unfilled) Flush() error {
	if u.current == nil || u.current.IsEmpty() {
		return nil
	}
	return u.flush()
}

func (u *Unfilled) flush() error {
	e := u.current
	if err := u.filled.Enqueue(e); err != nil {
		return err
	}
	u.current = nil
	return nil
}

// TxReady reports ready once the unfilled-consumer side is no longer
// at zero cached capacity, i.e. once a free slot exists to fill — the
// back-pressure signal of spec §4.3. Never blocks if a slot is already
// buffered (Push can keep coalescing into it without popping another).
func (u *Unfilled) TxReady(ctx context.Context) error {
	if u.current != nil {
		return nil
	}
	return u.free.Ready(ctx)
}

// PopFree removes and returns the next empty slot for a socket driver
// to fill directly (the RX path), bypassing the message-coalescing
// Push API.
func (u *Unfilled) PopFree() (*packet.Entry, error) {
	return u.free.Dequeue()
}

// PushFilled forwards a slot a socket driver has just filled (via
// PopFree + Entry.SetReceived) into the filled queue.
func (u *Unfilled) PushFilled(e *packet.Entry) error {
	return u.filled.Enqueue(e)
}

// TrySlice claims a batch of currently-empty slots to fill directly,
// bypassing the buffered-slot coalescing of Push. reactor.Loop hands
// this batch to Endpoint.Transmit.
func (u *Unfilled) TrySlice() (*UnfilledSlice, bool) {
	s, ok := u.free.TrySlice()
	if !ok {
		return nil, false
	}
	return &UnfilledSlice{s: s, filled: u.filled}, true
}

// Close tears down both queues this end touches. The counterpart's
// next Ready/Dequeue observes ioerr.ErrClosed once drained.
func (u *Unfilled) Close() {
	u.free.Close()
	u.filled.Close()
}

// FreeLen returns the number of empty slots currently waiting to be
// filled — the unfilled queue's length.
func (u *Unfilled) FreeLen() int { return u.free.Len() }

// Pop removes and returns the next full slot, or ioerr.ErrAtCapacity /
// ioerr.ErrClosed.
func (f *Filled) Pop() (*packet.Entry, error) {
	return f.full.Dequeue()
}

// Ready blocks until at least one full slot is available.
func (f *Filled) Ready(ctx context.Context) error {
	return f.full.Ready(ctx)
}

// ReadyChan exposes the raw notify channel for a multi-way select
// (Set.RxReady waits on it across pairs).
func (f *Filled) ReadyChan() <-chan struct{} {
	return f.full.ReadyChan()
}

// Finish marks e fully drained, resets it, and returns it to the
// unfilled queue it was allocated from.
func (f *Filled) Finish(e *packet.Entry) error {
	e.Finish()
	e.Reset()
	return f.free.Enqueue(e)
}

// TrySlice claims a batch of currently-full slots to drain directly.
// reactor.Loop hands this batch to Endpoint.Receive.
func (f *Filled) TrySlice() (*FilledSlice, bool) {
	s, ok := f.full.TrySlice()
	if !ok {
		return nil, false
	}
	return &FilledSlice{s: s, free: f.free}, true
}

// Close tears down both queues this end touches.
func (f *Filled) Close() {
	f.full.Close()
	f.free.Close()
}
