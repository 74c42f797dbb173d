// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket

import (
	"code.hybscloud.com/quicio/ioerr"
	"code.hybscloud.com/quicio/packet"
	"code.hybscloud.com/quicio/ring"
)

// Rx fills a ring pair's unfilled queue over a bound socket. It is the
// RX half of spec.md §4.5.
type Rx struct {
	conn *Conn

	// pending holds a slot recvmsg found nothing for, or that a
	// transient error deferred, to be retried on the next Apply call
	// in place of a fresh PopFree.
	pending *packet.Entry
}

// NewRx returns an Rx receiving over conn.
func NewRx(conn *Conn) *Rx { return &Rx{conn: conn} }

// Apply fills empty slots from u until none remain, recvmsg reports no
// datagram is currently available, or a receive yields a transient error,
// implementing spec.md §4.5's RX algorithm (TX's error handling with
// receive semantics):
//
//  1. Pop an empty slot, recvmsg into its full capacity, recovering
//     ECN, GRO segment size, and local address from ancillary data.
//  2. If recvmsg reports zero bytes or no peer address, re-buffer the
//     slot and stop: nothing more is available this wakeup.
//  3. On success, forward the filled slot to the filled queue and
//     continue.
//  4. On EWOULDBLOCK/EAGAIN or EINTR, re-buffer the slot and return.
//  5. On any other error, reset the slot (discarding whatever partial
//     ancillary state was parsed) and forward it to the filled queue
//     empty, continuing with the next one; an empty filled entry reads
//     as zero segments and is immediately recyclable.
func (rx *Rx) Apply(u *ring.Unfilled) error {
	for {
		e, err := rx.next(u)
		if err != nil {
			if ioerr.IsAtCapacity(err) {
				return nil
			}
			return err
		}
		if e == nil {
			return nil
		}

		filled, recvErr := rx.conn.recvOne(e)
		switch {
		case recvErr == nil && filled:
			if err := u.PushFilled(e); err != nil {
				return err
			}
		case recvErr == nil:
			rx.pending = e
			return nil
		case ioerr.Classify(recvErr) == ioerr.CategoryTransient:
			rx.pending = e
			return nil
		default:
			e.Reset()
			if err := u.PushFilled(e); err != nil {
				return err
			}
		}
	}
}

// next returns the slot to process this iteration: the one deferred by
// a prior call, or a fresh PopFree from u.
func (rx *Rx) next(u *ring.Unfilled) (*packet.Entry, error) {
	if rx.pending != nil {
		e := rx.pending
		rx.pending = nil
		return e, nil
	}
	return u.PopFree()
}
