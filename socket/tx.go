// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket

import (
	"code.hybscloud.com/quicio/ioerr"
	"code.hybscloud.com/quicio/packet"
	"code.hybscloud.com/quicio/ring"
)

// Tx drains a ring pair's filled queue over a bound socket. It is the
// TX half of spec.md §4.5: one Tx per reactor worker, driven once per
// wakeup.
type Tx struct {
	conn *Conn

	// pending holds a slot that a transient send error deferred to the
	// next Apply call, taking the place of a fresh Pop.
	pending *packet.Entry
}

// NewTx returns a Tx sending over conn.
func NewTx(conn *Conn) *Tx { return &Tx{conn: conn} }

// Apply drains f until it is empty or a send yields a transient error,
// implementing spec.md §4.5's TX algorithm:
//
//  1. Pop a slot, send its packed payload in one sendmsg carrying ECN
//     and GSO control messages.
//  2. On success, return the slot to the unfilled pool and continue.
//  3. On EWOULDBLOCK/EAGAIN or EINTR, re-buffer the slot and return,
//     yielding to the scheduler until the next wakeup.
//  4. On any other error, drop the packet (reset, return the slot)
//     and continue with the next one.
func (tx *Tx) Apply(f *ring.Filled) error {
	for {
		e, err := tx.next(f)
		if err != nil {
			if ioerr.IsAtCapacity(err) {
				return nil
			}
			return err
		}
		if e == nil {
			return nil
		}

		sendErr := tx.conn.sendOne(e)
		switch {
		case sendErr == nil:
			if err := f.Finish(e); err != nil {
				return err
			}
		case ioerr.Classify(sendErr) == ioerr.CategoryTransient:
			tx.pending = e
			return nil
		default:
			e.Reset()
			if err := f.Finish(e); err != nil {
				return err
			}
		}
	}
}

// next returns the slot to process this iteration: the one deferred by
// a prior transient error, or a fresh Pop from f.
func (tx *Tx) next(f *ring.Filled) (*packet.Entry, error) {
	if tx.pending != nil {
		e := tx.pending
		tx.pending = nil
		return e, nil
	}
	return f.Pop()
}
