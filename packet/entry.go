// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packet

import (
	"errors"

	"code.hybscloud.com/quicio/inet"
)

// ErrIncompatible is returned by TryPush when the buffered slot cannot
// accept the given message because its destination, ECN marking, or
// segment size differs from what is already packed into the slot. The
// caller (package ring) must force-flush the current slot and retry
// the message against a fresh one.
var ErrIncompatible = errors.New("packet: message incompatible with buffered slot")

// Entry is one slot of a ring pair: a segment Buffer plus the
// path/ECN metadata describing every segment currently packed into
// it, and the routing identifiers used by ring sets. Grounded on
// s2n-quic-platform io/channel.rs's Entry<H>/InnerEntry.
type Entry struct {
	Handle  inet.Handle
	ECN     inet.ECN
	Payload *Buffer

	// ID identifies this slot within its owning ring pair.
	ID uint16
	// Queue identifies which ring of a Set this slot belongs to. The
	// ring package sets it at construction and does not read it when
	// a slot is returned.
	Queue uint16
}

// NewEntry allocates an Entry with the given routing identifiers and
// a Buffer able to hold maxPayload bytes.
func NewEntry(id, queue uint16, maxPayload uint16) *Entry {
	return &Entry{ID: id, Queue: queue, Payload: NewBuffer(maxPayload)}
}

// Reset clears the entry's buffer and metadata so it can be reused by
// a new message on the TX side, or a new datagram on the RX side.
func (e *Entry) Reset() {
	e.Payload.Reset()
	e.Handle = inet.Handle{}
	e.ECN = 0
}

// IsEmpty reports whether the entry currently carries no segments.
func (e *Entry) IsEmpty() bool { return e.Payload.IsEmpty() }

// TryPush attempts to coalesce msg into this entry's buffer.
//
// If the buffer already carries one or more segments, msg must target
// the same path, ECN marking, and segment size (via CanGSO); if it
// does not, TryPush returns ErrIncompatible without modifying the
// entry so the caller can force-flush and retry against a fresh slot.
//
// On success, forceFlush reports whether the entry must be flushed
// immediately: the written segment was shorter than the batch's
// segment size (a GSO batch is terminated by its last, possibly
// short, segment) or the next segment would not fit in the
// remaining capacity.
func (e *Entry) TryPush(msg Message) (forceFlush bool, err error) {
	empty := e.Payload.IsEmpty()
	if !empty && !msg.CanGSO(e.Payload.SegmentSize(), e.Payload.SegmentCount()) {
		return false, ErrIncompatible
	}
	if !empty && (!msg.PathHandle().StrictEqual(e.Handle) || msg.ECN() != e.ECN) {
		return false, ErrIncompatible
	}

	region, ok := e.Payload.writeRegion()
	if !ok {
		// mustForceFlush should have caught this after the previous
		// commit; treat it the same as any other incompatibility so
		// the caller retries msg against a fresh slot instead of
		// assuming it was written.
		return false, ErrIncompatible
	}

	n, err := msg.WritePayload(region, int(e.Payload.SegmentCount()))
	if err != nil {
		return false, err
	}

	if empty {
		e.Handle = msg.PathHandle()
		e.ECN = msg.ECN()
	}
	e.Payload.commitWrite(uint16(n))

	return e.Payload.mustForceFlush(uint16(n)), nil
}

// SetReceived configures the entry to describe a just-received
// datagram of length n carrying GRO segments of segSize bytes each
// (segSize == 0 means: a single, unsegmented datagram), at the given
// path with the given ECN marking.
func (e *Entry) SetReceived(handle inet.Handle, ecn inet.ECN, n int, segSize uint16) {
	e.Handle = handle
	e.ECN = ecn
	e.Payload.setReceived(n, segSize)
}

// NextSegment returns the path/ECN header and the next unread segment
// of a received datagram, advancing the read cursor. ok is false once
// every segment has been consumed.
func (e *Entry) NextSegment() (hdr inet.Header, segment []byte, ok bool) {
	segment, ok = e.Payload.nextSegment()
	if !ok {
		return inet.Header{}, nil, false
	}
	return inet.Header{Path: e.Handle, ECN: e.ECN}, segment, true
}

// Finish marks every segment of a received datagram as consumed,
// regardless of how many NextSegment calls were made. The entry is
// then ready to be returned to its ring's Filled->Unfilled cycle.
func (e *Entry) Finish() {
	e.Payload.readCursor = e.Payload.writeCursor
	e.Payload.invariants()
}
