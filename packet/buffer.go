// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package packet implements the segment-oriented packet buffer that
// backs every slot in a ring pair (see package ring): a fixed-capacity
// byte region that packs one or more equal-sized UDP segments (GSO on
// the TX side, GRO on the RX side) plus the path/ECN metadata for the
// datagram(s) it carries. Grounded on s2n-quic-platform's
// io/channel.rs Entry/Buffer and rx.rs/tx.rs Entry traits.
package packet

import "fmt"

// Buffer is a fixed-capacity byte region carrying up to N equal-sized
// segments, plus the four cursors spec §3 requires.
type Buffer struct {
	data []byte

	segmentSize  uint16
	segmentCount uint16
	writeCursor  uint16
	readCursor   uint16
}

// NewBuffer allocates a Buffer able to hold up to maxPayload bytes.
func NewBuffer(maxPayload uint16) *Buffer {
	return &Buffer{data: make([]byte, maxPayload)}
}

// Cap returns the buffer's total byte capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// SegmentSize returns the size in bytes of each packed segment (0 when
// the buffer is empty).
func (b *Buffer) SegmentSize() uint16 { return b.segmentSize }

// SegmentCount returns the number of segments currently packed.
func (b *Buffer) SegmentCount() uint16 { return b.segmentCount }

// WriteCursor returns the byte offset at which the next segment would
// be written.
func (b *Buffer) WriteCursor() uint16 { return b.writeCursor }

// ReadCursor returns the byte offset of the next segment to be read.
func (b *Buffer) ReadCursor() uint16 { return b.readCursor }

// Reset restores the buffer to its all-zero cursor state. Idempotent:
// calling Reset twice is equivalent to calling it once.
func (b *Buffer) Reset() {
	b.segmentSize = 0
	b.segmentCount = 0
	b.writeCursor = 0
	b.readCursor = 0
	b.invariants()
}

// IsEmpty reports whether the buffer currently carries zero segments.
func (b *Buffer) IsEmpty() bool { return b.segmentCount == 0 }

// Bytes returns the packed bytes currently written, data[:writeCursor].
// Used by the TX socket driver to hand the whole coalesced datagram to
// a single sendmsg call.
func (b *Buffer) Bytes() []byte { return b.data[:b.writeCursor] }

// Raw returns the buffer's full backing storage. Used by the RX socket
// driver as the recvmsg target; call Entry.SetReceived afterwards to
// record how much of it holds a real datagram.
func (b *Buffer) Raw() []byte { return b.data }

// String implements fmt.Stringer for invariant-violation messages.
func (b *Buffer) String() string {
	return fmt.Sprintf(
		"Buffer{segmentSize: %d, segmentCount: %d, writeCursor: %d, readCursor: %d}",
		b.segmentSize, b.segmentCount, b.writeCursor, b.readCursor,
	)
}

// writeRegion returns the byte slice the next segment should be
// written into: the full buffer capacity if empty, or exactly
// segmentSize bytes starting at writeCursor otherwise. ok is false if
// the region would overflow the buffer.
func (b *Buffer) writeRegion() (region []byte, ok bool) {
	if b.segmentSize == 0 {
		return b.data, true
	}
	start := int(b.writeCursor)
	end := start + int(b.segmentSize)
	if end > len(b.data) {
		return nil, false
	}
	return b.data[start:end], true
}

// commitWrite records a successfully written segment of length n,
// updating segmentSize/segmentCount/writeCursor per spec §4.2 step 4.
func (b *Buffer) commitWrite(n uint16) {
	if b.segmentSize == 0 {
		b.segmentCount = 1
		b.segmentSize = n
		b.writeCursor = n
	} else {
		b.segmentCount++
		b.writeCursor += n
	}
	b.invariants()
}

// mustForceFlush reports whether, after committing a segment of length
// n, the slot must be force-flushed: either the segment was undersized
// (n < segmentSize) or the next segment would not fit (spec §4.2 step
// 5).
func (b *Buffer) mustForceFlush(n uint16) bool {
	if n < b.segmentSize {
		return true
	}
	return int(b.writeCursor)+int(b.segmentSize) > len(b.data)
}

// nextSegment returns the next unread segment and advances readCursor.
// Returns ok=false once readCursor reaches writeCursor.
func (b *Buffer) nextSegment() (region []byte, ok bool) {
	if b.readCursor == b.writeCursor {
		return nil, false
	}
	start := b.readCursor
	end := b.writeCursor
	if rem := end - start; rem > b.segmentSize {
		end = start + b.segmentSize
	}
	b.readCursor = end
	b.invariants()
	return b.data[start:end], true
}

// setReceived configures the buffer to describe a just-received
// datagram of length n, with GRO segment size segSize (0 means: treat
// the datagram as a single segment), per spec §4.5 RX step 3.
func (b *Buffer) setReceived(n int, segSize uint16) {
	b.readCursor = 0
	b.writeCursor = uint16(n)
	if segSize == 0 {
		b.segmentSize = uint16(n)
		b.segmentCount = 1
	} else {
		b.segmentSize = segSize
		b.segmentCount = uint16((n + int(segSize) - 1) / int(segSize))
	}
	b.invariants()
}
