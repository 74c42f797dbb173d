// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packet_test

import (
	"errors"
	"net/netip"
	"testing"

	"code.hybscloud.com/quicio/inet"
	"code.hybscloud.com/quicio/packet"
)

type fakeMessage struct {
	handle inet.Handle
	ecn    inet.ECN
	body   []byte
}

func newFakeMessage(size int) fakeMessage {
	body := make([]byte, size)
	for i := range body {
		body[i] = byte(i)
	}
	return fakeMessage{
		handle: inet.Handle{
			Remote: netip.MustParseAddrPort("192.0.2.1:4433"),
			Local:  netip.MustParseAddrPort("192.0.2.2:4433"),
		},
		body: body,
	}
}

func (m fakeMessage) PathHandle() inet.Handle { return m.handle }
func (m fakeMessage) ECN() inet.ECN           { return m.ecn }
func (m fakeMessage) CanGSO(segmentSize, segmentCount uint16) bool {
	return len(m.body) <= int(segmentSize)
}
func (m fakeMessage) WritePayload(buf []byte, segmentIndex int) (int, error) {
	return copy(buf, m.body), nil
}

// TestSinglePacketRoundTrip covers scenario 1: one message pushed into
// an empty entry is readable back as exactly one segment.
func TestSinglePacketRoundTrip(t *testing.T) {
	e := packet.NewEntry(0, 0, 1200)
	msg := newFakeMessage(100)

	forceFlush, err := e.TryPush(msg)
	if err != nil {
		t.Fatalf("TryPush: %v", err)
	}
	if forceFlush {
		t.Fatal("TryPush: unexpected forceFlush with plenty of capacity remaining")
	}

	if e.Payload.SegmentCount() != 1 {
		t.Fatalf("SegmentCount: got %d, want 1", e.Payload.SegmentCount())
	}

	_, seg, ok := e.NextSegment()
	if !ok {
		t.Fatal("NextSegment: want one segment")
	}
	if len(seg) != 100 {
		t.Fatalf("segment length: got %d, want 100", len(seg))
	}
	if _, _, ok := e.NextSegment(); ok {
		t.Fatal("NextSegment: want no second segment")
	}
}

// TestGSOCoalescing covers scenario 2: 64 same-size, same-destination
// messages coalesce into a single slot as one GSO batch.
func TestGSOCoalescing(t *testing.T) {
	const segSize = 16
	const count = 64
	e := packet.NewEntry(0, 0, segSize*count)

	for i := 0; i < count; i++ {
		msg := newFakeMessage(segSize)
		forceFlush, err := e.TryPush(msg)
		if err != nil {
			t.Fatalf("TryPush(%d): %v", i, err)
		}
		if i < count-1 && forceFlush {
			t.Fatalf("TryPush(%d): unexpected forceFlush mid-batch", i)
		}
	}

	if got := e.Payload.SegmentCount(); got != count {
		t.Fatalf("SegmentCount: got %d, want %d", got, count)
	}

	n := 0
	for {
		_, seg, ok := e.NextSegment()
		if !ok {
			break
		}
		if len(seg) != segSize {
			t.Fatalf("segment %d length: got %d, want %d", n, len(seg), segSize)
		}
		n++
	}
	if n != count {
		t.Fatalf("segments read: got %d, want %d", n, count)
	}
}

// TestForceFlushWhenSlotFull verifies the capacity half of the
// force-flush rule: the slot's remaining capacity is too small for
// another segment of the established size, so the batch must be
// force-flushed.
func TestForceFlushWhenSlotFull(t *testing.T) {
	e := packet.NewEntry(0, 0, 100)

	forceFlush, err := e.TryPush(newFakeMessage(100))
	if err != nil {
		t.Fatalf("TryPush(1): %v", err)
	}
	if !forceFlush {
		t.Fatal("TryPush(1): want forceFlush since the slot has no room for a second 100-byte segment")
	}
}

// TestForceFlushOnUndersizedSegment verifies a segment shorter than an
// already-established segment size forces a flush even with capacity
// remaining.
func TestForceFlushOnUndersizedSegment(t *testing.T) {
	e := packet.NewEntry(0, 0, 4000)

	forceFlush, err := e.TryPush(newFakeMessage(100))
	if err != nil {
		t.Fatalf("TryPush(1): %v", err)
	}
	if forceFlush {
		t.Fatal("TryPush(1): unexpected forceFlush with capacity remaining")
	}

	forceFlush, err = e.TryPush(newFakeMessage(60))
	if err != nil {
		t.Fatalf("TryPush(2): %v", err)
	}
	if !forceFlush {
		t.Fatal("TryPush(2): want forceFlush on undersized segment terminating the batch")
	}
}

func TestTryPushIncompatibleDestination(t *testing.T) {
	e := packet.NewEntry(0, 0, 4000)
	if _, err := e.TryPush(newFakeMessage(100)); err != nil {
		t.Fatalf("TryPush(1): %v", err)
	}

	other := newFakeMessage(100)
	other.handle.Remote = netip.MustParseAddrPort("198.51.100.1:4433")
	if _, err := e.TryPush(other); !errors.Is(err, packet.ErrIncompatible) {
		t.Fatalf("TryPush(2): got %v, want ErrIncompatible", err)
	}
}

func TestEntryResetAfterFinish(t *testing.T) {
	e := packet.NewEntry(0, 0, 1200)
	if _, err := e.TryPush(newFakeMessage(100)); err != nil {
		t.Fatalf("TryPush: %v", err)
	}
	e.Finish()
	e.Reset()

	if !e.IsEmpty() {
		t.Fatal("IsEmpty: want true after Reset")
	}
	if _, err := e.TryPush(newFakeMessage(200)); err != nil {
		t.Fatalf("TryPush after reset: %v", err)
	}
}
