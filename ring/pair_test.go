// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring_test

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"code.hybscloud.com/quicio/inet"
	"code.hybscloud.com/quicio/ioerr"
	"code.hybscloud.com/quicio/ring"
)

type testMessage struct {
	handle inet.Handle
	ecn    inet.ECN
	body   []byte
}

func newTestMessage(n int) testMessage {
	return testMessage{
		handle: inet.Handle{
			Remote: netip.MustParseAddrPort("203.0.113.1:9000"),
			Local:  netip.MustParseAddrPort("203.0.113.2:9000"),
		},
		body: []byte("hello world")[:min(n, len("hello world"))],
	}
}

func (m testMessage) PathHandle() inet.Handle { return m.handle }
func (m testMessage) ECN() inet.ECN           { return m.ecn }
func (m testMessage) CanGSO(segmentSize, segmentCount uint16) bool {
	return len(m.body) <= int(segmentSize)
}
func (m testMessage) WritePayload(buf []byte, segmentIndex int) (int, error) {
	return copy(buf, m.body), nil
}

// TestSinglePacketRoundTrip covers scenario 1 at the ring-pair level.
func TestSinglePacketRoundTrip(t *testing.T) {
	u, f := ring.Pair(2048, 4)

	msg := newTestMessage(11)
	if err := u.Push(msg); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := u.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	e, err := f.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}

	_, seg, ok := e.NextSegment()
	if !ok || string(seg) != "hello world" {
		t.Fatalf("NextSegment: got (%q, %v)", seg, ok)
	}
	if _, _, ok := e.NextSegment(); ok {
		t.Fatal("NextSegment: want exhausted after one segment")
	}

	if err := f.Finish(e); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got := u.FreeLen(); got != 4 {
		t.Fatalf("FreeLen after finish: got %d, want 4", got)
	}
}

// TestBackPressure covers scenario 4: with count=2, a third push
// without draining fails AtCapacity; after the consumer drains and
// returns one slot, TxReady completes and the retry succeeds.
func TestBackPressure(t *testing.T) {
	u, f := ring.Pair(2048, 2)

	if err := u.Push(newTestMessage(11)); err != nil {
		t.Fatalf("Push(1): %v", err)
	}
	if err := u.Flush(); err != nil {
		t.Fatalf("Flush(1): %v", err)
	}
	if err := u.Push(newTestMessage(11)); err != nil {
		t.Fatalf("Push(2): %v", err)
	}
	if err := u.Flush(); err != nil {
		t.Fatalf("Flush(2): %v", err)
	}

	if err := u.Push(newTestMessage(11)); !errors.Is(err, ioerr.ErrAtCapacity) {
		t.Fatalf("Push(3): got %v, want ErrAtCapacity", err)
	}

	e, err := f.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if err := f.Finish(e); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := u.TxReady(ctx); err != nil {
		t.Fatalf("TxReady: %v", err)
	}
	if err := u.Push(newTestMessage(11)); err != nil {
		t.Fatalf("Push(retry): %v", err)
	}
}

// TestClosedPropagation covers scenario 6: dropping one end of a pair
// surfaces ErrClosed to the counterpart's next wait within a single
// wakeup.
func TestClosedPropagation(t *testing.T) {
	u, f := ring.Pair(2048, 4)
	u.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := f.Ready(ctx); !errors.Is(err, ioerr.ErrClosed) {
		t.Fatalf("Ready after Unfilled.Close: got %v, want ErrClosed", err)
	}
}
