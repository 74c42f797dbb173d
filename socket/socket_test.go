// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket_test

import (
	"net/netip"
	"testing"
	"time"

	"code.hybscloud.com/quicio/inet"
	"code.hybscloud.com/quicio/packet"
	"code.hybscloud.com/quicio/ring"
	"code.hybscloud.com/quicio/socket"
)

type loopMessage struct {
	to   inet.Handle
	body []byte
}

func (m loopMessage) PathHandle() inet.Handle              { return m.to }
func (m loopMessage) ECN() inet.ECN                        { return inet.NotECT }
func (m loopMessage) CanGSO(segSize, segCount uint16) bool { return false }
func (m loopMessage) WritePayload(buf []byte, segmentIndex int) (int, error) {
	return copy(buf, m.body), nil
}

func TestLoopbackRoundTrip(t *testing.T) {
	a, err := socket.Bind("udp4", "127.0.0.1:0", socket.Options{})
	if err != nil {
		t.Fatalf("bind a: %v", err)
	}
	defer a.Close()
	b, err := socket.Bind("udp4", "127.0.0.1:0", socket.Options{})
	if err != nil {
		t.Fatalf("bind b: %v", err)
	}
	defer b.Close()

	bAddrPort, err := netip.ParseAddrPort(b.LocalAddr().String())
	if err != nil {
		t.Fatalf("parse b addr: %v", err)
	}

	txUnfilled, txFilled := ring.Pair(1200, 4)
	rxUnfilled, rxFilled := ring.Pair(1200, 4)

	payload := []byte("hello over loopback")
	if err := txUnfilled.Push(loopMessage{to: inet.Handle{Remote: bAddrPort}, body: payload}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := txUnfilled.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	tx := socket.NewTx(a)
	if err := tx.Apply(txFilled); err != nil {
		t.Fatalf("tx apply: %v", err)
	}

	rx := socket.NewRx(b)
	deadline := time.Now().Add(2 * time.Second)
	var e *packet.Entry
	for time.Now().Before(deadline) {
		if err := rx.Apply(rxUnfilled); err != nil {
			t.Fatalf("rx apply: %v", err)
		}
		var ok bool
		e, ok = popFilled(rxFilled)
		if ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if e == nil {
		t.Fatal("timed out waiting for datagram")
	}
	defer rxFilled.Finish(e)

	_, seg, ok := e.NextSegment()
	if !ok {
		t.Fatal("no segment received")
	}
	if string(seg) != string(payload) {
		t.Fatalf("got %q, want %q", seg, payload)
	}
}

func popFilled(f *ring.Filled) (*packet.Entry, bool) {
	e, err := f.Pop()
	if err != nil {
		return nil, false
	}
	return e, true
}
