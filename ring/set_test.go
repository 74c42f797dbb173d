// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring_test

import (
	"testing"

	"code.hybscloud.com/quicio/ring"
)

// TestSetRoundRobin covers scenario 5: with N=3 pairs, six successive
// TrySlice calls on the producer side acquire slices from pairs
// 0, 1, 2, 0, 1, 2 in order.
func TestSetRoundRobin(t *testing.T) {
	s := ring.NewSet(2048, 8, 3)

	for i := 0; i < 6; i++ {
		slice, ok := s.TrySlice()
		if !ok {
			t.Fatalf("TrySlice(%d): want ok", i)
		}
		if slice.Len() == 0 {
			t.Fatalf("TrySlice(%d): want a non-empty batch on a fresh set", i)
		}
		e, ok := slice.Pop()
		if !ok {
			t.Fatalf("TrySlice(%d): Pop: want a slot", i)
		}
		if want := uint16(i % 3); e.Queue != want {
			t.Fatalf("TrySlice(%d): slot from pair %d, want pair %d", i, e.Queue, want)
		}
		if err := slice.PushFilled(e); err != nil {
			t.Fatalf("TrySlice(%d): PushFilled: %v", i, err)
		}
		slice.Commit()
	}
}

func TestSetRoutingOnReturn(t *testing.T) {
	s := ring.NewSet(2048, 4, 3)

	slice, ok := s.TrySlice()
	if !ok {
		t.Fatal("TrySlice: want ok")
	}
	e, ok := slice.Pop()
	if !ok {
		t.Fatal("Pop: want a slot")
	}
	wantQueue := e.Queue
	slice.Commit()

	if err := slice.PushFilled(e); err != nil {
		t.Fatalf("PushFilled: %v", err)
	}

	for {
		fs, ok := s.TrySliceRX()
		if !ok {
			t.Fatal("TrySliceRX: want the just-filled slot")
		}
		got, ok := fs.Pop()
		if !ok {
			fs.Commit()
			continue
		}
		if got.Queue != wantQueue {
			t.Fatalf("routed slot queue: got %d, want %d", got.Queue, wantQueue)
		}
		if err := fs.Finish(got); err != nil {
			t.Fatalf("Finish: %v", err)
		}
		fs.Commit()
		break
	}
}
