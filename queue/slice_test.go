// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"testing"

	"code.hybscloud.com/quicio/queue"
)

func TestProducerSliceBatch(t *testing.T) {
	p, c := queue.NewSPSC[int](8)

	slice, ok := p.TrySlice()
	if !ok {
		t.Fatal("TrySlice: want ok on empty-but-not-full queue")
	}
	for i := range 5 {
		if !slice.Push(i) {
			t.Fatalf("Push(%d) failed", i)
		}
	}
	slice.Commit()

	if got := c.Len(); got != 5 {
		t.Fatalf("Len: got %d, want 5", got)
	}

	cslice, ok := c.TrySlice()
	if !ok {
		t.Fatal("TrySlice: want ok on non-empty queue")
	}
	for i := range 5 {
		v, ok := cslice.Pop()
		if !ok || v != i {
			t.Fatalf("Pop(%d): got (%d, %v)", i, v, ok)
		}
	}
	if _, ok := cslice.Pop(); ok {
		t.Fatal("Pop past claimed batch should fail")
	}
	cslice.Commit()

	if got := c.Len(); got != 0 {
		t.Fatalf("Len after commit: got %d, want 0", got)
	}
	if got := p.Capacity(); got != 8 {
		t.Fatalf("Capacity after drain: got %d, want 8", got)
	}
}

func TestConsumerSliceEmptyQueue(t *testing.T) {
	p, c := queue.NewSPSC[int](4)
	if _, ok := c.TrySlice(); ok {
		t.Fatal("TrySlice on empty queue should fail")
	}
	_ = p
}
