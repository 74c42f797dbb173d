// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/quicio/ioerr"
	"code.hybscloud.com/quicio/queue"
)

func TestSPSCBasic(t *testing.T) {
	p, c := queue.NewSPSC[int](3)

	if p.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", p.Cap())
	}

	for i := range 4 {
		if err := p.Enqueue(i + 100); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	if err := p.Enqueue(999); !errors.Is(err, ioerr.ErrAtCapacity) {
		t.Fatalf("Enqueue on full: got %v, want ErrAtCapacity", err)
	}

	for i := range 4 {
		v, err := c.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if v != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, v, i+100)
		}
	}

	if _, err := c.Dequeue(); !errors.Is(err, ioerr.ErrAtCapacity) {
		t.Fatalf("Dequeue on empty: got %v, want ErrAtCapacity", err)
	}
}

// TestSPSCRoundTrip covers the "ring-pair round-trip" property: pushing
// K <= capacity items then popping K yields identical items in order.
func TestSPSCRoundTrip(t *testing.T) {
	p, c := queue.NewSPSC[string](8)
	want := []string{"a", "b", "c", "d", "e"}
	for _, v := range want {
		if err := p.Enqueue(v); err != nil {
			t.Fatalf("Enqueue(%q): %v", v, err)
		}
	}
	for _, v := range want {
		got, err := c.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if got != v {
			t.Fatalf("Dequeue: got %q, want %q", got, v)
		}
	}
}

func TestSPSCClosedPropagation(t *testing.T) {
	p, c := queue.NewSPSC[int](4)
	p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.Ready(ctx); !errors.Is(err, ioerr.ErrClosed) {
		t.Fatalf("Ready after producer close: got %v, want ErrClosed", err)
	}
}

func TestSPSCClosedAfterDrain(t *testing.T) {
	p, c := queue.NewSPSC[int](4)
	_ = p.Enqueue(1)
	p.Close()

	if v, err := c.Dequeue(); err != nil || v != 1 {
		t.Fatalf("Dequeue before drain: got (%d, %v)", v, err)
	}
	if _, err := c.Dequeue(); !errors.Is(err, ioerr.ErrClosed) {
		t.Fatalf("Dequeue after drain+close: got %v, want ErrClosed", err)
	}
}

func TestSPSCReadyWakesOnEnqueue(t *testing.T) {
	p, c := queue.NewSPSC[int](4)

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- c.Ready(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	if err := p.Enqueue(42); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Ready: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ready did not wake up on Enqueue")
	}
}

func TestSPSCProducerReadyWakesOnDequeue(t *testing.T) {
	p, c := queue.NewSPSC[int](2)
	_ = p.Enqueue(1)
	_ = p.Enqueue(2)
	if p.Capacity() != 0 {
		t.Fatalf("Capacity: got %d, want 0", p.Capacity())
	}

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- p.Ready(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	if _, err := c.Dequeue(); err != nil {
		t.Fatalf("Dequeue: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Ready: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ready did not wake up on Dequeue")
	}
}
