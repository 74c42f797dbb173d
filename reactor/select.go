// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import (
	"context"

	"code.hybscloud.com/quicio/ioerr"
)

// Outcome is the result of one Select call: spec.md §4.6's four-signal
// struct, restated in Go as four independent fired/error pairs since Go
// has no Option<Result<T,E>> — RxFired/TxFired false corresponds to
// "None", true with a nil error to "Some(Ok(()))", true with a non-nil
// error to "Some(Err(...))".
type Outcome struct {
	RxFired bool
	RxErr   error

	TxFired bool
	TxErr   error

	WakeupFired bool
	WakeupCount int

	TimeoutExpired bool
}

// Shutdown reports whether both the RX and TX futures reported Closed
// on this wake, the condition spec.md §4.6 names as endpoint shutdown.
func (o Outcome) Shutdown() bool {
	return o.RxFired && ioerr.IsClosed(o.RxErr) && o.TxFired && ioerr.IsClosed(o.TxErr)
}

// rxReadier is satisfied by *ring.Filled and *ring.Set: both block
// until a full slot is available or the pair closes.
type rxReadier interface {
	Ready(ctx context.Context) error
}

// txReadier is satisfied by *ring.Unfilled and *ring.Set: both block
// until a free slot is available or the pair closes.
type txReadier interface {
	TxReady(ctx context.Context) error
}

type signal struct {
	fromRx bool
	fromTx bool
	err    error
}

// Select polls the RX-ready, TX-ready, application-wakeup, and timer
// signals concurrently within one call, matching spec.md §4.6. rx and
// tx already own their blocking wait (Ready/TxReady); Select fans them
// into goroutines feeding one shared channel rather than
// re-implementing their readiness logic. wakeups is the channel
// Endpoint.Wakeups returned this iteration.
//
// Every goroutine is spawned fresh per call, mirroring event_loop.rs's
// "construct fresh rx_task/tx_task/wakeups" each iteration; any that
// haven't fired by the time Select returns simply complete later
// against the same long-lived ctx, same as a dropped Future — and the
// next iteration's fresh Ready/TxReady call observes the condition
// immediately via its own non-blocking fast path, so nothing is lost.
func Select(ctx context.Context, rx rxReadier, tx txReadier, wakeups <-chan int, timer *Timer) (Outcome, error) {
	results := make(chan signal, 2)
	go func() { results <- signal{fromRx: true, err: rx.Ready(ctx)} }()
	go func() { results <- signal{fromTx: true, err: tx.TxReady(ctx)} }()

	var out Outcome
	select {
	case s := <-results:
		applySignal(&out, s)
	case n := <-wakeups:
		out.WakeupFired = true
		out.WakeupCount = n
	case <-timer.C():
		out.TimeoutExpired = true
	case <-ctx.Done():
		return out, ctx.Err()
	}

	// Any subset of the four signals may fire on a single wake
	// (spec.md §4.6): drain whatever else is already available without
	// blocking further.
	for {
		select {
		case s := <-results:
			applySignal(&out, s)
		case n := <-wakeups:
			out.WakeupFired = true
			out.WakeupCount = n
		case <-timer.C():
			out.TimeoutExpired = true
		default:
			return out, nil
		}
	}
}

func applySignal(out *Outcome, s signal) {
	switch {
	case s.fromRx:
		out.RxFired = true
		out.RxErr = s.err
	case s.fromTx:
		out.TxFired = true
		out.TxErr = s.err
	}
}
