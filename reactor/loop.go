// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import (
	"context"

	"code.hybscloud.com/quicio/observe"
	"code.hybscloud.com/quicio/reactor/clock"
	"code.hybscloud.com/quicio/ring"
)

// Loop drives endpoint against rx/tx until ctx is done or both ring-pair
// ends report Closed. Grounded on event_loop.rs's run loop (spec.md
// §4.7); receive-before-transmit ordering is mandatory so ACKs and
// newly available congestion window are reflected in the same tick's
// outgoing packets.
func Loop(ctx context.Context, clk clock.Clock, rx rxReadier, rxSlicer filledSlicer, tx txReadier, txSlicer unfilledSlicer, ep Endpoint) error {
	timer := NewTimer()
	defer timer.Stop()
	sub := ep.Subscriber()
	if sub == nil {
		sub = observe.NopSubscriber{}
	}

	for {
		wakeups, err := ep.Wakeups(clk)
		if err != nil {
			return err
		}

		outcome, err := Select(ctx, rx, tx, wakeups, timer)
		if err != nil {
			return err
		}

		wakeupTimestamp := clk.Now()
		sub.OnLoopWakeup(observe.LoopWakeup{
			Timestamp: wakeupTimestamp,
			RxReady:   outcome.RxFired && outcome.RxErr == nil,
			TxReady:   outcome.TxFired && outcome.TxErr == nil,
			Wakeup:    outcome.WakeupFired,
			Timeout:   outcome.TimeoutExpired,
		})

		if outcome.Shutdown() {
			return nil
		}

		if outcome.RxFired && outcome.RxErr == nil {
			if slice, ok := rxSlicer.TrySlice(); ok {
				ep.Receive(slice, clk)
				slice.Commit()
			}
		}

		// Regardless of outcome.TxErr: spec.md §4.7 step 5 runs the
		// transmit side unconditionally whenever a slice is available,
		// since a TX-side Closed still leaves any already-buffered
		// slots worth draining.
		if slice, ok := txSlicer.TrySlice(); ok {
			ep.Transmit(slice, clk)
			slice.Commit()
		}

		nextTimeout, hasTimeout := ep.Timeout()
		if hasTimeout {
			timer.Update(nextTimeout)
		}

		sleepTimestamp := clk.Now()
		sub.OnLoopSleep(observe.LoopSleep{
			Timestamp:          sleepTimestamp,
			ProcessingDuration: sleepTimestamp.Sub(wakeupTimestamp),
			NextTimeout:        nextTimeout,
			HasTimeout:         hasTimeout,
		})
	}
}

// filledSlicer is satisfied by *ring.Filled. *ring.Set offers its RX
// batch as TrySliceRX and so does not satisfy it.
type filledSlicer interface {
	TrySlice() (*ring.FilledSlice, bool)
}

// unfilledSlicer is satisfied by *ring.Unfilled and *ring.Set.
type unfilledSlicer interface {
	TrySlice() (*ring.UnfilledSlice, bool)
}
