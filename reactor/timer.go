// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import "time"

// Timer is an adjustable, absolute-time alarm: the event loop's fourth
// future (spec.md §4.6). Grounded on event_loop.rs's Timer, which wraps
// a platform timer reprogrammed every iteration the endpoint reports a
// next wake time (spec.md §5's "Timeouts").
type Timer struct {
	t     *time.Timer
	armed bool
}

// NewTimer returns a Timer with nothing scheduled; it never fires until
// Update is called.
func NewTimer() *Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return &Timer{t: t}
}

// Update reprograms the timer to fire at the absolute time ts, spec.md
// §4.7 step 6.
func (tm *Timer) Update(ts time.Time) {
	if tm.armed && !tm.t.Stop() {
		select {
		case <-tm.t.C:
		default:
		}
	}
	d := time.Until(ts)
	if d < 0 {
		d = 0
	}
	tm.t.Reset(d)
	tm.armed = true
}

// C returns the channel that fires when the timer expires.
func (tm *Timer) C() <-chan time.Time { return tm.t.C }

// Stop disarms the timer, releasing its resources.
func (tm *Timer) Stop() {
	if tm.armed && !tm.t.Stop() {
		select {
		case <-tm.t.C:
		default:
		}
	}
	tm.armed = false
}
