// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clock provides the monotonic time source reactor.Loop and
// reactor.Timer read from every iteration. Cached wraps
// github.com/agilira/go-timecache so a hot loop doesn't pay a vDSO call
// per tick.
package clock

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Clock is the time source the event loop and timer use. Grounded on
// s2n-quic-platform's Clock trait (a single now() method, no wall-clock
// semantics implied).
type Clock interface {
	Now() time.Time
}

// Cached is a Clock backed by go-timecache's background-refreshed
// cache, avoiding a syscall on every reactor.Select/Loop iteration.
type Cached struct {
	tc *timecache.TimeCache
}

// NewCached starts a cache refreshed at the given resolution. Call Stop
// when the endpoint shuts down.
func NewCached(resolution time.Duration) *Cached {
	return &Cached{tc: timecache.NewWithResolution(resolution)}
}

// Now returns the most recently cached time.
func (c *Cached) Now() time.Time { return c.tc.CachedTime() }

// Stop halts the background refresh goroutine.
func (c *Cached) Stop() { c.tc.Stop() }

// System is a Clock backed directly by time.Now, useful for tests that
// need real monotonic precision rather than go-timecache's resolution.
type System struct{}

func (System) Now() time.Time { return time.Now() }
