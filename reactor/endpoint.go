// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import (
	"time"

	"code.hybscloud.com/quicio/observe"
	"code.hybscloud.com/quicio/reactor/clock"
	"code.hybscloud.com/quicio/ring"
)

// Endpoint is the collaborator Loop drives every iteration. Grounded on
// spec.md §6's endpoint collaborator contract.
type Endpoint interface {
	// Wakeups returns a channel that receives once the number of
	// pending application-wakeup requests once any exist, plus an
	// error if the wakeup source is already known to be unusable.
	// Called fresh every iteration, mirroring event_loop.rs
	// constructing a new wakeups future each time around the loop.
	Wakeups(clk clock.Clock) (<-chan int, error)

	// Receive drains every filled slot in slice, via slice.Pop/Finish,
	// and hands segments to the QUIC-layer packet processing this
	// core does not itself implement.
	Receive(slice *ring.FilledSlice, clk clock.Clock)

	// Transmit pushes as many outgoing messages as slice has capacity
	// for.
	Transmit(slice *ring.UnfilledSlice, clk clock.Clock)

	// Timeout reports the endpoint's next wake timestamp, if any.
	Timeout() (time.Time, bool)

	// Subscriber receives every observability event Loop publishes.
	Subscriber() observe.Subscriber

	// SetMaxMTU configures the largest UDP payload the endpoint should
	// produce. Called once at construction.
	SetMaxMTU(mtu int)
}
