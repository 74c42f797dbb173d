// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package observe

import "time"

// LoopWakeup is published once per event-loop iteration, immediately
// after Select returns, recording which of the four signals spec.md
// §4.6 names fired. Any subset may be set.
type LoopWakeup struct {
	Timestamp time.Time
	RxReady   bool
	TxReady   bool
	Wakeup    bool
	Timeout   bool
}

// LoopSleep is published once per iteration, after the endpoint has
// been driven and the timer reprogrammed, recording how long the tick
// took and when the loop is next due to wake on its own.
type LoopSleep struct {
	Timestamp          time.Time
	ProcessingDuration time.Duration
	NextTimeout        time.Time
	HasTimeout         bool
}

// PlatformFeatureConfigured records the platform features a socket was
// bound with. socket.Bind does not publish it; cmd/quicio-echo
// publishes it once after a successful Bind, from its Config. Grounded
// on s2n-quic-platform's socket.rs/io/tokio.rs feature
// negotiation, which spec.md's event list drops but original_source/
// carries.
type PlatformFeatureConfigured struct {
	MaxMTU int
	GSO    bool
	GRO    bool
	ECN    bool
}

// PacketDropped describes a discarded packet. socket.Tx/Rx hold no
// Subscriber and publish nothing when they drop a packet after a
// permanent I/O error; cmd/quicio-echo publishes this event when its
// endpoint fails to queue or return a slot.
type PacketDropped struct {
	Timestamp time.Time
	Direction string // "tx" or "rx"
	Reason    string
}
