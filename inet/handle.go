// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inet

import "net/netip"

// SocketAddress is a UDP-bound (IP, port) pair. It is kept as a value
// type (netip.AddrPort) so Handle can be compared and copied without
// allocation, matching the zero-copy slot-reuse design of the ring pair.
type SocketAddress = netip.AddrPort

// Handle identifies a network path as the tuple (remote address, local
// address). It is the quicio equivalent of s2n-quic-core's path::Handle:
// an opaque, comparable value used both to route outgoing datagrams and
// to decide whether two messages may be coalesced (GSO) into the same
// packet slot.
type Handle struct {
	Remote SocketAddress
	Local  SocketAddress
}

// StrictEqual reports whether h and other address exactly the same path.
// Used by the GSO coalescing rule in package packet: two messages may
// only share a slot if their path handles compare strictly equal.
func (h Handle) StrictEqual(other Handle) bool {
	return h.Remote == other.Remote && h.Local == other.Local
}

// Header is the per-segment metadata handed to an RX consumer alongside
// a decoded payload slice.
type Header struct {
	Path Handle
	ECN  ECN
}
