// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package socket adapts a non-blocking UDP socket to a ring pair (see
// package ring): Tx drains a Filled end with sendmsg, Rx fills an
// Unfilled end with recvmsg, both carrying ECN, GSO/GRO segment size,
// and local-address ancillary data. Both drive the ring pair one slot
// at a time rather than through ring's batch Slice types, since a
// transient send/receive error must carry an in-flight slot across
// Apply calls — a retry-buffer that would conflict with a
// ConsumerSlice's claim-then-commit contract.
//
// Binding and basic ancillary-data enablement go through
// golang.org/x/net/ipv4 and ipv6's PacketConn, which know how to turn
// on IP_RECVTOS/IPV6_RECVTCLASS and IP_PKTINFO/IPV6_PKTINFO at bind
// time. Actual datagram I/O goes through golang.org/x/sys/unix's raw
// sendmsg/recvmsg, since the GSO (UDP_SEGMENT) and GRO (UDP_GRO)
// control messages spec.md requires are Linux UDP-level cmsgs that
// neither PacketConn type parses.
//
// Grounded on s2n-quic-platform's src/socket.rs (bind/configure) and
// src/socket/msg.rs (sendmsg/recvmsg with the same four ancillary
// message kinds).
package socket
