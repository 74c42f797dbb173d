// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket

import (
	"net/netip"

	"golang.org/x/sys/unix"
)

// toSockaddr converts a netip.AddrPort into the unix.Sockaddr sendmsg
// expects, in the address family the socket was bound to.
func toSockaddr(addr netip.AddrPort, v6 bool) unix.Sockaddr {
	if v6 {
		return &unix.SockaddrInet6{Port: int(addr.Port()), Addr: addr.Addr().As16()}
	}
	return &unix.SockaddrInet4{Port: int(addr.Port()), Addr: addr.Addr().As4()}
}

// fromSockaddr converts recvmsg's peer address back into a
// netip.AddrPort. ok is false for any Sockaddr type other than the two
// UDP uses.
func fromSockaddr(sa unix.Sockaddr) (addr netip.AddrPort, ok bool) {
	switch s := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(s.Addr), uint16(s.Port)), true
	case *unix.SockaddrInet6:
		return netip.AddrPortFrom(netip.AddrFrom16(s.Addr), uint16(s.Port)), true
	default:
		return netip.AddrPort{}, false
	}
}

// localAddr forms the local half of an inet.Handle from PKTINFO
// ancillary data and the socket's own bound port.
func localAddr(a netAddr, port uint16) (addr netip.AddrPort, ok bool) {
	switch len(a.ip) {
	case 4:
		return netip.AddrPortFrom(netip.AddrFrom4([4]byte(a.ip)), port), true
	case 16:
		return netip.AddrPortFrom(netip.AddrFrom16([16]byte(a.ip)), port), true
	default:
		return netip.AddrPort{}, false
	}
}
