// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	"golang.org/x/sys/unix"
)

// Options configures a bound socket's platform features.
type Options struct {
	// ReusePort sets SO_REUSEPORT, letting multiple sockets bind the
	// same address (spec.md §6, one socket per reactor worker).
	ReusePort bool
	// GSO enables UDP_SEGMENT on the TX path.
	GSO bool
	// GRO enables UDP_GRO on the RX path.
	GRO bool
}

// Conn is a bound, non-blocking UDP socket configured for the
// ancillary-data protocol spec.md §6 requires.
type Conn struct {
	udp *net.UDPConn
	raw syscall.RawConn
	v6  bool
	gso bool
	gro bool
}

// Bind opens a UDP socket on address, applying Options at the
// setsockopt level described in spec.md §6: SO_REUSEPORT,
// IP_MTU_DISCOVER=PROBE, UDP_GRO, plus enabling the kernel's TOS/
// traffic-class and PKTINFO ancillary data collection via
// golang.org/x/net's PacketConn wrappers. Grounded on
// s2n-quic-platform's socket.rs bind()/configure()/configure_gro().
func Bind(network, address string, opts Options) (*Conn, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				if opts.ReusePort {
					if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); e != nil {
						ctrlErr = e
						return
					}
				}
				_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_MTU_DISCOVER, unix.IP_PMTUDISC_PROBE)
				if opts.GRO {
					if e := unix.SetsockoptInt(int(fd), unix.IPPROTO_UDP, udpGROCmsg, 1); e != nil {
						ctrlErr = e
					}
				}
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}

	pc, err := lc.ListenPacket(context.Background(), network, address)
	if err != nil {
		return nil, err
	}
	udpConn := pc.(*net.UDPConn)

	v6 := false
	if addr, ok := udpConn.LocalAddr().(*net.UDPAddr); ok {
		v6 = addr.IP.To4() == nil
	}

	if v6 {
		p6 := ipv6.NewPacketConn(udpConn)
		_ = p6.SetControlMessage(ipv6.FlagTrafficClass|ipv6.FlagSrc|ipv6.FlagDst|ipv6.FlagInterface, true)
	} else {
		p4 := ipv4.NewPacketConn(udpConn)
		_ = p4.SetControlMessage(ipv4.FlagTOS|ipv4.FlagSrc|ipv4.FlagDst|ipv4.FlagInterface, true)
	}

	raw, err := udpConn.SyscallConn()
	if err != nil {
		return nil, err
	}

	return &Conn{udp: udpConn, raw: raw, v6: v6, gso: opts.GSO, gro: opts.GRO}, nil
}

// LocalAddr returns the socket's bound local address.
func (c *Conn) LocalAddr() net.Addr { return c.udp.LocalAddr() }

// Close closes the underlying socket.
func (c *Conn) Close() error { return c.udp.Close() }
