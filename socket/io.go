// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket

import (
	"encoding/binary"
	"net"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/quicio/inet"
	"code.hybscloud.com/quicio/packet"
)

// maxAncillarySize bounds the oob buffer recvmsg is given: one TOS/
// TCLASS cmsg, one GRO cmsg, one PKTINFO cmsg, each cmsg-aligned.
const maxAncillarySize = 128

func (c *Conn) localPort() uint16 {
	if a, ok := c.udp.LocalAddr().(*net.UDPAddr); ok {
		return uint16(a.Port)
	}
	return 0
}

// sendOne issues one non-blocking sendmsg for e's packed payload,
// carrying ECN and (when enabled) GSO segment-size control messages.
// Grounded on s2n-quic-platform's socket/msg.rs send(), using
// syscall.RawConn.Control rather than net.UDPConn.Write so a single
// syscall attempt's EAGAIN/EINTR surfaces directly instead of being
// retried by the runtime poller (spec.md §7 requires the driver to see
// and classify each individual error).
func (c *Conn) sendOne(e *packet.Entry) error {
	w := newAncillaryWriter(32)
	if c.v6 {
		var tc [4]byte
		binary.NativeEndian.PutUint32(tc[:], uint32(e.ECN.ToTOS()))
		w.put(unix.IPPROTO_IPV6, unix.IPV6_TCLASS, tc[:])
	} else {
		w.put(unix.IPPROTO_IP, unix.IP_TOS, []byte{e.ECN.ToTOS()})
	}
	if c.gso && e.Payload.SegmentCount() > 1 {
		var seg [2]byte
		binary.NativeEndian.PutUint16(seg[:], e.Payload.SegmentSize())
		w.put(unix.IPPROTO_UDP, udpSegmentCmsg, seg[:])
	}

	buf := e.Payload.Bytes()
	sa := toSockaddr(e.Handle.Remote, c.v6)

	var sendErr error
	ctrlErr := c.raw.Control(func(fd uintptr) {
		_, sendErr = unix.SendmsgN(int(fd), buf, w.bytes(), sa, unix.MSG_DONTWAIT)
	})
	if ctrlErr != nil {
		return ctrlErr
	}
	return sendErr
}

// recvOne issues one non-blocking recvmsg into e's full backing
// buffer. filled reports whether a real datagram was received and e
// now describes it; filled is false (with err nil) on the "nothing
// available" condition spec.md §4.5 RX step 2 names: zero bytes or no
// reported peer address.
func (c *Conn) recvOne(e *packet.Entry) (filled bool, err error) {
	oob := make([]byte, maxAncillarySize)
	buf := e.Payload.Raw()

	var n, oobn int
	var from unix.Sockaddr
	var recvErr error
	ctrlErr := c.raw.Control(func(fd uintptr) {
		n, oobn, _, from, recvErr = unix.Recvmsg(int(fd), buf, oob, unix.MSG_DONTWAIT)
	})
	if ctrlErr != nil {
		return false, ctrlErr
	}
	if recvErr != nil {
		return false, recvErr
	}

	remote, ok := fromSockaddr(from)
	if n == 0 || !ok {
		return false, nil
	}

	anc, _ := parseAncillary(oob[:oobn], c.v6)
	local, ok := localAddr(anc.local, c.localPort())
	if !ok {
		local = c.udp.LocalAddr().(*net.UDPAddr).AddrPort()
	}

	e.SetReceived(inet.Handle{Remote: remote, Local: local}, inet.ECNFromTOS(uint8(anc.ecn)), n, uint16(anc.segmentLen))
	return true, nil
}
