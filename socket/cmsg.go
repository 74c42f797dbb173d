// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux UDP-level cmsg types not exposed as named constants by every
// golang.org/x/sys/unix release; values are from linux/udp.h and are
// stable across kernel versions.
const (
	udpSegmentCmsg = 103 // UDP_SEGMENT: GSO segment size, TX.
	udpGROCmsg     = 104 // UDP_GRO: GRO segment size, RX.
)

// ancillaryWriter builds a control-message buffer for sendmsg, one
// cmsg at a time.
type ancillaryWriter struct {
	buf []byte
}

func newAncillaryWriter(capacity int) *ancillaryWriter {
	return &ancillaryWriter{buf: make([]byte, 0, capacity)}
}

// put appends one cmsg of the given level/type carrying data.
func (a *ancillaryWriter) put(level, typ int, data []byte) {
	start := len(a.buf)
	a.buf = append(a.buf, make([]byte, unix.CmsgSpace(len(data)))...)

	h := (*unix.Cmsghdr)(unsafe.Pointer(&a.buf[start]))
	h.Level = int32(level)
	h.Type = int32(typ)
	h.SetLen(unix.CmsgLen(len(data)))

	copy(a.buf[start+unix.CmsgLen(0):], data)
}

func (a *ancillaryWriter) bytes() []byte { return a.buf }

// ancillaryRX is the subset of RX control data spec.md §4.5 needs:
// the ECN marking, the GRO segment size (0 meaning none/one segment),
// and the local address the datagram arrived on.
type ancillaryRX struct {
	ecn        int
	segmentLen int
	local      netAddr
}

// netAddr carries an IP and optional interface index, enough to form
// an inet.SocketAddress once paired with the receiving socket's port.
type netAddr struct {
	ip     []byte
	ifaceI int32
}

func parseAncillary(oob []byte, v6 bool) (ancillaryRX, error) {
	var out ancillaryRX

	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return out, err
	}

	for _, m := range msgs {
		switch {
		case !v6 && m.Header.Level == unix.IPPROTO_IP && m.Header.Type == unix.IP_TOS && len(m.Data) >= 1:
			out.ecn = int(m.Data[0] & 0x3)
		case v6 && m.Header.Level == unix.IPPROTO_IPV6 && m.Header.Type == unix.IPV6_TCLASS && len(m.Data) >= 4:
			out.ecn = int(m.Data[0] & 0x3)
		case m.Header.Level == unix.IPPROTO_UDP && m.Header.Type == udpGROCmsg && len(m.Data) >= 2:
			out.segmentLen = int(binary.NativeEndian.Uint16(m.Data))
		case !v6 && m.Header.Level == unix.IPPROTO_IP && m.Header.Type == unix.IP_PKTINFO && len(m.Data) >= 12:
			pktinfo := (*unix.Inet4Pktinfo)(unsafe.Pointer(&m.Data[0]))
			out.local = netAddr{ip: append([]byte(nil), pktinfo.Addr[:]...), ifaceI: pktinfo.Ifindex}
		case v6 && m.Header.Level == unix.IPPROTO_IPV6 && m.Header.Type == unix.IPV6_PKTINFO && len(m.Data) >= 20:
			pktinfo := (*unix.Inet6Pktinfo)(unsafe.Pointer(&m.Data[0]))
			out.local = netAddr{ip: append([]byte(nil), pktinfo.Addr[:]...), ifaceI: int32(pktinfo.Ifindex)}
		}
	}

	return out, nil
}
