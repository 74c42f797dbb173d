// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packet

import "code.hybscloud.com/quicio/inet"

// Message is anything an application can push onto an Unfilled ring
// slot: it supplies the path/ECN for the datagram and writes its
// payload into a caller-provided region. Grounded on s2n-quic-platform
// io/channel.rs's tx::Message trait.
type Message interface {
	// PathHandle returns the remote/local address pair this message
	// should be sent on.
	PathHandle() inet.Handle
	// ECN returns the congestion marking to send this message with.
	ECN() inet.ECN
	// CanGSO reports whether this message may be coalesced into an
	// existing GSO batch of the given segment size and count.
	CanGSO(segmentSize uint16, segmentCount uint16) bool
	// WritePayload writes the message body into buf, which is exactly
	// segmentSize bytes (or the full slot capacity for the first
	// segment of a slot), and returns the number of bytes written.
	// segmentIndex is the zero-based index this write will occupy
	// within the entry's GSO batch (equal to the entry's current
	// segment count before the write).
	WritePayload(buf []byte, segmentIndex int) (int, error)
}
