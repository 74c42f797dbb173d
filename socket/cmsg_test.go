// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package socket

import (
	"encoding/binary"
	"testing"

	"golang.org/x/sys/unix"
)

func TestAncillaryTOSRoundTrip(t *testing.T) {
	w := newAncillaryWriter(32)
	w.put(unix.IPPROTO_IP, unix.IP_TOS, []byte{0x02}) // ECT0, low 2 bits = 0b10

	got, err := parseAncillary(w.bytes(), false)
	if err != nil {
		t.Fatalf("parseAncillary: %v", err)
	}
	if got.ecn != 0x2 {
		t.Fatalf("ecn = %d, want 2", got.ecn)
	}
}

func TestAncillaryGROSegmentLen(t *testing.T) {
	var seg [2]byte
	binary.NativeEndian.PutUint16(seg[:], 1000)

	w := newAncillaryWriter(32)
	w.put(unix.IPPROTO_UDP, udpGROCmsg, seg[:])

	got, err := parseAncillary(w.bytes(), false)
	if err != nil {
		t.Fatalf("parseAncillary: %v", err)
	}
	if got.segmentLen != 1000 {
		t.Fatalf("segmentLen = %d, want 1000", got.segmentLen)
	}
}
