// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build quicio_debug

package packet

// invariants panics when the buffer's cursor relationship breaks:
// readCursor <= writeCursor <= cap, and segmentCount is zero whenever
// segmentSize is. Compiled in only under the quicio_debug build tag,
// mirroring cfg!(debug_assertions) in the reference implementation.
func (b *Buffer) invariants() {
	if b.readCursor > b.writeCursor {
		panic("packet: readCursor past writeCursor: " + b.String())
	}
	if int(b.writeCursor) > len(b.data) {
		panic("packet: writeCursor past capacity: " + b.String())
	}
	if b.segmentSize == 0 && b.segmentCount != 0 {
		panic("packet: segmentCount set with zero segmentSize: " + b.String())
	}
}
