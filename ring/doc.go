// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring implements the unfilled/filled ring pair: a closed
// cycle of count packet.Entry slots moved between two SPSC queues
// (package queue). One side (Unfilled) pops empty slots and fills
// them, either message-by-message with TX coalescing (Push), in bulk
// (TrySlice), or one slot at a time for a socket driver (PopFree/
// PushFilled); the other side (Filled) pops
// full slots, drains them, and returns them empty via Finish.
//
// Set aggregates N ring pairs behind the same interface with a
// round-robin producer cursor, for endpoints fed by more than one
// kernel queue or socket.
//
// Grounded on s2n-quic-platform's io/channel.rs pair()/Unfilled/Filled
// and the ring-set behavior described by its UnfilledSet/FilledSet.
package ring
