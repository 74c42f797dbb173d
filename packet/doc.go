// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package packet defines the slot type moved through a ring pair
// (package ring): Entry pairs a segment Buffer with the path/ECN
// metadata of the datagram(s) it carries.
//
// On the TX side, Entry.TryPush coalesces successive Message values
// of matching destination, ECN, and segment size into one GSO batch,
// signalling force-flush once a short segment terminates the batch or
// the slot runs out of room. On the RX side, Entry.SetReceived
// records a GRO'd datagram and Entry.NextSegment walks its packed
// segments one at a time.
//
// Build with -tags quicio_debug to enable cursor invariant checks;
// they are compiled out otherwise.
package packet
