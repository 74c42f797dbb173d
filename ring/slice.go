// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import (
	"code.hybscloud.com/quicio/packet"
	"code.hybscloud.com/quicio/queue"
)

// UnfilledSlice is a batch of empty slots claimed from a ring pair's
// unfilled queue: pop a slot, fill it (packet.Entry.TryPush or
// packet.Entry.SetReceived), then route it to the filled queue with
// PushFilled. reactor.Loop hands one to Endpoint.Transmit.
type UnfilledSlice struct {
	s      *queue.ConsumerSlice[*packet.Entry]
	filled *queue.Producer[*packet.Entry]
}

// Len returns the number of slots remaining in this batch.
func (s *UnfilledSlice) Len() int { return s.s.Len() }

// Pop removes and returns the next empty slot from the batch.
func (s *UnfilledSlice) Pop() (*packet.Entry, bool) { return s.s.Pop() }

// PushFilled routes a slot filled during this batch's processing to
// the filled queue, matching spec §4.5 RX step 3's final "push to the
// filled queue".
func (s *UnfilledSlice) PushFilled(e *packet.Entry) error {
	return s.filled.Enqueue(e)
}

// Commit publishes the claimed batch, releasing the popped positions
// of the unfilled queue back to its producer (the pair's Filled end).
func (s *UnfilledSlice) Commit() { s.s.Commit() }

// FilledSlice is a batch of full slots claimed from a ring pair's
// filled queue: pop a slot, read its segments, then Finish it back to
// the unfilled queue. reactor.Loop hands one to Endpoint.Receive.
type FilledSlice struct {
	s    *queue.ConsumerSlice[*packet.Entry]
	free *queue.Producer[*packet.Entry]
}

// Len returns the number of slots remaining in this batch.
func (s *FilledSlice) Len() int { return s.s.Len() }

// Pop removes and returns the next full slot from the batch.
func (s *FilledSlice) Pop() (*packet.Entry, bool) { return s.s.Pop() }

// Finish resets e and returns it to the unfilled queue it was
// allocated from, matching spec §4.5 TX step 2.
func (s *FilledSlice) Finish(e *packet.Entry) error {
	e.Finish()
	e.Reset()
	return s.free.Enqueue(e)
}

// Commit publishes the claimed batch.
func (s *FilledSlice) Commit() { s.s.Commit() }
