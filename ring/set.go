// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import (
	"context"
	"reflect"

	"code.hybscloud.com/quicio/ioerr"
)

// Set aggregates N independent ring pairs sharing the same maxPayload
// and per-pair count behind a single producer/consumer interface, for
// an endpoint fed by more than one kernel queue or socket. Grounded on
// spec §4.4's UnfilledSet/FilledSet behavior.
type Set struct {
	unfilled []*Unfilled
	filled   []*Filled
	txCursor int
	rxCursor int
}

// NewSet constructs n ring pairs, each with a stable queue id equal to
// its index, recorded in every slot's Entry.Queue. Finish on a
// FilledSlice returns a slot to the unfilled queue of the pair the
// slice was taken from; it does not consult Entry.Queue.
func NewSet(maxPayload uint16, count int, n int) *Set {
	s := &Set{unfilled: make([]*Unfilled, n), filled: make([]*Filled, n)}
	for i := 0; i < n; i++ {
		s.unfilled[i], s.filled[i] = newPair(maxPayload, count, uint16(i))
	}
	return s
}

// Len returns the number of ring pairs in the set.
func (s *Set) Len() int { return len(s.unfilled) }

// TrySlice returns the current pair's batch of empty slots and
// advances the round-robin producer cursor, wrapping at the end.
// Matches spec §4.4: "try_slice() returns the current pair's slice and
// advances the cursor (wrapping)" regardless of whether that pair
// currently has any slots to offer.
func (s *Set) TrySlice() (*UnfilledSlice, bool) {
	n := len(s.unfilled)
	i := s.txCursor
	s.txCursor = (s.txCursor + 1) % n
	return s.unfilled[i].TrySlice()
}

// TxReady walks pairs starting from the producer cursor; any pair
// with a free slot immediately yields readiness. Otherwise it waits
// for the first pair to become ready, advances the cursor to it, and
// returns.
func (s *Set) TxReady(ctx context.Context) error {
	n := len(s.unfilled)
	for {
		allClosed := true
		for k := 0; k < n; k++ {
			i := (s.txCursor + k) % n
			if s.unfilled[i].free.Len() > 0 {
				return nil
			}
			if !s.unfilled[i].free.Closed() {
				allClosed = false
			}
		}
		if allClosed {
			return ioerr.ErrClosed
		}

		chans := make([]<-chan struct{}, n)
		for i, u := range s.unfilled {
			chans[i] = u.free.ReadyChan()
		}
		ready, err := waitAny(ctx, chans)
		if err != nil {
			return err
		}
		s.txCursor = ready
	}
}

// TrySliceRX drains pairs in index order starting from the consumer
// cursor, returning the first one with a non-empty batch of full
// slots.
func (s *Set) TrySliceRX() (*FilledSlice, bool) {
	n := len(s.filled)
	for k := 0; k < n; k++ {
		i := (s.rxCursor + k) % n
		if fs, ok := s.filled[i].TrySlice(); ok {
			s.rxCursor = (i + 1) % n
			return fs, true
		}
	}
	return nil, false
}

// Ready is an alias for RxReady, satisfying the same single-pair
// readiness interface as Filled.Ready so reactor.Select can drive
// either a lone ring pair or a full Set without caring which.
func (s *Set) Ready(ctx context.Context) error { return s.RxReady(ctx) }

// RxReady blocks until at least one pair in the set has a full slot
// available.
func (s *Set) RxReady(ctx context.Context) error {
	n := len(s.filled)
	for {
		allClosed := true
		for _, f := range s.filled {
			if f.full.Len() > 0 {
				return nil
			}
			if !f.full.Closed() {
				allClosed = false
			}
		}
		if allClosed {
			return ioerr.ErrClosed
		}

		chans := make([]<-chan struct{}, n)
		for i, f := range s.filled {
			chans[i] = f.ReadyChan()
		}
		if _, err := waitAny(ctx, chans); err != nil {
			return err
		}
	}
}

// waitAny blocks until one of chans is ready or ctx is done, returning
// the index of the channel that fired. Built with reflect.Select since
// the number of pairs in a Set is only known at runtime.
func waitAny(ctx context.Context, chans []<-chan struct{}) (int, error) {
	cases := make([]reflect.SelectCase, 0, len(chans)+1)
	for _, ch := range chans {
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)})
	}
	cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())})

	chosen, _, _ := reflect.Select(cases)
	if chosen == len(chans) {
		return 0, ctx.Err()
	}
	return chosen, nil
}
