// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ioerr defines the shared error taxonomy used across quicio:
// capacity, closure, transient I/O, and permanent I/O.
package ioerr

import (
	"errors"
	"syscall"

	"code.hybscloud.com/iox"
)

// ErrAtCapacity is returned by a TX push when no unfilled slot is available.
// It is a control flow signal: the caller should retry after the ring
// pair reports tx-readiness. It aliases [iox.ErrWouldBlock] for ecosystem
// consistency with code.hybscloud.com/lfq.
var ErrAtCapacity = iox.ErrWouldBlock

// ErrClosed indicates the counterpart end of a ring pair (or queue) has
// been dropped. It propagates up to the event loop, which terminates
// cleanly.
var ErrClosed = errors.New("quicio: closed")

// IsAtCapacity reports whether err is (or wraps) ErrAtCapacity.
func IsAtCapacity(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsClosed reports whether err is (or wraps) ErrClosed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// Category classifies a socket I/O error for the recovery rules in
// socket.Tx.Apply / socket.Rx.Apply.
type Category int

const (
	// CategoryNone means err was nil.
	CategoryNone Category = iota
	// CategoryTransient covers WouldBlock/Interrupted: re-buffer the
	// current slot and retry on the next wakeup.
	CategoryTransient
	// CategoryPermanent covers PermissionDenied/ConnectionReset/other:
	// drop the current packet and continue.
	CategoryPermanent
)

// Classify inspects a socket error and returns its recovery category.
func Classify(err error) Category {
	if err == nil {
		return CategoryNone
	}
	if errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EINTR) {
		return CategoryTransient
	}
	return CategoryPermanent
}

