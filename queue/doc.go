// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue implements the bounded FIFO queues used by package ring
// to move packet slots between producer and consumer tasks, and by
// package reactor to aggregate application wakeup requests.
//
// NewSPSC returns a wait-free, single-producer/single-consumer queue
// (a generalization of code.hybscloud.com/lfq's SPSC[T]) plus batch
// (Slice) and cooperative-wait (Ready) views over each end. NewWakeup
// returns a lock-free multi-producer/single-consumer signal queue
// (adapted from lfq.MPSC[T]) for the one part of the core where more
// than one goroutine produces into the same queue.
package queue
