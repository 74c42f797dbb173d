// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reactor implements the cooperative single-threaded event loop
// that drives a packet I/O core: one iteration waits on up to four
// signals (RX ready, TX ready, application wakeup, timer) via Select,
// then Loop runs the receive and transmit halves of the tick in that
// order before reprogramming the timer for the endpoint's next wake.
package reactor
