// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config holds endpoint/socket tuning: the RX/TX per-wake
// iteration counts spec.md §6 names (S2N_RX_ITER/S2N_TX_ITER, here
// QUICIO_RX_ITER/QUICIO_TX_ITER), independent GSO/GRO feature gates
// (spec.md §9's redesign flag), SO_REUSEPORT, and MTU. Declared as a
// github.com/agilira/flash-flags flag set so every knob is overridable
// from the command line in cmd/quicio-echo as well as from its
// environment variable.
package config
