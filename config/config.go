// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"strconv"

	flashflags "github.com/agilira/flash-flags"
)

// Features gates the two platform offloads independently (spec.md §9's
// REDESIGN FLAG): a kernel/NIC that supports one without the other can
// still use the half it supports.
type Features struct {
	GSO bool
	GRO bool
}

// Config is every socket/endpoint tuning knob spec.md §6 and its
// expansion name.
type Config struct {
	// RxIter/TxIter are QUICIO_RX_ITER/QUICIO_TX_ITER, the per-wake
	// inner RX/TX iteration counts. They are parsed and carried here
	// only: no package in this module reads them, so they do not change
	// how many iterations run per wake.
	RxIter int
	TxIter int

	Features Features

	ReusePort bool
	MaxMTU    int
}

// Default matches spec.md §6's stated default of one iteration per
// wake, both offloads enabled, and no port sharing.
func Default() Config {
	return Config{
		RxIter:    1,
		TxIter:    1,
		Features:  Features{GSO: true, GRO: true},
		ReusePort: false,
		MaxMTU:    1452,
	}
}

// FromEnv applies QUICIO_RX_ITER, QUICIO_TX_ITER, QUICIO_GSO, QUICIO_GRO,
// QUICIO_REUSE_PORT, and QUICIO_MAX_MTU on top of Default, leaving unset
// variables at their default value.
func FromEnv() Config {
	c := Default()
	if v, ok := envInt("QUICIO_RX_ITER"); ok {
		c.RxIter = v
	}
	if v, ok := envInt("QUICIO_TX_ITER"); ok {
		c.TxIter = v
	}
	if v, ok := envBool("QUICIO_GSO"); ok {
		c.Features.GSO = v
	}
	if v, ok := envBool("QUICIO_GRO"); ok {
		c.Features.GRO = v
	}
	if v, ok := envBool("QUICIO_REUSE_PORT"); ok {
		c.ReusePort = v
	}
	if v, ok := envInt("QUICIO_MAX_MTU"); ok {
		c.MaxMTU = v
	}
	return c
}

// FlagSet declares every knob in Config on a flash-flags set, seeded
// with c's current values as defaults, for cmd/quicio-echo's
// command-line parsing. Call Apply after fs.Parse to read the final
// values back into a Config.
func FlagSet(name string, c Config) *flashflags.FlagSet {
	fs := flashflags.New(name)
	fs.Int("rx-iter", c.RxIter, "RX iterations per wake")
	fs.Int("tx-iter", c.TxIter, "TX iterations per wake")
	fs.Bool("gso", c.Features.GSO, "enable GSO (UDP_SEGMENT) on the TX path")
	fs.Bool("gro", c.Features.GRO, "enable GRO (UDP_GRO) on the RX path")
	fs.Bool("reuse-port", c.ReusePort, "enable SO_REUSEPORT for N parallel bound sockets")
	fs.Int("max-mtu", c.MaxMTU, "maximum UDP payload size, in bytes")
	return fs
}

// Apply reads a parsed FlagSet back into a Config.
func Apply(fs *flashflags.FlagSet) Config {
	return Config{
		RxIter:    fs.GetInt("rx-iter"),
		TxIter:    fs.GetInt("tx-iter"),
		Features:  Features{GSO: fs.GetBool("gso"), GRO: fs.GetBool("gro")},
		ReusePort: fs.GetBool("reuse-port"),
		MaxMTU:    fs.GetInt("max-mtu"),
	}
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(name string) (bool, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}
