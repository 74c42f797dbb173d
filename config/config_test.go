// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config_test

import (
	"testing"

	"code.hybscloud.com/quicio/config"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	if c.RxIter != 1 || c.TxIter != 1 {
		t.Fatalf("default RxIter/TxIter = %d/%d, want 1/1", c.RxIter, c.TxIter)
	}
	if !c.Features.GSO || !c.Features.GRO {
		t.Fatal("default features should both be enabled")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QUICIO_RX_ITER", "4")
	t.Setenv("QUICIO_GRO", "false")

	c := config.FromEnv()
	if c.RxIter != 4 {
		t.Fatalf("RxIter = %d, want 4", c.RxIter)
	}
	if c.TxIter != 1 {
		t.Fatalf("TxIter = %d, want default 1", c.TxIter)
	}
	if c.Features.GRO {
		t.Fatal("GRO should be disabled by QUICIO_GRO=false")
	}
	if !c.Features.GSO {
		t.Fatal("GSO should remain at its default")
	}
}

func TestFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("QUICIO_RX_ITER", "not-a-number")

	c := config.FromEnv()
	if c.RxIter != 1 {
		t.Fatalf("RxIter = %d, want default 1 on invalid env value", c.RxIter)
	}
}
