// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !quicio_debug

package packet

// invariants is a no-op outside the quicio_debug build tag.
func (b *Buffer) invariants() {}
