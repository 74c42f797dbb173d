// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package observe

// Subscriber receives the events defined in this package.
// reactor.Endpoint.Subscriber() returns the Subscriber its Loop should
// publish through.
type Subscriber interface {
	OnLoopWakeup(LoopWakeup)
	OnLoopSleep(LoopSleep)
	OnPlatformFeatureConfigured(PlatformFeatureConfigured)
	OnPacketDropped(PacketDropped)
}

// NopSubscriber discards every event. The zero value is ready to use.
type NopSubscriber struct{}

func (NopSubscriber) OnLoopWakeup(LoopWakeup)                               {}
func (NopSubscriber) OnLoopSleep(LoopSleep)                                 {}
func (NopSubscriber) OnPlatformFeatureConfigured(PlatformFeatureConfigured) {}
func (NopSubscriber) OnPacketDropped(PacketDropped)                        {}
