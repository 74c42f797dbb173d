// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// PrometheusSubscriber fans every event out to Prometheus metrics and,
// at debug/info/warn level depending on the event, a zerolog logger.
type PrometheusSubscriber struct {
	log zerolog.Logger

	processingDuration prometheus.Histogram
	wakeupTotal        *prometheus.CounterVec
	dropTotal          *prometheus.CounterVec
	featureEnabled     *prometheus.GaugeVec
}

// NewPrometheusSubscriber registers its metrics against reg and returns
// a Subscriber ready to pass to reactor.Loop.
func NewPrometheusSubscriber(reg prometheus.Registerer, log zerolog.Logger) *PrometheusSubscriber {
	s := &PrometheusSubscriber{
		log: log,
		processingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicio_loop_processing_duration_seconds",
			Help:    "Event loop iteration processing duration.",
			Buckets: prometheus.DefBuckets,
		}),
		wakeupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicio_loop_wakeup_total",
			Help: "Event loop wakeups, labeled by triggering signal.",
		}, []string{"reason"}),
		dropTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicio_packets_dropped_total",
			Help: "Packets dropped after a permanent I/O error.",
		}, []string{"direction", "reason"}),
		featureEnabled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "quicio_platform_feature_enabled",
			Help: "Platform features accepted at bind time (1 enabled, 0 disabled).",
		}, []string{"feature"}),
	}
	reg.MustRegister(s.processingDuration, s.wakeupTotal, s.dropTotal, s.featureEnabled)
	return s
}

func (s *PrometheusSubscriber) OnLoopWakeup(e LoopWakeup) {
	if e.RxReady {
		s.wakeupTotal.WithLabelValues("rx_ready").Inc()
	}
	if e.TxReady {
		s.wakeupTotal.WithLabelValues("tx_ready").Inc()
	}
	if e.Wakeup {
		s.wakeupTotal.WithLabelValues("application_wakeup").Inc()
	}
	if e.Timeout {
		s.wakeupTotal.WithLabelValues("timeout").Inc()
	}
	s.log.Debug().
		Time("ts", e.Timestamp).
		Bool("rx_ready", e.RxReady).
		Bool("tx_ready", e.TxReady).
		Bool("wakeup", e.Wakeup).
		Bool("timeout", e.Timeout).
		Msg("loop wakeup")
}

func (s *PrometheusSubscriber) OnLoopSleep(e LoopSleep) {
	s.processingDuration.Observe(e.ProcessingDuration.Seconds())
	ev := s.log.Debug().Dur("processing", e.ProcessingDuration)
	if e.HasTimeout {
		ev = ev.Time("next_timeout", e.NextTimeout)
	}
	ev.Msg("loop sleep")
}

func (s *PrometheusSubscriber) OnPlatformFeatureConfigured(e PlatformFeatureConfigured) {
	s.featureEnabled.WithLabelValues("gso").Set(boolToFloat(e.GSO))
	s.featureEnabled.WithLabelValues("gro").Set(boolToFloat(e.GRO))
	s.featureEnabled.WithLabelValues("ecn").Set(boolToFloat(e.ECN))
	s.log.Info().
		Int("max_mtu", e.MaxMTU).
		Bool("gso", e.GSO).
		Bool("gro", e.GRO).
		Bool("ecn", e.ECN).
		Msg("platform features configured")
}

func (s *PrometheusSubscriber) OnPacketDropped(e PacketDropped) {
	s.dropTotal.WithLabelValues(e.Direction, e.Reason).Inc()
	s.log.Warn().
		Str("direction", e.Direction).
		Str("reason", e.Reason).
		Msg("packet dropped")
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
