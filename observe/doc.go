// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package observe defines the structured events of the packet I/O core
// (loop wakeups/sleeps, published by reactor.Loop; platform feature
// configuration and dropped packets, published by cmd/quicio-echo) and
// a Subscriber interface consumers fan them out through. PrometheusSubscriber is the concrete implementation used by
// cmd/quicio-echo, exposing github.com/prometheus/client_golang metrics
// and github.com/rs/zerolog structured logs.
package observe
