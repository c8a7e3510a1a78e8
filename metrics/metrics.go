/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exposes Prometheus collectors for schema context caches.
//
// A nil *Metrics is valid: every method is then a no-op, so callers never
// need to check whether metrics were configured.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "xschema"
	subsystem = "index"
)

// Metrics holds the collectors of one schema context.
type Metrics struct {
	reg prometheus.Registerer

	fills         *prometheus.CounterVec
	scans         *prometheus.CounterVec
	notifications prometheus.Counter
	descriptors   prometheus.Gauge
}

// New creates the collectors for the context identified by contextID and
// registers them with reg.
func New(reg prometheus.Registerer, contextID string) (*Metrics, error) {
	labels := prometheus.Labels{"context": contextID}
	m := &Metrics{
		reg: reg,
		fills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "cache_fills_total",
			ConstLabels: labels,
			Help:        "Number of cache fills, by cache and mode (full or incremental)",
		}, []string{"cache", "mode"}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "assembly_scans_total",
			ConstLabels: labels,
			Help:        "Number of assemblies scanned, by cache",
		}, []string{"cache"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "load_notifications_total",
			ConstLabels: labels,
			Help:        "Number of assembly load notifications received",
		}),
		descriptors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "types",
			Name:        "descriptors",
			ConstLabels: labels,
			Help:        "Current number of memoized schema type descriptors",
		}),
	}

	collectors := m.collectors()
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, done := range collectors[:i] {
				reg.Unregister(done)
			}
			return nil, fmt.Errorf("xschema(metrics): register: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.fills, m.scans, m.notifications, m.descriptors}
}

// RecordFill counts one fill of cache. Incremental fills come from load notifications.
func (m *Metrics) RecordFill(cache string, incremental bool) {
	if m == nil {
		return
	}
	mode := "full"
	if incremental {
		mode = "incremental"
	}
	m.fills.WithLabelValues(cache, mode).Inc()
}

// RecordScans counts n assemblies scanned for cache.
func (m *Metrics) RecordScans(cache string, n int) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(cache).Add(float64(n))
}

// RecordNotification counts one assembly load notification.
func (m *Metrics) RecordNotification() {
	if m == nil {
		return
	}
	m.notifications.Inc()
}

// SetDescriptors sets the descriptor gauge.
func (m *Metrics) SetDescriptors(n int) {
	if m == nil {
		return
	}
	m.descriptors.Set(float64(n))
}

// Unregister removes every collector from the registerer.
func (m *Metrics) Unregister() {
	if m == nil {
		return
	}
	for _, c := range m.collectors() {
		m.reg.Unregister(c)
	}
}
