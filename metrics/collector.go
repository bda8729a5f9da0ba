/*
   Copyright 2025 The Myrrh Authors.

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

// Package metrics exposes Prometheus counters for a Log's targets:
// rotations, bytes written, write errors, and records emitted per
// level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "myrrh"

// Collector owns the counter vectors shared by every instrumented
// target in one Log. Construct one per Log with NewCollector and pass
// it to Instrument for each target that should be observed.
type Collector struct {
	registry *prometheus.Registry

	rotationsTotal    *prometheus.CounterVec
	bytesWrittenTotal *prometheus.CounterVec
	writeErrorsTotal  *prometheus.CounterVec
	recordsEmitted    *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with
// registry. If registry is nil, a fresh prometheus.Registry is used.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		rotationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "policy_rotations_total",
				Help:      "Total number of file rotations performed by a Policy-backed target.",
			},
			[]string{"target"},
		),
		bytesWrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "policy_bytes_written_total",
				Help:      "Total number of bytes written through a target.",
			},
			[]string{"target"},
		),
		writeErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "policy_write_errors_total",
				Help:      "Total number of failed writes to a target.",
			},
			[]string{"target"},
		),
		recordsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "log_records_emitted_total",
				Help:      "Total number of non-inert Records closed, by level.",
			},
			[]string{"level"},
		),
	}

	registry.MustRegister(
		c.rotationsTotal,
		c.bytesWrittenTotal,
		c.writeErrorsTotal,
		c.recordsEmitted,
	)
	return c
}

// Registry returns the Prometheus registry backing this Collector, for
// wiring into an HTTP handler (see cmd/myrrhctl's serve-metrics
// command).
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) observeWrite(target string, n int, err error) {
	if err != nil {
		c.writeErrorsTotal.WithLabelValues(target).Inc()
		return
	}
	c.bytesWrittenTotal.WithLabelValues(target).Add(float64(n))
}

func (c *Collector) observeRotation(target string) {
	c.rotationsTotal.WithLabelValues(target).Inc()
}

// RecordEmitted records that a non-inert Record at lvl was closed. It is
// counted whether or not any target admitted or accepted the line.
func (c *Collector) RecordEmitted(lvl string) {
	c.recordsEmitted.WithLabelValues(lvl).Inc()
}
