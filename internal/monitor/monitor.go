/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package monitor exposes counters and gauges for one running sandbox:
// native operation calls, permission denials, and live resource-table
// handles, collected on demand and backed directly by
// github.com/prometheus/client_golang.
package monitor

import "github.com/prometheus/client_golang/prometheus"

// Metrics is one sandbox instance's collector set, registered under a
// caller-supplied *prometheus.Registry so multiple sandboxes in one
// process don't collide on metric names.
type Metrics struct {
	OpCalls          *prometheus.CounterVec
	PermissionDenied *prometheus.CounterVec
	ResourceHandles  prometheus.Gauge
	PostscriptLoad   prometheus.Histogram
}

// New constructs and registers a Metrics set against reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		OpCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sanda",
			Name:      "op_calls_total",
			Help:      "Total native host operation invocations, by operation name.",
		}, []string{"operation"}),
		PermissionDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sanda",
			Name:      "permission_denied_total",
			Help:      "Total permission checks that failed, by capability kind.",
		}, []string{"kind"}),
		ResourceHandles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sanda",
			Name:      "resource_handles",
			Help:      "Live handles currently held in the resource table.",
		}),
		PostscriptLoad: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sanda",
			Name:      "postscript_load_seconds",
			Help:      "Time spent discovering and executing postscripts at startup.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.OpCalls, m.PermissionDenied, m.ResourceHandles, m.PostscriptLoad)
	return m
}

// RecordOp increments the call counter for the named host operation.
func (m *Metrics) RecordOp(operation string) {
	if m == nil {
		return
	}
	m.OpCalls.WithLabelValues(operation).Inc()
}

// RecordDenied increments the denial counter for the named capability kind.
func (m *Metrics) RecordDenied(kind string) {
	if m == nil {
		return
	}
	m.PermissionDenied.WithLabelValues(kind).Inc()
}

// SetResourceHandles reports the resource table's current length.
func (m *Metrics) SetResourceHandles(n int) {
	if m == nil {
		return
	}
	m.ResourceHandles.Set(float64(n))
}
