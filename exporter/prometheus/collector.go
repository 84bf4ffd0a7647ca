// Copyright (c) 2025 Alexey Mayshev and contributors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prometheus exposes seqlock statistics to Prometheus.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/maypok86/seqlock/stats"
)

// StatsProvider provides lock statistics. *seqlock.Lock satisfies it, a *stats.Counter
// can be adapted with StatsFunc(counter.Snapshot).
type StatsProvider interface {
	Stats() stats.Stats
}

// StatsFunc is an adapter to allow the use of ordinary functions as a StatsProvider.
type StatsFunc func() stats.Stats

// Stats calls f.
func (f StatsFunc) Stats() stats.Stats {
	return f()
}

// Collector collects statistics from a lock and exposes them to Prometheus.
type Collector struct {
	provider        StatsProvider
	readsDesc       *prometheus.Desc
	readRetriesDesc *prometheus.Desc
	writesDesc      *prometheus.Desc
	writeWaitDesc   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a new collector for the given lock statistics provider.
// Metric names are prefixed with the given namespace and subsystem,
// i.e "{namespace}_{subsystem}_{metric}".
// Supported metrics:
// - reads_total
// - read_retries_total
// - writes_total
// - write_wait_seconds_total
func NewCollector(namespace, subsystem string, provider StatsProvider) *Collector {
	return &Collector{
		provider: provider,
		readsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "reads_total"),
			"Number of successful reads.",
			nil, nil,
		),
		readRetriesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "read_retries_total"),
			"Number of read attempts that were retried because of a concurrent write.",
			nil, nil,
		),
		writesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "writes_total"),
			"Number of writes.",
			nil, nil,
		),
		writeWaitDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "write_wait_seconds_total"),
			"Total time writers waited for their turn.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.readsDesc
	descs <- c.readRetriesDesc
	descs <- c.writesDesc
	descs <- c.writeWaitDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(metrics chan<- prometheus.Metric) {
	s := c.provider.Stats()
	metrics <- prometheus.MustNewConstMetric(
		c.readsDesc, prometheus.CounterValue, float64(s.Reads()),
	)
	metrics <- prometheus.MustNewConstMetric(
		c.readRetriesDesc, prometheus.CounterValue, float64(s.ReadRetries()),
	)
	metrics <- prometheus.MustNewConstMetric(
		c.writesDesc, prometheus.CounterValue, float64(s.Writes()),
	)
	metrics <- prometheus.MustNewConstMetric(
		c.writeWaitDesc, prometheus.CounterValue, s.TotalWriteWait().Seconds(),
	)
}
