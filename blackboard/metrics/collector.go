// Package metrics exposes blackboard counters as Prometheus metrics.
//
// The collector reads Blackboard.Stats() at scrape time, so the access paths
// pay nothing beyond the counters enabled by store.Config.TrackStats.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/blackboard/blackboard/store"
)

const namespace = "blackboard"

// StatsSource is anything that can report blackboard counters.
type StatsSource interface {
	Stats() store.Stats
}

// Collector implements prometheus.Collector over a StatsSource.
type Collector struct {
	source StatsSource

	entries *prometheus.Desc
	reads   *prometheus.Desc
	writes  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector reporting the counters of source.
// constLabels are attached to every metric (for example an instance name).
func NewCollector(source StatsSource, constLabels prometheus.Labels) *Collector {
	return &Collector{
		source: source,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "entries"),
			"Number of keys stored per entry kind.",
			[]string{"kind"}, constLabels,
		),
		reads: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "reads_total"),
			"Reads per entry kind, split into hits and misses (default returned).",
			[]string{"kind", "result"}, constLabels,
		),
		writes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "writes_total"),
			"Writes per entry kind.",
			[]string{"kind"}, constLabels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.reads
	ch <- c.writes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	for _, kind := range store.Kinds {
		ks := stats.For(kind)
		label := kind.String()

		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(ks.Entries), label)
		ch <- prometheus.MustNewConstMetric(c.reads, prometheus.CounterValue, float64(ks.Hits), label, "hit")
		ch <- prometheus.MustNewConstMetric(c.reads, prometheus.CounterValue, float64(ks.Misses), label, "miss")
		ch <- prometheus.MustNewConstMetric(c.writes, prometheus.CounterValue, float64(ks.Writes), label)
	}
}
