// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "launchpad_pebble"
	metricsInterval = 10 * time.Second
)

type metrics struct {
	delayStart time.Time
	writeStall metric.Averager
	getLatency metric.Averager

	batchWrites       prometheus.Counter
	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	// Sampled from [pebble.DB.Metrics] every [metricsInterval].
	tombstoneCount prometheus.Gauge
	diskUsage      prometheus.Gauge
	obsoleteTables prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	writeStall, err := metric.NewAverager(
		"",
		namespace+"_write_stall",
		"time spent waiting for disk write",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	getLatency, err := metric.NewAverager(
		"",
		namespace+"_read_latency",
		"time spent waiting for db get",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		writeStall: writeStall,
		getLatency: getLatency,
		batchWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_writes",
			Help:      "number of committed batches",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions by input level",
		}, []string{"level"}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "number of active compactions",
		}),
		tombstoneCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tombstone_count",
			Help:      "approximate count of internal tombstones",
		}),
		diskUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disk_usage",
			Help:      "bytes used by all live and obsolete files",
		}),
		obsoleteTables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "obsolete_table_count",
			Help:      "number of table files no longer referenced by the db",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.batchWrites),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.tombstoneCount),
		r.Register(m.diskUsage),
		r.Register(m.obsoleteTables),
	)
	return r, m, errs.Err
}

func (*metrics) now() time.Time {
	return time.Now()
}

func (m *metrics) observeGet(start time.Time) {
	m.getLatency.Observe(float64(time.Since(start)))
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.delayStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.delayStart)))
}

func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			m := db.db.Metrics()
			db.metrics.tombstoneCount.Set(float64(m.Keys.TombstoneCount))
			db.metrics.diskUsage.Set(float64(m.DiskSpaceUsage()))
			db.metrics.obsoleteTables.Set(float64(m.Table.ObsoleteCount))
		case <-db.closing:
			return
		}
	}
}
