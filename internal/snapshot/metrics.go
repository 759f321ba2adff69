package snapshot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyair_snapshot_loads_total",
		Help: "Snapshot loads by result",
	}, []string{"result"})

	snapshotLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyair_snapshot_load_duration_seconds",
		Help:    "Duration of fetching and decoding a snapshot",
		Buckets: prometheus.DefBuckets,
	})

	snapshotRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skyair_snapshot_rows",
		Help: "Rows in the current snapshot by table",
	}, []string{"table"})

	snapshotLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skyair_snapshot_last_success_timestamp_seconds",
		Help: "Unix time of the last successful snapshot load",
	})
)
