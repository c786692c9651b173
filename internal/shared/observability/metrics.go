package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	CheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "i18nguard_check_seconds",
		Help:    "Time spent running a check.",
		Buckets: prometheus.DefBuckets,
	}, []string{"check"})

	CheckRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "i18nguard_check_runs_total",
		Help: "Total number of check runs by outcome.",
	}, []string{"check", "outcome"})

	KeysVerified = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "i18nguard_keys_verified",
		Help: "Number of source locale keys verified in the last parity run.",
	}, []string{"target"})

	KeyMismatches = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "i18nguard_key_mismatches",
		Help: "Number of missing or extra keys found in the last parity run.",
	}, []string{"target", "kind"})

	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "i18nguard_files_scanned",
		Help: "Number of page and component files scanned in the last text run.",
	})

	HardcodedFindings = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "i18nguard_hardcoded_findings",
		Help: "Number of suspected untranslated fragments found in the last text run.",
	}, []string{"kind"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "i18nguard_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatchRunsThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "i18nguard_watch_runs_throttled_total",
		Help: "Total number of watch re-runs delayed by the run limiter.",
	})
)
