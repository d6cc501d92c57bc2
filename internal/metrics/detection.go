package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// All metrics are low-cardinality (no camera/employee ids as labels)

var (
	// DetectionLogQueries counts paginated log queries by outcome
	DetectionLogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detection_log_queries_total",
			Help: "Total detection log queries by result",
		},
		[]string{"result"},
	)

	// DetectionLogQueryDuration tracks the full read+parse+slice time
	DetectionLogQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "detection_log_query_duration_seconds",
			Help:    "Time spent reading and parsing the detection log per query",
			Buckets: prometheus.DefBuckets,
		},
	)

	// DetectionLogLinesDropped counts lines that did not match the event shape
	DetectionLogLinesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "detection_log_lines_dropped_total",
			Help: "Total detection log lines skipped as malformed",
		},
	)

	// DetectionLogWrites counts write notifications observed on the log file
	DetectionLogWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "detection_log_writes_total",
			Help: "Total write events observed on the detection log file",
		},
	)

	// DetectionLogLastWrite is the unix time of the last observed write
	DetectionLogLastWrite = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "detection_log_last_write_timestamp_seconds",
			Help: "Unix timestamp of the last observed detection log write",
		},
	)

	// RegistryMutations counts registry writes by registry, operation and result
	RegistryMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_mutations_total",
			Help: "Total registry mutations",
		},
		[]string{"registry", "op", "result"},
	)

	// RegistrySize is the record count after the last load or save
	RegistrySize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_records",
			Help: "Number of records in each registry at last access",
		},
		[]string{"registry"},
	)
)

// Helper functions for metrics recording

func RecordLogQuery(result string, elapsed time.Duration, dropped int) {
	DetectionLogQueries.WithLabelValues(result).Inc()
	DetectionLogQueryDuration.Observe(elapsed.Seconds())
	if dropped > 0 {
		DetectionLogLinesDropped.Add(float64(dropped))
	}
}

func RecordLogWrite(at time.Time) {
	DetectionLogWrites.Inc()
	DetectionLogLastWrite.Set(float64(at.Unix()))
}

func RecordMutation(registry, op string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	RegistryMutations.WithLabelValues(registry, op, result).Inc()
}

func SetRegistrySize(registry string, n int) {
	RegistrySize.WithLabelValues(registry).Set(float64(n))
}
