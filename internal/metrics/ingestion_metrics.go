package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion counter vectors
var (
	FetchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_requests_total",
		Help:      "Result page fetches by source and status",
	}, []string{"source", "status"})
	MatchesIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_ingested_total",
		Help:      "Matches accepted into the store by source",
	}, []string{"source"})
	RecordsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_rejected_total",
		Help:      "Raw records rejected during ingestion by reason",
	}, []string{"reason"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker trips",
	})
)

// Ingestion histograms
var (
	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of result page fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
)

// Store gauges
var (
	StoreVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_version",
		Help:      "Version of the current match snapshot",
	})
	StoreMatches = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_matches",
		Help:      "Matches in the current snapshot by kind",
	}, []string{"kind"})
)

// RecordFetch records a result page fetch.
// status should be one of: "success", "failure"
func RecordFetch(source, status string, durationSeconds float64) {
	FetchRequestsTotal.WithLabelValues(source, status).Inc()
	FetchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordIngested records matches accepted from a source.
func RecordIngested(source string, count int) {
	MatchesIngestedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordRejected records a rejected raw record.
func RecordRejected(reason string) {
	RecordsRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// UpdateStore updates the snapshot gauges.
func UpdateStore(version uint64, results, fixtures int) {
	StoreVersion.Set(float64(version))
	StoreMatches.WithLabelValues("results").Set(float64(results))
	StoreMatches.WithLabelValues("fixtures").Set(float64(fixtures))
}
