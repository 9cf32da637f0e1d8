package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordSimulation(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(SimulationsTotal.WithLabelValues("success"))

	RecordSimulation("success", 0.02)
	RecordSimulation("no_data", 0)

	assert.Equal(t, before+1, testutil.ToFloat64(SimulationsTotal.WithLabelValues("success")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(SimulationsTotal.WithLabelValues("no_data")), 1.0)
}

func TestRecordCacheLookup(t *testing.T) {
	InitRegistry()

	RecordCacheLookup(true, 0.75)
	assert.Equal(t, 0.75, testutil.ToFloat64(CacheHitRatio))

	RecordCacheLookup(false, 0.5)
	assert.Equal(t, 0.5, testutil.ToFloat64(CacheHitRatio))
}

func TestUpdateStore(t *testing.T) {
	InitRegistry()

	UpdateStore(3, 1200, 40)
	assert.Equal(t, 3.0, testutil.ToFloat64(StoreVersion))
	assert.Equal(t, 1200.0, testutil.ToFloat64(StoreMatches.WithLabelValues("results")))
	assert.Equal(t, 40.0, testutil.ToFloat64(StoreMatches.WithLabelValues("fixtures")))
}

func TestRecordIngestion(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(MatchesIngestedTotal.WithLabelValues("csv"))

	RecordIngested("csv", 25)
	RecordFetch("csv", "success", 0.1)
	RecordRejected("validation")
	RecordCircuitBreakerTrip()

	assert.Equal(t, before+25, testutil.ToFloat64(MatchesIngestedTotal.WithLabelValues("csv")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(CircuitBreakerTripsTotal), 1.0)
}

func TestHandler(t *testing.T) {
	InitRegistry()
	RecordRanking("over_2_5_ft")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "futalgo_rankings_total")
}
