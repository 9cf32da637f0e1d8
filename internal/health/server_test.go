package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/futalgo/internal/metrics"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/repository"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Health(t *testing.T) {
	s := NewServer(Config{ServiceName: "futalgo", Version: "1.0.0"})
	rec := get(t, s.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "futalgo", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)

	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/live").Code)
}

type refreshStub struct {
	at  time.Time
	err error
}

func (r refreshStub) LastRefresh() (time.Time, error) { return r.at, r.err }

func readyResponse(t *testing.T, h http.Handler) (int, ReadyResponse) {
	t.Helper()
	rec := get(t, h, "/ready")
	var resp ReadyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestServer_Ready(t *testing.T) {
	store := repository.NewMemoryStore()
	s := NewServer(Config{ServiceName: "futalgo", Store: store})
	s.SetReady(true)

	code, resp := readyResponse(t, s.Handler())
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", resp.Status)
	assert.Contains(t, resp.Checks["store"], "error")
	assert.Nil(t, resp.Store)

	_, _, err := store.Replace(context.Background(), []models.Match{
		{HomeTeam: "Betis", AwayTeam: "Sevilla", Competition: "Spain La Liga", HalfTimeRaw: "(0-0)", FullTimeRaw: "1-0"},
		{HomeTeam: "Sevilla", AwayTeam: "Betis", Competition: "Spain La Liga"},
	})
	require.NoError(t, err)

	code, resp = readyResponse(t, s.Handler())
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Store)
	assert.Equal(t, StoreStatus{
		Version:      1,
		LoadedAt:     resp.Store.LoadedAt,
		Results:      1,
		Fixtures:     1,
		Competitions: 1,
		Teams:        2,
	}, *resp.Store)
	assert.NotEmpty(t, resp.Store.LoadedAt)
	assert.Nil(t, resp.Refresh)

	s.SetReady(false)
	code, resp = readyResponse(t, s.Handler())
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", resp.Checks["service"])
}

func TestServer_ReadyReportsRefresh(t *testing.T) {
	store := repository.NewMemoryStore()
	_, _, err := store.Replace(context.Background(), []models.Match{
		{HomeTeam: "Betis", AwayTeam: "Sevilla", Competition: "Spain La Liga", HalfTimeRaw: "(0-0)", FullTimeRaw: "1-0"},
	})
	require.NoError(t, err)

	at := time.Date(2026, 10, 14, 6, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		refresh refreshStub
		check   string
		errText string
	}{
		{name: "pending", refresh: refreshStub{}, check: "pending"},
		{name: "ok", refresh: refreshStub{at: at}, check: "ok"},
		{name: "failed keeps serving", refresh: refreshStub{at: at, err: errors.New("all sources failed")}, check: "stale", errText: "all sources failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{ServiceName: "futalgo", Store: store, Refresh: tt.refresh})
			s.SetReady(true)

			code, resp := readyResponse(t, s.Handler())
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.check, resp.Checks["refresh"])
			require.NotNil(t, resp.Refresh)
			assert.Equal(t, tt.errText, resp.Refresh.Error)
			if !tt.refresh.at.IsZero() {
				assert.Equal(t, "2026-10-14T06:00:00Z", resp.Refresh.At)
			}
		})
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(Config{ServiceName: "futalgo", Port: "0", Logger: quietLogger()})
	require.NoError(t, s.Start(ctx))
	require.NotEmpty(t, s.Addr())

	resp, err := http.Get("http://127.0.0.1:" + portOf(t, s.Addr()) + "/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	busy := NewServer(Config{ServiceName: "futalgo", Port: portOf(t, s.Addr()), Logger: quietLogger()})
	assert.Error(t, busy.Start(ctx))

	require.NoError(t, s.Shutdown())
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func portOf(t *testing.T, addr string) string {
	t.Helper()
	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	return port
}

func TestServer_Metrics(t *testing.T) {
	metrics.InitRegistry()

	s := NewServer(Config{ServiceName: "futalgo", MetricsPath: "/metrics"})
	rec := get(t, s.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "futalgo_")

	noMetrics := NewServer(Config{ServiceName: "futalgo"})
	assert.Equal(t, http.StatusNotFound, get(t, noMetrics.Handler(), "/metrics").Code)
}
