// Package health serves liveness, readiness and Prometheus endpoints for the
// refresh service.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/metrics"
	"github.com/yourusername/futalgo/internal/repository"
)

// DefaultPort is used when the configuration leaves the port empty
const DefaultPort = "8080"

// Store is the part of the match store the readiness check reads
type Store interface {
	Ping(ctx context.Context) error
	Snapshot() *repository.Snapshot
}

// RefreshReporter reports the outcome of the most recent store refresh
type RefreshReporter interface {
	LastRefresh() (time.Time, error)
}

// HealthResponse is the body of /health and /live
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// StoreStatus describes the snapshot currently served
type StoreStatus struct {
	Version      uint64 `json:"version"`
	LoadedAt     string `json:"loaded_at"`
	Results      int    `json:"results"`
	Fixtures     int    `json:"fixtures"`
	Competitions int    `json:"competitions"`
	Teams        int    `json:"teams"`
}

// RefreshStatus describes the last scheduled or manual refresh
type RefreshStatus struct {
	At    string `json:"at,omitempty"`
	Error string `json:"error,omitempty"`
}

// ReadyResponse is the body of /ready
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks"`
	Store    *StoreStatus      `json:"store,omitempty"`
	Refresh  *RefreshStatus    `json:"refresh,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Config holds the configuration for the health server
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	Store       Store
	Refresh     RefreshReporter
	MetricsPath string // empty disables the metrics endpoint
}

// Server is a lightweight HTTP server for health check endpoints
type Server struct {
	cfg    Config
	server *http.Server
	addr   string
	ready  atomic.Bool
}

// NewServer creates a new health check server
func NewServer(cfg Config) *Server {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Server{cfg: cfg}
}

// SetReady marks the service as ready to accept traffic
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Addr returns the bound listen address once Start succeeded
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the mux serving every endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	if s.cfg.MetricsPath != "" {
		mux.Handle(s.cfg.MetricsPath, metrics.Handler())
	}
	return mux
}

// Start binds the port and serves in the background until ctx is done.
// A bind failure is returned instead of being logged from the serving goroutine.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	s.addr = ln.Addr().String()
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"addr":    s.addr,
		"service": s.cfg.ServiceName,
	}).Info("Health check server starting")

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.cfg.Logger.WithError(err).Error("Health check server error")
		}
	}()
	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()
	return nil
}

// Shutdown gracefully shuts down the health check server
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: s.cfg.ServiceName})
}

// handleReady reports the served snapshot. The service is ready once it is
// marked ready and the store holds results. A failed refresh is reported but
// does not fail readiness, since the previous snapshot keeps being served.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := ReadyResponse{
		Service: s.cfg.ServiceName,
		Checks:  map[string]string{"service": "ok"},
	}
	ready := s.ready.Load()
	if !ready {
		resp.Checks["service"] = "not_ready"
	}

	if s.cfg.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.cfg.Store.Ping(ctx); err != nil {
			ready = false
			resp.Checks["store"] = fmt.Sprintf("error: %v", err)
		} else {
			resp.Checks["store"] = "ok"
		}
		if snap := s.cfg.Store.Snapshot(); snap != nil {
			resp.Store = storeStatus(snap)
		}
	}

	if s.cfg.Refresh != nil {
		at, err := s.cfg.Refresh.LastRefresh()
		status := &RefreshStatus{}
		if !at.IsZero() {
			status.At = at.UTC().Format(time.RFC3339)
		}
		switch {
		case err != nil:
			status.Error = err.Error()
			resp.Checks["refresh"] = "stale"
		case at.IsZero():
			resp.Checks["refresh"] = "pending"
		default:
			resp.Checks["refresh"] = "ok"
		}
		resp.Refresh = status
	}

	resp.Duration = time.Since(start).String()
	code := http.StatusOK
	resp.Status = "ok"
	if !ready {
		code = http.StatusServiceUnavailable
		resp.Status = "not_ready"
	}
	writeJSON(w, code, resp)
}

func storeStatus(snap *repository.Snapshot) *StoreStatus {
	overview := snap.Overview()
	return &StoreStatus{
		Version:      snap.Version,
		LoadedAt:     snap.LoadedAt.UTC().Format(time.RFC3339),
		Results:      overview.Matches,
		Fixtures:     overview.Fixtures,
		Competitions: overview.Competitions,
		Teams:        overview.Teams,
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
