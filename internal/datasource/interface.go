package datasource

import (
	"context"
	"errors"
	"time"
)

// DataSource defines the interface for fetching match results from external providers
type DataSource interface {
	// FetchMatches retrieves every result and fixture row the source publishes
	FetchMatches(ctx context.Context) ([]MatchData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// MatchData represents one raw result row from any data source
type MatchData struct {
	Source      string    `json:"source"`      // Data source name
	Competition string    `json:"competition"` // Competition display name
	DateText    string    `json:"date_text"`   // Date as published, e.g. "Sat 14 Oct"
	Date        time.Time `json:"date"`        // Full date when the source carries the year
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HalfTime    string    `json:"half_time"` // Raw half-time text, empty for fixtures
	FullTime    string    `json:"full_time"` // Raw full-time text
	FetchedAt   time.Time `json:"fetched_at"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeCircuitOpen       = "circuit_open"
	ErrCodeUnknown           = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
	ErrCircuitOpen       = errors.New("circuit breaker open")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
