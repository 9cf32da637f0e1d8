package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/logger"
	"github.com/yourusername/futalgo/internal/metrics"
)

const (
	// SoccerStatsSourceName is the default name of the result page source
	SoccerStatsSourceName = "soccerstats"
	// DefaultFetchWorkers bounds concurrent page downloads
	DefaultFetchWorkers = 10

	minResultCells = 7
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// SoccerStatsSource scrapes by-date result tables for a set of competitions
type SoccerStatsSource struct {
	name         string
	baseURL      string
	competitions []Competition
	workers      int
	httpClient   *RateLimitedHTTPClient
	enabled      bool
	events       *logger.IngestionLogger
	now          func() time.Time
}

// NewSoccerStatsSource creates a new result page source
func NewSoccerStatsSource(name, baseURL string, competitions []Competition, workers int, httpClient *RateLimitedHTTPClient, enabled bool, log *logrus.Logger) *SoccerStatsSource {
	if name == "" {
		name = SoccerStatsSourceName
	}
	if workers <= 0 {
		workers = DefaultFetchWorkers
	}
	if log == nil {
		log = logrus.New()
	}
	return &SoccerStatsSource{
		name:         name,
		baseURL:      baseURL,
		competitions: competitions,
		workers:      workers,
		httpClient:   httpClient,
		enabled:      enabled,
		events:       logger.NewIngestionLogger(log),
		now:          time.Now,
	}
}

// Name returns the source name
func (s *SoccerStatsSource) Name() string {
	return s.name
}

// IsEnabled returns whether the source is enabled
func (s *SoccerStatsSource) IsEnabled() bool {
	return s.enabled
}

type competitionResult struct {
	competition Competition
	rows        []MatchData
	err         error
}

// FetchMatches downloads every competition concurrently. A failing competition
// contributes no rows; the call fails only when every competition fails.
func (s *SoccerStatsSource) FetchMatches(ctx context.Context) ([]MatchData, error) {
	if !s.enabled {
		return nil, NewDataSourceError(s.name, ErrCodeUnknown, "data source disabled", nil)
	}
	if len(s.competitions) == 0 {
		return nil, NewDataSourceError(s.name, ErrCodeInvalidData, "no competitions configured", nil)
	}

	jobs := make(chan Competition)
	results := make(chan competitionResult, len(s.competitions))

	var wg sync.WaitGroup
	workers := s.workers
	if workers > len(s.competitions) {
		workers = len(s.competitions)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				rows, err := s.fetchCompetition(ctx, c)
				results <- competitionResult{competition: c, rows: rows, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, c := range s.competitions {
			select {
			case jobs <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byKey := make(map[string][]MatchData, len(s.competitions))
	var failures int
	var lastErr error
	for r := range results {
		if r.err != nil {
			failures++
			lastErr = r.err
			s.events.LogFetchError(s.name, r.competition.Name, r.err)
			continue
		}
		byKey[r.competition.Key] = r.rows
	}

	if err := ctx.Err(); err != nil {
		return nil, NewDataSourceError(s.name, ErrCodeNetworkError, "fetch cancelled", err)
	}
	if failures == len(s.competitions) {
		return nil, NewDataSourceError(s.name, ErrCodeNetworkError, "all competitions failed", lastErr)
	}

	// Keep configured competition order so ingestion sequence is deterministic
	var all []MatchData
	for _, c := range s.competitions {
		all = append(all, byKey[c.Key]...)
	}
	return all, nil
}

func (s *SoccerStatsSource) fetchCompetition(ctx context.Context, c Competition) ([]MatchData, error) {
	start := time.Now()
	endpoint := ResultsURL(s.baseURL, c)

	resp, err := s.httpClient.Get(ctx, endpoint)
	if err != nil {
		metrics.RecordFetch(s.name, "error", time.Since(start).Seconds())
		return nil, NewDataSourceError(s.name, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFetch(s.name, "error", time.Since(start).Seconds())
		return nil, s.handleErrorResponse(resp.StatusCode, c)
	}

	rows, err := ParseResultsPage(resp.Body, c.Name)
	if err != nil {
		metrics.RecordFetch(s.name, "error", time.Since(start).Seconds())
		return nil, err
	}

	fetchedAt := s.now()
	for i := range rows {
		rows[i].Source = s.name
		rows[i].FetchedAt = fetchedAt
	}

	elapsed := time.Since(start)
	metrics.RecordFetch(s.name, "success", elapsed.Seconds())
	s.events.LogFetch(s.name, c.Name, len(rows), float64(elapsed.Milliseconds()))
	return rows, nil
}

func (s *SoccerStatsSource) handleErrorResponse(status int, c Competition) error {
	msg := fmt.Sprintf("%s returned status %d", c.Key, status)
	switch {
	case status == http.StatusNotFound:
		return NewDataSourceError(s.name, ErrCodeNotFound, msg, ErrNotFound)
	case status == http.StatusTooManyRequests:
		return NewDataSourceError(s.name, ErrCodeRateLimitExceeded, msg, ErrRateLimitExceeded)
	case status >= 500:
		return NewDataSourceError(s.name, ErrCodeServerError, msg, ErrServerError)
	default:
		return NewDataSourceError(s.name, ErrCodeUnknown, msg, nil)
	}
}

// ParseResultsPage extracts result and fixture rows from a by-date results table.
// Rows without a weekday/day date or with a postponed full time are skipped.
func ParseResultsPage(r io.Reader, competition string) ([]MatchData, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, NewDataSourceError(SoccerStatsSourceName, ErrCodeInvalidData, "failed to parse HTML", err)
	}

	var rows []MatchData
	doc.Find("tr.odd").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < minResultCells {
			return
		}
		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		date := cell(0)
		fullTime := cell(2)
		if !isResultDate(date) || strings.Contains(fullTime, "pp.") {
			return
		}
		home, away := cell(1), cell(3)
		if home == "" || away == "" {
			return
		}

		rows = append(rows, MatchData{
			Competition: competition,
			DateText:    date,
			HomeTeam:    home,
			AwayTeam:    away,
			FullTime:    fullTime,
			HalfTime:    cell(5),
		})
	})
	return rows, nil
}

func isResultDate(text string) bool {
	hasWeekday := false
	for _, day := range weekdays {
		if strings.Contains(text, day) {
			hasWeekday = true
			break
		}
	}
	if !hasWeekday {
		return false
	}
	return strings.IndexFunc(text, unicode.IsDigit) >= 0
}
