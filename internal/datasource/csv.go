package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/metrics"
)

// CSVDateLayout is the date layout of exported result files
const CSVDateLayout = "2006-01-02"

var csvColumns = []string{"date", "competition", "home", "away", "ht", "ft"}

// CSVSource loads result rows exported to a CSV file
type CSVSource struct {
	name    string
	path    string
	enabled bool
	logger  *logrus.Logger
}

// NewCSVSource creates a CSV file data source
func NewCSVSource(name, path string, enabled bool, logger *logrus.Logger) *CSVSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVSource{name: name, path: path, enabled: enabled, logger: logger}
}

// Name returns the source name
func (s *CSVSource) Name() string {
	return s.name
}

// IsEnabled returns whether the source is enabled
func (s *CSVSource) IsEnabled() bool {
	return s.enabled
}

// FetchMatches reads every row of the configured file
func (s *CSVSource) FetchMatches(ctx context.Context) ([]MatchData, error) {
	if !s.enabled {
		return nil, NewDataSourceError(s.name, ErrCodeUnknown, "data source disabled", nil)
	}
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		metrics.RecordFetch(s.name, "error", time.Since(start).Seconds())
		return nil, NewDataSourceError(s.name, ErrCodeNotFound, "failed to open file", err)
	}
	defer f.Close()

	rows, err := ReadCSV(ctx, f, s.name)
	if err != nil {
		metrics.RecordFetch(s.name, "error", time.Since(start).Seconds())
		return nil, err
	}

	metrics.RecordFetch(s.name, "success", time.Since(start).Seconds())
	s.logger.WithFields(logrus.Fields{
		"source": s.name,
		"path":   s.path,
		"rows":   len(rows),
	}).Debug("Loaded CSV results")
	return rows, nil
}

// ReadCSV parses rows with the header date,competition,home,away,ht,ft.
// Dates in the 2006-01-02 layout fill Date; other date text is kept for inference.
func ReadCSV(ctx context.Context, r io.Reader, source string) ([]MatchData, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, NewDataSourceError(source, ErrCodeInvalidData, "missing header", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, NewDataSourceError(source, ErrCodeInvalidData, "invalid header", err)
	}

	fetchedAt := time.Now()
	var rows []MatchData
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d", line), err)
		}

		field := func(name string) string {
			return strings.TrimSpace(record[index[name]])
		}
		row := MatchData{
			Source:      source,
			Competition: field("competition"),
			DateText:    field("date"),
			HomeTeam:    field("home"),
			AwayTeam:    field("away"),
			HalfTime:    field("ht"),
			FullTime:    field("ft"),
			FetchedAt:   fetchedAt,
		}
		if d, err := time.Parse(CSVDateLayout, row.DateText); err == nil {
			row.Date = d
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return index, nil
}
