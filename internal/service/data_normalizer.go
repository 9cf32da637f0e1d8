package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/datasource"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/score"
)

// yearRollover is how far past the reference time an inferred date may land
// before it is moved to the previous year
const yearRollover = 6

// ErrPostponed marks rows dropped because the game was postponed
var ErrPostponed = errors.New("match postponed")

// DataNormalizer converts raw source rows into match records
type DataNormalizer struct {
	logger *logrus.Logger
	now    func() time.Time
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer(logger *logrus.Logger) *DataNormalizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataNormalizer{
		logger: logger,
		now:    time.Now,
	}
}

// NormalizeMatch converts MatchData from any source to the internal Match model.
// The ID is left unset so the store assigns it on load.
func (n *DataNormalizer) NormalizeMatch(row *datasource.MatchData, sequence int) (*models.Match, error) {
	if row == nil {
		return nil, fmt.Errorf("source row is nil")
	}
	if score.IsPostponed(row.FullTime) {
		return nil, ErrPostponed
	}

	date := row.Date
	if date.IsZero() {
		ref := row.FetchedAt
		if ref.IsZero() {
			ref = n.now()
		}
		inferred, err := InferDate(row.DateText, ref)
		if err != nil {
			return nil, err
		}
		date = inferred
	}

	halfTimeRaw := strings.TrimSpace(row.HalfTime)
	fullTimeRaw := strings.TrimSpace(row.FullTime)
	match := &models.Match{
		Sequence:      sequence,
		Date:          date,
		HomeTeam:      sanitizeName(row.HomeTeam),
		AwayTeam:      sanitizeName(row.AwayTeam),
		Competition:   sanitizeName(row.Competition),
		HalfTimeRaw:   halfTimeRaw,
		FullTimeRaw:   fullTimeRaw,
		HalfTimeKnown: score.HasHalfTime(halfTimeRaw),
	}
	if !match.IsFixture() {
		match.HalfTime = score.ParseHalfTime(halfTimeRaw)
		match.FullTime = score.ParseFullTime(fullTimeRaw)
	}

	return match, nil
}

// InferDate resolves a year-less "Sat 14 Oct" date against ref. A date more than
// six months after ref belongs to the previous year.
func InferDate(text string, ref time.Time) (time.Time, error) {
	var day, month string
	for _, tok := range strings.Fields(text) {
		switch {
		case day == "" && strings.IndexFunc(tok, unicode.IsLetter) < 0:
			day = tok
		case day != "" && month == "":
			month = tok
		}
	}
	if day == "" || month == "" {
		return time.Time{}, fmt.Errorf("%w: unreadable date %q", models.ErrInvalidMatch, text)
	}
	if len(month) > 3 {
		month = month[:3]
	}

	parsed, err := time.Parse("2 Jan", day+" "+month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unreadable date %q", models.ErrInvalidMatch, text)
	}

	date := time.Date(ref.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, ref.Location())
	if date.After(ref.AddDate(0, yearRollover, 0)) {
		date = date.AddDate(-1, 0, 0)
	}
	return date, nil
}

// sanitizeName collapses internal whitespace
func sanitizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
