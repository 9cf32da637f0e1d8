// Package score extracts goal counts from the score text found on result pages.
//
// Half-time text is read with one rule everywhere: a parenthesized "(H-A)" value is
// authoritative, otherwise a bare "H-A" is accepted. Anything unparseable degrades to
// 0-0, which cannot be told apart from a real scoreless half; Parse reports ok=false
// in that case so callers that care can keep the distinction.
package score

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/futalgo/internal/models"
)

// PostponedMarker is the token result pages print in the score column of postponed games
const PostponedMarker = "pp."

var (
	parenthesizedScore = regexp.MustCompile(`\((\d+)\s*-\s*(\d+)\)`)
	parenthesized      = regexp.MustCompile(`\([^)]*\)`)
	nonDigit           = regexp.MustCompile(`[^\d]`)
)

// IsPostponed reports whether raw carries the postponed marker
func IsPostponed(raw string) bool {
	return strings.Contains(raw, PostponedMarker)
}

// ParseFullTime returns the full-time score, 0-0 when raw cannot be read
func ParseFullTime(raw string) models.Score {
	s, _ := parse(raw, false)
	return s
}

// ParseHalfTime returns the half-time score, 0-0 when raw cannot be read
func ParseHalfTime(raw string) models.Score {
	s, _ := parse(raw, true)
	return s
}

// HasHalfTime reports whether raw holds a readable half-time score
func HasHalfTime(raw string) bool {
	_, ok := parse(raw, true)
	return ok
}

// Parse reads a score of either period and reports whether it was readable
func Parse(raw string, halfTime bool) (models.Score, bool) {
	return parse(raw, halfTime)
}

func parse(raw string, halfTime bool) (models.Score, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "-" || IsPostponed(value) {
		return models.Score{}, false
	}

	if halfTime {
		if m := parenthesizedScore.FindStringSubmatch(value); m != nil {
			home, errHome := strconv.Atoi(m[1])
			away, errAway := strconv.Atoi(m[2])
			if errHome == nil && errAway == nil {
				return models.Score{Home: home, Away: away}, true
			}
			return models.Score{}, false
		}
	}

	return parsePair(strings.TrimSpace(parenthesized.ReplaceAllString(value, "")))
}

func parsePair(value string) (models.Score, bool) {
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return models.Score{}, false
	}

	home, ok := goals(parts[0])
	if !ok {
		return models.Score{}, false
	}
	away, ok := goals(parts[1])
	if !ok {
		return models.Score{}, false
	}
	return models.Score{Home: home, Away: away}, true
}

func goals(part string) (int, bool) {
	digits := nonDigit.ReplaceAllString(strings.TrimSpace(part), "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
