package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/futalgo/internal/models"
)

func TestParseFullTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Score
	}{
		{name: "plain score", raw: "2-1", want: models.Score{Home: 2, Away: 1}},
		{name: "padded score", raw: " 3 - 0 ", want: models.Score{Home: 3, Away: 0}},
		{name: "empty", raw: "", want: models.Score{}},
		{name: "dash only", raw: "-", want: models.Score{}},
		{name: "postponed", raw: "pp.", want: models.Score{}},
		{name: "non numeric", raw: "a-b", want: models.Score{}},
		{name: "three parts", raw: "1-2-3", want: models.Score{}},
		{name: "parenthesized noise ignored", raw: "2-2 (1-0)", want: models.Score{Home: 2, Away: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFullTime(tt.raw))
		})
	}
}

func TestParseHalfTime(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  models.Score
		known bool
	}{
		{name: "bare score", raw: "1-0", want: models.Score{Home: 1, Away: 0}, known: true},
		{name: "parenthesized only", raw: "(2-1)", want: models.Score{Home: 2, Away: 1}, known: true},
		{name: "parenthesized is authoritative", raw: "3-2 (0-1)", want: models.Score{Home: 0, Away: 1}, known: true},
		{name: "genuine scoreless half", raw: "(0-0)", want: models.Score{}, known: true},
		{name: "empty", raw: "", want: models.Score{}, known: false},
		{name: "garbage", raw: "n/a", want: models.Score{}, known: false},
		{name: "postponed", raw: "pp.", want: models.Score{}, known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHalfTime(tt.raw))
			assert.Equal(t, tt.known, HasHalfTime(tt.raw))
		})
	}
}

func TestIsPostponed(t *testing.T) {
	assert.True(t, IsPostponed("pp."))
	assert.True(t, IsPostponed(" pp. "))
	assert.False(t, IsPostponed("1-1"))
}
