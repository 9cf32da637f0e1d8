package models

// Outcome marks whether a market was hit in a single match
type Outcome string

const (
	OutcomeHit     Outcome = "hit"
	OutcomeMiss    Outcome = "miss"
	OutcomeUnknown Outcome = "unknown"
)

// Symbol returns the compact glyph used in ranking tables
func (o Outcome) Symbol() string {
	switch o {
	case OutcomeHit:
		return "🟢"
	case OutcomeMiss:
		return "🔴"
	default:
		return "⚫"
	}
}

// OutcomeOf converts a boolean market check to an outcome
func OutcomeOf(hit bool) Outcome {
	if hit {
		return OutcomeHit
	}
	return OutcomeMiss
}
