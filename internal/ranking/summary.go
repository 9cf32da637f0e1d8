package ranking

// StrongRate is the hit rate from which a team counts as strong in a summary
const StrongRate = 70.0

// Summary condenses a team ranking
type Summary struct {
	Teams       int     `json:"teams"`
	BestTeam    string  `json:"best_team"`
	BestRate    float64 `json:"best_rate"`
	StrongTeams int     `json:"strong_teams"`
}

// Summarize returns the headline figures of a ranking result
func Summarize(result Result) Summary {
	s := Summary{Teams: len(result.Teams)}
	for i, entry := range result.Teams {
		if i == 0 {
			s.BestTeam = entry.Name
			s.BestRate = entry.HitRate
		}
		if entry.HitRate >= StrongRate {
			s.StrongTeams++
		}
	}
	return s
}

// Top returns the n best teams
func (r Result) Top(n int) []TeamEntry {
	if n < 0 || n >= len(r.Teams) {
		return r.Teams
	}
	return r.Teams[:n]
}
