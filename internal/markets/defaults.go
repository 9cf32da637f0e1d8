package markets

// requiredMarkets must be present in any table used by the simulator, ranker and tip selector
var requiredMarkets = []ID{
	ExpectedGoalsHT, Over05HT, Over15HT, BTTSHT, HomeScoresHT, AwayScoresHT,
	ExpectedGoalsFT, Over05FT, Over15FT, Over25FT, Over35FT, Over45FT,
	BTTSFT, BTTSOver25, HomeScores15, AwayScores15,
	HomeWin, Draw, AwayWin, Wins, Losses,
}

// Default returns the empirically tuned market table
func Default() *Table {
	return NewTable([]Config{
		{ID: ExpectedGoalsHT, Name: "Expected Goals HT", Icon: "⚡", Family: FamilyExpected, Simulated: true},
		{
			ID: Over05HT, Name: "Over 0.5 HT", Icon: "⚡", Family: FamilyOverHT, Line: 0.5,
			Threshold: 75, Banded: true, Floor: 60, Ceiling: 95, Calibration: 1.08,
			Simulated: true, Tippable: true, Rankable: true, HalfTimeOnly: true,
		},
		{
			ID: Over15HT, Name: "Over 1.5 HT", Icon: "⚡", Family: FamilyOverHT, Line: 1.5,
			Threshold: 45, Banded: true, Floor: 40, Ceiling: 85, Calibration: 1.06,
			Simulated: true, Tippable: true, Rankable: true, HalfTimeOnly: true,
		},
		{ID: BTTSHT, Name: "BTTS HT", Icon: "🔀", Family: FamilyBTTSHT, Rankable: true, HalfTimeOnly: true},
		{
			ID: HomeScoresHT, Name: "Home Scores HT", Icon: "🏠", Family: FamilyTeamScoresHT,
			Banded: true, Floor: 50, Ceiling: 90, Calibration: 1.05, Simulated: true,
		},
		{
			ID: AwayScoresHT, Name: "Away Scores HT", Icon: "✈️", Family: FamilyTeamScoresHT,
			Banded: true, Floor: 45, Ceiling: 85, Calibration: 1.05, Simulated: true,
		},
		{ID: ExpectedGoalsFT, Name: "Expected Goals FT", Icon: "🎯", Family: FamilyExpected, Simulated: true},
		{
			ID: Over05FT, Name: "Over 0.5 FT", Icon: "🎯", Family: FamilyOverFT, Line: 0.5,
			Threshold: 85, Banded: true, Floor: 85, Ceiling: 99, Calibration: 1.02,
			Simulated: true, Tippable: true,
		},
		{
			ID: Over15FT, Name: "Over 1.5 FT", Icon: "🎯", Family: FamilyOverFT, Line: 1.5,
			Threshold: 70, Banded: true, Floor: 70, Ceiling: 95, Calibration: 1.04,
			Simulated: true, Tippable: true, Rankable: true,
		},
		{
			ID: Over25FT, Name: "Over 2.5 FT", Icon: "🎯", Family: FamilyOverFT, Line: 2.5,
			Threshold: 55, Banded: true, Floor: 50, Ceiling: 90, Calibration: 1.05,
			Simulated: true, Tippable: true, Rankable: true,
		},
		{
			ID: Over35FT, Name: "Over 3.5 FT", Icon: "🎯", Family: FamilyOverFT, Line: 3.5,
			Threshold: 35, Banded: true, Floor: 25, Ceiling: 75, Calibration: 1.06,
			Simulated: true, Tippable: true, Rankable: true,
		},
		{
			ID: Over45FT, Name: "Over 4.5 FT", Icon: "🎯", Family: FamilyOverFT, Line: 4.5,
			Banded: true, Floor: 10, Ceiling: 50, Calibration: 1.08, Simulated: true,
		},
		{
			ID: BTTSFT, Name: "BTTS FT", Icon: "🔀", Family: FamilyBTTS,
			Threshold: 60, Banded: true, Floor: 40, Ceiling: 85, Calibration: 1.07,
			Simulated: true, Tippable: true, Rankable: true,
		},
		{
			ID: BTTSOver25, Name: "BTTS & Over 2.5", Icon: "🔥", Family: FamilyCombined,
			Threshold: 45, Banded: true, Floor: 25, Ceiling: 70, Calibration: 1.08,
			Simulated: true, Tippable: true,
		},
		{
			ID: HomeScores15, Name: "Home Scores 1.5+", Icon: "🏠", Family: FamilyTeamAttack, Line: 1.5,
			Threshold: 50, Banded: true, Floor: 30, Ceiling: 80, Calibration: 1.09,
			Simulated: true, Tippable: true, Rankable: true,
		},
		{
			ID: AwayScores15, Name: "Away Scores 1.5+", Icon: "✈️", Family: FamilyTeamAttack, Line: 1.5,
			Threshold: 40, Banded: true, Floor: 25, Ceiling: 70, Calibration: 1.09,
			Simulated: true, Tippable: true, Rankable: true,
		},
		{ID: HomeWin, Name: "Home Win", Icon: "🏠", Family: FamilyResult, Threshold: 65, Simulated: true, Tippable: true},
		{ID: Draw, Name: "Draw", Icon: "🤝", Family: FamilyResult, Simulated: true},
		{ID: AwayWin, Name: "Away Win", Icon: "✈️", Family: FamilyResult, Threshold: 55, Simulated: true, Tippable: true},
		{ID: Wins, Name: "Wins", Icon: "✅", Family: FamilyResult, Rankable: true},
		{ID: Losses, Name: "Losses", Icon: "❌", Family: FamilyResult, Rankable: true},
	})
}
