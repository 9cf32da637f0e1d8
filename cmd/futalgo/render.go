package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/futalgo/internal/form"
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/ranking"
	"github.com/yourusername/futalgo/internal/repository"
	"github.com/yourusername/futalgo/internal/service"
	"github.com/yourusername/futalgo/internal/tips"
)

const (
	noData     = "-"
	dateLayout = "Mon 02 Jan"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// percent formats a percentage rounded half away from zero to one decimal
func percent(v float64) string {
	return decimal.NewFromFloat(v).Round(1).StringFixed(1) + "%"
}

func goals(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

func marketValue(c markets.Config, v float64) string {
	if c.Family == markets.FamilyExpected {
		return goals(v)
	}
	return percent(v)
}

func renderOverview(w io.Writer, o repository.Overview) {
	fmt.Fprintf(w, "Dataset: %d matches, %d fixtures, %d competitions, %d teams\n", o.Matches, o.Fixtures, o.Competitions, o.Teams)
}

func renderFixtures(w io.Writer, report *service.FixtureReport, table *markets.Table) {
	simulated := table.Simulated()
	tw := newTable(w)

	header := []string{"Competition", "Date", "Home", "Away"}
	for _, c := range simulated {
		header = append(header, c.Name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, a := range report.Analyses {
		row := []string{a.Fixture.Competition, a.Fixture.Date.Format(dateLayout), a.Fixture.HomeTeam, a.Fixture.AwayTeam}
		for _, c := range simulated {
			if a.NoData {
				row = append(row, noData)
				continue
			}
			v, ok := a.Probabilities.Get(c.ID)
			if !ok {
				row = append(row, noData)
				continue
			}
			row = append(row, marketValue(c, v))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d fixtures, %d analyzed, %d without data (%s)\n",
		len(report.Analyses), report.Analyzed, report.NoData, report.Duration.Round(time.Millisecond))
}

func last5(outcomes [form.Last5Size]models.Outcome) string {
	var b strings.Builder
	for _, o := range outcomes {
		b.WriteString(o.Symbol())
	}
	return b.String()
}

func renderRanking(w io.Writer, result ranking.Result, top int) {
	summary := ranking.Summarize(result)
	fmt.Fprintf(w, "%s %s\n", result.Market.Icon, result.Market.Name)
	if summary.Teams == 0 {
		fmt.Fprintln(w, "No team has enough matches for this market")
	} else {
		fmt.Fprintf(w, "Teams: %d  Best: %s (%s)  At or above %s: %d\n\n",
			summary.Teams, summary.BestTeam, percent(summary.BestRate), percent(ranking.StrongRate), summary.StrongTeams)

		tw := newTable(w)
		fmt.Fprintln(tw, "#\tTeam\tLeague\tHit rate\tHits\tLast 5")
		for i, e := range result.Top(top) {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%s\n", i+1, e.Name, e.League, percent(e.HitRate), e.Hits, e.Samples, last5(e.Last5))
		}
		tw.Flush()
	}

	if len(result.Leagues) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tLeague\tHit rate\tHits")
	for i, e := range result.Leagues {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\n", i+1, e.Name, percent(e.HitRate), e.Hits, e.Samples)
	}
	tw.Flush()
}

func renderTips(w io.Writer, home, away string, list []tips.Tip) {
	fmt.Fprintf(w, "%s vs %s\n", home, away)
	if len(list) == 0 {
		fmt.Fprintln(w, "  no tips")
		return
	}
	tw := newTable(w)
	for _, t := range list {
		fmt.Fprintf(tw, "  %s %s\t%s\t(home %s, away %s)\n", t.Icon, t.Name, percent(t.Combined), percent(t.HomeRate), percent(t.AwayRate))
	}
	tw.Flush()
}

func renderTipBatch(w io.Writer, batch []service.FixtureTips, minProbability float64) {
	if len(batch) == 0 {
		fmt.Fprintf(w, "No fixture has a tip at or above %s\n", percent(minProbability))
		return
	}
	for i, ft := range batch {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s] %s %s\n", ft.Fixture.Competition, ft.Fixture.Date.Format(dateLayout), strings.Repeat("-", 20))
		renderTips(w, ft.Fixture.HomeTeam, ft.Fixture.AwayTeam, ft.Tips)
	}
}

func renderProfile(w io.Writer, f *form.Form) {
	fmt.Fprintf(w, "%s (%d matches, %s)\n", f.Team, f.Matches, f.Kind)

	stats := make([]string, 0, len(f.Values))
	for s := range f.Values {
		stats = append(stats, string(s))
	}
	sort.Strings(stats)

	tw := newTable(w)
	for _, s := range stats {
		v := f.Values[form.Stat(s)]
		value := percent(v * 100)
		if strings.HasPrefix(s, "goals_") {
			value = goals(v)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", s, value)
	}
	tw.Flush()
}

func renderMarkets(w io.Writer, table *markets.Table) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tName\tFamily\tThreshold\tBand\tCalibration\tUse")
	for _, c := range table.All() {
		threshold, band, calibration := noData, noData, noData
		if c.Threshold > 0 {
			threshold = percent(c.Threshold)
		}
		if c.Banded {
			band = fmt.Sprintf("%s-%s", percent(c.Floor), percent(c.Ceiling))
			calibration = decimal.NewFromFloat(c.Calibration).StringFixed(2)
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Icon, c.Name, c.Family, threshold, band, calibration, uses(c))
	}
	tw.Flush()
}

func uses(c markets.Config) string {
	var out []string
	if c.Simulated {
		out = append(out, "simulate")
	}
	if c.Tippable {
		out = append(out, "tip")
	}
	if c.Rankable {
		out = append(out, "rank")
	}
	if c.HalfTimeOnly {
		out = append(out, "ht-only")
	}
	return strings.Join(out, ",")
}
