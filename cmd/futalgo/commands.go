package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/futalgo/internal/health"
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/ranking"
	"github.com/yourusername/futalgo/internal/scheduler"
	"github.com/yourusername/futalgo/internal/service"
	"github.com/yourusername/futalgo/internal/tips"
)

var (
	fixtureDays    int
	competition    string
	topTeams       int
	minProbability float64
	tipFamilies    []string
	tipMarket      string
	profileWindow  int
)

func init() {
	fixturesCmd.Flags().IntVarP(&fixtureDays, "days", "d", 0, "Fixture window in days (3 or 7, default from config)")
	fixturesCmd.Flags().StringVar(&competition, "competition", "", "Only fixtures of this competition")

	rankCmd.Flags().StringVar(&competition, "competition", ranking.AllCompetitions, "Only teams whose main competition is this one")
	rankCmd.Flags().IntVarP(&topTeams, "top", "n", 20, "Number of teams listed, negative for all")

	tipsCmd.Flags().IntVarP(&fixtureDays, "days", "d", 0, "Fixture window in days (3 or 7, default from config)")
	tipsCmd.Flags().Float64Var(&minProbability, "min", -1, "Minimum combined probability (default from config)")
	tipsCmd.Flags().StringSliceVar(&tipFamilies, "family", nil, "Restrict tips to market families (over_ht, over_ft, btts, combined, team_attack, result)")
	tipsCmd.Flags().StringVarP(&tipMarket, "market", "m", "", "Restrict tips to one market, by id or name")

	profileCmd.Flags().IntVarP(&profileWindow, "window", "w", 0, "Matches profiled (default from config)")
}

func withLoadedApp(run func(ctx context.Context, a *app) error) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.load(ctx); err != nil {
		return err
	}
	return run(ctx, a)
}

func days() int {
	if fixtureDays > 0 {
		return fixtureDays
	}
	return cfg.Analysis.FixtureDays
}

func upcoming(a *app) ([]models.Match, error) {
	d := days()
	if d != 3 && d != 7 {
		return nil, fmt.Errorf("fixture window must be 3 or 7 days, got %d", d)
	}
	fixtures, err := a.analysis.Upcoming(time.Now(), d)
	if err != nil {
		return nil, err
	}
	if competition == "" {
		return fixtures, nil
	}
	var out []models.Match
	for _, f := range fixtures {
		if f.Competition == competition {
			out = append(out, f)
		}
	}
	return out, nil
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Simulate every upcoming fixture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedApp(func(ctx context.Context, a *app) error {
			overview, err := a.analysis.Overview()
			if err != nil {
				return err
			}
			renderOverview(cmd.OutOrStdout(), overview)

			fixtures, err := upcoming(a)
			if err != nil {
				return err
			}
			if len(fixtures) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No fixtures in the next %d days\n", days())
				return nil
			}

			analyzer := service.NewFixtureAnalyzerFromConfig(a.analysis, &cfg.Analysis)
			report, err := analyzer.Analyze(ctx, fixtures, func(done, total int) {
				fmt.Fprintf(os.Stderr, "\rAnalyzing fixtures %d/%d", done, total)
				if done == total {
					fmt.Fprintln(os.Stderr)
				}
			})
			if err != nil {
				return err
			}
			renderFixtures(cmd.OutOrStdout(), report, a.table)
			return nil
		})
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank <market>",
	Short: "Rank teams and leagues by historical hit rate on a market",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedApp(func(ctx context.Context, a *app) error {
			market, err := resolveMarket(a.table, args[0])
			if err != nil {
				return err
			}
			result, err := a.analysis.RankMarket(market.ID, competition)
			if err != nil {
				return err
			}
			renderRanking(cmd.OutOrStdout(), result, topTeams)
			return nil
		})
	},
}

var tipsCmd = &cobra.Command{
	Use:   "tips [home away]",
	Short: "Tips for one fixture, or for every upcoming fixture",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or home and away team")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedApp(func(ctx context.Context, a *app) error {
			filter, err := tipFilter(a.analysis.Table(), tipMarket, tipFamilies)
			if err != nil {
				return err
			}

			if len(args) == 2 {
				renderTips(cmd.OutOrStdout(), args[0], args[1], a.analysis.GenerateTips(args[0], args[1], filter))
				return nil
			}

			threshold := minProbability
			if threshold < 0 {
				threshold = cfg.Analysis.MinTipProbability
			}
			fixtures, err := upcoming(a)
			if err != nil {
				return err
			}
			renderTipBatch(cmd.OutOrStdout(), a.analysis.TipBatch(fixtures, threshold, filter), threshold)
			return nil
		})
	},
}

func tipFilter(table *markets.Table, market string, families []string) (tips.Filter, error) {
	byFamily, err := familyFilter(families)
	if err != nil {
		return nil, err
	}
	if market == "" {
		return byFamily, nil
	}
	c, err := resolveMarket(table, market)
	if err != nil {
		return nil, err
	}
	if !c.Tippable {
		return nil, fmt.Errorf("market %s is not tippable", c.Name)
	}
	return tips.All(tips.Market(c.ID), byFamily), nil
}

func familyFilter(names []string) (tips.Filter, error) {
	if len(names) == 0 {
		return nil, nil
	}
	known := map[markets.Family]bool{
		markets.FamilyOverHT: true, markets.FamilyOverFT: true, markets.FamilyBTTS: true,
		markets.FamilyCombined: true, markets.FamilyTeamAttack: true, markets.FamilyResult: true,
	}
	families := make([]markets.Family, 0, len(names))
	for _, n := range names {
		f := markets.Family(n)
		if !known[f] {
			return nil, fmt.Errorf("unknown tip family: %s", n)
		}
		families = append(families, f)
	}
	return tips.Families(families...), nil
}

var profileCmd = &cobra.Command{
	Use:   "profile <team>",
	Short: "Show the weighted recent form of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedApp(func(ctx context.Context, a *app) error {
			f := a.analysis.Profile(args[0], profileWindow)
			if f == nil {
				return fmt.Errorf("%s: %w", args[0], models.ErrNoMatches)
			}
			renderProfile(cmd.OutOrStdout(), f)
			return nil
		})
	},
}

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List the market table with configured overrides applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cfg.MarketTable()
		if err != nil {
			return err
		}
		renderMarkets(cmd.OutOrStdout(), table)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Keep the store refreshed on schedule and serve health and metrics endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metricsPath := ""
		if cfg.Metrics.Enabled {
			metricsPath = cfg.Metrics.Path
		}
		sched := scheduler.NewScheduler(a.ingestion, logger)
		if err := sched.ScheduleRefresh(cfg.DataIngestion.Schedule.RefreshCron, 0); err != nil {
			return err
		}
		server := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        strconv.Itoa(cfg.Metrics.Port),
			Logger:      logger,
			Store:       a.store,
			Refresh:     sched,
			MetricsPath: metricsPath,
		})
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}

		if err := sched.RunNow(ctx); err != nil {
			logger.WithError(err).Warn("Initial refresh failed, waiting for the next scheduled run")
		} else if overview, err := a.analysis.Overview(); err == nil {
			logger.WithFields(logrus.Fields{
				"matches":      overview.Matches,
				"fixtures":     overview.Fixtures,
				"competitions": overview.Competitions,
				"teams":        overview.Teams,
			}).Info("Store loaded")
		}
		if err := sched.Start(); err != nil {
			return err
		}
		server.SetReady(true)

		<-ctx.Done()
		logger.Info("Shutting down")
		server.SetReady(false)
		return sched.Stop()
	},
}
