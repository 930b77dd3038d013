// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/backtest"
	"github.com/yourusername/corner-edge/internal/config"
	"github.com/yourusername/corner-edge/internal/corners"
	"github.com/yourusername/corner-edge/internal/database"
	"github.com/yourusername/corner-edge/internal/logger"
	"github.com/yourusername/corner-edge/internal/models"
	"github.com/yourusername/corner-edge/internal/predictor"
	"github.com/yourusername/corner-edge/internal/repository"
	"github.com/yourusername/corner-edge/internal/weighting"
)

func main() {
	var (
		configPath    = flag.String("config", "config/config.yaml", "Path to config file")
		season        = flag.Int("season", 0, "Override season to backtest")
		maxDates      = flag.Int("max-dates", 0, "Limit the number of dates processed (0 = no limit)")
		force         = flag.Bool("force", false, "Rewrite results for dates that were already processed")
		summary       = flag.Bool("summary", false, "Print the stored season summary and exit")
		profitability = flag.Bool("profitability", false, "Include a flat-stakes profitability report")
	)
	flag.Parse()

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	btConfig, err := backtest.FromConfig(&cfg.Backtest)
	if err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}
	if *season != 0 {
		btConfig.Season = *season
	}
	if *maxDates != 0 {
		btConfig.MaxDates = *maxDates
	}
	if *force {
		btConfig.Force = true
	}
	if err := btConfig.Validate(); err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}

	if *summary {
		printSummary(ctx, repos, btConfig.Season, log)
		return
	}

	pred := predictor.New(
		repos.Match,
		weighting.NewEngine(log),
		corners.NewPredictor(corners.NewAnalyzer(log), log),
		log,
	)

	engine, err := backtest.NewEngine(btConfig, db, repos, pred, log)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	log.WithFields(logrus.Fields{
		"season":    btConfig.Season,
		"max_dates": btConfig.MaxDates,
		"force":     btConfig.Force,
	}).Info("Starting backtest")

	run, err := engine.Run(ctx)
	if run != nil {
		// An interrupted run still stored complete dates; report them.
		fmt.Print(backtest.GenerateRunReport(run))
	}
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	if *profitability {
		printProfitability(ctx, repos, run, log)
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	bootstrap := logrus.New()

	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		bootstrap.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AWS.Enabled {
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, cfg.AWS.Region, cfg.AWS.SecretName); err != nil {
			bootstrap.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		bootstrap.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

func printSummary(ctx context.Context, repos *repository.Repositories, season int, log *logrus.Logger) {
	summary, err := repos.BacktestResult.GetSummary(ctx, season)
	if err != nil {
		log.Fatalf("Failed to load summary: %v", err)
	}
	fmt.Print(backtest.GenerateSummaryReport(summary))
}

func printProfitability(ctx context.Context, repos *repository.Repositories, run *models.BacktestRun, log *logrus.Logger) {
	results, err := repos.BacktestResult.GetByRunID(ctx, run.RunID)
	if err != nil {
		log.Fatalf("Failed to load run results: %v", err)
	}
	report := backtest.AnalyzeProfitability(results)
	fmt.Print(backtest.GenerateProfitabilityReport(report))
}
