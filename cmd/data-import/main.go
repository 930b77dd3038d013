// Package main provides the entry point for the data import service. It
// runs one-shot team and fixture imports, and a daemon mode that keeps the
// database current via the live stream and the nightly statistics backfill.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/config"
	"github.com/yourusername/corner-edge/internal/database"
	"github.com/yourusername/corner-edge/internal/health"
	"github.com/yourusername/corner-edge/internal/logger"
	"github.com/yourusername/corner-edge/internal/metrics"
	"github.com/yourusername/corner-edge/internal/repository"
	"github.com/yourusername/corner-edge/internal/scheduler"
	"github.com/yourusername/corner-edge/internal/service"
	"github.com/yourusername/corner-edge/internal/sportsdata"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to config file")
		season      = flag.Int("season", 0, "Season year (defaults to the configured backtest season)")
		importTeams = flag.Bool("teams", false, "Import the league's teams and exit")
		date        = flag.String("date", "", "Import fixtures for one date (YYYY-MM-DD) and exit")
		fromDate    = flag.String("from", "", "Range import start date (YYYY-MM-DD)")
		toDate      = flag.String("to", "", "Range import end date (YYYY-MM-DD)")
		daemon      = flag.Bool("daemon", false, "Run as a daemon with live stream and scheduled backfill")
	)
	flag.Parse()

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	if *season == 0 {
		*season = cfg.Backtest.Season
	}

	log.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"season":      *season,
		"version":     Version,
	}).Info("Data import service starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	client := sportsdata.NewClient(&cfg.SportsAPI, log)
	defer client.Close()

	importer, err := service.NewImportService(repos.Team, repos.Match, client, int64(cfg.SportsAPI.LeagueID), log)
	if err != nil {
		log.Fatalf("Failed to create import service: %v", err)
	}

	switch {
	case *importTeams:
		runTeamImport(ctx, importer, *season, log)
	case *date != "":
		runDateImport(ctx, importer, *date, *season, log)
	case *fromDate != "" && *toDate != "":
		runRangeImport(ctx, importer, *fromDate, *toDate, *season, log)
	case *daemon:
		runDaemon(ctx, cfg, db, repos, client, importer, *season, log)
	default:
		log.Fatal("Nothing to do: pass -teams, -date, -from/-to or -daemon")
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

func runTeamImport(ctx context.Context, importer *service.ImportService, season int, log *logrus.Logger) {
	report, err := importer.ImportTeams(ctx, season)
	if err != nil {
		log.Fatalf("Team import failed: %v", err)
	}
	fmt.Printf("Teams imported: %d created, %d already present\n", report.Created, report.Existing)
}

func runDateImport(ctx context.Context, importer *service.ImportService, date string, season int, log *logrus.Logger) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		log.Fatalf("Invalid date %q: %v", date, err)
	}

	report, err := importer.ImportFixturesByDate(ctx, parsed, season)
	if err != nil {
		log.Fatalf("Fixture import failed: %v", err)
	}
	fmt.Printf("Fixtures for %s: %d created, %d already present, %d skipped\n",
		date, report.Created, report.Existing, report.Skipped)
}

func runRangeImport(ctx context.Context, importer *service.ImportService, from, to string, season int, log *logrus.Logger) {
	fromParsed, err := time.Parse("2006-01-02", from)
	if err != nil {
		log.Fatalf("Invalid from date %q: %v", from, err)
	}
	toParsed, err := time.Parse("2006-01-02", to)
	if err != nil {
		log.Fatalf("Invalid to date %q: %v", to, err)
	}
	if toParsed.Before(fromParsed) {
		log.Fatalf("Range end %s is before start %s", to, from)
	}

	report, err := importer.ImportFixtureRange(ctx, fromParsed, toParsed, season)
	if err != nil {
		log.Fatalf("Range import failed: %v", err)
	}
	fmt.Printf("Fixtures %s..%s: %d created, %d already present, %d skipped\n",
		from, to, report.Created, report.Existing, report.Skipped)
}

func runDaemon(
	ctx context.Context,
	cfg *config.Config,
	db *database.DB,
	repos *repository.Repositories,
	client *sportsdata.Client,
	importer *service.ImportService,
	season int,
	log *logrus.Logger,
) {
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        cfg.Health.Port,
		Logger:      log,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		log.Fatalf("Failed to start health server: %v", err)
	}

	if cfg.Metrics.Enabled {
		startMetricsServer(ctx, cfg, log)
	}

	backfill, err := service.NewStatsBackfillService(repos.Match, client, log)
	if err != nil {
		log.Fatalf("Failed to create backfill service: %v", err)
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(backfill, log)
		if err := sched.ScheduleStatsBackfill(cfg.Scheduler.BackfillCron, season, cfg.Scheduler.BackfillBatchSize); err != nil {
			log.Fatalf("Failed to schedule backfill: %v", err)
		}
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		log.WithField("next_run", sched.GetNextRun()).Info("Backfill scheduler running")
	}

	stream := startLiveStream(ctx, cfg, importer, log)

	healthServer.SetReady(true)
	log.Info("Data import daemon running")

	<-ctx.Done()
	log.Info("Shutdown signal received")

	healthServer.SetReady(false)
	if stream != nil {
		if err := stream.Close(); err != nil {
			log.WithError(err).Error("Failed to close live stream")
		}
	}
	if sched != nil {
		if err := sched.Stop(); err != nil {
			log.WithError(err).Error("Failed to stop scheduler")
		}
	}

	log.Info("Data import daemon shut down")
}

func startMetricsServer(ctx context.Context, cfg *config.Config, log *logrus.Logger) {
	metrics.InitRegistry()

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		log.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}

func startLiveStream(ctx context.Context, cfg *config.Config, importer *service.ImportService, log *logrus.Logger) *sportsdata.StreamClient {
	if cfg.SportsAPI.StreamURL == "" {
		log.Info("No stream URL configured; relying on scheduled backfill only")
		return nil
	}

	stream := sportsdata.NewStreamClient(cfg.SportsAPI.StreamURL, cfg.SportsAPI.APIKey, cfg.SportsAPI.LeagueID, log)
	stream.AddHandler(func(msg sportsdata.LiveFixtureMessage) error {
		handlerCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return importer.HandleLiveUpdate(handlerCtx, msg)
	})

	if err := stream.Connect(ctx); err != nil {
		log.WithError(err).Warn("Live stream unavailable; relying on scheduled backfill")
		return nil
	}
	if err := stream.Subscribe(ctx); err != nil {
		log.WithError(err).Warn("Live stream subscription failed")
		_ = stream.Close()
		return nil
	}

	log.Info("Live fixture stream connected")
	return stream
}
