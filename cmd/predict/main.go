// Package main provides the prediction CLI: on-demand fixture predictions
// and stored backtest summaries.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

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

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

var (
	homeTeamID int64
	awayTeamID int64
	season     int
	matchDate  string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	matchCmd.Flags().Int64Var(&homeTeamID, "home", 0, "Home team ID")
	matchCmd.Flags().Int64Var(&awayTeamID, "away", 0, "Away team ID")
	matchCmd.Flags().IntVar(&season, "season", 0, "Season year")
	matchCmd.Flags().StringVar(&matchDate, "date", "", "Match date (YYYY-MM-DD); history before this date is used")
	_ = matchCmd.MarkFlagRequired("home")
	_ = matchCmd.MarkFlagRequired("away")
	_ = matchCmd.MarkFlagRequired("season")

	summaryCmd.Flags().IntVar(&season, "season", 0, "Season year")
	_ = summaryCmd.MarkFlagRequired("season")

	verifyCmd.Flags().IntVar(&season, "season", 0, "Season year")
	_ = verifyCmd.MarkFlagRequired("season")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(verifyCmd)
}

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Generate goal and corner predictions for fixtures",
	Long:  `Generates goal-scoring, both-teams-to-score and corner-total predictions from historical match data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Predict a single fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMatchPrediction(cmd.Context())
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the stored backtest summary for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd.Context())
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify stored predictions against actual results with flat stakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if cfg.AWS.Enabled {
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, cfg.AWS.Region, cfg.AWS.SecretName); err != nil {
			return fmt.Errorf("loading secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func runMatchPrediction(ctx context.Context) error {
	cutoff := time.Now()
	if matchDate != "" {
		parsed, err := time.Parse("2006-01-02", matchDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", matchDate, err)
		}
		cutoff = parsed
	}

	pred := predictor.New(
		repos.Match,
		weighting.NewEngine(appLogger),
		corners.NewPredictor(corners.NewAnalyzer(appLogger), appLogger),
		appLogger,
	)

	outcome, err := pred.Predict(ctx, homeTeamID, awayTeamID, season, cutoff)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	homeName := teamName(ctx, homeTeamID)
	awayName := teamName(ctx, awayTeamID)

	fmt.Printf("\n%s vs %s (season %d, history before %s)\n\n",
		homeName, awayName, season, cutoff.Format("2006-01-02"))

	if !outcome.OK() {
		fmt.Println("Goal Markets: insufficient history")
		fmt.Printf("  Fallback probability: %.1f%%\n", outcome.Insufficient.Probability)
		fmt.Printf("  Confidence: %.1f\n", outcome.Insufficient.ConfidenceScore)
		fmt.Printf("  Reason: %s\n", outcome.Insufficient.Reason)
	} else {
		printGoalPrediction(outcome.Prediction, homeName, awayName)
	}

	cornerPred, err := pred.PredictCorners(ctx, homeTeamID, awayTeamID, season, cutoff)
	switch {
	case errors.Is(err, models.ErrInsufficientHistory):
		fmt.Println("\nCorner Markets: insufficient history")
	case err != nil:
		return fmt.Errorf("corner prediction failed: %w", err)
	default:
		printCornerPrediction(cornerPred)
	}

	return nil
}

func printGoalPrediction(p *models.Prediction, homeName, awayName string) {
	fmt.Println("Goal Markets:")
	fmt.Printf("  %s to score: %.1f%%\n", homeName, p.HomeScoreProbability)
	fmt.Printf("  %s to score: %.1f%%\n", awayName, p.AwayScoreProbability)
	fmt.Printf("  Both teams to score: %.1f%%\n", p.BTTSProbability)
	fmt.Printf("  Both teams 2+ goals: %.1f%%\n", p.BTTS2PlusProbability)
	fmt.Printf("  Confidence: %.1f (%s)\n", p.ConfidenceScore, p.Confidence)
	fmt.Printf("  Data quality: %s\n", p.DataQuality)
	fmt.Printf("  Home reasoning: %s\n", p.HomeCalculation.Reasoning)
	fmt.Printf("  Away reasoning: %s\n", p.AwayCalculation.Reasoning)
}

func printCornerPrediction(p *models.CornerPrediction) {
	fmt.Println("\nCorner Markets:")
	fmt.Printf("  Predicted total: %.1f (home %.1f, away %.1f)\n",
		p.PredictedTotalCorners, p.PredictedHomeCorners, p.PredictedAwayCorners)
	fmt.Printf("  Over 5.5: %.1f%%\n", p.Confidence5p5)
	fmt.Printf("  Over 6.5: %.1f%%\n", p.Confidence6p5)
	fmt.Printf("  Over 7.5: %.1f%%\n", p.Confidence7p5)
	fmt.Printf("  Over 8.5: %.1f%%\n", p.Confidence8p5)
	fmt.Printf("  Statistical confidence: %.1f\n", p.StatisticalConfidence)
	fmt.Printf("  Quality: %s\n", p.PredictionQuality)
}

func runSummary(ctx context.Context) error {
	summary, err := repos.BacktestResult.GetSummary(ctx, season)
	if err != nil {
		return fmt.Errorf("loading summary: %w", err)
	}

	fmt.Printf("Backtest summary for season %d:\n", season)
	fmt.Printf("  Total predictions: %d\n", summary.TotalPredictions)
	fmt.Printf("  Verified predictions: %d\n", summary.VerifiedPredictions)
	fmt.Printf("  Average accuracy: %.1f%%\n", summary.AverageAccuracy)
	fmt.Printf("  Over 5.5 success rate: %.1f%%\n", summary.Over5p5SuccessRate)
	fmt.Printf("  Over 6.5 success rate: %.1f%%\n", summary.Over6p5SuccessRate)

	return nil
}

func runVerify(ctx context.Context) error {
	results, err := repos.BacktestResult.GetBySeason(ctx, season)
	if err != nil {
		return fmt.Errorf("loading results: %w", err)
	}
	if len(results) == 0 {
		fmt.Printf("No stored backtest results for season %d\n", season)
		return nil
	}

	report := backtest.AnalyzeProfitability(results)
	fmt.Print(backtest.GenerateProfitabilityReport(report))
	return nil
}

func teamName(ctx context.Context, teamID int64) string {
	team, err := repos.Team.GetByID(ctx, teamID)
	if err != nil || team == nil {
		return fmt.Sprintf("team %d", teamID)
	}
	return team.Name
}
