package backtest

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/corner-edge/internal/models"
)

// GenerateRunReport formats a run summary for terminal output
func GenerateRunReport(run *models.BacktestRun) string {
	var builder strings.Builder
	builder.WriteString("Backtest Run\n")
	builder.WriteString("============\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", run.RunID))
	builder.WriteString(fmt.Sprintf("Season: %d\n", run.Season))
	builder.WriteString(fmt.Sprintf("Dates Available: %d\n", run.DatesAvailable))
	builder.WriteString(fmt.Sprintf("Dates Processed: %d\n", run.DatesProcessed))
	builder.WriteString(fmt.Sprintf("Dates Successful: %d\n", run.DatesSuccessful))
	builder.WriteString(fmt.Sprintf("Dates Failed: %d\n", run.DatesFailed))
	builder.WriteString(fmt.Sprintf("Predictions Stored: %d\n", run.TotalPredictions))
	builder.WriteString(fmt.Sprintf("Success Rate: %.2f%%\n", run.SuccessRate))
	builder.WriteString(fmt.Sprintf("Duration: %s\n", run.Duration.Round(time.Millisecond)))

	if len(run.Errors) > 0 {
		builder.WriteString("Errors:\n")
		for _, msg := range run.Errors {
			builder.WriteString(fmt.Sprintf("  - %s\n", msg))
		}
	}

	return builder.String()
}

// GenerateSummaryReport formats the aggregated season summary
func GenerateSummaryReport(summary *models.BacktestSummary) string {
	var builder strings.Builder
	builder.WriteString("Backtest Summary\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Total Predictions: %d\n", summary.TotalPredictions))
	builder.WriteString(fmt.Sprintf("Verified Predictions: %d\n", summary.VerifiedPredictions))
	builder.WriteString(fmt.Sprintf("Average Accuracy: %.2f\n", summary.AverageAccuracy))
	builder.WriteString(fmt.Sprintf("Over 5.5 Success Rate: %.2f%%\n", summary.Over5p5SuccessRate))
	builder.WriteString(fmt.Sprintf("Over 6.5 Success Rate: %.2f%%\n", summary.Over6p5SuccessRate))
	return builder.String()
}

// GenerateProfitabilityReport formats the flat-stake simulation results
func GenerateProfitabilityReport(report *ProfitabilityReport) string {
	var builder strings.Builder
	builder.WriteString("Profitability Analysis\n")
	builder.WriteString("======================\n")
	for _, market := range report.Markets {
		builder.WriteString(fmt.Sprintf("%s @ %s\n", market.Market, market.Odds))
		builder.WriteString(fmt.Sprintf("  Bets: %d  Wins: %d  Win Rate: %.2f%%\n", market.Bets, market.Wins, market.WinRate))
		builder.WriteString(fmt.Sprintf("  Staked: %s  Returned: %s  Profit: %s  ROI: %s%%\n",
			market.Staked, market.Returned, market.Profit, market.ROI))
	}
	builder.WriteString(fmt.Sprintf("Total Staked: %s\n", report.TotalStaked))
	builder.WriteString(fmt.Sprintf("Total Profit: %s\n", report.TotalProfit))
	return builder.String()
}
