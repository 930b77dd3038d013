package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/corner-edge/internal/models"
)

// betConfidenceThreshold is the minimum confidence or probability before
// the flat-stake simulation places a bet on a market.
const betConfidenceThreshold = 80.0

// Market identifiers for the profitability simulation.
const (
	MarketOver5p5   = "over_5_5_corners"
	MarketOver6p5   = "over_6_5_corners"
	MarketHomeScore = "home_to_score"
	MarketAwayScore = "away_to_score"
)

// Bookmaker odds assumed for each market. Short odds reflect that these
// markets land most of the time.
var marketOdds = map[string]decimal.Decimal{
	MarketOver5p5:   decimal.NewFromFloat(1.05),
	MarketOver6p5:   decimal.NewFromFloat(1.10),
	MarketHomeScore: decimal.NewFromFloat(1.06),
	MarketAwayScore: decimal.NewFromFloat(1.14),
}

var stakeUnit = decimal.NewFromInt(1)

// MarketResult aggregates the simulated bets for one market.
type MarketResult struct {
	Market   string          `json:"market"`
	Odds     decimal.Decimal `json:"odds"`
	Bets     int             `json:"bets"`
	Wins     int             `json:"wins"`
	Staked   decimal.Decimal `json:"staked"`
	Returned decimal.Decimal `json:"returned"`
	Profit   decimal.Decimal `json:"profit"`
	ROI      decimal.Decimal `json:"roi_percent"`
	WinRate  float64         `json:"win_rate"`
}

// ProfitabilityReport is the result of replaying stored predictions as
// flat one-unit bets.
type ProfitabilityReport struct {
	Markets     []MarketResult  `json:"markets"`
	TotalStaked decimal.Decimal `json:"total_staked"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

type marketTally struct {
	bets int
	wins int
}

// AnalyzeProfitability simulates one flat unit on every stored prediction
// whose confidence clears the threshold, settled against the known actuals.
// Rows without the relevant actuals are never bet on.
func AnalyzeProfitability(results []*models.BacktestResult) *ProfitabilityReport {
	tallies := map[string]*marketTally{
		MarketOver5p5:   {},
		MarketOver6p5:   {},
		MarketHomeScore: {},
		MarketAwayScore: {},
	}

	for _, r := range results {
		if r.ActualTotalCorners != nil {
			actual := float64(*r.ActualTotalCorners)
			if r.Confidence5p5 >= betConfidenceThreshold {
				tallies[MarketOver5p5].record(actual > 5.5)
			}
			if r.Confidence6p5 >= betConfidenceThreshold {
				tallies[MarketOver6p5].record(actual > 6.5)
			}
		}
		if r.ActualGoalsHome != nil && r.HomeScoreProbability >= betConfidenceThreshold {
			tallies[MarketHomeScore].record(*r.ActualGoalsHome >= 1)
		}
		if r.ActualGoalsAway != nil && r.AwayScoreProbability >= betConfidenceThreshold {
			tallies[MarketAwayScore].record(*r.ActualGoalsAway >= 1)
		}
	}

	report := &ProfitabilityReport{
		TotalStaked: decimal.Zero,
		TotalProfit: decimal.Zero,
	}
	for _, market := range []string{MarketOver5p5, MarketOver6p5, MarketHomeScore, MarketAwayScore} {
		result := settleMarket(market, tallies[market])
		report.Markets = append(report.Markets, result)
		report.TotalStaked = report.TotalStaked.Add(result.Staked)
		report.TotalProfit = report.TotalProfit.Add(result.Profit)
	}

	return report
}

func (t *marketTally) record(won bool) {
	t.bets++
	if won {
		t.wins++
	}
}

func settleMarket(market string, tally *marketTally) MarketResult {
	odds := marketOdds[market]
	staked := stakeUnit.Mul(decimal.NewFromInt(int64(tally.bets)))
	returned := odds.Mul(stakeUnit).Mul(decimal.NewFromInt(int64(tally.wins)))
	profit := returned.Sub(staked)

	result := MarketResult{
		Market:   market,
		Odds:     odds,
		Bets:     tally.bets,
		Wins:     tally.wins,
		Staked:   staked,
		Returned: returned,
		Profit:   profit,
		ROI:      decimal.Zero,
	}
	if tally.bets > 0 {
		result.ROI = profit.Div(staked).Mul(decimal.NewFromInt(100)).Round(2)
		result.WinRate = float64(tally.wins) / float64(tally.bets) * 100
	}

	return result
}
