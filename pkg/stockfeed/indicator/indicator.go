// Package indicator contains the pure calculations that turn fetched
// market data into stored stock indicators. No I/O happens here.
package indicator

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

const (
	// RSIPeriod is the lookback window for the relative strength index.
	RSIPeriod = 14

	// GainLossYears is how many year-over-year changes feed the average
	// gain/loss figure.
	GainLossYears = 5

	daysPerYear = 365
)

// ComputationError reports that a calculation could not be completed with
// the data it was given.
type ComputationError struct {
	Indicator string
	Reason    string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Indicator, e.Reason)
}

// IPOYears returns the number of whole 365-day years between ipoDate and
// now. Callers that need determinism must inject a fixed now.
func IPOYears(now, ipoDate time.Time) int {
	return int(now.Sub(ipoDate).Hours() / 24 / daysPerYear)
}

// FundamentalScore sums the rating components whose name contains "Score"
// (case-sensitive). An empty mapping scores 0.
func FundamentalScore(scores map[string]float64) int {
	var total float64
	for name, v := range scores {
		if strings.Contains(name, "Score") {
			total += v
		}
	}
	return int(total)
}

// WeeklyWindow returns the trailing 365-day window for weekly RSI data.
// Weeks start on Monday, so the window ends on the close of the most
// recently completed week: the Monday of the current week minus one day.
func WeeklyWindow(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	sinceMonday := (int(today.Weekday()) + 6) % 7
	lastWeekClose := today.AddDate(0, 0, -sinceMonday)
	end = lastWeekClose.AddDate(0, 0, -1)
	start = end.AddDate(0, 0, -daysPerYear)
	return start, end
}

// RSI computes the 14-period relative strength index over the given close
// series (ordered oldest to newest) and returns the value at the most
// recent point, truncated to an integer.
//
// Wilder's smoothing: the first average gain/loss is a simple mean of the
// first 14 deltas, after which avg = (prev*13 + current) / 14.
func RSI(prices []types.PricePoint) (int, error) {
	if len(prices) < RSIPeriod+1 {
		return 0, &ComputationError{
			Indicator: "rsi",
			Reason:    fmt.Sprintf("need at least %d closes, got %d", RSIPeriod+1, len(prices)),
		}
	}

	var avgGain, avgLoss float64
	for i := 1; i <= RSIPeriod; i++ {
		delta := prices[i].Close - prices[i-1].Close
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= RSIPeriod
	avgLoss /= RSIPeriod

	for i := RSIPeriod + 1; i < len(prices); i++ {
		delta := prices[i].Close - prices[i-1].Close
		var gain, loss float64
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(RSIPeriod-1) + gain) / RSIPeriod
		avgLoss = (avgLoss*(RSIPeriod-1) + loss) / RSIPeriod
	}

	if avgLoss == 0 {
		return 100, nil
	}
	rs := avgGain / avgLoss
	return int(100 - 100/(1+rs)), nil
}

// AvgGainLoss computes the mean year-over-year percentage change of the
// calendar-year average close, over the most recent GainLossYears changes
// (fewer if history is shorter), rounded to the nearest whole percent.
func AvgGainLoss(prices []types.PricePoint) (float64, error) {
	if len(prices) == 0 {
		return 0, &ComputationError{Indicator: "avg_gain_loss", Reason: "empty price series"}
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, p := range prices {
		yr := p.Date.Year()
		sums[yr] += p.Close
		counts[yr]++
	}

	years := make([]int, 0, len(counts))
	for yr := range counts {
		years = append(years, yr)
	}
	sort.Ints(years)
	if len(years) < 2 {
		return 0, &ComputationError{
			Indicator: "avg_gain_loss",
			Reason:    "need closes from at least two calendar years",
		}
	}

	changes := make([]float64, 0, len(years)-1)
	for i := 1; i < len(years); i++ {
		prev := sums[years[i-1]] / float64(counts[years[i-1]])
		cur := sums[years[i]] / float64(counts[years[i]])
		changes = append(changes, (cur-prev)/prev*100)
	}
	if len(changes) > GainLossYears {
		changes = changes[len(changes)-GainLossYears:]
	}

	var total float64
	for _, c := range changes {
		total += c
	}
	return math.Round(total / float64(len(changes))), nil
}
