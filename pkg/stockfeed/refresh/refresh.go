// Package refresh orchestrates the per-ticker, per-indicator-group update
// of stock records. Each indicator group is refreshed independently: a
// provider or computation failure in one group is contained there and the
// run continues with the next group and ticker.
package refresh

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/indicator"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/market"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/store"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// Group names one refreshable indicator category of a stock record.
type Group string

const (
	GroupCompanyInfo   Group = "company_info"
	GroupFAScore       Group = "fa_score"
	GroupRSI           Group = "rsi"
	GroupAvgGainLoss   Group = "avg_gain_loss"
	GroupDividendYield Group = "dividend_yield"
)

// groupOrder is the fixed processing order within one ticker. The groups
// are independent; the order is a reproducibility convention, not a
// correctness requirement.
var groupOrder = []Group{
	GroupCompanyInfo,
	GroupFAScore,
	GroupRSI,
	GroupAvgGainLoss,
	GroupDividendYield,
}

// Status classifies the outcome of one ticker/group pass.
type Status string

const (
	// StatusUpdated means new values were computed and persisted.
	StatusUpdated Status = "updated"
	// StatusSkipped means no refresh was needed (or the provider had no
	// figure to store).
	StatusSkipped Status = "skipped"
	// StatusFailed means the fetch or computation failed; the record's
	// existing values are unchanged.
	StatusFailed Status = "failed"
)

// GroupResult is the outcome of one indicator group for one ticker.
type GroupResult struct {
	Ticker string
	Group  Group
	Status Status
	Err    error
}

// Summary aggregates the outcomes of one refresh run.
type Summary struct {
	Tickers  int
	Updated  int
	Skipped  int
	Failed   int
	Failures []GroupResult
	Started  time.Time
	Elapsed  time.Duration
}

func (s *Summary) add(res GroupResult) {
	switch res.Status {
	case StatusUpdated:
		s.Updated++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
		s.Failures = append(s.Failures, res)
	}
}

// Options control a refresh run.
type Options struct {
	// Force refetches every indicator group even when already populated.
	// Company descriptive fields are only overwritten under Force.
	Force bool
}

// Refresher fills in missing stock indicators, one ticker and one
// indicator group at a time.
type Refresher struct {
	store  store.Store
	market market.Client
	logger *log.Logger
	now    func() time.Time
}

func New(st store.Store, mkt market.Client, logger *log.Logger) *Refresher {
	return &Refresher{store: st, market: mkt, logger: logger, now: time.Now}
}

// WithClock overrides the time source. Tests inject a fixed reference
// date so IPO years and fetch windows are deterministic.
func (r *Refresher) WithClock(now func() time.Time) *Refresher {
	r.now = now
	return r
}

// Run processes every ticker in the given order and returns a run summary.
// Group-level failures never abort the run; only context cancellation does.
func (r *Refresher) Run(ctx context.Context, tickers []string, opts Options) (*Summary, error) {
	sum := &Summary{Tickers: len(tickers), Started: r.now()}
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = r.now().Sub(sum.Started)
			return sum, err
		}
		for _, res := range r.RefreshTicker(ctx, ticker, opts) {
			sum.add(res)
		}
	}
	sum.Elapsed = r.now().Sub(sum.Started)
	if r.logger != nil {
		r.logger.Info().
			Int("tickers", sum.Tickers).
			Int("updated", sum.Updated).
			Int("skipped", sum.Skipped).
			Int("failed", sum.Failed).
			Msg("refresh run complete")
	}
	return sum, nil
}

// RefreshTicker runs every indicator group for one ticker in the fixed
// order, resolving the record lazily and isolating failures per group.
func (r *Refresher) RefreshTicker(ctx context.Context, ticker string, opts Options) []GroupResult {
	results := make([]GroupResult, 0, len(groupOrder))
	for _, group := range groupOrder {
		res := r.refreshGroup(ctx, ticker, group, opts)
		if res.Status == StatusFailed && r.logger != nil {
			r.logger.Warn().
				Str("ticker", ticker).
				Str("group", string(group)).
				Err(res.Err).
				Msg("refresh failed")
		}
		results = append(results, res)
	}
	return results
}

// refreshGroup is one isolated read-modify-write pass: resolve the record,
// decide whether the group needs refreshing, fetch and compute, and persist
// only on success. On failure the stored values stay untouched.
func (r *Refresher) refreshGroup(ctx context.Context, ticker string, group Group, opts Options) GroupResult {
	res := GroupResult{Ticker: ticker, Group: group}

	rec, err := r.store.GetOrCreate(ticker)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}

	var changed bool
	switch group {
	case GroupCompanyInfo:
		changed, err = r.companyInfo(ctx, rec, opts.Force)
	case GroupFAScore:
		changed, err = r.faScore(ctx, rec, opts.Force)
	case GroupRSI:
		changed, err = r.rsi(ctx, rec, opts.Force)
	case GroupAvgGainLoss:
		changed, err = r.avgGainLoss(ctx, rec, opts.Force)
	case GroupDividendYield:
		changed, err = r.dividendYield(ctx, rec, opts.Force)
	}
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	if !changed {
		res.Status = StatusSkipped
		return res
	}
	if err := r.store.Save(rec); err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	res.Status = StatusUpdated
	return res
}

func (r *Refresher) companyInfo(ctx context.Context, rec *types.StockRecord, force bool) (bool, error) {
	if rec.HasCompanyInfo() && !force {
		return false, nil
	}
	profile, err := r.market.CompanyProfile(ctx, rec.Ticker)
	if err != nil {
		return false, err
	}
	rec.Sector = profile.Sector
	rec.Industry = profile.Industry
	rec.Country = profile.Country
	rec.Description = profile.Description
	rec.Exchange = profile.Exchange
	rec.CompanyName = profile.CompanyName
	years := indicator.IPOYears(r.now(), profile.IPODate)
	rec.IPOYears = &years
	return true, nil
}

func (r *Refresher) faScore(ctx context.Context, rec *types.StockRecord, force bool) (bool, error) {
	if rec.FAScore != nil && !force {
		return false, nil
	}
	scores, err := r.market.RatingScores(ctx, rec.Ticker)
	if err != nil {
		return false, err
	}
	score := indicator.FundamentalScore(scores)
	now := r.now()
	rec.FAScore = &score
	rec.FAScoreComputedAt = &now
	return true, nil
}

func (r *Refresher) rsi(ctx context.Context, rec *types.StockRecord, force bool) (bool, error) {
	if rec.RSI != nil && !force {
		return false, nil
	}
	start, end := indicator.WeeklyWindow(r.now())
	prices, err := r.market.HistoricalPrices(ctx, rec.Ticker, start, end, types.IntervalWeekly)
	if err != nil {
		return false, err
	}
	value, err := indicator.RSI(prices)
	if err != nil {
		return false, err
	}
	now := r.now()
	rec.RSI = &value
	rec.RSIComputedAt = &now
	return true, nil
}

func (r *Refresher) avgGainLoss(ctx context.Context, rec *types.StockRecord, force bool) (bool, error) {
	if rec.AvgGainLoss != nil && !force {
		return false, nil
	}
	end := r.now()
	start := end.AddDate(0, 0, -indicator.GainLossYears*365)
	prices, err := r.market.HistoricalPrices(ctx, rec.Ticker, start, end, types.IntervalDaily)
	if err != nil {
		return false, err
	}
	value, err := indicator.AvgGainLoss(prices)
	if err != nil {
		return false, err
	}
	rec.AvgGainLoss = &value
	return true, nil
}

func (r *Refresher) dividendYield(ctx context.Context, rec *types.StockRecord, force bool) (bool, error) {
	if rec.FiveYearAvgDividendYield != types.DividendYieldUnknown && !force {
		return false, nil
	}
	yield, err := r.market.FiveYearAvgDividendYield(ctx, rec.Ticker)
	if err != nil {
		return false, err
	}
	if yield == nil {
		// Provider has no figure; keep the sentinel.
		return false, nil
	}
	rec.FiveYearAvgDividendYield = *yield
	return true, nil
}
