// Package market wraps the external financial data providers behind a
// single client interface and normalizes their failures into ProviderError.
package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default request rate (requests per second).
	DefaultRateLimit = 5

	maxErrBodyLen = 512
)

// Client is the market-data surface the refresh pipeline depends on.
// Every call performs network I/O and must be assumed unreliable; callers
// must not assume success.
type Client interface {
	// CompanyProfile fetches descriptive company data for a ticker.
	CompanyProfile(ctx context.Context, ticker string) (*types.CompanyProfile, error)

	// RatingScores fetches the provider's rating components as a mapping
	// of component name to numeric value.
	RatingScores(ctx context.Context, ticker string) (map[string]float64, error)

	// HistoricalPrices fetches an ordered close series for the window.
	HistoricalPrices(ctx context.Context, ticker string, start, end time.Time, interval types.Interval) ([]types.PricePoint, error)

	// FiveYearAvgDividendYield fetches the provider's five-year average
	// dividend yield. A nil value with nil error means the provider has
	// no figure for the ticker.
	FiveYearAvgDividendYield(ctx context.Context, ticker string) (*float64, error)
}

// Composite routes profile and rating calls to the FMP client and price
// history and dividend data to the Yahoo client.
type Composite struct {
	fmp   *FMPClient
	yahoo *YahooClient
}

func NewComposite(fmp *FMPClient, yahoo *YahooClient) *Composite {
	return &Composite{fmp: fmp, yahoo: yahoo}
}

func (c *Composite) CompanyProfile(ctx context.Context, ticker string) (*types.CompanyProfile, error) {
	return c.fmp.CompanyProfile(ctx, ticker)
}

func (c *Composite) RatingScores(ctx context.Context, ticker string) (map[string]float64, error) {
	return c.fmp.RatingScores(ctx, ticker)
}

func (c *Composite) HistoricalPrices(ctx context.Context, ticker string, start, end time.Time, interval types.Interval) ([]types.PricePoint, error) {
	return c.yahoo.HistoricalPrices(ctx, ticker, start, end, interval)
}

func (c *Composite) FiveYearAvgDividendYield(ctx context.Context, ticker string) (*float64, error) {
	return c.yahoo.FiveYearAvgDividendYield(ctx, ticker)
}

// fetch performs a rate-limited GET and returns the response body. Any
// transport failure or non-200 status comes back as a ProviderError.
func fetch(ctx context.Context, hc *http.Client, limiter *rate.Limiter, logger *log.Logger, provider, op, ticker, reqURL string) ([]byte, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: provider, Op: op, Ticker: ticker, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Op: op, Ticker: ticker, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	if logger != nil {
		logger.Debug().Str("provider", provider).Str("op", op).Str("ticker", ticker).Msg("provider request")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Op: op, Ticker: ticker, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Op: op, Ticker: ticker, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Provider: provider,
			Op:       op,
			Ticker:   ticker,
			Message:  fmt.Sprintf("http %d: %s", resp.StatusCode, truncateBody(body)),
		}
	}
	return body, nil
}

func truncateBody(b []byte) string {
	s := string(b)
	if len(s) > maxErrBodyLen {
		s = s[:maxErrBodyLen] + "..."
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}
