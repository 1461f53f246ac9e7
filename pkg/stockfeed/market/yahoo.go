package market

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/phuslu/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// Yahoo Finance JSON endpoints.
const (
	DefaultYahooChartBaseURL   = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultYahooSummaryBaseURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
)

// YahooClient fetches historical price series from the chart endpoint and
// dividend statistics from the quoteSummary endpoint.
type YahooClient struct {
	chartBaseURL   string
	summaryBaseURL string
	httpClient     *http.Client
	logger         *log.Logger
	limiter        *rate.Limiter
}

// YahooOption configures the YahooClient.
type YahooOption func(*YahooClient)

// WithYahooBaseURLs sets custom chart and quoteSummary base URLs.
func WithYahooBaseURLs(chartBaseURL, summaryBaseURL string) YahooOption {
	return func(c *YahooClient) {
		c.chartBaseURL = chartBaseURL
		c.summaryBaseURL = summaryBaseURL
	}
}

// WithYahooHTTPClient sets a custom HTTP client.
func WithYahooHTTPClient(hc *http.Client) YahooOption {
	return func(c *YahooClient) { c.httpClient = hc }
}

// WithYahooLogger sets a logger.
func WithYahooLogger(logger *log.Logger) YahooOption {
	return func(c *YahooClient) { c.logger = logger }
}

// WithYahooRateLimit sets a custom rate limit.
func WithYahooRateLimit(requestsPerSecond int) YahooOption {
	return func(c *YahooClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewYahooClient creates a Yahoo Finance client.
func NewYahooClient(opts ...YahooOption) *YahooClient {
	c := &YahooClient{
		chartBaseURL:   DefaultYahooChartBaseURL,
		summaryBaseURL: DefaultYahooSummaryBaseURL,
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		limiter:        rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HistoricalPrices fetches the close series for the requested window and
// interval, oldest first. Null closes (untraded periods) are skipped. It
// fails when the provider returns no usable series for the ticker.
func (c *YahooClient) HistoricalPrices(ctx context.Context, ticker string, start, end time.Time, interval types.Interval) ([]types.PricePoint, error) {
	iv := "1d"
	if interval == types.IntervalWeekly {
		iv = "1wk"
	}
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(start.Unix(), 10))
	params.Set("period2", strconv.FormatInt(end.Unix(), 10))
	params.Set("interval", iv)

	reqURL := fmt.Sprintf("%s/%s?%s", c.chartBaseURL, url.PathEscape(ticker), params.Encode())
	body, err := fetch(ctx, c.httpClient, c.limiter, c.logger, "yahoo", "chart", ticker, reqURL)
	if err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(body)
	if e := doc.Get("chart.error"); e.Exists() && e.Type != gjson.Null {
		return nil, &ProviderError{
			Provider: "yahoo", Op: "chart", Ticker: ticker,
			Message: e.Get("description").String(),
		}
	}

	result := doc.Get("chart.result.0")
	timestamps := result.Get("timestamp").Array()
	closes := result.Get("indicators.quote.0.close").Array()
	n := len(timestamps)
	if len(closes) < n {
		n = len(closes)
	}

	points := make([]types.PricePoint, 0, n)
	for i := 0; i < n; i++ {
		if closes[i].Type == gjson.Null {
			continue
		}
		points = append(points, types.PricePoint{
			Date:  time.Unix(timestamps[i].Int(), 0).UTC(),
			Close: closes[i].Float(),
		})
	}
	if len(points) == 0 {
		return nil, &ProviderError{
			Provider: "yahoo", Op: "chart", Ticker: ticker,
			Message: "no usable price data for " + ticker,
		}
	}
	return points, nil
}

// FiveYearAvgDividendYield fetches the five-year average dividend yield.
// A nil result with nil error means the provider has no figure for the
// ticker, which is different from a failed call.
func (c *YahooClient) FiveYearAvgDividendYield(ctx context.Context, ticker string) (*float64, error) {
	params := url.Values{}
	params.Set("modules", "summaryDetail")

	reqURL := fmt.Sprintf("%s/%s?%s", c.summaryBaseURL, url.PathEscape(ticker), params.Encode())
	body, err := fetch(ctx, c.httpClient, c.limiter, c.logger, "yahoo", "summary", ticker, reqURL)
	if err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(body)
	if e := doc.Get("quoteSummary.error"); e.Exists() && e.Type != gjson.Null {
		return nil, &ProviderError{
			Provider: "yahoo", Op: "summary", Ticker: ticker,
			Message: e.Get("description").String(),
		}
	}

	v := doc.Get("quoteSummary.result.0.summaryDetail.fiveYearAvgDividendYield.raw")
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	yield := v.Float()
	return &yield, nil
}
