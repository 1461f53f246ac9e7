package market

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/phuslu/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// DefaultFMPBaseURL is the base URL for the financialmodelingprep API.
const DefaultFMPBaseURL = "https://financialmodelingprep.com/api/v3"

// profileFields are required in every profile payload; a response missing
// any of them is treated as a provider failure.
var profileFields = []string{
	"sector", "industry", "country", "description",
	"exchangeShortName", "companyName", "ipoDate",
}

// FMPClient calls the financialmodelingprep REST API for company profiles
// and rating scores. The API key is passed in at construction; there is no
// process-wide configuration.
type FMPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *log.Logger
	limiter    *rate.Limiter
}

// FMPOption configures the FMPClient.
type FMPOption func(*FMPClient)

// WithFMPBaseURL sets a custom base URL.
func WithFMPBaseURL(baseURL string) FMPOption {
	return func(c *FMPClient) { c.baseURL = baseURL }
}

// WithFMPHTTPClient sets a custom HTTP client.
func WithFMPHTTPClient(hc *http.Client) FMPOption {
	return func(c *FMPClient) { c.httpClient = hc }
}

// WithFMPLogger sets a logger.
func WithFMPLogger(logger *log.Logger) FMPOption {
	return func(c *FMPClient) { c.logger = logger }
}

// WithFMPRateLimit sets a custom rate limit.
func WithFMPRateLimit(requestsPerSecond int) FMPOption {
	return func(c *FMPClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewFMPClient creates a financialmodelingprep client.
func NewFMPClient(apiKey string, opts ...FMPOption) *FMPClient {
	c := &FMPClient{
		baseURL:    DefaultFMPBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompanyProfile fetches descriptive company data for a ticker. It fails
// when the response is empty, carries an error marker, or is missing any
// required field.
func (c *FMPClient) CompanyProfile(ctx context.Context, ticker string) (*types.CompanyProfile, error) {
	payload, err := c.getArray(ctx, "/profile/", "profile", ticker)
	if err != nil {
		return nil, err
	}

	for _, field := range profileFields {
		if !payload.Get(field).Exists() {
			return nil, &ProviderError{
				Provider: "fmp", Op: "profile", Ticker: ticker,
				Message: "missing field " + field,
			}
		}
	}

	ipoDate, err := time.Parse("2006-01-02", payload.Get("ipoDate").String())
	if err != nil {
		return nil, &ProviderError{Provider: "fmp", Op: "profile", Ticker: ticker, Err: err}
	}

	return &types.CompanyProfile{
		Sector:      payload.Get("sector").String(),
		Industry:    payload.Get("industry").String(),
		Country:     payload.Get("country").String(),
		Description: payload.Get("description").String(),
		Exchange:    payload.Get("exchangeShortName").String(),
		CompanyName: payload.Get("companyName").String(),
		IPODate:     ipoDate,
	}, nil
}

// RatingScores fetches the rating payload and returns its numeric
// components keyed by name. Non-numeric fields (recommendations, letter
// grades) are dropped.
func (c *FMPClient) RatingScores(ctx context.Context, ticker string) (map[string]float64, error) {
	payload, err := c.getArray(ctx, "/rating/", "rating", ticker)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	payload.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			scores[key.String()] = value.Float()
		}
		return true
	})
	return scores, nil
}

// getArray performs a GET against the given endpoint and validates the
// common FMP response shape: a non-empty JSON array on success, or an
// object with an "Error Message" key on failure. The first array element
// is returned.
func (c *FMPClient) getArray(ctx context.Context, path, op, ticker string) (gjson.Result, error) {
	reqURL := fmt.Sprintf("%s%s%s?apikey=%s", c.baseURL, path, url.PathEscape(ticker), url.QueryEscape(c.apiKey))
	body, err := fetch(ctx, c.httpClient, c.limiter, c.logger, "fmp", op, ticker, reqURL)
	if err != nil {
		return gjson.Result{}, err
	}

	doc := gjson.ParseBytes(body)
	if len(bytes.TrimSpace(body)) == 0 || doc.Type == gjson.Null {
		return gjson.Result{}, &ProviderError{Provider: "fmp", Op: op, Ticker: ticker, Message: "empty response"}
	}
	if msg := doc.Get("Error Message"); msg.Exists() {
		return gjson.Result{}, &ProviderError{Provider: "fmp", Op: op, Ticker: ticker, Message: msg.String()}
	}
	arr := doc.Array()
	if !doc.IsArray() || len(arr) == 0 {
		return gjson.Result{}, &ProviderError{Provider: "fmp", Op: op, Ticker: ticker, Message: "empty response"}
	}
	return arr[0], nil
}
