package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/quote"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/refresh"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

func sampleRecords() []types.StockRecord {
	rsi := 72
	fa := 9
	agl := 4.5
	ipo := 12

	populated := *types.NewStockRecord("MMM")
	populated.CompanyName = "3M Company"
	populated.Sector = "Industrials"
	populated.Exchange = "NYSE"
	populated.IPOYears = &ipo
	populated.RSI = &rsi
	populated.FAScore = &fa
	populated.AvgGainLoss = &agl
	populated.FiveYearAvgDividendYield = 3.41

	return []types.StockRecord{populated, *types.NewStockRecord("TXG")}
}

func TestJSONRendererSentinelYieldIsNull(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONRenderer().Render(&buf, sampleRecords(), Options{})
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)

	assert.Equal(t, 3.41, out[0]["five_year_avg_dividend_yield"])
	assert.Equal(t, 72.0, out[0]["rsi"])

	// Never-computed values come out as null, not zero.
	assert.Nil(t, out[1]["five_year_avg_dividend_yield"])
	assert.Nil(t, out[1]["rsi"])
	assert.Nil(t, out[1]["ipo_years"])
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableRenderer().Render(&buf, sampleRecords(), Options{MaxColWidth: 40})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TICKER")
	assert.Contains(t, out, "5Y DIV YLD")
	assert.Contains(t, out, "MMM")
	assert.Contains(t, out, "3M Company")
	assert.Contains(t, out, "3.41")
	assert.Contains(t, out, "TXG")
}

type staticQuotes struct{ q quote.Quote }

func (s staticQuotes) Get(context.Context, string) (quote.Quote, error) { return s.q, nil }

func TestTableRendererLiveQuotes(t *testing.T) {
	tr := NewTableRenderer()
	tr.Quotes = staticQuotes{q: quote.Quote{Price: "185.92", ChgFmt: "1.20%", ChgRaw: 1.2}}

	var buf bytes.Buffer
	err := tr.Render(&buf, sampleRecords(), Options{LiveQuotes: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "PRICE")
	assert.Contains(t, out, "CHG%")
	assert.Contains(t, out, "185.92")
}

func TestSymsRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewSymsRenderer().Render(&buf, sampleRecords(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "MMM,TXG", strings.TrimSpace(buf.String()))
}

func TestSummaryTable(t *testing.T) {
	sum := &refresh.Summary{
		Tickers: 2,
		Updated: 9,
		Failed:  1,
		Failures: []refresh.GroupResult{{
			Ticker: "GOOG",
			Group:  refresh.GroupFAScore,
			Status: refresh.StatusFailed,
			Err:    errors.New("fmp rating GOOG: empty response"),
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, SummaryTable(&buf, sum))

	out := buf.String()
	assert.Contains(t, out, "UPDATED")
	assert.Contains(t, out, "GOOG")
	assert.Contains(t, out, "fa_score")
	assert.Contains(t, out, "empty response")
}
