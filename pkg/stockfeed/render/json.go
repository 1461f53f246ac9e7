package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// jsonRecord is the output shape for JSONRenderer. The dividend-yield
// sentinel is emitted as null so consumers never mistake it for a real 0.
type jsonRecord struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
	Exchange    string `json:"exchange,omitempty"`

	IPOYears *int `json:"ipo_years"`

	RSI           *int       `json:"rsi"`
	RSIComputedAt *time.Time `json:"rsi_computed_at,omitempty"`

	FAScore           *int       `json:"fa_score"`
	FAScoreComputedAt *time.Time `json:"fa_score_computed_at,omitempty"`

	AvgGainLoss              *float64 `json:"avg_gain_loss"`
	FiveYearAvgDividendYield *float64 `json:"five_year_avg_dividend_yield"`
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, recs []types.StockRecord, opts Options) error {
	out := make([]jsonRecord, 0, len(recs))
	for i := range recs {
		rec := recs[i]
		jr := jsonRecord{
			Ticker:            rec.Ticker,
			CompanyName:       rec.CompanyName,
			Sector:            rec.Sector,
			Industry:          rec.Industry,
			Country:           rec.Country,
			Description:       rec.Description,
			Exchange:          rec.Exchange,
			IPOYears:          rec.IPOYears,
			RSI:               rec.RSI,
			RSIComputedAt:     rec.RSIComputedAt,
			FAScore:           rec.FAScore,
			FAScoreComputedAt: rec.FAScoreComputedAt,
			AvgGainLoss:       rec.AvgGainLoss,
		}
		if rec.FiveYearAvgDividendYield != types.DividendYieldUnknown {
			yield := rec.FiveYearAvgDividendYield
			jr.FiveYearAvgDividendYield = &yield
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
