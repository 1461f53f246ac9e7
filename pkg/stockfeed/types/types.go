package types

import "time"

// DividendYieldUnknown is the stored sentinel for a five-year average
// dividend yield that has never been computed. It is distinct from a
// computed 0.0 and consumers must treat it as "unknown".
const DividendYieldUnknown float64 = -1

// Interval selects the sampling interval for historical price requests.
type Interval string

const (
	IntervalDaily  Interval = "daily"
	IntervalWeekly Interval = "weekly"
)

// PricePoint is one close observation in a historical price series.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// CompanyProfile is the descriptive company data returned by the
// profile provider.
type CompanyProfile struct {
	Sector      string
	Industry    string
	Country     string
	Description string
	Exchange    string
	CompanyName string
	IPODate     time.Time
}

// StockRecord collects the indicator data tracked per ticker. Exactly one
// record exists per ticker; it is created lazily on first encounter and
// individual fields are refreshed on independent cadences.
//
// Pointer fields are nil until first computed. The dividend yield keeps the
// stored -1 sentinel instead for compatibility with existing data.
type StockRecord struct {
	Ticker string `badgerhold:"key"`

	Sector      string
	Industry    string
	Country     string
	Description string
	Exchange    string
	CompanyName string
	IPOYears    *int

	RSI           *int
	RSIComputedAt *time.Time

	FAScore           *int
	FAScoreComputedAt *time.Time

	AvgGainLoss *float64

	FiveYearAvgDividendYield float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStockRecord returns a record for ticker with the dividend-yield
// sentinel set and everything else unpopulated.
func NewStockRecord(ticker string) *StockRecord {
	return &StockRecord{
		Ticker:                   ticker,
		FiveYearAvgDividendYield: DividendYieldUnknown,
	}
}

// HasCompanyInfo reports whether every descriptive company field has been
// populated. A record missing any of them needs a profile refresh.
func (r *StockRecord) HasCompanyInfo() bool {
	return r.Sector != "" &&
		r.Industry != "" &&
		r.Country != "" &&
		r.Description != "" &&
		r.Exchange != "" &&
		r.CompanyName != "" &&
		r.IPOYears != nil
}
