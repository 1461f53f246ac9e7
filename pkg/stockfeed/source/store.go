package source

import (
	"context"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// RecordLister lists stored stock records. Satisfied by the store
// implementations.
type RecordLister interface {
	List() ([]types.StockRecord, error)
}

// StoreSource yields the tickers already present in the record store,
// for refreshing known stocks without a ticker file.
type StoreSource struct {
	Store RecordLister
}

func (s StoreSource) Load(ctx context.Context) ([]string, error) { //nolint:revive // ctx reserved for future use
	recs, err := s.Store.List()
	if err != nil {
		return nil, err
	}
	tickers := make([]string, 0, len(recs))
	for _, rec := range recs {
		tickers = append(tickers, rec.Ticker)
	}
	return tickers, nil
}
