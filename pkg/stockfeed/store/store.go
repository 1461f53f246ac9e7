// Package store persists stock indicator records.
package store

import (
	"errors"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// ErrNotFound is returned by Get for tickers with no record.
var ErrNotFound = errors.New("record not found")

// Store is the record store consumed by the refresh pipeline. GetOrCreate
// never fails for a merely missing record. Implementations serialize
// writes to a single record.
type Store interface {
	// GetOrCreate resolves the record for ticker, creating it with the
	// dividend-yield sentinel on first encounter.
	GetOrCreate(ticker string) (*types.StockRecord, error)

	// Get returns the record for ticker or ErrNotFound.
	Get(ticker string) (*types.StockRecord, error)

	// Save persists the record.
	Save(rec *types.StockRecord) error

	// List returns all records ordered by ticker.
	List() ([]types.StockRecord, error)

	Close() error
}
