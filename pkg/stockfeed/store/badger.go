package store

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/timshannon/badgerhold/v4"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// BadgerStore keeps records in a badgerhold-backed Badger database.
type BadgerStore struct {
	store  *badgerhold.Store
	logger *log.Logger

	mu sync.Mutex // serializes get-or-create
}

// NewBadgerStore opens (creating if needed) the database at path.
func NewBadgerStore(path string, logger *log.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil

	st, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	if logger != nil {
		logger.Debug().Str("path", path).Msg("record store opened")
	}
	return &BadgerStore{store: st, logger: logger}, nil
}

func (s *BadgerStore) Get(ticker string) (*types.StockRecord, error) {
	var rec types.StockRecord
	if err := s.store.Get(ticker, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record %s: %w", ticker, err)
	}
	return &rec, nil
}

func (s *BadgerStore) GetOrCreate(ticker string) (*types.StockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.Get(ticker)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rec = types.NewStockRecord(ticker)
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := s.store.Insert(ticker, rec); err != nil {
		return nil, fmt.Errorf("create record %s: %w", ticker, err)
	}
	return rec, nil
}

func (s *BadgerStore) Save(rec *types.StockRecord) error {
	if rec.Ticker == "" {
		return fmt.Errorf("record ticker is required")
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if err := s.store.Upsert(rec.Ticker, rec); err != nil {
		return fmt.Errorf("save record %s: %w", rec.Ticker, err)
	}
	return nil
}

func (s *BadgerStore) List() ([]types.StockRecord, error) {
	var recs []types.StockRecord
	if err := s.store.Find(&recs, nil); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Ticker < recs[j].Ticker })
	return recs, nil
}

func (s *BadgerStore) Close() error {
	return s.store.Close()
}
