package store

import (
	"sort"
	"sync"
	"time"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// MemoryStore is an in-memory Store for tests and ephemeral runs. Records
// are stored by value, so callers never share mutable state through it.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]types.StockRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]types.StockRecord)}
}

func (s *MemoryStore) Get(ticker string) (*types.StockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[ticker]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) GetOrCreate(ticker string) (*types.StockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[ticker]; ok {
		return &rec, nil
	}
	rec := types.NewStockRecord(ticker)
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.records[ticker] = *rec
	return rec, nil
}

func (s *MemoryStore) Save(rec *types.StockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	now := time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	s.records[cp.Ticker] = cp
	return nil
}

func (s *MemoryStore) List() ([]types.StockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := make([]types.StockRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Ticker < recs[j].Ticker })
	return recs, nil
}

func (s *MemoryStore) Close() error { return nil }
