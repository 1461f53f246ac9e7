// Package quote fetches live quote data for dashboard rendering. It is
// separate from the market package: refresh never depends on live quotes.
package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	yfgo "github.com/komsit37/yf-go"
)

// Quote contains formatted and raw change values for rendering.
type Quote struct {
	Price  string
	ChgFmt string
	ChgRaw float64
	Name   string
}

// Service fetches the live quote for a symbol.
type Service interface {
	Get(ctx context.Context, sym string) (Quote, error)
}

// YFService implements Service using yf-go.
type YFService struct {
	client  *yfgo.Client
	timeout time.Duration
}

func NewYFService(timeout time.Duration) *YFService {
	return &YFService{client: yfgo.NewClient(), timeout: timeout}
}

func (s *YFService) Get(ctx context.Context, sym string) (Quote, error) {
	if sym == "" {
		return Quote{}, nil
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.client.QuoteSummaryTyped(cctx, sym, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil {
		return Quote{}, err
	}
	if res.Price == nil {
		return Quote{}, fmt.Errorf("no price for %s", sym)
	}

	var q Quote
	p := res.Price.RegularMarketPrice
	if p.Fmt != "" {
		q.Price = p.Fmt
	} else if p.Raw != nil {
		q.Price = fmt.Sprintf("%.2f", *p.Raw)
	}
	cp := res.Price.RegularMarketChangePercent
	if cp.Fmt != "" {
		q.ChgFmt = cp.Fmt
	}
	if cp.Raw != nil {
		q.ChgRaw = *cp.Raw
		if q.ChgFmt == "" {
			q.ChgFmt = fmt.Sprintf("%.2f%%", q.ChgRaw)
		}
	}
	if res.Price.ShortName != "" {
		q.Name = res.Price.ShortName
	} else if res.Price.LongName != "" {
		q.Name = res.Price.LongName
	}
	return q, nil
}

// Cache decorates a Service with a TTL+LRU cache.
type Cache struct {
	next Service
	ttl  time.Duration
	size int

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // simple LRU order, oldest at index 0
}

type cacheEntry struct {
	at time.Time
	q  Quote
}

func NewCache(next Service, ttl time.Duration, size int) *Cache {
	return &Cache{next: next, ttl: ttl, size: size, items: make(map[string]cacheEntry)}
}

func (c *Cache) Get(ctx context.Context, sym string) (Quote, error) {
	if sym == "" {
		return Quote{}, nil
	}
	now := time.Now()
	c.mu.Lock()
	if ent, ok := c.items[sym]; ok {
		if now.Sub(ent.at) <= c.ttl {
			c.touchLocked(sym)
			q := ent.q
			c.mu.Unlock()
			return q, nil
		}
		// expired; drop and continue
		delete(c.items, sym)
		c.removeFromOrderLocked(sym)
	}
	c.mu.Unlock()

	q, err := c.next.Get(ctx, sym)
	if err != nil {
		return q, err
	}
	c.mu.Lock()
	c.items[sym] = cacheEntry{at: now, q: q}
	c.order = append(c.order, sym)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	c.mu.Unlock()
	return q, nil
}

func (c *Cache) touchLocked(sym string) {
	for i, v := range c.order {
		if v == sym {
			c.order = append(append(c.order[:i], c.order[i+1:]...), sym)
			return
		}
	}
	c.order = append(c.order, sym)
}

func (c *Cache) removeFromOrderLocked(sym string) {
	for i, v := range c.order {
		if v == sym {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
