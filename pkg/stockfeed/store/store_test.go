package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()
	badger, err := NewBadgerStore(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { badger.Close() })
	return map[string]Store{
		"badger": badger,
		"memory": NewMemoryStore(),
	}
}

func TestGetMissing(t *testing.T) {
	for name, st := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get("AAPL")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestGetOrCreate(t *testing.T) {
	for name, st := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := st.GetOrCreate("AAPL")
			require.NoError(t, err)

			assert.Equal(t, "AAPL", rec.Ticker)
			assert.Equal(t, types.DividendYieldUnknown, rec.FiveYearAvgDividendYield)
			assert.Nil(t, rec.RSI)
			assert.Nil(t, rec.FAScore)
			assert.False(t, rec.CreatedAt.IsZero())

			// Second call returns the existing record, not a fresh one.
			rsi := 55
			rec.RSI = &rsi
			require.NoError(t, st.Save(rec))

			again, err := st.GetOrCreate("AAPL")
			require.NoError(t, err)
			require.NotNil(t, again.RSI)
			assert.Equal(t, 55, *again.RSI)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for name, st := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := st.GetOrCreate("MMM")
			require.NoError(t, err)

			rec.Sector = "Industrials"
			rec.CompanyName = "3M Company"
			fa := 12
			rec.FAScore = &fa
			agl := 4.0
			rec.AvgGainLoss = &agl
			rec.FiveYearAvgDividendYield = 3.41
			require.NoError(t, st.Save(rec))

			got, err := st.Get("MMM")
			require.NoError(t, err)
			assert.Equal(t, "Industrials", got.Sector)
			assert.Equal(t, "3M Company", got.CompanyName)
			require.NotNil(t, got.FAScore)
			assert.Equal(t, 12, *got.FAScore)
			require.NotNil(t, got.AvgGainLoss)
			assert.Equal(t, 4.0, *got.AvgGainLoss)
			assert.Equal(t, 3.41, got.FiveYearAvgDividendYield)
			assert.False(t, got.UpdatedAt.IsZero())
		})
	}
}

func TestListSorted(t *testing.T) {
	for name, st := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, ticker := range []string{"MSFT", "AAPL", "GOOG"} {
				_, err := st.GetOrCreate(ticker)
				require.NoError(t, err)
			}

			recs, err := st.List()
			require.NoError(t, err)
			require.Len(t, recs, 3)
			assert.Equal(t, "AAPL", recs[0].Ticker)
			assert.Equal(t, "GOOG", recs[1].Ticker)
			assert.Equal(t, "MSFT", recs[2].Ticker)
		})
	}
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := NewBadgerStore(dir, nil)
	require.NoError(t, err)
	rec, err := st.GetOrCreate("ABT")
	require.NoError(t, err)
	rec.Sector = "Healthcare"
	require.NoError(t, st.Save(rec))
	require.NoError(t, st.Close())

	st, err = NewBadgerStore(dir, nil)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Get("ABT")
	require.NoError(t, err)
	assert.Equal(t, "Healthcare", got.Sector)
}
