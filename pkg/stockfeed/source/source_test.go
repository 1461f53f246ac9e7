package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextSourceLoad(t *testing.T) {
	path := writeFile(t, "codes.txt", "TXG\nMMM\n  ABT \n\nABBV\n\tACHC\nACN\nATVI\nAYI\n")

	tickers, err := TextSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"TXG", "MMM", "ABT", "ABBV", "ACHC", "ACN", "ATVI", "AYI"}, tickers)
}

func TestTextSourceMissingFile(t *testing.T) {
	_, err := TextSource{Path: filepath.Join(t.TempDir(), "missing.txt")}.Load(context.Background())
	require.Error(t, err)

	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestTextSourceEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", "")

	_, err := TextSource{Path: path}.Load(context.Background())
	require.Error(t, err)

	var ere *EmptyResourceError
	assert.ErrorAs(t, err, &ere)
}

func TestYAMLSourceSequence(t *testing.T) {
	path := writeFile(t, "codes.yaml", "- AAPL\n- GOOG\n- MSFT\n")

	tickers, err := YAMLSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT"}, tickers)
}

func TestYAMLSourceMap(t *testing.T) {
	path := writeFile(t, "codes.yaml", "tickers:\n  - AAPL\n  - GOOG\n")

	tickers, err := YAMLSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "GOOG"}, tickers)
}

func TestYAMLSourceMissingAndEmpty(t *testing.T) {
	_, err := YAMLSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)

	path := writeFile(t, "empty.yaml", "")
	_, err = YAMLSource{Path: path}.Load(context.Background())
	var ere *EmptyResourceError
	assert.ErrorAs(t, err, &ere)
}

func TestStoreSource(t *testing.T) {
	st := store.NewMemoryStore()
	for _, ticker := range []string{"MSFT", "AAPL"} {
		_, err := st.GetOrCreate(ticker)
		require.NoError(t, err)
	}

	tickers, err := StoreSource{Store: st}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, tickers)
}
