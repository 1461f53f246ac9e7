package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// symsRenderer prints all tickers in a single comma-separated line, for
// piping into other tools.
type symsRenderer struct{}

func NewSymsRenderer() Renderer {
	return symsRenderer{}
}

func (symsRenderer) Render(w io.Writer, recs []types.StockRecord, _ Options) error {
	symbols := make([]string, 0, len(recs))
	for _, rec := range recs {
		ticker := strings.TrimSpace(rec.Ticker)
		if ticker == "" {
			continue
		}
		symbols = append(symbols, ticker)
	}
	_, err := fmt.Fprintln(w, strings.Join(symbols, ","))
	return err
}
