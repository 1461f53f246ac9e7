// Package render turns stored stock records and run summaries into
// terminal output.
package render

import (
	"io"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// Renderer renders stock records to an output writer.
type Renderer interface {
	Render(w io.Writer, recs []types.StockRecord, opts Options) error
}

type Options struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	// LiveQuotes adds live price and change columns to table output.
	LiveQuotes bool
}
