package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/quote"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

// RSI thresholds for coloring overbought/oversold values.
const (
	rsiOverbought = 70
	rsiOversold   = 30
)

// TableRenderer prints stock records as a go-pretty table. When Quotes is
// set and opts.LiveQuotes is true, PRICE and CHG% columns are added from
// live quote data.
type TableRenderer struct {
	Quotes quote.Service
}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, recs []types.StockRecord, opts Options) error {
	live := opts.LiveQuotes && r.Quotes != nil

	cols := []string{"ticker", "name", "sector", "exchange"}
	if live {
		cols = append(cols, "price", "chg%")
	}
	cols = append(cols, "ipo yrs", "rsi", "fa score", "avg g/l%", "5y div yld")

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)

	// Wrap long text columns to MaxColWidth (default 40); right-align
	// numeric columns.
	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		switch c {
		case "ipo yrs", "rsi", "fa score", "avg g/l%", "5y div yld", "price", "chg%":
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	for _, rec := range recs {
		var q quote.Quote
		if live {
			q, _ = r.Quotes.Get(context.Background(), rec.Ticker)
		}

		row := make(table.Row, 0, len(cols))
		row = append(row, rec.Ticker, rec.CompanyName, rec.Sector, rec.Exchange)
		if live {
			chg := q.ChgFmt
			if opts.Color {
				if q.ChgRaw > 0 {
					chg = text.Colors{text.FgGreen}.Sprintf("%s", chg)
				} else if q.ChgRaw < 0 {
					chg = text.Colors{text.FgRed}.Sprintf("%s", chg)
				}
			}
			row = append(row, q.Price, chg)
		}
		row = append(row,
			fmtIntPtr(rec.IPOYears),
			fmtRSI(rec.RSI, opts.Color),
			fmtIntPtr(rec.FAScore),
			fmtFloatPtr(rec.AvgGainLoss),
			fmtYield(rec.FiveYearAvgDividendYield),
		)
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtYield(v float64) string {
	if v == types.DividendYieldUnknown {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}

func fmtRSI(v *int, color bool) string {
	if v == nil {
		return ""
	}
	s := strconv.Itoa(*v)
	if !color {
		return s
	}
	switch {
	case *v >= rsiOverbought:
		return text.Colors{text.FgRed}.Sprintf("%s", s)
	case *v <= rsiOversold:
		return text.Colors{text.FgGreen}.Sprintf("%s", s)
	}
	return s
}
