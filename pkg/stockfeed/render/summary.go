package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/refresh"
)

// SummaryTable prints the counts and failures of one refresh run.
func SummaryTable(w io.Writer, sum *refresh.Summary) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	tw.AppendHeader(table.Row{"TICKERS", "UPDATED", "SKIPPED", "FAILED", "ELAPSED"})
	tw.AppendRow(table.Row{sum.Tickers, sum.Updated, sum.Skipped, sum.Failed, sum.Elapsed.Round(time.Millisecond)})
	tw.Render()

	if len(sum.Failures) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	ft := table.NewWriter()
	ft.SetOutputMirror(w)
	ft.SetStyle(table.StyleColoredDark)
	ft.Style().Options.DrawBorder = false
	ft.Style().Options.SeparateRows = false
	ft.Style().Options.SeparateColumns = false
	ft.AppendHeader(table.Row{"TICKER", "GROUP", "ERROR"})
	for _, f := range sum.Failures {
		ft.AppendRow(table.Row{f.Ticker, string(f.Group), f.Err.Error()})
	}
	ft.Render()
	return nil
}
