// Command stockfeed populates and inspects stock indicator records: it
// reads a ticker list, fetches fundamentals and price history from the
// external providers, computes the stored indicators, and renders the
// results.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/marketwatchai/stockfeed/pkg/stockfeed/config"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/market"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/quote"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/refresh"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/render"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/schedule"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/source"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/store"
	"github.com/marketwatchai/stockfeed/pkg/stockfeed/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "stockfeed",
		Short:         "Populate and inspect stock indicator records",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	root.AddCommand(
		newRefreshCmd(&cfgPath),
		newShowCmd(&cfgPath),
		newServeCmd(&cfgPath),
	)
	return root
}

func setup(cfgPath string) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	logger := &log.Logger{
		Level:  log.ParseLevel(cfg.LogLevel),
		Writer: &log.ConsoleWriter{ColorOutput: true},
	}
	return cfg, logger, nil
}

func newMarketClient(cfg *config.Config, logger *log.Logger) market.Client {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	fmp := market.NewFMPClient(cfg.FMPAPIKey,
		market.WithFMPHTTPClient(httpClient),
		market.WithFMPLogger(logger),
		market.WithFMPRateLimit(cfg.RateLimit),
	)
	yahoo := market.NewYahooClient(
		market.WithYahooHTTPClient(httpClient),
		market.WithYahooLogger(logger),
		market.WithYahooRateLimit(cfg.RateLimit),
	)
	return market.NewComposite(fmp, yahoo)
}

// newTickerSource picks the source for the configured ticker list: a YAML
// file when the extension says so, the record store with --from-store,
// otherwise plain text.
func newTickerSource(cfg *config.Config, st store.Store, fromStore bool) source.Source {
	if fromStore {
		return source.StoreSource{Store: st}
	}
	lower := strings.ToLower(cfg.TickerFile)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return source.YAMLSource{Path: cfg.TickerFile}
	}
	return source.TextSource{Path: cfg.TickerFile}
}

func newRefreshCmd(cfgPath *string) *cobra.Command {
	var force, fromStore bool
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch missing indicators for every ticker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.FMPAPIKey == "" {
				return errors.New("fmp_api_key is required (set STOCKFEED_FMP_API_KEY)")
			}

			st, err := store.NewBadgerStore(cfg.DataDir, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			tickers, err := newTickerSource(cfg, st, fromStore).Load(cmd.Context())
			if err != nil {
				return err
			}

			ref := refresh.New(st, newMarketClient(cfg, logger), logger)
			sum, err := ref.Run(cmd.Context(), tickers, refresh.Options{Force: force})
			if err != nil {
				return err
			}
			return render.SummaryTable(os.Stdout, sum)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "refetch indicators even when already populated")
	cmd.Flags().BoolVar(&fromStore, "from-store", false, "refresh the tickers already in the record store")
	return cmd
}

func newShowCmd(cfgPath *string) *cobra.Command {
	var (
		jsonOut, pretty, syms, noColor, live bool

		filterExpr  string
		maxColWidth int
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render stored stock records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*cfgPath)
			if err != nil {
				return err
			}

			st, err := store.NewBadgerStore(cfg.DataDir, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			recs, err := st.List()
			if err != nil {
				return err
			}
			filt, err := render.ParseFilter(filterExpr)
			if err != nil {
				return err
			}
			filtered := make([]types.StockRecord, 0, len(recs))
			for _, rec := range recs {
				if filt.Match(rec.Ticker) {
					filtered = append(filtered, rec)
				}
			}

			var rend render.Renderer
			switch {
			case syms:
				rend = render.NewSymsRenderer()
			case jsonOut:
				rend = render.NewJSONRenderer()
			default:
				tr := render.NewTableRenderer()
				if live {
					tr.Quotes = quote.NewCache(quote.NewYFService(cfg.RequestTimeout), cfg.QuoteTTL, 256)
				}
				rend = tr
			}

			width := maxColWidth
			if width <= 0 {
				if tw := detectTerminalWidth(); tw > 40 {
					width = tw / 4
				}
			}
			return rend.Render(os.Stdout, filtered, render.Options{
				Color:       !noColor,
				PrettyJSON:  pretty,
				MaxColWidth: width,
				LiveQuotes:  live,
			})
		},
	}
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "ticker filter: exact set, glob, /regex/, or substring")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON instead of a table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&syms, "syms", false, "print tickers as one comma-separated line")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	cmd.Flags().BoolVar(&live, "live", false, "add live price and change columns")
	cmd.Flags().IntVar(&maxColWidth, "max-col-width", 0, "wrap table cells wider than this")
	return cmd
}

func newServeCmd(cfgPath *string) *cobra.Command {
	var fromStore bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the refresh on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.FMPAPIKey == "" {
				return errors.New("fmp_api_key is required (set STOCKFEED_FMP_API_KEY)")
			}

			st, err := store.NewBadgerStore(cfg.DataDir, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			ref := refresh.New(st, newMarketClient(cfg, logger), logger)
			job := func(ctx context.Context) error {
				tickers, err := newTickerSource(cfg, st, fromStore).Load(ctx)
				if err != nil {
					return err
				}
				_, err = ref.Run(ctx, tickers, refresh.Options{})
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// One pass at startup, then on schedule.
			if err := job(ctx); err != nil {
				return err
			}
			sched := schedule.New(logger)
			if err := sched.Start(ctx, cfg.Schedule, job); err != nil {
				return err
			}
			<-ctx.Done()
			sched.Stop()
			logger.Info().Msg("shutting down")
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromStore, "from-store", false, "refresh the tickers already in the record store")
	return cmd
}
