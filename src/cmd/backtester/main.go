package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jcarver-research/index-event-backtest/src/backtest"
	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
	"github.com/jcarver-research/index-event-backtest/src/eventservices"
	"github.com/jcarver-research/index-event-backtest/src/utils"
)

type RunArgs struct {
	GoEnv       string
	EventsFile  string
	ConfigFile  string
	Index       string
	HoldingDays int
	Hedge       bool
	Seed        int64
	OutDir      string
}

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Simulate index-event trades against historical daily bars",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		eventsFile, err := cmd.Flags().GetString("events")
		if err != nil {
			log.Fatalf("error getting events: %v", err)
		}

		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		index, err := cmd.Flags().GetString("index")
		if err != nil {
			log.Fatalf("error getting index: %v", err)
		}

		holdingDays, err := cmd.Flags().GetInt("holding-days")
		if err != nil {
			log.Fatalf("error getting holding-days: %v", err)
		}

		hedge, err := cmd.Flags().GetBool("hedge")
		if err != nil {
			log.Fatalf("error getting hedge: %v", err)
		}

		seed, err := cmd.Flags().GetInt64("seed")
		if err != nil {
			log.Fatalf("error getting seed: %v", err)
		}

		outDir, err := cmd.Flags().GetString("out-dir")
		if err != nil {
			log.Fatalf("error getting out-dir: %v", err)
		}

		if err := run(RunArgs{
			GoEnv:       goEnv,
			EventsFile:  eventsFile,
			ConfigFile:  configFile,
			Index:       index,
			HoldingDays: holdingDays,
			Hedge:       hedge,
			Seed:        seed,
			OutDir:      outDir,
		}); err != nil {
			log.Fatalf("error running backtest: %v", err)
		}

		log.Info("Done")
	},
}

func main() {
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	rootCmd.PersistentFlags().String("events", "", "Path to the event-set CSV (Ticker, Trade Date, Index Change).")
	rootCmd.PersistentFlags().String("config", "", "Path to the backtest YAML config.")
	rootCmd.PersistentFlags().String("index", "All", "Index filter: 'S&P 400', 'S&P 500', 'S&P 600', or 'All'.")
	rootCmd.PersistentFlags().Int("holding-days", 0, "Fixed holding period in days. 0 draws a random holding period per trade.")
	rootCmd.PersistentFlags().Bool("hedge", false, "Offset each trade with a long benchmark hedge.")
	rootCmd.PersistentFlags().Int64("seed", 0, "Seed for the random holding period draw. 0 seeds from the clock.")
	rootCmd.PersistentFlags().String("out-dir", "", "The directory to write results to.")

	rootCmd.MarkPersistentFlagRequired("events")
	rootCmd.MarkPersistentFlagRequired("config")
	rootCmd.MarkPersistentFlagRequired("out-dir")

	cobra.CheckErr(rootCmd.Execute())
}

func buildPolicy(args RunArgs) (backtest.HoldingPeriodPolicy, error) {
	if args.HoldingDays > 0 {
		return backtest.NewFixedHolding(args.HoldingDays)
	}

	seed := args.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log.Infof("randomized holding periods, seed %d", seed)

	return backtest.NewRandomizedHolding(rand.New(rand.NewSource(seed))), nil
}

func run(args RunArgs) error {
	ctx := context.Background()

	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		return fmt.Errorf("missing PROJECTS_DIR environment variable")
	}

	if err := utils.InitEnvironmentVariables(projectsDir, args.GoEnv); err != nil {
		return fmt.Errorf("error initializing environment variables: %v", err)
	}

	apiKey := os.Getenv("POLYGON_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing POLYGON_API_KEY environment variable")
	}

	cfg, err := backtest.LoadConfig(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	events, err := eventservices.LoadTradeEvents(args.EventsFile)
	if err != nil {
		return fmt.Errorf("error loading events: %w", err)
	}

	events = eventservices.FilterByIndex(events, eventmodels.IndexChange(args.Index))
	if len(events) == 0 {
		return fmt.Errorf("no events match index filter %q", args.Index)
	}

	log.Infof("%d events after index filter %q", len(events), args.Index)

	priceProvider := eventservices.NewPolygonPriceProvider(apiKey, cfg.MarketData.StartDate, cfg.MarketData.EndDate)
	rateProvider := eventservices.NewNYFedRateProvider(cfg.MarketData.StartDate, cfg.MarketData.EndDate)

	// prefetch all series so the simulation loop does no I/O
	symbols := make([]eventmodels.StockSymbol, 0, len(events))
	seen := make(map[eventmodels.StockSymbol]bool)
	for _, event := range events {
		if !seen[event.Ticker] {
			seen[event.Ticker] = true
			symbols = append(symbols, event.Ticker)
		}
	}

	if err := priceProvider.Preload(ctx, symbols); err != nil {
		log.Errorf("preload failed, per-ticker fetches will retry during the run: %v", err)
	}

	if err := rateProvider.Preload(ctx); err != nil {
		return fmt.Errorf("error preloading rates: %w", err)
	}

	policy, err := buildPolicy(args)
	if err != nil {
		return err
	}

	sim, err := backtest.NewSimulator(cfg.Portfolio, priceProvider, rateProvider, policy)
	if err != nil {
		return fmt.Errorf("error building simulator: %w", err)
	}

	if args.Hedge {
		benchmark, err := priceProvider.DailySeries(ctx, cfg.MarketData.Benchmark)
		if err != nil {
			return fmt.Errorf("error fetching benchmark series: %w", err)
		}

		sim.EnableHedge(benchmark)
	}

	// advisory liquidity caps, reported alongside the results
	seriesBySymbol := make(map[eventmodels.StockSymbol]*eventmodels.PriceSeries)
	for _, symbol := range symbols {
		series, err := priceProvider.DailySeries(ctx, symbol)
		if err != nil {
			continue
		}

		seriesBySymbol[symbol] = series
	}

	allocations := backtest.AllocatePositions(seriesBySymbol, events, cfg.Portfolio.Capital)
	for symbol, maxNotional := range allocations {
		log.Debugf("liquidity cap for %s: $%.2f", symbol, maxNotional)
	}

	result, err := sim.Run(ctx, events)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	sorted := backtest.SortByNetPnlDesc(result.Trades)

	if _, err := os.Stat(args.OutDir); os.IsNotExist(err) {
		if err := os.MkdirAll(args.OutDir, 0755); err != nil {
			return fmt.Errorf("error creating out dir: %w", err)
		}
	}

	outFile := filepath.Join(args.OutDir, "results_sorted.csv")
	if err := eventservices.ExportSimulatedTrades(outFile, sorted); err != nil {
		return fmt.Errorf("error exporting trades: %w", err)
	}

	for _, skipped := range result.Skipped {
		log.Infof("skipped %s on %s: %s", skipped.Ticker, eventmodels.DateKey(skipped.TradeDate), skipped.Reason)
	}

	summary := backtest.Summarize(result.Trades)
	fmt.Println(summary.Render())

	log.Infof("run %s complete: %d trades, %d skipped, output %s", result.RunID, len(result.Trades), len(result.Skipped), outFile)

	return nil
}
