package main

import (
	"capindex/internal"
	"capindex/internal/app"
	"capindex/internal/logger"
	"capindex/internal/repository"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	inputPath   string
	databaseURL string

	cutoff           float64
	capital          float64
	fractionalShares bool
	naiveCutoff      bool
)

var rootCmd = &cobra.Command{
	Use:   "capindex",
	Short: "Market-cap-weighted index construction and rebalancing",
	Long: `capindex builds a cap-weighted index universe from a market
capitalisation snapshot and computes the trades required to rebalance
between two snapshot dates.

Examples:
  capindex construct --date 2025-08-04 --input data/market_capitalisation.csv
  capindex rebalance --old-date 2025-08-04 --new-date 2025-08-05 \
      --input data/market_capitalisation.csv --output output.csv --summary summary.json`,
}

var constructCmd = &cobra.Command{
	Use:   "construct",
	Short: "Build the index universe and allocation for one date",
	RunE:  runConstruct,
}

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Compute the trades between two snapshot dates",
	RunE:  runRebalance,
}

var (
	constructDate string

	oldDate      string
	newDate      string
	outputPath   string
	summaryPath  string
	sellAtMarket bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "market capitalisation CSV (required)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "postgres DSN for recording runs (optional)")
	rootCmd.PersistentFlags().Float64Var(&cutoff, "cutoff", 0.85, "cumulative-weight cutoff in (0, 1]")
	rootCmd.PersistentFlags().Float64Var(&capital, "capital", 100_000_000, "capital to allocate")
	rootCmd.PersistentFlags().BoolVar(&fractionalShares, "fractional-shares", false, "allow fractional share counts")
	rootCmd.PersistentFlags().BoolVar(&naiveCutoff, "naive-cutoff", false, "disable the always-include-top-rank rule")

	constructCmd.Flags().StringVar(&constructDate, "date", "", "snapshot date (YYYY-MM-DD, required)")
	constructCmd.MarkFlagRequired("date")

	rebalanceCmd.Flags().StringVar(&oldDate, "old-date", "", "old snapshot date (YYYY-MM-DD, required)")
	rebalanceCmd.Flags().StringVar(&newDate, "new-date", "", "new snapshot date (YYYY-MM-DD, required)")
	rebalanceCmd.Flags().StringVar(&outputPath, "output", "output.csv", "trade table output path")
	rebalanceCmd.Flags().StringVar(&summaryPath, "summary", "summary.json", "summary report output path")
	rebalanceCmd.Flags().BoolVar(&sellAtMarket, "sell-at-market", false, "value sells at new-date prices instead of old allocations")
	rebalanceCmd.MarkFlagRequired("old-date")
	rebalanceCmd.MarkFlagRequired("new-date")

	rootCmd.AddCommand(constructCmd)
	rootCmd.AddCommand(rebalanceCmd)
}

func newHandler() (*app.RebalancerHandler, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("--input is required")
	}
	marketData, err := repository.NewCSVMarketDataRepository(inputPath)
	if err != nil {
		return nil, err
	}

	handler := &app.RebalancerHandler{MarketData: marketData}
	if databaseURL != "" {
		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		handler.RunRepository = repository.NewRebalanceRunRepository(db)
	}

	return handler, nil
}

func snapshotOptions() internal.SnapshotOptions {
	opts := internal.DefaultSnapshotOptions(cutoff)
	if naiveCutoff {
		opts.AlwaysIncludeTopRank = false
	}
	return opts
}

func runConstruct(cmd *cobra.Command, args []string) error {
	log := logger.New()
	ctx := logger.AddToContext(cmd.Context(), log)

	handler, err := newHandler()
	if err != nil {
		return err
	}

	date, err := time.Parse(time.DateOnly, constructDate)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	result, err := handler.Construct(ctx, app.ConstructInput{
		Date:       date,
		Capital:    decimal.NewFromFloat(capital),
		Snapshot:   snapshotOptions(),
		Allocation: internal.AllocationOptions{FractionalShares: fractionalShares},
	})
	if err != nil {
		return err
	}

	for _, entry := range result.Snapshot.Included() {
		position := result.Portfolio.Positions[entry.Company]
		fmt.Printf("%-12s weight=%.4f cumulative=%.4f allocation=%s shares=%s\n",
			entry.Company, entry.Weight, entry.CumulativeWeight,
			position.Allocation.StringFixed(2), position.Shares.String())
	}
	fmt.Printf("cash remainder: %s\n", result.Portfolio.CashRemainder.StringFixed(2))
	return nil
}

func runRebalance(cmd *cobra.Command, args []string) error {
	log := logger.New()
	ctx := logger.AddToContext(cmd.Context(), log)

	handler, err := newHandler()
	if err != nil {
		return err
	}

	od, err := time.Parse(time.DateOnly, oldDate)
	if err != nil {
		return fmt.Errorf("invalid --old-date: %w", err)
	}
	nd, err := time.Parse(time.DateOnly, newDate)
	if err != nil {
		return fmt.Errorf("invalid --new-date: %w", err)
	}

	tradeOpts := internal.DefaultTradeOptions()
	if sellAtMarket {
		tradeOpts.SellValuation = internal.SellValuationMarkToMarket
	}

	result, err := handler.Rebalance(ctx, app.RebalanceInput{
		OldDate:    od,
		NewDate:    nd,
		Capital:    decimal.NewFromFloat(capital),
		Snapshot:   snapshotOptions(),
		Allocation: internal.AllocationOptions{FractionalShares: fractionalShares},
		Trades:     tradeOpts,
	})
	if err != nil {
		return err
	}

	reports := repository.NewFileReportRepository()
	if err := reports.SaveTrades(outputPath, result.Trades); err != nil {
		return err
	}
	if err := reports.SaveSummary(summaryPath, result.Summary); err != nil {
		return err
	}

	log.Infof("wrote %d trades to %s, summary to %s", len(result.Trades), outputPath, summaryPath)
	log.Infof("turnover %.2f%%, buys %s, sells %s",
		result.Summary.TurnoverPct*100,
		result.Summary.BuyValue.StringFixed(2),
		result.Summary.SellValue.StringFixed(2))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
