package app

import (
	"capindex/internal"
	"capindex/internal/calculator"
	"capindex/internal/db/models/postgres/public/model"
	"capindex/internal/domain"
	"capindex/internal/logger"
	"capindex/internal/repository"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RebalancerHandler struct {
	MarketData repository.MarketDataRepository
	// RunRepository is optional - when nil the run is computed but not
	// recorded.
	RunRepository repository.RebalanceRunRepository
}

type ConstructInput struct {
	Date       time.Time
	Capital    decimal.Decimal
	Snapshot   internal.SnapshotOptions
	Allocation internal.AllocationOptions
}

type ConstructResult struct {
	Snapshot  *domain.Snapshot
	Portfolio *domain.Portfolio
}

// Construct builds the dated snapshot and applies capital to its
// universe.
func (h RebalancerHandler) Construct(ctx context.Context, in ConstructInput) (*ConstructResult, error) {
	records, err := h.MarketData.GetOnDay(in.Date)
	if err != nil {
		return nil, err
	}

	snapshot, err := internal.BuildSnapshot(ctx, in.Date, records, in.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot for %s: %w", in.Date.Format(time.DateOnly), err)
	}

	portfolio, err := internal.Allocate(ctx, snapshot, in.Capital, in.Allocation)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate capital on %s: %w", in.Date.Format(time.DateOnly), err)
	}

	return &ConstructResult{Snapshot: snapshot, Portfolio: portfolio}, nil
}

type RebalanceInput struct {
	OldDate    time.Time
	NewDate    time.Time
	Capital    decimal.Decimal
	Snapshot   internal.SnapshotOptions
	Allocation internal.AllocationOptions
	Trades     internal.TradeOptions
}

type RebalanceResult struct {
	RunID        uuid.UUID
	OldPortfolio *domain.Portfolio
	NewPortfolio *domain.Portfolio
	Trades       []domain.Trade
	Summary      *domain.Summary
}

// Rebalance constructs both dated portfolios, classifies the universe
// change, computes the signed trades between them, and aggregates the
// summary. Each run leaves the old portfolio untouched and produces a
// fresh one, so recorded runs form a history of portfolios by date.
func (h RebalancerHandler) Rebalance(ctx context.Context, in RebalanceInput) (*RebalanceResult, error) {
	if !in.OldDate.Before(in.NewDate) {
		return nil, fmt.Errorf("%w: old date %s must precede new date %s",
			internal.ErrInvalidInput, in.OldDate.Format(time.DateOnly), in.NewDate.Format(time.DateOnly))
	}

	oldResult, err := h.Construct(ctx, ConstructInput{
		Date:       in.OldDate,
		Capital:    in.Capital,
		Snapshot:   in.Snapshot,
		Allocation: in.Allocation,
	})
	if err != nil {
		return nil, err
	}

	newResult, err := h.Construct(ctx, ConstructInput{
		Date:       in.NewDate,
		Capital:    in.Capital,
		Snapshot:   in.Snapshot,
		Allocation: in.Allocation,
	})
	if err != nil {
		return nil, err
	}

	diff := internal.ClassifyUniverse(ctx, oldResult.Portfolio, newResult.Snapshot)

	trades, err := internal.ComputeTrades(oldResult.Portfolio, newResult.Portfolio, newResult.Snapshot, diff, in.Trades)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trades: %w", err)
	}

	summary, err := calculator.Summarize(trades, oldResult.Portfolio, newResult.Portfolio)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize rebalance: %w", err)
	}

	result := &RebalanceResult{
		OldPortfolio: oldResult.Portfolio,
		NewPortfolio: newResult.Portfolio,
		Trades:       trades,
		Summary:      summary,
	}

	if h.RunRepository != nil {
		runID, err := h.recordRun(in, result)
		if err != nil {
			return nil, fmt.Errorf("failed to record rebalance run: %w", err)
		}
		result.RunID = runID
		logger.FromContext(ctx).Infof("recorded rebalance run %s (%s -> %s)",
			runID, in.OldDate.Format(time.DateOnly), in.NewDate.Format(time.DateOnly))
	}

	return result, nil
}

func (h RebalancerHandler) recordRun(in RebalanceInput, result *RebalanceResult) (uuid.UUID, error) {
	run, err := h.RunRepository.AddRun(nil, model.RebalanceRun{
		OldDate:     in.OldDate,
		NewDate:     in.NewDate,
		Cutoff:      in.Snapshot.Cutoff,
		Capital:     in.Capital,
		TurnoverPct: result.Summary.TurnoverPct,
	})
	if err != nil {
		return uuid.Nil, err
	}
	if err := h.RunRepository.AddTrades(nil, run.RebalanceRunID, result.Trades); err != nil {
		return uuid.Nil, err
	}
	if err := h.RunRepository.AddPortfolio(nil, run.RebalanceRunID, result.OldPortfolio); err != nil {
		return uuid.Nil, err
	}
	if err := h.RunRepository.AddPortfolio(nil, run.RebalanceRunID, result.NewPortfolio); err != nil {
		return uuid.Nil, err
	}
	return run.RebalanceRunID, nil
}
