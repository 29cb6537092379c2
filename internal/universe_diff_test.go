package internal

import (
	"capindex/internal/domain"
	"capindex/internal/util"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_ClassifyUniverse(t *testing.T) {
	ctx := context.Background()
	oldDate := util.NewDate(2025, 8, 4)
	newDate := util.NewDate(2025, 8, 5)
	capital := decimal.NewFromInt(1_000_000)

	buildPortfolio := func(t *testing.T, records []domain.StockRecord, cutoff float64) (*domain.Snapshot, *domain.Portfolio) {
		t.Helper()
		snapshot, err := BuildSnapshot(ctx, oldDate, records, DefaultSnapshotOptions(cutoff))
		require.NoError(t, err)
		portfolio, err := Allocate(ctx, snapshot, capital, AllocationOptions{})
		require.NoError(t, err)
		return snapshot, portfolio
	}

	t.Run("partition is disjoint and exhaustive", func(t *testing.T) {
		_, oldPortfolio := buildPortfolio(t, []domain.StockRecord{
			record("A", 500, 10),
			record("B", 300, 10),
			record("C", 100, 10),
			record("D", 100, 10),
		}, 0.8)

		newSnapshot, err := BuildSnapshot(ctx, newDate, []domain.StockRecord{
			record("A", 100, 10),
			record("B", 500, 10),
			record("C", 300, 10),
			record("E", 100, 10),
		}, DefaultSnapshotOptions(0.8))
		require.NoError(t, err)

		diff := ClassifyUniverse(ctx, oldPortfolio, newSnapshot)

		// every company observed on either date has exactly one action
		total := 0
		for _, action := range []domain.Action{domain.ActionAdjust, domain.ActionBuy, domain.ActionSell, domain.ActionIgnore} {
			total += len(diff.Companies(action))
		}
		require.Equal(t, len(diff.Actions), total)

		for company, action := range diff.Actions {
			for _, other := range []domain.Action{domain.ActionAdjust, domain.ActionBuy, domain.ActionSell, domain.ActionIgnore} {
				if other == action {
					continue
				}
				require.NotContains(t, diff.Companies(other), company)
			}
		}
	})

	t.Run("membership moves map to the right actions", func(t *testing.T) {
		// old universe: A and B in (0.8 cumulative), C out
		_, oldPortfolio := buildPortfolio(t, []domain.StockRecord{
			record("A", 500, 20),
			record("B", 300, 30),
			record("C", 200, 40),
		}, 0.8)
		require.Equal(t, []string{"A", "B"}, oldPortfolio.HeldCompanies())

		// new universe: A and C in, B out
		newSnapshot, err := BuildSnapshot(ctx, newDate, []domain.StockRecord{
			record("A", 500, 20),
			record("B", 200, 30),
			record("C", 300, 40),
		}, DefaultSnapshotOptions(0.8))
		require.NoError(t, err)

		diff := ClassifyUniverse(ctx, oldPortfolio, newSnapshot)

		require.Equal(t, []string{"A"}, diff.Companies(domain.ActionAdjust))
		require.Equal(t, []string{"C"}, diff.Companies(domain.ActionBuy))
		require.Equal(t, []string{"B"}, diff.Companies(domain.ActionSell))
		require.Empty(t, diff.Companies(domain.ActionIgnore))
		require.Empty(t, diff.Delisted)
	})

	t.Run("company absent from new records is a delisted sell", func(t *testing.T) {
		_, oldPortfolio := buildPortfolio(t, []domain.StockRecord{
			record("A", 500, 20),
			record("B", 500, 30),
		}, 1)

		newSnapshot, err := BuildSnapshot(ctx, newDate, []domain.StockRecord{
			record("A", 500, 20),
		}, DefaultSnapshotOptions(1))
		require.NoError(t, err)

		diff := ClassifyUniverse(ctx, oldPortfolio, newSnapshot)

		require.Equal(t, []string{"B"}, diff.Companies(domain.ActionSell))
		require.True(t, diff.Delisted["B"])
	})

	t.Run("below-cutoff sell is not marked delisted", func(t *testing.T) {
		_, oldPortfolio := buildPortfolio(t, []domain.StockRecord{
			record("A", 500, 20),
			record("B", 500, 30),
		}, 1)

		newSnapshot, err := BuildSnapshot(ctx, newDate, []domain.StockRecord{
			record("A", 900, 20),
			record("B", 100, 30),
		}, DefaultSnapshotOptions(0.9))
		require.NoError(t, err)

		diff := ClassifyUniverse(ctx, oldPortfolio, newSnapshot)

		require.Equal(t, []string{"B"}, diff.Companies(domain.ActionSell))
		require.False(t, diff.Delisted["B"])
	})

	t.Run("excluded on both dates is ignored", func(t *testing.T) {
		_, oldPortfolio := buildPortfolio(t, []domain.StockRecord{
			record("A", 900, 20),
			record("B", 100, 30),
		}, 0.9)
		require.Equal(t, []string{"A"}, oldPortfolio.HeldCompanies())

		newSnapshot, err := BuildSnapshot(ctx, newDate, []domain.StockRecord{
			record("A", 900, 20),
			record("B", 100, 30),
		}, DefaultSnapshotOptions(0.9))
		require.NoError(t, err)

		diff := ClassifyUniverse(ctx, oldPortfolio, newSnapshot)

		require.Equal(t, []string{"B"}, diff.Companies(domain.ActionIgnore))
	})
}
