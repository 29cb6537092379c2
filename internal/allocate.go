package internal

import (
	"capindex/internal/domain"
	"capindex/internal/logger"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type AllocationOptions struct {
	// FractionalShares skips flooring share counts to whole units.
	// Default off, matching funds that only deal whole shares.
	FractionalShares bool
}

// Allocate applies capital to a snapshot's included universe. Each
// included company gets capital x weight; the weight is deliberately
// not renormalized against the included set, so the cash matching the
// excluded long tail stays uninvested and shows up in CashRemainder.
func Allocate(ctx context.Context, snapshot *domain.Snapshot, capital decimal.Decimal, opts AllocationOptions) (*domain.Portfolio, error) {
	if capital.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: capital must be positive, got %s", ErrInvalidInput, capital.String())
	}

	log := logger.FromContext(ctx)
	portfolio := domain.NewPortfolio(snapshot.Date, capital)

	allocated := decimal.Zero
	for _, entry := range snapshot.Included() {
		// BuildSnapshot already rejects these, re-checked so a
		// hand-built snapshot cannot divide by zero
		if entry.Price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: non-positive price %s for included company %s", ErrInvalidInput, entry.Price.String(), entry.Company)
		}

		allocation := capital.Mul(decimal.NewFromFloat(entry.Weight))
		shares := allocation.Div(entry.Price)
		if !opts.FractionalShares {
			shares = shares.Floor()
		}
		if shares.IsZero() && allocation.GreaterThan(decimal.Zero) {
			log.Warnf("allocation %s for %s floors to zero shares at price %s",
				allocation.StringFixed(2), entry.Company, entry.Price.String())
		}

		portfolio.Positions[entry.Company] = &domain.Position{
			Company:      entry.Company,
			Shares:       shares,
			Allocation:   allocation,
			PriceAtBuild: entry.Price,
		}
		allocated = allocated.Add(allocation)
	}

	portfolio.CashRemainder = capital.Sub(allocated)
	return portfolio, nil
}
