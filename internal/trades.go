package internal

import (
	"capindex/internal/domain"
	"fmt"
	"sort"
)

// SellValuation picks how a full liquidation is valued.
type SellValuation string

const (
	// SellValuationOldAllocation reports the sale at the allocation
	// the position was built with, even though the proceeds of a real
	// sale would be priced on the sale date.
	SellValuationOldAllocation SellValuation = "old_allocation"

	// SellValuationMarkToMarket reports the sale at old shares times
	// the new date's price.
	SellValuationMarkToMarket SellValuation = "mark_to_market"
)

type TradeOptions struct {
	SellValuation SellValuation
}

func DefaultTradeOptions() TradeOptions {
	return TradeOptions{SellValuation: SellValuationOldAllocation}
}

// ComputeTrades turns an action partition into one signed trade row per
// non-IGNORE company. next must be the portfolio allocated from the
// same snapshot the diff was classified against.
func ComputeTrades(old *domain.Portfolio, next *domain.Portfolio, nextSnap *domain.Snapshot, diff domain.UniverseDiff, opts TradeOptions) ([]domain.Trade, error) {
	if opts.SellValuation == "" {
		opts.SellValuation = SellValuationOldAllocation
	}

	companies := make([]string, 0, len(diff.Actions))
	for company := range diff.Actions {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	trades := []domain.Trade{}
	for _, company := range companies {
		switch diff.Actions[company] {
		case domain.ActionAdjust:
			oldPos, ok := old.Positions[company]
			if !ok {
				return nil, fmt.Errorf("company %s classified ADJUST but missing from old portfolio", company)
			}
			newPos, ok := next.Positions[company]
			if !ok {
				return nil, fmt.Errorf("company %s classified ADJUST but missing from new portfolio", company)
			}
			tradeShares := newPos.Shares.Sub(oldPos.Shares)
			trades = append(trades, domain.Trade{
				Company:       company,
				Action:        domain.ActionAdjust,
				SharesOld:     oldPos.Shares,
				SharesNew:     newPos.Shares,
				AllocationOld: oldPos.Allocation,
				AllocationNew: newPos.Allocation,
				Price:         newPos.PriceAtBuild,
				TradeShares:   tradeShares,
				TradeValue:    tradeShares.Mul(newPos.PriceAtBuild),
			})

		case domain.ActionBuy:
			newPos, ok := next.Positions[company]
			if !ok {
				return nil, fmt.Errorf("company %s classified BUY but missing from new portfolio", company)
			}
			trades = append(trades, domain.Trade{
				Company:       company,
				Action:        domain.ActionBuy,
				SharesNew:     newPos.Shares,
				AllocationNew: newPos.Allocation,
				Price:         newPos.PriceAtBuild,
				TradeShares:   newPos.Shares,
				// the full allocation deployed into the name, not
				// shares x price - flooring makes those differ
				TradeValue: newPos.Allocation,
			})

		case domain.ActionSell:
			oldPos, ok := old.Positions[company]
			if !ok {
				return nil, fmt.Errorf("company %s classified SELL but missing from old portfolio", company)
			}
			price := oldPos.PriceAtBuild
			if entry, observed := nextSnap.Lookup(company); observed {
				price = entry.Price
			}
			tradeValue := oldPos.Allocation.Neg()
			if opts.SellValuation == SellValuationMarkToMarket {
				tradeValue = oldPos.Shares.Mul(price).Neg()
			}
			trades = append(trades, domain.Trade{
				Company:       company,
				Action:        domain.ActionSell,
				SharesOld:     oldPos.Shares,
				AllocationOld: oldPos.Allocation,
				Price:         price,
				TradeShares:   oldPos.Shares.Neg(),
				TradeValue:    tradeValue,
			})

		case domain.ActionIgnore:
			// no row - ignored companies stay out of every aggregate
		}
	}

	return trades, nil
}
