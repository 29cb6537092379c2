package calculator

import (
	"capindex/internal/domain"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Summarize reduces a trade list and the two portfolios it transitions
// between into headline statistics. IGNORE rows never reach this point,
// so every trade contributes to the aggregates.
func Summarize(trades []domain.Trade, old *domain.Portfolio, next *domain.Portfolio) (*domain.Summary, error) {
	if old == nil || next == nil {
		return nil, fmt.Errorf("cannot summarize without both portfolios")
	}

	summary := &domain.Summary{
		OldValue:        old.TotalAllocated(),
		NewValue:        next.TotalAllocated(),
		TotalTradeValue: decimal.Zero,
		BuyValue:        decimal.Zero,
		SellValue:       decimal.Zero,
		AdjustValue:     decimal.Zero,
		TotalNewShares:  decimal.Zero,
		TotalSoldShares: decimal.Zero,
		NewBuys:         []domain.Trade{},
		SoldStocks:      []domain.Trade{},
	}

	absTradeShares := []float64{}
	avgShares := []float64{}
	for _, t := range trades {
		summary.TotalTradeValue = summary.TotalTradeValue.Add(t.TradeValue.Abs())
		absTradeShares = append(absTradeShares, t.TradeShares.Abs().InexactFloat64())
		avgShares = append(avgShares, t.SharesOld.Add(t.SharesNew).InexactFloat64()/2)

		switch t.Action {
		case domain.ActionBuy:
			summary.BuyValue = summary.BuyValue.Add(t.TradeValue)
			summary.TotalNewShares = summary.TotalNewShares.Add(t.TradeShares)
			summary.NewBuys = append(summary.NewBuys, t)
		case domain.ActionSell:
			summary.SellValue = summary.SellValue.Add(t.TradeValue)
			summary.TotalSoldShares = summary.TotalSoldShares.Add(t.TradeShares.Abs())
			summary.SoldStocks = append(summary.SoldStocks, t)
		case domain.ActionAdjust:
			summary.AdjustValue = summary.AdjustValue.Add(t.TradeValue)
		default:
			return nil, fmt.Errorf("unexpected action %s in trade list", t.Action)
		}
	}

	if summary.NewValue.GreaterThan(decimal.Zero) {
		summary.TurnoverPct = summary.TotalTradeValue.Div(summary.NewValue).InexactFloat64()
	}

	if len(trades) > 0 {
		tradedShares, err := stats.Sum(absTradeShares)
		if err != nil {
			return nil, fmt.Errorf("failed to sum traded shares: %w", err)
		}
		heldShares, err := stats.Sum(avgShares)
		if err != nil {
			return nil, fmt.Errorf("failed to sum average held shares: %w", err)
		}
		if heldShares > 0 {
			summary.ShareTurnoverPct = tradedShares / heldShares * 100
		}
	}

	byAbsValueDesc := func(list []domain.Trade) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].TradeValue.Abs().GreaterThan(list[j].TradeValue.Abs())
		})
	}
	byAbsValueDesc(summary.NewBuys)
	byAbsValueDesc(summary.SoldStocks)

	return summary, nil
}
