package domain

import "github.com/shopspring/decimal"

// Summary is the headline view of a rebalance: portfolio values on both
// dates, the cash moved per action, and the two detail lists reports
// care about.
type Summary struct {
	OldValue        decimal.Decimal
	NewValue        decimal.Decimal
	TotalTradeValue decimal.Decimal
	BuyValue        decimal.Decimal
	SellValue       decimal.Decimal
	AdjustValue     decimal.Decimal

	// TurnoverPct is total traded value over new portfolio value.
	TurnoverPct float64
	// ShareTurnoverPct is share turnover against average shares held
	// over the period, expressed as a percentage.
	ShareTurnoverPct float64

	TotalNewShares  decimal.Decimal
	TotalSoldShares decimal.Decimal

	// NewBuys and SoldStocks are the literal BUY and SELL trade rows,
	// sorted descending by absolute trade value.
	NewBuys    []Trade
	SoldStocks []Trade
}
