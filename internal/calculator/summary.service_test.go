package calculator

import (
	"capindex/internal/domain"
	"capindex/internal/util"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func Test_Summarize(t *testing.T) {
	oldDate := util.NewDate(2025, 8, 4)
	newDate := util.NewDate(2025, 8, 5)

	oldPortfolio := domain.NewPortfolio(oldDate, dec(20_000_000))
	oldPortfolio.Positions["A"] = &domain.Position{Company: "A", Shares: dec(500), Allocation: dec(10_000_000), PriceAtBuild: dec(20)}
	oldPortfolio.Positions["B"] = &domain.Position{Company: "B", Shares: dec(300), Allocation: dec(9_000_000), PriceAtBuild: dec(30)}

	newPortfolio := domain.NewPortfolio(newDate, dec(20_000_000))
	newPortfolio.Positions["A"] = &domain.Position{Company: "A", Shares: dec(550), Allocation: dec(11_000_000), PriceAtBuild: dec(20)}
	newPortfolio.Positions["C"] = &domain.Position{Company: "C", Shares: dec(200), Allocation: dec(8_000_000), PriceAtBuild: dec(40)}

	trades := []domain.Trade{
		{Company: "A", Action: domain.ActionAdjust, SharesOld: dec(500), SharesNew: dec(550), AllocationOld: dec(10_000_000), AllocationNew: dec(11_000_000), Price: dec(20), TradeShares: dec(50), TradeValue: dec(1000)},
		{Company: "B", Action: domain.ActionSell, SharesOld: dec(300), AllocationOld: dec(9_000_000), Price: dec(30), TradeShares: dec(-300), TradeValue: dec(-9_000_000)},
		{Company: "C", Action: domain.ActionBuy, SharesNew: dec(200), AllocationNew: dec(8_000_000), Price: dec(40), TradeShares: dec(200), TradeValue: dec(8_000_000)},
	}

	summary, err := Summarize(trades, oldPortfolio, newPortfolio)
	require.NoError(t, err)

	require.True(t, summary.OldValue.Equal(dec(19_000_000)), "old value %s", summary.OldValue)
	require.True(t, summary.NewValue.Equal(dec(19_000_000)), "new value %s", summary.NewValue)

	require.True(t, summary.BuyValue.Equal(dec(8_000_000)))
	require.True(t, summary.SellValue.Equal(dec(-9_000_000)))
	require.True(t, summary.AdjustValue.Equal(dec(1000)))
	require.True(t, summary.TotalTradeValue.Equal(dec(17_001_000)))

	require.InDelta(t, 17_001_000.0/19_000_000, summary.TurnoverPct, 1e-9)

	// |50| + |-300| + |200| over avg shares (525 + 150 + 100)
	require.InDelta(t, 550.0/775*100, summary.ShareTurnoverPct, 1e-9)

	require.True(t, summary.TotalNewShares.Equal(dec(200)))
	require.True(t, summary.TotalSoldShares.Equal(dec(300)))

	require.Len(t, summary.NewBuys, 1)
	require.Equal(t, "C", summary.NewBuys[0].Company)
	require.Len(t, summary.SoldStocks, 1)
	require.Equal(t, "B", summary.SoldStocks[0].Company)

	// round-trip: new value is everything the new portfolio allocated
	holdAndBuy := decimal.Zero
	for _, trade := range trades {
		if trade.Action != domain.ActionSell {
			holdAndBuy = holdAndBuy.Add(trade.AllocationNew)
		}
	}
	require.True(t, summary.NewValue.Equal(holdAndBuy))
}

func Test_Summarize_detailListsSortedByAbsValue(t *testing.T) {
	date := util.NewDate(2025, 8, 5)
	empty := domain.NewPortfolio(date, dec(1))

	trades := []domain.Trade{
		{Company: "SMALL", Action: domain.ActionBuy, TradeShares: dec(1), TradeValue: dec(100)},
		{Company: "BIG", Action: domain.ActionBuy, TradeShares: dec(1), TradeValue: dec(9000)},
		{Company: "MID", Action: domain.ActionBuy, TradeShares: dec(1), TradeValue: dec(800)},
		{Company: "S1", Action: domain.ActionSell, TradeShares: dec(-1), TradeValue: dec(-50)},
		{Company: "S2", Action: domain.ActionSell, TradeShares: dec(-1), TradeValue: dec(-4000)},
	}

	summary, err := Summarize(trades, empty, empty)
	require.NoError(t, err)

	buyOrder := []string{}
	for _, trade := range summary.NewBuys {
		buyOrder = append(buyOrder, trade.Company)
	}
	require.Equal(t, []string{"BIG", "MID", "SMALL"}, buyOrder)

	sellOrder := []string{}
	for _, trade := range summary.SoldStocks {
		sellOrder = append(sellOrder, trade.Company)
	}
	require.Equal(t, []string{"S2", "S1"}, sellOrder)
}

func Test_Summarize_emptyTradeList(t *testing.T) {
	date := util.NewDate(2025, 8, 5)
	empty := domain.NewPortfolio(date, dec(1))

	summary, err := Summarize([]domain.Trade{}, empty, empty)
	require.NoError(t, err)
	require.True(t, summary.TotalTradeValue.IsZero())
	require.Zero(t, summary.TurnoverPct)
	require.Zero(t, summary.ShareTurnoverPct)
}

func Test_Summarize_rejectsIgnoreRows(t *testing.T) {
	date := util.NewDate(2025, 8, 5)
	empty := domain.NewPortfolio(date, dec(1))

	_, err := Summarize([]domain.Trade{{Company: "X", Action: domain.ActionIgnore}}, empty, empty)
	require.Error(t, err)
}
