package repository

import (
	"capindex/internal/domain"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

// ReportRepository persists the core's output records verbatim: the
// per-company trade table as CSV and the summary as a flat JSON report.
type ReportRepository interface {
	SaveTrades(path string, trades []domain.Trade) error
	SaveSummary(path string, summary *domain.Summary) error
}

type fileReportRepositoryHandler struct{}

func NewFileReportRepository() ReportRepository {
	return fileReportRepositoryHandler{}
}

type tradeRow struct {
	Company       string `csv:"company"`
	SharesOld     int64  `csv:"shares_old"`
	AllocationOld string `csv:"allocation_old"`
	Shares        int64  `csv:"shares"`
	Allocation    string `csv:"allocation"`
	Price         string `csv:"price"`
	TradeShares   int64  `csv:"trade_shares"`
	TradeValue    string `csv:"trade_value"`
	Action        string `csv:"action"`
}

func (h fileReportRepositoryHandler) SaveTrades(path string, trades []domain.Trade) error {
	rows := make([]tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, tradeRow{
			Company:       t.Company,
			SharesOld:     t.SharesOld.Round(0).IntPart(),
			AllocationOld: t.AllocationOld.StringFixed(2),
			Shares:        t.SharesNew.Round(0).IntPart(),
			Allocation:    t.AllocationNew.StringFixed(2),
			Price:         t.Price.StringFixed(2),
			TradeShares:   t.TradeShares.Round(0).IntPart(),
			TradeValue:    t.TradeValue.StringFixed(2),
			Action:        string(t.Action),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trade report %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write trade report %s: %w", path, err)
	}
	return nil
}

type summaryDetailRow struct {
	Company     string  `json:"company"`
	Shares      int64   `json:"shares"`
	TradeShares int64   `json:"trade_shares"`
	TradeValue  float64 `json:"trade_value"`
}

type summaryReport struct {
	OldPortfolioValue float64            `json:"old_portfolio_value"`
	NewPortfolioValue float64            `json:"new_portfolio_value"`
	TotalTradeValue   float64            `json:"total_trade_value"`
	BuyValue          float64            `json:"buy_value"`
	SellValue         float64            `json:"sell_value"`
	AdjustValue       float64            `json:"adjust_value"`
	DollarTurnoverPct string             `json:"dollar_turnover_pct"`
	ShareTurnoverPct  string             `json:"share_turnover_pct"`
	TotalNewShares    int64              `json:"total_new_shares"`
	TotalSoldShares   int64              `json:"total_sold_shares"`
	NewBuys           []summaryDetailRow `json:"new_buys"`
	SoldStocks        []summaryDetailRow `json:"sold_stocks"`
}

func (h fileReportRepositoryHandler) SaveSummary(path string, summary *domain.Summary) error {
	report := summaryReport{
		OldPortfolioValue: round2(summary.OldValue.InexactFloat64()),
		NewPortfolioValue: round2(summary.NewValue.InexactFloat64()),
		TotalTradeValue:   round2(summary.TotalTradeValue.InexactFloat64()),
		BuyValue:          round2(summary.BuyValue.InexactFloat64()),
		SellValue:         round2(summary.SellValue.InexactFloat64()),
		AdjustValue:       round2(summary.AdjustValue.InexactFloat64()),
		DollarTurnoverPct: fmt.Sprintf("%.2f%%", summary.TurnoverPct*100),
		ShareTurnoverPct:  fmt.Sprintf("%.2f%%", summary.ShareTurnoverPct),
		TotalNewShares:    summary.TotalNewShares.Round(0).IntPart(),
		TotalSoldShares:   summary.TotalSoldShares.Round(0).IntPart(),
		NewBuys:           []summaryDetailRow{},
		SoldStocks:        []summaryDetailRow{},
	}
	for _, t := range summary.NewBuys {
		report.NewBuys = append(report.NewBuys, summaryDetailRow{
			Company:     t.Company,
			Shares:      t.SharesNew.Round(0).IntPart(),
			TradeShares: t.TradeShares.Round(0).IntPart(),
			TradeValue:  round2(t.TradeValue.InexactFloat64()),
		})
	}
	for _, t := range summary.SoldStocks {
		report.SoldStocks = append(report.SoldStocks, summaryDetailRow{
			Company:     t.Company,
			Shares:      t.SharesOld.Round(0).IntPart(),
			TradeShares: t.TradeShares.Round(0).IntPart(),
			TradeValue:  round2(t.TradeValue.InexactFloat64()),
		})
	}

	bytes, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
