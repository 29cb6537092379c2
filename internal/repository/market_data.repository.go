package repository

import (
	"capindex/internal/domain"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MarketDataRepository hands the core pre-parsed, typed records for a
// single observation date.
type MarketDataRepository interface {
	GetOnDay(date time.Time) ([]domain.StockRecord, error)
	Dates() []time.Time
}

type marketDataRow struct {
	Date      string `csv:"date"`
	Company   string `csv:"company"`
	MarketCap string `csv:"market_cap_m"`
	Price     string `csv:"price"`
}

type csvMarketDataRepositoryHandler struct {
	recordsByDate map[string][]domain.StockRecord
}

// NewCSVMarketDataRepository reads a multi-date market capitalisation
// file once and serves per-date slices from memory. Rows with a
// missing company or an unparseable number are dropped with a warning,
// matching the pre-cleaning contract the core expects.
func NewCSVMarketDataRepository(path string) (MarketDataRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open market data file: %w", err)
	}
	defer f.Close()

	rows := []marketDataRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse market data file %s: %w", path, err)
	}

	handler := csvMarketDataRepositoryHandler{
		recordsByDate: map[string][]domain.StockRecord{},
	}
	log := zap.S()
	for i, row := range rows {
		if row.Company == "" || row.Date == "" {
			log.Warnf("dropping market data row %d: missing company or date", i+1)
			continue
		}
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			log.Warnf("dropping market data row %d: bad date %q", i+1, row.Date)
			continue
		}
		marketCap, err := decimal.NewFromString(row.MarketCap)
		if err != nil {
			log.Warnf("dropping market data row %d (%s): bad market cap %q", i+1, row.Company, row.MarketCap)
			continue
		}
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			log.Warnf("dropping market data row %d (%s): bad price %q", i+1, row.Company, row.Price)
			continue
		}

		key := date.Format(time.DateOnly)
		handler.recordsByDate[key] = append(handler.recordsByDate[key], domain.StockRecord{
			Company:   row.Company,
			MarketCap: marketCap,
			Price:     price,
		})
	}

	return handler, nil
}

func (h csvMarketDataRepositoryHandler) GetOnDay(date time.Time) ([]domain.StockRecord, error) {
	records, ok := h.recordsByDate[date.Format(time.DateOnly)]
	if !ok {
		return nil, fmt.Errorf("no market data for %s", date.Format(time.DateOnly))
	}
	return records, nil
}

func (h csvMarketDataRepositoryHandler) Dates() []time.Time {
	dates := []time.Time{}
	for key := range h.recordsByDate {
		date, err := time.Parse(time.DateOnly, key)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
