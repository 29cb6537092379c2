package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type Portfolio struct {
	Date    time.Time
	Capital decimal.Decimal
	// Positions holds one entry per included company. Excluded
	// companies get no Position at all.
	Positions map[string]*Position
	// CashRemainder is capital minus the sum of allocations. Because
	// weights are not renormalized against the included set, the cash
	// matching the excluded long tail stays uninvested.
	CashRemainder decimal.Decimal
}

func NewPortfolio(date time.Time, capital decimal.Decimal) *Portfolio {
	return &Portfolio{
		Date:          date,
		Capital:       capital,
		Positions:     map[string]*Position{},
		CashRemainder: capital,
	}
}

// HeldCompanies returns the membership of the portfolio in ascending
// company order.
func (p Portfolio) HeldCompanies() []string {
	companies := []string{}
	for company := range p.Positions {
		companies = append(companies, company)
	}
	sort.Strings(companies)
	return companies
}

// TotalAllocated sums the allocation of every position.
func (p Portfolio) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, position := range p.Positions {
		total = total.Add(position.Allocation)
	}
	return total
}

// MarketValue prices the held shares against the supplied price map.
func (p Portfolio) MarketValue(priceMap map[string]decimal.Decimal) (decimal.Decimal, error) {
	totalValue := p.CashRemainder
	for company, position := range p.Positions {
		price, ok := priceMap[company]
		if !ok {
			return decimal.Zero, fmt.Errorf("cannot compute portfolio market value: price map missing %s", company)
		}
		totalValue = totalValue.Add(position.Shares.Mul(price))
	}
	return totalValue, nil
}

func (p Portfolio) DeepCopy() *Portfolio {
	newPortfolio := &Portfolio{
		Date:          p.Date,
		Capital:       p.Capital,
		Positions:     map[string]*Position{},
		CashRemainder: p.CashRemainder,
	}
	for company, position := range p.Positions {
		newPortfolio.Positions[company] = position.DeepCopy()
	}
	return newPortfolio
}

type Position struct {
	Company      string
	Shares       decimal.Decimal
	Allocation   decimal.Decimal
	PriceAtBuild decimal.Decimal
}

func (p Position) DeepCopy() *Position {
	return &Position{
		Company:      p.Company,
		Shares:       p.Shares,
		Allocation:   p.Allocation,
		PriceAtBuild: p.PriceAtBuild,
	}
}
