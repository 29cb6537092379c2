package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Action classifies what the rebalance does with a company. A company
// gets exactly one Action - modelling this as an enum rather than a set
// of booleans makes a BUY-and-SELL state unrepresentable.
type Action string

const (
	ActionAdjust Action = "ADJUST"
	ActionBuy    Action = "BUY"
	ActionSell   Action = "SELL"
	ActionIgnore Action = "IGNORE"
)

// UniverseDiff partitions the companies seen across two dates into
// disjoint action sets.
type UniverseDiff struct {
	Actions map[string]Action
	// Delisted marks companies the old portfolio holds that are absent
	// from the new date's records entirely. They are sold like any
	// other exiting company, but reporting needs to tell them apart
	// from companies that were measured and fell below the cutoff.
	Delisted map[string]bool
}

// Companies returns the members of one action set in ascending order.
func (d UniverseDiff) Companies(action Action) []string {
	companies := []string{}
	for company, a := range d.Actions {
		if a == action {
			companies = append(companies, company)
		}
	}
	sort.Strings(companies)
	return companies
}

// Trade is the signed share and cash delta for one company. Positive
// values are buy-direction flow, negative sell-direction.
type Trade struct {
	Company       string
	Action        Action
	SharesOld     decimal.Decimal
	SharesNew     decimal.Decimal
	AllocationOld decimal.Decimal
	AllocationNew decimal.Decimal
	// Price is the new-date price where the company was observed on
	// the new date, otherwise the last price it was held at.
	Price       decimal.Decimal
	TradeShares decimal.Decimal
	TradeValue  decimal.Decimal
}
