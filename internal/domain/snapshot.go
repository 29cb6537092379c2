package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord is a single company's market observation on one date.
// Records are immutable once built - the snapshot builder copies what
// it needs and never writes back.
type StockRecord struct {
	Company   string
	MarketCap decimal.Decimal
	Price     decimal.Decimal
}

// SnapshotEntry is a StockRecord after weighting and cutoff annotation.
type SnapshotEntry struct {
	Company          string
	MarketCap        decimal.Decimal
	Price            decimal.Decimal
	Weight           float64
	CumulativeWeight float64
	Included         bool
}

// Snapshot is the ranked, weighted view of every company observed on a
// single date. Entries are sorted descending by market cap, ties broken
// ascending by company, so two builds from the same records are
// byte-identical.
type Snapshot struct {
	Date           time.Time
	Cutoff         float64
	TotalMarketCap decimal.Decimal
	Entries        []SnapshotEntry
}

// Included returns the entries that made the cutoff, in rank order.
func (s Snapshot) Included() []SnapshotEntry {
	out := []SnapshotEntry{}
	for _, e := range s.Entries {
		if e.Included {
			out = append(out, e)
		}
	}
	return out
}

// Excluded returns the entries observed on the date but left out of the
// universe, in rank order.
func (s Snapshot) Excluded() []SnapshotEntry {
	out := []SnapshotEntry{}
	for _, e := range s.Entries {
		if !e.Included {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds the entry for a company. The second return distinguishes
// "observed on this date" from plain absence - downstream reporting
// needs to tell a delisted company from one that fell below the cutoff.
func (s Snapshot) Lookup(company string) (*SnapshotEntry, bool) {
	for i := range s.Entries {
		if s.Entries[i].Company == company {
			return &s.Entries[i], true
		}
	}
	return nil, false
}
