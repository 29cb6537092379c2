package internal

import (
	"capindex/internal/domain"
	"capindex/internal/logger"
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// weightSumTolerance is the relative drift we accept between the sum
// of computed weights and 1.0 before flagging the snapshot.
const weightSumTolerance = 1e-9

type SnapshotOptions struct {
	// Cutoff is the cumulative-weight threshold in (0, 1] that defines
	// universe membership.
	Cutoff float64

	// AlwaysIncludeTopRank keeps the largest company in the universe
	// even when its own weight exceeds the cutoff. The naive
	// cumulative rule produces an empty universe in that case, so this
	// defaults on; turning it off reproduces the naive rule.
	AlwaysIncludeTopRank bool
}

func DefaultSnapshotOptions(cutoff float64) SnapshotOptions {
	return SnapshotOptions{
		Cutoff:               cutoff,
		AlwaysIncludeTopRank: true,
	}
}

// BuildSnapshot ranks one date's records by market cap, weights them,
// and annotates each with its cumulative weight and universe
// membership. A company is included iff its cumulative weight is within
// the cutoff, subject to the top-rank exception above.
func BuildSnapshot(ctx context.Context, date time.Time, records []domain.StockRecord, opts SnapshotOptions) (*domain.Snapshot, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records for %s", ErrInvalidInput, date.Format(time.DateOnly))
	}
	if opts.Cutoff <= 0 || opts.Cutoff > 1 {
		return nil, fmt.Errorf("%w: cutoff must be in (0, 1], got %f", ErrInvalidInput, opts.Cutoff)
	}

	seen := map[string]bool{}
	totalMarketCap := decimal.Zero
	for _, r := range records {
		if r.MarketCap.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: non-positive market cap %s for %s", ErrInvalidInput, r.MarketCap.String(), r.Company)
		}
		if r.Price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: non-positive price %s for %s", ErrInvalidInput, r.Price.String(), r.Company)
		}
		if seen[r.Company] {
			return nil, fmt.Errorf("%w: duplicate record for %s", ErrInvalidInput, r.Company)
		}
		seen[r.Company] = true
		totalMarketCap = totalMarketCap.Add(r.MarketCap)
	}
	if totalMarketCap.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total market cap %s", ErrDegenerateUniverse, totalMarketCap.String())
	}

	sorted := make([]domain.StockRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		c := sorted[i].MarketCap.Cmp(sorted[j].MarketCap)
		if c != 0 {
			return c > 0
		}
		// deterministic order under equal caps
		return sorted[i].Company < sorted[j].Company
	})

	snapshot := &domain.Snapshot{
		Date:           date,
		Cutoff:         opts.Cutoff,
		TotalMarketCap: totalMarketCap,
		Entries:        make([]domain.SnapshotEntry, 0, len(sorted)),
	}

	weightSum := 0.0
	cumulative := 0.0
	for i, r := range sorted {
		weight := r.MarketCap.Div(totalMarketCap).InexactFloat64()
		weightSum += weight
		cumulative += weight

		included := cumulative <= opts.Cutoff
		if i == 0 && !included && opts.AlwaysIncludeTopRank {
			included = true
		}

		snapshot.Entries = append(snapshot.Entries, domain.SnapshotEntry{
			Company:          r.Company,
			MarketCap:        r.MarketCap,
			Price:            r.Price,
			Weight:           weight,
			CumulativeWeight: cumulative,
			Included:         included,
		})
	}

	if math.Abs(weightSum-1) > weightSumTolerance {
		logger.FromContext(ctx).Warnf(
			"snapshot %s: weights sum to %.12f, drift exceeds tolerance",
			date.Format(time.DateOnly), weightSum,
		)
	}

	if len(snapshot.Included()) == 0 {
		return nil, fmt.Errorf("%w: no company within cutoff %f on %s", ErrDegenerateUniverse, opts.Cutoff, date.Format(time.DateOnly))
	}

	return snapshot, nil
}
