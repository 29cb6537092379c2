package internal

import (
	"capindex/internal/domain"
	"capindex/internal/logger"
	"context"
	"time"
)

// ClassifyUniverse partitions every company seen across the two dates
// into exactly one action set:
//
//	ADJUST  held before, still in the new universe
//	SELL    held before, excluded or unobserved on the new date
//	BUY     not held before, in the new universe
//	IGNORE  in neither universe
//
// Absence from the new date's records counts as exclusion. A held
// company that vanishes entirely is a forced SELL and is additionally
// marked delisted, since that is a different situation from being
// measured and falling below the cutoff.
func ClassifyUniverse(ctx context.Context, old *domain.Portfolio, next *domain.Snapshot) domain.UniverseDiff {
	diff := domain.UniverseDiff{
		Actions:  map[string]domain.Action{},
		Delisted: map[string]bool{},
	}

	oldIn := map[string]bool{}
	for company := range old.Positions {
		oldIn[company] = true
	}

	for _, entry := range next.Entries {
		switch {
		case entry.Included && oldIn[entry.Company]:
			diff.Actions[entry.Company] = domain.ActionAdjust
		case entry.Included:
			diff.Actions[entry.Company] = domain.ActionBuy
		case oldIn[entry.Company]:
			diff.Actions[entry.Company] = domain.ActionSell
		default:
			diff.Actions[entry.Company] = domain.ActionIgnore
		}
	}

	for company := range oldIn {
		if _, observed := next.Lookup(company); !observed {
			diff.Actions[company] = domain.ActionSell
			diff.Delisted[company] = true
			logger.FromContext(ctx).Warnf(
				"company %s held on %s is absent from %s records, treating as excluded",
				company,
				old.Date.Format(time.DateOnly),
				next.Date.Format(time.DateOnly),
			)
		}
	}

	return diff
}
