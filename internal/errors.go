package internal

import "errors"

// Error kinds the pipeline distinguishes. Callers match with
// errors.Is; messages carry the offending record or parameter.
var (
	// ErrInvalidInput covers bad records and bad parameters:
	// non-positive market cap or price, an empty record set, a cutoff
	// outside (0, 1], or non-positive capital. The pipeline fails fast
	// and returns no partial result.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateUniverse covers a non-positive total market cap or
	// an empty included set. With the always-include-top-rank rule on,
	// the empty-set case should be unreachable and is asserted
	// defensively.
	ErrDegenerateUniverse = errors.New("degenerate universe")
)
