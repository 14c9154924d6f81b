package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound - the mutation target does not exist; the transaction is
	// rolled back before any aggregation is attempted.
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable - a transaction could not be opened at all.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// AggregationError wraps a failure in the recompute-and-merge step. The
// whole mutation, ledger write included, is rolled back when this occurs.
type AggregationError struct {
	Group  Group
	Period Period
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed for group %s period %s: %v", e.Group, e.Period, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
