package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LedgerWrite performs a ledger mutation inside the coordinator's
// transaction and reports the affected record dates: one date for a create,
// delete or same-month edit, two for an edit that moves the record into a
// different month (old date and new date, so the old month is recomputed
// without the record and the new month with it).
type LedgerWrite func(tx *gorm.DB) ([]time.Time, error)

// Coordinator is the single synchronization point for ledger mutations.
// Every create/update/delete on any of the three ledgers goes through
// Mutate, which wraps the ledger write and the recompute-and-merge of every
// affected period in one transaction. Either everything commits or the
// ledger write is undone with it; the ledgers and the summary table never
// diverge.
//
// Concurrent mutations against the same ledger and period are serialized
// only by the store's isolation level; last writer wins on that group's
// columns. Cross-group interleavings are safe because each merge touches
// only its own columns.
type Coordinator struct {
	db    *gorm.DB
	store Store
	aggs  map[Group]GroupAggregator
	log   *logrus.Logger
}

func NewCoordinator(db *gorm.DB, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		db: db,
		aggs: map[Group]GroupAggregator{
			GroupSales:     NewSalesAggregator(),
			GroupOperating: NewOperatingAggregator(),
			GroupPayroll:   NewPayrollAggregator(),
		},
		log: logger,
	}
}

func (c *Coordinator) Mutate(ctx context.Context, group Group, write LedgerWrite) error {
	agg, ok := c.aggs[group]
	if !ok {
		return fmt.Errorf("no aggregator registered for group %q", group)
	}

	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	dates, err := write(tx)
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, p := range PeriodsOf(dates) {
		cols, err := agg.ComputeGroup(tx, p)
		if err != nil {
			tx.Rollback()
			return &AggregationError{Group: group, Period: p, Err: err}
		}
		if err := c.store.MergeGroup(tx, p, group, cols); err != nil {
			tx.Rollback()
			return &AggregationError{Group: group, Period: p, Err: err}
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.log.WithFields(logrus.Fields{
			"module": "summary",
			"group":  group,
		}).Error("commit failed: " + err.Error())
		return &AggregationError{Group: group, Err: err}
	}
	return nil
}

// Recompute rebuilds one group's columns for a period without a ledger
// write. Used by the repair endpoint after manual database surgery.
func (c *Coordinator) Recompute(ctx context.Context, group Group, p Period) error {
	return c.Mutate(ctx, group, func(tx *gorm.DB) ([]time.Time, error) {
		from, _ := p.Bounds()
		return []time.Time{from}, nil
	})
}
