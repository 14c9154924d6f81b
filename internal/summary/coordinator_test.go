package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backoffice-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func summaryRow(t *testing.T, db *gorm.DB, p Period) models.MonthlySummary {
	t.Helper()
	var row models.MonthlySummary
	require.NoError(t, db.First(&row, "year = ? AND month = ?", p.Year, p.Month).Error)
	return row
}

func createExpense(t *testing.T, coord *Coordinator, rec *models.OperatingExpense) {
	t.Helper()
	require.NoError(t, coord.Mutate(context.Background(), GroupOperating, func(tx *gorm.DB) ([]time.Time, error) {
		if err := tx.Create(rec).Error; err != nil {
			return nil, err
		}
		return []time.Time{rec.ExpenseDate}, nil
	}))
}

func TestOperatingExpenseLifecycle(t *testing.T) {
	coord, db := newTestCoordinator(t)
	p := Period{Year: 2024, Month: 3}

	first := models.OperatingExpense{Category: "Produce", Amount: dec("120"), ExpenseDate: date(2024, 3, 3)}
	createExpense(t, coord, &first)

	row := summaryRow(t, db, p)
	assert.True(t, row.OperatingExpenses.Equal(dec("120")))
	assert.True(t, row.OperatingExpenseBreakdown["Produce"].Equal(dec("120")))

	second := models.OperatingExpense{Category: "Produce", Amount: dec("30"), ExpenseDate: date(2024, 3, 14)}
	createExpense(t, coord, &second)

	row = summaryRow(t, db, p)
	assert.True(t, row.OperatingExpenses.Equal(dec("150")))
	assert.True(t, row.OperatingExpenseBreakdown["Produce"].Equal(dec("150")))

	// deleting the first record drops the summary back to 30
	require.NoError(t, coord.Mutate(context.Background(), GroupOperating, func(tx *gorm.DB) ([]time.Time, error) {
		if err := tx.Delete(&models.OperatingExpense{}, "id = ?", first.ID).Error; err != nil {
			return nil, err
		}
		return []time.Time{first.ExpenseDate}, nil
	}))

	row = summaryRow(t, db, p)
	assert.True(t, row.OperatingExpenses.Equal(dec("30")))
	assert.True(t, row.OperatingExpenseBreakdown["Produce"].Equal(dec("30")))
}

func TestSalesUpsertAccumulatesDays(t *testing.T) {
	coord, db := newTestCoordinator(t)
	p := Period{Year: 2024, Month: 7}

	upsert := func(rec models.SalesLog) {
		require.NoError(t, coord.Mutate(context.Background(), GroupSales, func(tx *gorm.DB) ([]time.Time, error) {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "log_date"}},
				DoUpdates: clause.AssignmentColumns([]string{"cash_sales", "card_sales", "updated_at"}),
			}).Create(&rec).Error; err != nil {
				return nil, err
			}
			return []time.Time{rec.LogDate}, nil
		}))
	}

	upsert(models.SalesLog{LogDate: date(2024, 7, 10), CashSales: dec("100"), CardSales: dec("50")})
	row := summaryRow(t, db, p)
	assert.True(t, row.TotalSales.Equal(dec("150")))
	assert.Equal(t, 1, row.DaysRecorded)

	upsert(models.SalesLog{LogDate: date(2024, 7, 11), CashSales: dec("0"), CardSales: dec("200")})
	row = summaryRow(t, db, p)
	assert.True(t, row.TotalSales.Equal(dec("350")))
	assert.Equal(t, 2, row.DaysRecorded)

	// re-upserting an existing date replaces, it does not add a day
	upsert(models.SalesLog{LogDate: date(2024, 7, 11), CashSales: dec("0"), CardSales: dec("180")})
	row = summaryRow(t, db, p)
	assert.True(t, row.TotalSales.Equal(dec("330")))
	assert.Equal(t, 2, row.DaysRecorded)
}

func TestCrossPeriodMoveRecomputesBothMonths(t *testing.T) {
	coord, db := newTestCoordinator(t)

	rec := models.PayrollExpense{EmployeeName: "Ada", Position: "Cook", Amount: dec("500"), PaymentDate: date(2024, 1, 15)}
	require.NoError(t, coord.Mutate(context.Background(), GroupPayroll, func(tx *gorm.DB) ([]time.Time, error) {
		if err := tx.Create(&rec).Error; err != nil {
			return nil, err
		}
		return []time.Time{rec.PaymentDate}, nil
	}))

	jan := summaryRow(t, db, Period{2024, 1})
	assert.True(t, jan.PayrollExpenses.Equal(dec("500")))

	// move the payment into February: both months recomputed in one commit
	require.NoError(t, coord.Mutate(context.Background(), GroupPayroll, func(tx *gorm.DB) ([]time.Time, error) {
		oldDate := rec.PaymentDate
		rec.PaymentDate = date(2024, 2, 15)
		if err := tx.Save(&rec).Error; err != nil {
			return nil, err
		}
		return []time.Time{oldDate, rec.PaymentDate}, nil
	}))

	jan = summaryRow(t, db, Period{2024, 1})
	assert.True(t, jan.PayrollExpenses.IsZero(), "old month keeps no stale contribution")
	assert.Empty(t, jan.PayrollExpenseBreakdown)

	feb := summaryRow(t, db, Period{2024, 2})
	assert.True(t, feb.PayrollExpenses.Equal(dec("500")))
	assert.True(t, feb.PayrollExpenseBreakdown["Cook"].Equal(dec("500")))
}

func TestSummaryRowSurvivesEmptyPeriod(t *testing.T) {
	coord, db := newTestCoordinator(t)
	p := Period{Year: 2024, Month: 4}

	rec := models.OperatingExpense{Category: "Rent", Amount: dec("2400"), ExpenseDate: date(2024, 4, 1)}
	createExpense(t, coord, &rec)

	require.NoError(t, coord.Mutate(context.Background(), GroupOperating, func(tx *gorm.DB) ([]time.Time, error) {
		if err := tx.Delete(&models.OperatingExpense{}, "id = ?", rec.ID).Error; err != nil {
			return nil, err
		}
		return []time.Time{rec.ExpenseDate}, nil
	}))

	// the row is recomputed to zero, never garbage-collected
	row := summaryRow(t, db, p)
	assert.True(t, row.OperatingExpenses.IsZero())
	assert.Empty(t, row.OperatingExpenseBreakdown)
}

type failingAggregator struct{}

func (failingAggregator) Group() Group { return GroupOperating }

func (failingAggregator) ComputeGroup(tx *gorm.DB, p Period) (GroupColumns, error) {
	return nil, errors.New("boom")
}

func TestRollbackOnAggregationFailure(t *testing.T) {
	coord, db := newTestCoordinator(t)
	coord.aggs[GroupOperating] = failingAggregator{}

	rec := models.OperatingExpense{Category: "Produce", Amount: dec("120"), ExpenseDate: date(2024, 3, 3)}
	err := coord.Mutate(context.Background(), GroupOperating, func(tx *gorm.DB) ([]time.Time, error) {
		if err := tx.Create(&rec).Error; err != nil {
			return nil, err
		}
		return []time.Time{rec.ExpenseDate}, nil
	})

	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, GroupOperating, aggErr.Group)

	// the ledger write from the same transaction must be gone
	var count int64
	db.Model(&models.OperatingExpense{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.MonthlySummary{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestNotFoundAbortsBeforeAggregation(t *testing.T) {
	coord, db := newTestCoordinator(t)

	err := coord.Mutate(context.Background(), GroupPayroll, func(tx *gorm.DB) ([]time.Time, error) {
		var rec models.PayrollExpense
		if err := tx.First(&rec, "id = ?", 42).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: payroll expense 42", ErrNotFound)
			}
			return nil, err
		}
		return []time.Time{rec.PaymentDate}, nil
	})

	require.ErrorIs(t, err, ErrNotFound)

	var count int64
	db.Model(&models.MonthlySummary{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMutateUnknownGroup(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	err := coord.Mutate(context.Background(), Group("bogus"), func(tx *gorm.DB) ([]time.Time, error) {
		return nil, nil
	})
	require.Error(t, err)
}
