package summary

import (
	"testing"

	"backoffice-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeGroupInsertsLazily(t *testing.T) {
	db := newTestDB(t)
	p := Period{Year: 2024, Month: 5}

	err := Store{}.MergeGroup(db, p, GroupOperating, GroupColumns{
		"operating_expenses":          dec("120"),
		"operating_expense_breakdown": models.Breakdown{"Produce": dec("120")},
	})
	require.NoError(t, err)

	var row models.MonthlySummary
	require.NoError(t, db.First(&row, "year = ? AND month = ?", p.Year, p.Month).Error)
	assert.True(t, row.OperatingExpenses.Equal(dec("120")))
	assert.True(t, row.OperatingExpenseBreakdown["Produce"].Equal(dec("120")))
	// other groups hold their schema defaults
	assert.True(t, row.TotalSales.IsZero())
	assert.True(t, row.PayrollExpenses.IsZero())
	assert.False(t, row.CreatedAt.IsZero())
}

func TestMergeGroupIsolation(t *testing.T) {
	db := newTestDB(t)
	p := Period{Year: 2024, Month: 5}

	require.NoError(t, Store{}.MergeGroup(db, p, GroupSales, GroupColumns{
		"total_sales":     dec("900"),
		"cash_sales":      dec("400"),
		"card_sales":      dec("500"),
		"pos_total":       dec("900"),
		"cash_counted":    dec("400"),
		"cash_difference": dec("0"),
		"expenses_paid":   dec("0"),
		"cash_deposit":    dec("350"),
		"days_recorded":   3,
	}))

	// a later operating merge must not disturb the sales columns
	require.NoError(t, Store{}.MergeGroup(db, p, GroupOperating, GroupColumns{
		"operating_expenses":          dec("75"),
		"operating_expense_breakdown": models.Breakdown{"Cleaning": dec("75")},
	}))

	var row models.MonthlySummary
	require.NoError(t, db.First(&row, "year = ? AND month = ?", p.Year, p.Month).Error)
	assert.True(t, row.TotalSales.Equal(dec("900")))
	assert.True(t, row.CashDeposit.Equal(dec("350")))
	assert.Equal(t, 3, row.DaysRecorded)
	assert.True(t, row.OperatingExpenses.Equal(dec("75")))

	// only one row per period
	var count int64
	db.Model(&models.MonthlySummary{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMergeGroupOverwritesOwnColumns(t *testing.T) {
	db := newTestDB(t)
	p := Period{Year: 2024, Month: 5}

	require.NoError(t, Store{}.MergeGroup(db, p, GroupPayroll, GroupColumns{
		"payroll_expenses":          dec("500"),
		"payroll_expense_breakdown": models.Breakdown{"Cook": dec("500")},
	}))
	require.NoError(t, Store{}.MergeGroup(db, p, GroupPayroll, GroupColumns{
		"payroll_expenses":          decimal.Zero,
		"payroll_expense_breakdown": models.Breakdown{},
	}))

	var row models.MonthlySummary
	require.NoError(t, db.First(&row, "year = ? AND month = ?", p.Year, p.Month).Error)
	assert.True(t, row.PayrollExpenses.IsZero())
	assert.Empty(t, row.PayrollExpenseBreakdown)
}

func TestMergeGroupRejectsForeignColumns(t *testing.T) {
	db := newTestDB(t)

	err := Store{}.MergeGroup(db, Period{2024, 5}, GroupOperating, GroupColumns{
		"total_sales": dec("1"), // owned by sales
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not owned")
}
