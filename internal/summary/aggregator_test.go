package summary

import (
	"encoding/json"
	"testing"
	"time"

	"backoffice-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestAggregatorsZeroDataDefault(t *testing.T) {
	db := newTestDB(t)
	p := Period{Year: 2024, Month: 5}

	cols, err := NewSalesAggregator().ComputeGroup(db, p)
	require.NoError(t, err)
	assert.True(t, cols["total_sales"].(decimal.Decimal).IsZero())
	assert.True(t, cols["cash_deposit"].(decimal.Decimal).IsZero())
	assert.Equal(t, 0, cols["days_recorded"])

	cols, err = NewOperatingAggregator().ComputeGroup(db, p)
	require.NoError(t, err)
	assert.True(t, cols["operating_expenses"].(decimal.Decimal).IsZero())
	assert.Empty(t, cols["operating_expense_breakdown"].(models.Breakdown))

	cols, err = NewPayrollAggregator().ComputeGroup(db, p)
	require.NoError(t, err)
	assert.True(t, cols["payroll_expenses"].(decimal.Decimal).IsZero())
	assert.Empty(t, cols["payroll_expense_breakdown"].(models.Breakdown))
}

func TestSalesAggregatorSums(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.SalesLog{
		LogDate: date(2024, 7, 10), CashSales: dec("100"), CardSales: dec("50"),
		PosTotal: dec("150"), CashCounted: dec("95"), CashDifference: dec("-5"),
		ExpensesPaid: dec("10"), CashDeposit: dec("80"),
	}).Error)
	require.NoError(t, db.Create(&models.SalesLog{
		LogDate: date(2024, 7, 11), CardSales: dec("200"),
	}).Error)
	// outside the period, must not count
	require.NoError(t, db.Create(&models.SalesLog{
		LogDate: date(2024, 8, 1), CashSales: dec("999"),
	}).Error)

	cols, err := NewSalesAggregator().ComputeGroup(db, Period{2024, 7})
	require.NoError(t, err)
	assert.True(t, cols["total_sales"].(decimal.Decimal).Equal(dec("350")))
	assert.True(t, cols["cash_sales"].(decimal.Decimal).Equal(dec("100")))
	assert.True(t, cols["card_sales"].(decimal.Decimal).Equal(dec("250")))
	assert.True(t, cols["cash_difference"].(decimal.Decimal).Equal(dec("-5")))
	assert.Equal(t, 2, cols["days_recorded"])
}

func TestOperatingAggregatorBreakdown(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.OperatingExpense{
		Category: "Produce", Amount: dec("120"), ExpenseDate: date(2024, 3, 3),
	}).Error)
	require.NoError(t, db.Create(&models.OperatingExpense{
		Category: "Produce", Amount: dec("30"), ExpenseDate: date(2024, 3, 20),
	}).Error)
	require.NoError(t, db.Create(&models.OperatingExpense{
		Amount: dec("15"), ExpenseDate: date(2024, 3, 21),
	}).Error)

	cols, err := NewOperatingAggregator().ComputeGroup(db, Period{2024, 3})
	require.NoError(t, err)
	assert.True(t, cols["operating_expenses"].(decimal.Decimal).Equal(dec("165")))

	breakdown := cols["operating_expense_breakdown"].(models.Breakdown)
	assert.True(t, breakdown["Produce"].Equal(dec("150")))
	assert.True(t, breakdown[KeyUncategorized].Equal(dec("15")))
}

func TestPayrollAggregatorDerivesAmount(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.PayrollExpense{
		EmployeeName: "Ada", Position: "Cook", Amount: dec("500"), PaymentDate: date(2024, 1, 15),
	}).Error)
	// no amount entered: derived from rate * hours
	require.NoError(t, db.Create(&models.PayrollExpense{
		EmployeeName: "Ben", PaymentDate: date(2024, 1, 20),
		HourlyRate: dec("12.50"), HoursWorked: dec("40"),
	}).Error)

	cols, err := NewPayrollAggregator().ComputeGroup(db, Period{2024, 1})
	require.NoError(t, err)
	assert.True(t, cols["payroll_expenses"].(decimal.Decimal).Equal(dec("1000")))

	breakdown := cols["payroll_expense_breakdown"].(models.Breakdown)
	assert.True(t, breakdown["Cook"].Equal(dec("500")))
	assert.True(t, breakdown[KeyUnassigned].Equal(dec("500")))
}

func TestAggregatorIdempotentRecompute(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.OperatingExpense{
		Category: "Rent", Amount: dec("2400"), ExpenseDate: date(2024, 6, 1),
	}).Error)

	agg := NewOperatingAggregator()
	first, err := agg.ComputeGroup(db, Period{2024, 6})
	require.NoError(t, err)
	second, err := agg.ComputeGroup(db, Period{2024, 6})
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}
