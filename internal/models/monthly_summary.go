package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Breakdown - category/position -> sum, stored as a jsonb column
type Breakdown map[string]decimal.Decimal

func (b Breakdown) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	out, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(out), nil
}

func (b *Breakdown) Scan(value any) error {
	if value == nil {
		*b = Breakdown{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("breakdown: unsupported column type %T", value)
	}
	if len(raw) == 0 {
		*b = Breakdown{}
		return nil
	}
	return json.Unmarshal(raw, b)
}

// MonthlySummary - denormalized per-(year, month) aggregate over the three
// financial ledgers. Each column group is owned by exactly one aggregator
// (sales / operating / payroll) and is only ever written by that aggregator.
// Rows are created lazily on the first touching write and never deleted;
// deleting the last ledger record of a month recomputes the group to zero.
type MonthlySummary struct {
	ID    uint `gorm:"primaryKey"`
	Year  int  `gorm:"not null;uniqueIndex:idx_summary_period,priority:1"`
	Month int  `gorm:"not null;uniqueIndex:idx_summary_period,priority:2"` // 1-12

	// Sales group
	TotalSales     decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	CashSales      decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	CardSales      decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	PosTotal       decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	CashCounted    decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	CashDifference decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	ExpensesPaid   decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	CashDeposit    decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	DaysRecorded   int             `gorm:"default:0"`

	// Operating expense group
	OperatingExpenses         decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	OperatingExpenseBreakdown Breakdown       `gorm:"type:jsonb;default:'{}'"`

	// Payroll group
	PayrollExpenses         decimal.Decimal `gorm:"type:decimal(14,2);default:0"`
	PayrollExpenseBreakdown Breakdown       `gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
