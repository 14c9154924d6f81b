package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayrollExpense struct {
	ID            uint            `gorm:"primaryKey"`
	EmployeeName  string          `gorm:"size:100;not null;index"`
	Position      string          `gorm:"size:100;index"` // empty = unassigned
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	PaymentDate   time.Time       `gorm:"index;not null"`
	PaymentMethod string          `gorm:"size:50"`
	HoursWorked   decimal.Decimal `gorm:"type:decimal(8,2);default:0"`
	HourlyRate    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Notes         string          `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveAmount falls back to hourly_rate * hours_worked when no amount
// was entered. A stored zero and a missing amount are not distinguished.
func (p *PayrollExpense) EffectiveAmount() decimal.Decimal {
	if p.Amount.IsZero() {
		return p.HourlyRate.Mul(p.HoursWorked)
	}
	return p.Amount
}
