package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesLog - end-of-day cash log, one row per calendar date
type SalesLog struct {
	ID             uint            `gorm:"primaryKey"`
	LogDate        time.Time       `gorm:"uniqueIndex;not null"` // day granularity
	CashSales      decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	CardSales      decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	PosTotal       decimal.Decimal `gorm:"type:decimal(12,2);default:0"` // POS terminal report total
	CashCounted    decimal.Decimal `gorm:"type:decimal(12,2);default:0"` // counted at close
	CashDifference decimal.Decimal `gorm:"type:decimal(12,2);default:0"` // counted - expected
	ExpensesPaid   decimal.Decimal `gorm:"type:decimal(12,2);default:0"` // paid out of the till
	StartingCash   decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	CashDeposit    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	SalesNotes     string          `gorm:"size:500"`
	ExpenseNotes   string          `gorm:"size:500"`
	StaffNotes     string          `gorm:"size:500"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
