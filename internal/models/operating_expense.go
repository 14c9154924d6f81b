package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OperatingExpense struct {
	ID            uint            `gorm:"primaryKey"`
	Category      string          `gorm:"size:100;index"` // empty = uncategorized
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpenseDate   time.Time       `gorm:"index;not null"`
	PaymentMethod string          `gorm:"size:50"`
	ReceiptRef    string          `gorm:"size:255"`
	Notes         string          `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
