package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog - before/after trail for financial ledger mutations
type AuditLog struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index"`
	UserName    string      `gorm:"size:100"`
	EntityType  string      `gorm:"size:50;index;not null"` // sales_log, operating_expense, payroll_expense
	EntityID    uint        `gorm:"index"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:500"`
	BeforeData  string      `gorm:"type:jsonb"`
	AfterData   string      `gorm:"type:jsonb"`
	CreatedAt   time.Time   `gorm:"index"`
}
