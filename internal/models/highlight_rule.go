package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type HighlightField string

const (
	HighlightFieldStock    HighlightField = "stock_quantity"
	HighlightFieldMinStock HighlightField = "min_stock_ratio" // stock / min_stock
	HighlightFieldPrice    HighlightField = "price"
)

type HighlightOperator string

const (
	HighlightOpLt  HighlightOperator = "lt"
	HighlightOpLte HighlightOperator = "lte"
	HighlightOpGt  HighlightOperator = "gt"
	HighlightOpGte HighlightOperator = "gte"
	HighlightOpEq  HighlightOperator = "eq"
)

// HighlightRule - colors a product row in stock listings when its field
// matches the threshold. Rules are checked in priority order, first match wins.
type HighlightRule struct {
	ID        uint              `gorm:"primaryKey"`
	Name      string            `gorm:"size:100;not null"`
	Field     HighlightField    `gorm:"size:30;not null"`
	Operator  HighlightOperator `gorm:"size:10;not null"`
	Threshold decimal.Decimal   `gorm:"type:decimal(12,3);not null"`
	Color     string            `gorm:"size:20;not null"` // hex or named css color
	Priority  int               `gorm:"default:0;index"`
	Active    bool              `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
