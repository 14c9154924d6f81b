package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	SortOrder int    `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID            uint `gorm:"primaryKey"`
	CategoryID    *uint
	Category      *ProductCategory
	Name          string          `gorm:"size:150;not null;index"`
	Unit          string          `gorm:"size:20"` // kg, adet, lt...
	Price         decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(12,3);default:0"`
	MinStock      decimal.Decimal `gorm:"type:decimal(12,3);default:0"`
	Active        bool            `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
