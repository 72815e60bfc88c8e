package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceCategory string

const (
	CategoryAsset     BalanceCategory = "Asset"
	CategoryLiability BalanceCategory = "Liability"
)

// AssetLiability is one balance-sheet line. Category is restricted to the
// two-value enumeration, backed by a database CHECK constraint.
type AssetLiability struct {
	ID          uint `gorm:"primaryKey"`
	CompanyID   uint `gorm:"index;not null"`
	Company     Company
	Category    BalanceCategory `gorm:"size:20;not null"`
	Subcategory string          `gorm:"size:50;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Equity struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company
	Category  string          `gorm:"size:50;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
