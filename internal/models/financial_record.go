package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRecord is a single dated ledger entry. Debit and credit are
// non-negative; the income/expense tags decide which statements it feeds.
type FinancialRecord struct {
	ID            uint `gorm:"primaryKey"`
	CompanyID     uint `gorm:"index;not null"`
	Company       Company
	Date          time.Time       `gorm:"index;not null"` // day granularity
	Description   string          `gorm:"size:255;not null"`
	Debit         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Credit        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TypeOfExpense *string         `gorm:"size:50"` // "COGS", "rent", ...
	TypeOfIncome  *string         `gorm:"size:50"` // "sales", "export", "gst_free", "payg_income", ...
	GSTPaid       decimal.Decimal `gorm:"column:gst_paid;type:numeric(12,2);not null;default:0"`
	GSTReceived   decimal.Decimal `gorm:"column:gst_received;type:numeric(12,2);not null;default:0"`
	InvoiceRef    string          `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
