package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord holds one pay run line for one employee.
// NetPay is always recomputed as gross - withholding - deductions on entry.
type PayrollRecord struct {
	ID              uint `gorm:"primaryKey"`
	CompanyID       uint `gorm:"index;not null"`
	Company         Company
	Date            time.Time       `gorm:"index;not null"`
	EmployeeName    string          `gorm:"size:100;not null"`
	GrossWages      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PAYGWithholding decimal.Decimal `gorm:"column:payg_withholding;type:numeric(12,2);not null;default:0"`
	Superannuation  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Deductions      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetPay          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
