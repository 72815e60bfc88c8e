package models

import "time"

type Company struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null;unique"`
	ABN           string `gorm:"column:abn;size:20"`
	TFN           string `gorm:"column:tfn;size:20"`
	ContactPerson string `gorm:"size:100"`
	Address       string `gorm:"size:255"`
	Email         string `gorm:"size:100"`
	Phone         string `gorm:"size:20"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	FinancialRecords []FinancialRecord
	PayrollRecords   []PayrollRecord
}
