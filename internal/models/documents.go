package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "Pending"
	StatusPaid      PaymentStatus = "Paid"
	StatusUnpaid    PaymentStatus = "Unpaid"
	StatusConverted PaymentStatus = "Converted"
)

// LineItem is one ordered row of a transactional document. Documents share a
// single item table via a polymorphic owner reference.
type LineItem struct {
	ID           uint   `gorm:"primaryKey"`
	DocumentType string `gorm:"size:30;index:idx_line_items_document;not null"`
	DocumentID   uint   `gorm:"index:idx_line_items_document;not null"`
	Position     int    `gorm:"not null"`
	Description  string `gorm:"size:255;not null"`
	Rate         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity     int             `gorm:"not null;default:1"`
}

// Amount is rate * quantity for the row.
func (li LineItem) Amount() decimal.Decimal {
	return li.Rate.Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}

type Quote struct {
	ID             uint `gorm:"primaryKey"`
	CompanyID      uint `gorm:"index;not null"`
	Company        Company
	CustomerName   string          `gorm:"size:255;not null"`
	Items          []LineItem      `gorm:"polymorphic:Document"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ValidityPeriod time.Time       `gorm:"not null"`
	Status         PaymentStatus   `gorm:"size:20;not null;default:'Pending'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Invoice struct {
	ID            uint `gorm:"primaryKey"`
	CompanyID     uint `gorm:"index;not null"`
	Company       Company
	ClientName    string          `gorm:"size:255;not null"`
	Reference     string          `gorm:"size:64;uniqueIndex;not null"`
	Items         []LineItem      `gorm:"polymorphic:Document"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DueDate       time.Time       `gorm:"not null"`
	Status        PaymentStatus   `gorm:"size:20;not null;default:'Pending'"`
	QuoteID       *uint           `gorm:"uniqueIndex"` // set when converted from a quote; at most one invoice per quote
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PurchaseOrder struct {
	ID              uint `gorm:"primaryKey"`
	CompanyID       uint `gorm:"index;not null"`
	Company         Company
	SupplierName    string          `gorm:"size:255;not null"`
	Items           []LineItem      `gorm:"polymorphic:Document"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingAddress string          `gorm:"size:255;not null"`
	OrderDate       time.Time       `gorm:"not null"`
	Status          PaymentStatus   `gorm:"size:20;not null;default:'Pending'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Bill struct {
	ID              uint `gorm:"primaryKey"`
	CompanyID       uint `gorm:"index;not null"`
	Company         Company
	VendorName      string          `gorm:"size:255;not null"`
	Items           []LineItem      `gorm:"polymorphic:Document"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DueDate         time.Time       `gorm:"not null"`
	Status          PaymentStatus   `gorm:"size:20;not null;default:'Unpaid'"`
	PurchaseOrderID *uint           `gorm:"uniqueIndex"` // set when converted from a purchase order
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
