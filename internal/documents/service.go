package documents

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smbooks-backend/internal/models"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrAlreadyConverted = errors.New("document already converted")
)

// Payment terms applied when a document is created by conversion.
const (
	invoiceTermsDays = 14
	billTermsDays    = 30
)

// Service owns the transactional document lifecycle. Conversions are
// all-or-nothing: status transition and new document commit together or not
// at all, so a conversion race leaves at most one derived document.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// TotalFromItems recomputes a document total from its line items, so stored
// totals are always reproducible from the rows.
func TotalFromItems(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total.Round(2)
}

func copyItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for i, item := range items {
		out = append(out, models.LineItem{
			Position:    i,
			Description: item.Description,
			Rate:        item.Rate,
			Quantity:    item.Quantity,
		})
	}
	return out
}

// ConvertQuoteToInvoice turns a pending quote into a pending invoice.
// Irreversible; a second call on the same quote fails with
// ErrAlreadyConverted and the invoices.quote_id unique index backstops any
// race the status check misses.
func (s *Service) ConvertQuoteToInvoice(quoteID uint, now time.Time) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Preload("Items").First(&quote, "id = ?", quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quote %d", ErrNotFound, quoteID)
			}
			return err
		}
		if quote.Status == models.StatusConverted {
			return fmt.Errorf("%w: quote %d", ErrAlreadyConverted, quoteID)
		}

		invoice = models.Invoice{
			CompanyID:   quote.CompanyID,
			ClientName:  quote.CustomerName,
			Reference:   uuid.NewString(),
			Items:       copyItems(quote.Items),
			TotalAmount: quote.TotalAmount,
			DueDate:     now.AddDate(0, 0, invoiceTermsDays),
			Status:      models.StatusPending,
			QuoteID:     &quote.ID,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		return tx.Model(&quote).Update("status", models.StatusConverted).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ConvertPurchaseOrderToBill turns a pending purchase order into an unpaid
// bill with vendor = supplier and due date = order date + 30 days.
func (s *Service) ConvertPurchaseOrderToBill(orderID uint) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.PurchaseOrder
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: purchase order %d", ErrNotFound, orderID)
			}
			return err
		}
		if order.Status != models.StatusPending {
			return fmt.Errorf("%w: purchase order %d", ErrAlreadyConverted, orderID)
		}

		bill = models.Bill{
			CompanyID:       order.CompanyID,
			VendorName:      order.SupplierName,
			Items:           copyItems(order.Items),
			TotalAmount:     order.TotalAmount,
			DueDate:         order.OrderDate.AddDate(0, 0, billTermsDays),
			Status:          models.StatusUnpaid,
			PurchaseOrderID: &order.ID,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}
		return tx.Model(&order).Update("status", models.StatusConverted).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *Service) MarkInvoicePaid(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, id)
		}
		return nil, err
	}
	if err := s.db.Model(&invoice).Update("status", models.StatusPaid).Error; err != nil {
		return nil, err
	}
	invoice.Status = models.StatusPaid
	return &invoice, nil
}

func (s *Service) MarkBillPaid(id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %d", ErrNotFound, id)
		}
		return nil, err
	}
	if err := s.db.Model(&bill).Update("status", models.StatusPaid).Error; err != nil {
		return nil, err
	}
	bill.Status = models.StatusPaid
	return &bill, nil
}

// DeleteInvoice hard-deletes an invoice and its line items together.
func (s *Service) DeleteInvoice(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Where("document_type = ? AND document_id = ?", "invoices", id).
			Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}

// DeleteBill hard-deletes a bill and its line items together.
func (s *Service) DeleteBill(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bill %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Where("document_type = ? AND document_id = ?", "bills", id).
			Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bill).Error
	})
}
