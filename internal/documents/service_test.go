package documents

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smbooks-backend/internal/models"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewService(gdb), mock
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalFromItems(t *testing.T) {
	items := []models.LineItem{
		{Description: "Consulting", Rate: d("150.00"), Quantity: 4},
		{Description: "Travel", Rate: d("82.50"), Quantity: 2},
	}
	assert.True(t, TotalFromItems(items).Equal(d("765.00")))
	assert.True(t, TotalFromItems(nil).IsZero())
}

func TestConvertQuoteToInvoice(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "quotes" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "customer_name", "total_amount", "status"}).
			AddRow(3, 1, "Acme Trading Pty Ltd", "765.00", string(models.StatusPending)))
	mock.ExpectQuery(`SELECT \* FROM "line_items" WHERE "line_items"\."document_type" = \$1 AND "line_items"\."document_id" = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_type", "document_id", "position", "description", "rate", "quantity"}).
			AddRow(10, "quotes", 3, 0, "Consulting", "150.00", 4).
			AddRow(11, "quotes", 3, 1, "Travel", "82.50", 2))
	mock.ExpectQuery(`INSERT INTO "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "line_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20).AddRow(21))
	mock.ExpectExec(`UPDATE "quotes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	invoice, err := svc.ConvertQuoteToInvoice(3, now)
	require.NoError(t, err)

	assert.Equal(t, "Acme Trading Pty Ltd", invoice.ClientName)
	assert.NotEmpty(t, invoice.Reference)
	assert.True(t, invoice.TotalAmount.Equal(d("765.00")))
	assert.Equal(t, models.StatusPending, invoice.Status)
	assert.Equal(t, now.AddDate(0, 0, 14), invoice.DueDate)
	require.NotNil(t, invoice.QuoteID)
	assert.Equal(t, uint(3), *invoice.QuoteID)
	require.Len(t, invoice.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertQuoteTwiceConflicts(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "quotes" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "customer_name", "total_amount", "status"}).
			AddRow(3, 1, "Acme Trading Pty Ltd", "765.00", string(models.StatusConverted)))
	mock.ExpectQuery(`SELECT \* FROM "line_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.ConvertQuoteToInvoice(3, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyConverted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertMissingQuoteIsNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "quotes" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.ConvertQuoteToInvoice(404, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertPurchaseOrderToBill(t *testing.T) {
	svc, mock := newMockService(t)

	orderDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "supplier_name", "total_amount", "order_date", "status"}).
			AddRow(5, 1, "Office Supplies Co", "440.00", orderDate, string(models.StatusPending)))
	mock.ExpectQuery(`SELECT \* FROM "line_items" WHERE "line_items"\."document_type" = \$1 AND "line_items"\."document_id" = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_type", "document_id", "position", "description", "rate", "quantity"}).
			AddRow(30, "purchase_orders", 5, 0, "Paper", "44.00", 10))
	mock.ExpectQuery(`INSERT INTO "bills"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "line_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))
	mock.ExpectExec(`UPDATE "purchase_orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	bill, err := svc.ConvertPurchaseOrderToBill(5)
	require.NoError(t, err)

	assert.Equal(t, "Office Supplies Co", bill.VendorName)
	assert.True(t, bill.TotalAmount.Equal(d("440.00")))
	assert.Equal(t, models.StatusUnpaid, bill.Status)
	assert.Equal(t, orderDate.AddDate(0, 0, 30), bill.DueDate)
	require.NotNil(t, bill.PurchaseOrderID)
	assert.Equal(t, uint(5), *bill.PurchaseOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertPurchaseOrderTwiceConflicts(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "supplier_name", "total_amount", "status"}).
			AddRow(5, 1, "Office Supplies Co", "440.00", string(models.StatusConverted)))
	mock.ExpectQuery(`SELECT \* FROM "line_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.ConvertPurchaseOrderToBill(5)
	assert.ErrorIs(t, err, ErrAlreadyConverted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkInvoicePaid(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "client_name", "reference", "total_amount", "status"}).
			AddRow(9, 1, "Acme Trading Pty Ltd", "INV-1", "765.00", string(models.StatusPending)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	invoice, err := svc.MarkInvoicePaid(9)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, invoice.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkMissingBillIsNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "bills" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.MarkBillPaid(404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
