package documents

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smbooks-backend/internal/database"
	"smbooks-backend/internal/models"
)

func newHandlerApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() { database.DB = prev })

	return fiber.New(), mock
}

func TestCreateInvoiceHandler(t *testing.T) {
	app, mock := newHandlerApp(t)
	app.Post("/invoices", CreateInvoiceHandler())

	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Acme Trading Pty Ltd"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "line_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20).AddRow(21))
	mock.ExpectCommit()

	body := `{"company_id":1,"client_name":"Southern Cross Cafe","due_date":"2025-04-10",` +
		`"items":[{"description":"Consulting","rate":"150.00","quantity":4},` +
		`{"description":"Travel","rate":"82.50","quantity":2}]}`
	req := httptest.NewRequest(fiber.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got InvoiceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotEmpty(t, got.Reference)
	assert.True(t, got.TotalAmount.Equal(d("765.00")))
	assert.Equal(t, string(models.StatusPending), got.Status)
	assert.Equal(t, "2025-04-10", got.DueDate)
	assert.Nil(t, got.QuoteID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBillHandler(t *testing.T) {
	app, mock := newHandlerApp(t)
	app.Post("/bills", CreateBillHandler())

	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Acme Trading Pty Ltd"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bills"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "line_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))
	mock.ExpectCommit()

	body := `{"company_id":1,"vendor_name":"Office Supplies Co","due_date":"2025-04-01",` +
		`"items":[{"description":"Paper","rate":"44.00","quantity":10}]}`
	req := httptest.NewRequest(fiber.MethodPost, "/bills", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got BillResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.TotalAmount.Equal(d("440.00")))
	assert.Equal(t, string(models.StatusUnpaid), got.Status)
	assert.Nil(t, got.PurchaseOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceRejectsBadInput(t *testing.T) {
	app, mock := newHandlerApp(t)
	app.Post("/invoices", CreateInvoiceHandler())

	for name, body := range map[string]string{
		"missing company": `{"client_name":"X","due_date":"2025-04-10","items":[{"description":"A","rate":"1.00","quantity":1}]}`,
	} {
		req := httptest.NewRequest(fiber.MethodPost, "/invoices", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, name)
	}
	// Nothing reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentIDMustBeNumeric(t *testing.T) {
	app, mock := newHandlerApp(t)
	svc := NewService(database.DB)
	app.Post("/quotes/:id/convert", ConvertQuoteHandler(svc))
	app.Delete("/invoices/:id", DeleteInvoiceHandler(svc))

	for _, id := range []string{"12abc", "abc", "-1", "0"} {
		req := httptest.NewRequest(fiber.MethodPost, "/quotes/"+id+"/convert", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "id %q", id)

		req = httptest.NewRequest(fiber.MethodDelete, "/invoices/"+id, nil)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "id %q", id)
	}
	// Malformed ids never touch the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}
