package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"smbooks-backend/internal/audit"
	"smbooks-backend/internal/auth"
	"smbooks-backend/internal/database"
	"smbooks-backend/internal/models"
)

type CreateTransactionRequest struct {
	CompanyID     uint            `json:"company_id"`
	Date          string          `json:"date"` // "2025-03-31"
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	TypeOfExpense *string         `json:"type_of_expense"`
	TypeOfIncome  *string         `json:"type_of_income"`
	GSTPaid       decimal.Decimal `json:"gst_paid"`
	GSTReceived   decimal.Decimal `json:"gst_received"`
	InvoiceRef    string          `json:"invoice_ref"`
}

type TransactionResponse struct {
	ID            uint            `json:"id"`
	CompanyID     uint            `json:"company_id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	TypeOfExpense *string         `json:"type_of_expense"`
	TypeOfIncome  *string         `json:"type_of_income"`
	GSTPaid       decimal.Decimal `json:"gst_paid"`
	GSTReceived   decimal.Decimal `json:"gst_received"`
	InvoiceRef    string          `json:"invoice_ref"`
}

type BulkImportRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions"`
}

type SkippedTransaction struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type BulkImportResponse struct {
	Added   []TransactionResponse `json:"added"`
	Skipped []SkippedTransaction  `json:"skipped"`
}

func toResponse(r models.FinancialRecord) TransactionResponse {
	return TransactionResponse{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		Date:          r.Date.Format("2006-01-02"),
		Description:   r.Description,
		Debit:         r.Debit,
		Credit:        r.Credit,
		TypeOfExpense: r.TypeOfExpense,
		TypeOfIncome:  r.TypeOfIncome,
		GSTPaid:       r.GSTPaid,
		GSTReceived:   r.GSTReceived,
		InvoiceRef:    r.InvoiceRef,
	}
}

func buildRecord(body CreateTransactionRequest) (*models.FinancialRecord, error) {
	if body.CompanyID == 0 {
		return nil, fmt.Errorf("company_id is required")
	}
	if strings.TrimSpace(body.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if body.Date == "" {
		return nil, fmt.Errorf("date is required")
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}
	if body.Debit.IsNegative() || body.Credit.IsNegative() {
		return nil, fmt.Errorf("debit and credit must not be negative")
	}
	if body.GSTPaid.IsNegative() || body.GSTReceived.IsNegative() {
		return nil, fmt.Errorf("GST amounts must not be negative")
	}

	return &models.FinancialRecord{
		CompanyID:     body.CompanyID,
		Date:          date,
		Description:   strings.TrimSpace(body.Description),
		Debit:         body.Debit.Round(2),
		Credit:        body.Credit.Round(2),
		TypeOfExpense: body.TypeOfExpense,
		TypeOfIncome:  body.TypeOfIncome,
		GSTPaid:       body.GSTPaid.Round(2),
		GSTReceived:   body.GSTReceived.Round(2),
		InvoiceRef:    body.InvoiceRef,
	}, nil
}

// POST /api/transactions
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		record, err := buildRecord(body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", record.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Company not found")
		}

		if err := database.DB.Create(record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaction could not be saved")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &record.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "financial_record",
				EntityID:    record.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Transaction added: %s", record.Description),
				After:       toResponse(*record),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(*record))
	}
}

// POST /api/transactions/bulk
// Valid rows are saved, invalid rows are reported back with a reason; a bad
// row never aborts the whole import.
func BulkImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BulkImportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.Transactions) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transactions must be a non-empty list")
		}

		resp := BulkImportResponse{
			Added:   make([]TransactionResponse, 0, len(body.Transactions)),
			Skipped: make([]SkippedTransaction, 0),
		}

		for i, tr := range body.Transactions {
			record, err := buildRecord(tr)
			if err != nil {
				resp.Skipped = append(resp.Skipped, SkippedTransaction{Index: i, Reason: err.Error()})
				continue
			}
			if err := database.DB.Create(record).Error; err != nil {
				resp.Skipped = append(resp.Skipped, SkippedTransaction{Index: i, Reason: "could not be saved"})
				continue
			}
			resp.Added = append(resp.Added, toResponse(*record))
		}

		return c.JSON(resp)
	}
}

// GET /api/transactions?company_id=1&date_from=...&date_to=...
// The general ledger: all records of a company in date order.
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyIDStr := c.Query("company_id")
		if companyIDStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "company_id is required")
		}
		companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
		if err != nil || companyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
		}

		q := database.DB.Model(&models.FinancialRecord{}).Where("company_id = ?", companyID)

		if fromStr := c.Query("date_from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date_from is invalid")
			}
			q = q.Where("date >= ?", from)
		}
		if toStr := c.Query("date_to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date_to is invalid")
			}
			q = q.Where("date <= ?", to)
		}

		var records []models.FinancialRecord
		if err := q.Order("date asc, id asc").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transactions could not be listed")
		}

		resp := make([]TransactionResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, toResponse(r))
		}
		return c.JSON(resp)
	}
}
