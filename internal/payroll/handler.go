package payroll

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

type CreatePayrollRequest struct {
	CompanyID       uint            `json:"company_id"`
	Date            string          `json:"date"`
	EmployeeName    string          `json:"employee_name"`
	GrossWages      decimal.Decimal `json:"gross_wages"`
	PAYGWithholding decimal.Decimal `json:"payg_withholding"`
	Superannuation  decimal.Decimal `json:"superannuation"`
	Deductions      decimal.Decimal `json:"deductions"`
}

type PayrollResponse struct {
	ID              uint            `json:"id"`
	CompanyID       uint            `json:"company_id"`
	Date            string          `json:"date"`
	EmployeeName    string          `json:"employee_name"`
	GrossWages      decimal.Decimal `json:"gross_wages"`
	PAYGWithholding decimal.Decimal `json:"payg_withholding"`
	Superannuation  decimal.Decimal `json:"superannuation"`
	Deductions      decimal.Decimal `json:"deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

func toResponse(r models.PayrollRecord) PayrollResponse {
	return PayrollResponse{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		Date:            r.Date.Format("2006-01-02"),
		EmployeeName:    r.EmployeeName,
		GrossWages:      r.GrossWages,
		PAYGWithholding: r.PAYGWithholding,
		Superannuation:  r.Superannuation,
		Deductions:      r.Deductions,
		NetPay:          r.NetPay,
	}
}

// POST /api/payroll
func CreatePayrollHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePayrollRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "company_id is required")
		}
		if strings.TrimSpace(body.EmployeeName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "employee_name is required")
		}
		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		if body.Superannuation.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "superannuation must not be negative")
		}

		netPay, err := ComputeNetPay(body.GrossWages, body.PAYGWithholding, body.Deductions)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", body.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Company not found")
		}

		record := models.PayrollRecord{
			CompanyID:       body.CompanyID,
			Date:            date,
			EmployeeName:    strings.TrimSpace(body.EmployeeName),
			GrossWages:      body.GrossWages.Round(2),
			PAYGWithholding: body.PAYGWithholding.Round(2),
			Superannuation:  body.Superannuation.Round(2),
			Deductions:      body.Deductions.Round(2),
			NetPay:          netPay,
		}
		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Payroll record could not be saved")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &record.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "payroll_record",
				EntityID:    record.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Payroll added for %s", record.EmployeeName),
				After:       toResponse(record),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(record))
	}
}

// GET /api/payroll?company_id=1&date_from=...&date_to=...
func ListPayrollHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyIDStr := c.Query("company_id")
		if companyIDStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "company_id is required")
		}
		companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
		if err != nil || companyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
		}

		q := database.DB.Model(&models.PayrollRecord{}).Where("company_id = ?", companyID)

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

		var records []models.PayrollRecord
		if err := q.Order("date asc, id asc").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Payroll records could not be listed")
		}

		resp := make([]PayrollResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, toResponse(r))
		}
		return c.JSON(resp)
	}
}

// GET /api/payroll/:id/payslip
func PayslipHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Payroll id is invalid")
		}

		var record models.PayrollRecord
		if err := database.DB.Preload("Company").First(&record, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Payslip not found")
		}

		return c.JSON(fiber.Map{
			"company":          record.Company.Name,
			"employee_name":    record.EmployeeName,
			"payroll_date":     record.Date.Format("2006-01-02"),
			"gross_wages":      record.GrossWages,
			"payg_withholding": record.PAYGWithholding,
			"superannuation":   record.Superannuation,
			"deductions":       record.Deductions,
			"net_pay":          record.NetPay,
		})
	}
}
