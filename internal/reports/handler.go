package reports

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func parseCompanyID(c *fiber.Ctx) (uint, error) {
	idStr := c.Query("company_id")
	if idStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "company_id is required")
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
	}
	return uint(id), nil
}

func parseRate(c *fiber.Ctx, name string, def decimal.Decimal) (decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return rate, nil
}

// httpError maps the report error taxonomy onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		log.Println("report generation failed:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "report could not be generated")
	}
}

// GET /api/reports/profit-loss?company_id=1&date_from=...&date_to=...[&tax_rate=0.10]
func ProfitLossHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyID(c)
		if err != nil {
			return err
		}
		taxRate, err := parseRate(c, "tax_rate", DefaultTaxRate)
		if err != nil {
			return err
		}
		stmt, err := svc.ProfitAndLoss(companyID, c.Query("date_from"), c.Query("date_to"), taxRate)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(stmt)
	}
}

// GET /api/reports/balance-sheet?company_id=1
func BalanceSheetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyID(c)
		if err != nil {
			return err
		}
		sheet, err := svc.BalanceSheet(companyID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(sheet)
	}
}

// GET /api/reports/cash-flow?company_id=1&date_from=...&date_to=...
func CashFlowHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyID(c)
		if err != nil {
			return err
		}
		stmt, err := svc.CashFlow(companyID, c.Query("date_from"), c.Query("date_to"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(stmt)
	}
}

// GET /api/reports/bas?company_id=1&date_from=...&date_to=...[&instalment_rate=0.10]
func BASHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyID(c)
		if err != nil {
			return err
		}
		rate, err := parseRate(c, "instalment_rate", DefaultInstalmentRate)
		if err != nil {
			return err
		}
		report, err := svc.BAS(companyID, c.Query("date_from"), c.Query("date_to"), rate)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(report)
	}
}
