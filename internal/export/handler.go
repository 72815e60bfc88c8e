package export

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"smbooks-backend/internal/database"
	"smbooks-backend/internal/models"
)

// GET /api/invoices/:id/export
func ExportInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		var invoice models.Invoice
		if err := database.DB.Preload("Items").Preload("Company").
			First(&invoice, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}

		f, err := InvoiceWorkbook(invoice.Company, invoice)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Invoice could not be exported")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="invoice-%s.xlsx"`, invoice.Reference))
		return f.Write(c.Response().BodyWriter())
	}
}
