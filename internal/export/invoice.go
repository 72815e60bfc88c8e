package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"smbooks-backend/internal/models"
)

const invoiceSheet = "Invoice"

var gstRate = decimal.RequireFromString("0.10")

// InvoiceWorkbook renders an invoice as an Excel workbook: company header,
// invoice metadata, one row per line item with GST broken out, then totals.
func InvoiceWorkbook(company models.Company, invoice models.Invoice) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(invoiceSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	setCell := func(cell string, value interface{}) {
		_ = f.SetCellValue(invoiceSheet, cell, value)
	}

	setCell("A1", company.Name)
	setCell("A2", fmt.Sprintf("ABN: %s", company.ABN))
	setCell("A3", company.Address)

	setCell("A5", "Tax Invoice")
	setCell("A6", fmt.Sprintf("Reference: %s", invoice.Reference))
	setCell("A7", fmt.Sprintf("Billed to: %s", invoice.ClientName))
	setCell("A8", fmt.Sprintf("Due date: %s", invoice.DueDate.Format("2006-01-02")))
	setCell("A9", fmt.Sprintf("Status: %s", invoice.Status))

	headers := []string{"Description", "Rate", "Quantity", "Subtotal", "GST (10%)", "Total"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 11)
		if err != nil {
			return nil, err
		}
		setCell(cell, header)
	}

	subtotal := decimal.Zero
	row := 12
	for _, item := range invoice.Items {
		amount := item.Amount()
		gst := amount.Mul(gstRate).Round(2)
		subtotal = subtotal.Add(amount)

		setCell(fmt.Sprintf("A%d", row), item.Description)
		setCell(fmt.Sprintf("B%d", row), item.Rate.StringFixed(2))
		setCell(fmt.Sprintf("C%d", row), item.Quantity)
		setCell(fmt.Sprintf("D%d", row), amount.StringFixed(2))
		setCell(fmt.Sprintf("E%d", row), gst.StringFixed(2))
		setCell(fmt.Sprintf("F%d", row), amount.Add(gst).StringFixed(2))
		row++
	}

	totalGST := subtotal.Mul(gstRate).Round(2)
	row++
	setCell(fmt.Sprintf("E%d", row), "Subtotal")
	setCell(fmt.Sprintf("F%d", row), subtotal.StringFixed(2))
	row++
	setCell(fmt.Sprintf("E%d", row), "GST")
	setCell(fmt.Sprintf("F%d", row), totalGST.StringFixed(2))
	row++
	setCell(fmt.Sprintf("E%d", row), "Amount due")
	setCell(fmt.Sprintf("F%d", row), subtotal.Add(totalGST).StringFixed(2))

	return f, nil
}
