package documents

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smbooks-backend/internal/audit"
	"smbooks-backend/internal/auth"
	"smbooks-backend/internal/database"
	"smbooks-backend/internal/models"
)

const dateLayout = "2006-01-02"

type LineItemRequest struct {
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    int             `json:"quantity"`
}

type LineItemResponse struct {
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

type CreateQuoteRequest struct {
	CompanyID      uint              `json:"company_id"`
	CustomerName   string            `json:"customer_name"`
	ValidityPeriod string            `json:"validity_period"` // YYYY-MM-DD
	Items          []LineItemRequest `json:"items"`
}

type QuoteResponse struct {
	ID             uint               `json:"id"`
	CompanyID      uint               `json:"company_id"`
	CustomerName   string             `json:"customer_name"`
	Items          []LineItemResponse `json:"items"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	ValidityPeriod string             `json:"validity_period"`
	Status         string             `json:"status"`
}

type CreatePurchaseOrderRequest struct {
	CompanyID       uint              `json:"company_id"`
	SupplierName    string            `json:"supplier_name"`
	ShippingAddress string            `json:"shipping_address"`
	OrderDate       string            `json:"order_date"` // YYYY-MM-DD
	Items           []LineItemRequest `json:"items"`
}

type PurchaseOrderResponse struct {
	ID              uint               `json:"id"`
	CompanyID       uint               `json:"company_id"`
	SupplierName    string             `json:"supplier_name"`
	ShippingAddress string             `json:"shipping_address"`
	OrderDate       string             `json:"order_date"`
	Items           []LineItemResponse `json:"items"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Status          string             `json:"status"`
}

type CreateInvoiceRequest struct {
	CompanyID  uint              `json:"company_id"`
	ClientName string            `json:"client_name"`
	DueDate    string            `json:"due_date"` // YYYY-MM-DD
	Items      []LineItemRequest `json:"items"`
}

type CreateBillRequest struct {
	CompanyID  uint              `json:"company_id"`
	VendorName string            `json:"vendor_name"`
	DueDate    string            `json:"due_date"` // YYYY-MM-DD
	Items      []LineItemRequest `json:"items"`
}

type InvoiceResponse struct {
	ID          uint               `json:"id"`
	CompanyID   uint               `json:"company_id"`
	ClientName  string             `json:"client_name"`
	Reference   string             `json:"reference"`
	Items       []LineItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	DueDate     string             `json:"due_date"`
	Status      string             `json:"status"`
	QuoteID     *uint              `json:"quote_id,omitempty"`
}

type BillResponse struct {
	ID              uint               `json:"id"`
	CompanyID       uint               `json:"company_id"`
	VendorName      string             `json:"vendor_name"`
	Items           []LineItemResponse `json:"items"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	DueDate         string             `json:"due_date"`
	Status          string             `json:"status"`
	PurchaseOrderID *uint              `json:"purchase_order_id,omitempty"`
}

func buildItems(reqs []LineItemRequest) ([]models.LineItem, error) {
	if len(reqs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "at least one line item is required")
	}
	items := make([]models.LineItem, 0, len(reqs))
	for i, req := range reqs {
		if strings.TrimSpace(req.Description) == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("item %d: description is required", i+1))
		}
		if req.Rate.IsNegative() {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("item %d: rate must not be negative", i+1))
		}
		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
		items = append(items, models.LineItem{
			Position:    i,
			Description: strings.TrimSpace(req.Description),
			Rate:        req.Rate.Round(2),
			Quantity:    quantity,
		})
	}
	return items, nil
}

func itemResponses(items []models.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, LineItemResponse{
			Description: item.Description,
			Rate:        item.Rate,
			Quantity:    item.Quantity,
			Amount:      item.Amount(),
		})
	}
	return out
}

func quoteResponse(quote models.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             quote.ID,
		CompanyID:      quote.CompanyID,
		CustomerName:   quote.CustomerName,
		Items:          itemResponses(quote.Items),
		TotalAmount:    quote.TotalAmount,
		ValidityPeriod: quote.ValidityPeriod.Format(dateLayout),
		Status:         string(quote.Status),
	}
}

func invoiceResponse(invoice models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          invoice.ID,
		CompanyID:   invoice.CompanyID,
		ClientName:  invoice.ClientName,
		Reference:   invoice.Reference,
		Items:       itemResponses(invoice.Items),
		TotalAmount: invoice.TotalAmount,
		DueDate:     invoice.DueDate.Format(dateLayout),
		Status:      string(invoice.Status),
		QuoteID:     invoice.QuoteID,
	}
}

func orderResponse(order models.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:              order.ID,
		CompanyID:       order.CompanyID,
		SupplierName:    order.SupplierName,
		ShippingAddress: order.ShippingAddress,
		OrderDate:       order.OrderDate.Format(dateLayout),
		Items:           itemResponses(order.Items),
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
	}
}

func billResponse(bill models.Bill) BillResponse {
	return BillResponse{
		ID:              bill.ID,
		CompanyID:       bill.CompanyID,
		VendorName:      bill.VendorName,
		Items:           itemResponses(bill.Items),
		TotalAmount:     bill.TotalAmount,
		DueDate:         bill.DueDate.Format(dateLayout),
		Status:          string(bill.Status),
		PurchaseOrderID: bill.PurchaseOrderID,
	}
}

func requireCompany(companyID uint) error {
	if companyID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "company_id is required")
	}
	var company models.Company
	if err := database.DB.First(&company, "id = ?", companyID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Company not found")
	}
	return nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id is invalid")
	}
	return uint(id), nil
}

// serviceError maps document service failures onto HTTP statuses. A repeat
// conversion is a conflict, not a server fault.
func serviceError(err error, fallback string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	case errors.Is(err, ErrAlreadyConverted):
		return fiber.NewError(fiber.StatusConflict, "Document has already been converted")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}

// POST /api/quotes
func CreateQuoteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateQuoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := requireCompany(body.CompanyID); err != nil {
			return err
		}
		if strings.TrimSpace(body.CustomerName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "customer_name is required")
		}
		validity, err := time.Parse(dateLayout, body.ValidityPeriod)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "validity_period must be YYYY-MM-DD")
		}
		items, err := buildItems(body.Items)
		if err != nil {
			return err
		}

		quote := models.Quote{
			CompanyID:      body.CompanyID,
			CustomerName:   strings.TrimSpace(body.CustomerName),
			Items:          items,
			TotalAmount:    TotalFromItems(items),
			ValidityPeriod: validity,
			Status:         models.StatusPending,
		}
		if err := database.DB.Create(&quote).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Quote could not be saved")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &quote.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "quote",
				EntityID:    quote.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Quote created for %s", quote.CustomerName),
				After:       quote,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(quoteResponse(quote))
	}
}

// GET /api/quotes?company_id=1
func ListQuotesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Quote{}).Preload("Items")
		if companyIDStr := c.Query("company_id"); companyIDStr != "" {
			companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
			if err != nil || companyID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
			}
			q = q.Where("company_id = ?", companyID)
		}

		var quotes []models.Quote
		if err := q.Order("id desc").Find(&quotes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Quotes could not be listed")
		}

		resp := make([]QuoteResponse, 0, len(quotes))
		for _, quote := range quotes {
			resp = append(resp, quoteResponse(quote))
		}
		return c.JSON(resp)
	}
}

// POST /api/quotes/:id/convert
func ConvertQuoteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		invoice, err := svc.ConvertQuoteToInvoice(id, time.Now())
		if err != nil {
			return serviceError(err, "Quote could not be converted")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &invoice.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "quote",
				EntityID:    id,
				Action:      models.AuditActionConvert,
				Description: fmt.Sprintf("Quote %d converted to invoice %s", id, invoice.Reference),
				After:       invoice,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(invoiceResponse(*invoice))
	}
}

// POST /api/invoices
// Direct entry for invoices that do not originate from a quote.
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := requireCompany(body.CompanyID); err != nil {
			return err
		}
		if strings.TrimSpace(body.ClientName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client_name is required")
		}
		dueDate, err := time.Parse(dateLayout, body.DueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
		}
		items, err := buildItems(body.Items)
		if err != nil {
			return err
		}

		invoice := models.Invoice{
			CompanyID:   body.CompanyID,
			ClientName:  strings.TrimSpace(body.ClientName),
			Reference:   uuid.NewString(),
			Items:       items,
			TotalAmount: TotalFromItems(items),
			DueDate:     dueDate,
			Status:      models.StatusPending,
		}
		if err := database.DB.Create(&invoice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Invoice could not be saved")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &invoice.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    invoice.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Invoice %s created for %s", invoice.Reference, invoice.ClientName),
				After:       invoice,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(invoiceResponse(invoice))
	}
}

// GET /api/invoices?company_id=1
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Invoice{}).Preload("Items")
		if companyIDStr := c.Query("company_id"); companyIDStr != "" {
			companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
			if err != nil || companyID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
			}
			q = q.Where("company_id = ?", companyID)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var invoices []models.Invoice
		if err := q.Order("id desc").Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Invoices could not be listed")
		}

		resp := make([]InvoiceResponse, 0, len(invoices))
		for _, invoice := range invoices {
			resp = append(resp, invoiceResponse(invoice))
		}
		return c.JSON(resp)
	}
}

// PATCH /api/invoices/:id/pay
func PayInvoiceHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		invoice, err := svc.MarkInvoicePaid(id)
		if err != nil {
			return serviceError(err, "Invoice could not be updated")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &invoice.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    invoice.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Invoice %s marked paid", invoice.Reference),
				After:       invoice,
			})
		}

		return c.JSON(invoiceResponse(*invoice))
	}
}

// DELETE /api/invoices/:id
func DeleteInvoiceHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteInvoice(id); err != nil {
			return serviceError(err, "Invoice could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/purchase-orders
func CreatePurchaseOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := requireCompany(body.CompanyID); err != nil {
			return err
		}
		if strings.TrimSpace(body.SupplierName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "supplier_name is required")
		}
		orderDate, err := time.Parse(dateLayout, body.OrderDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "order_date must be YYYY-MM-DD")
		}
		items, err := buildItems(body.Items)
		if err != nil {
			return err
		}

		order := models.PurchaseOrder{
			CompanyID:       body.CompanyID,
			SupplierName:    strings.TrimSpace(body.SupplierName),
			ShippingAddress: strings.TrimSpace(body.ShippingAddress),
			OrderDate:       orderDate,
			Items:           items,
			TotalAmount:     TotalFromItems(items),
			Status:          models.StatusPending,
		}
		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Purchase order could not be saved")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &order.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "purchase_order",
				EntityID:    order.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Purchase order created for %s", order.SupplierName),
				After:       order,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
	}
}

// GET /api/purchase-orders?company_id=1
func ListPurchaseOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.PurchaseOrder{}).Preload("Items")
		if companyIDStr := c.Query("company_id"); companyIDStr != "" {
			companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
			if err != nil || companyID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
			}
			q = q.Where("company_id = ?", companyID)
		}

		var orders []models.PurchaseOrder
		if err := q.Order("id desc").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Purchase orders could not be listed")
		}

		resp := make([]PurchaseOrderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, orderResponse(order))
		}
		return c.JSON(resp)
	}
}

// POST /api/purchase-orders/:id/convert
func ConvertPurchaseOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		bill, err := svc.ConvertPurchaseOrderToBill(id)
		if err != nil {
			return serviceError(err, "Purchase order could not be converted")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &bill.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "purchase_order",
				EntityID:    id,
				Action:      models.AuditActionConvert,
				Description: fmt.Sprintf("Purchase order %d converted to bill %d", id, bill.ID),
				After:       bill,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(billResponse(*bill))
	}
}

// POST /api/bills
// Direct entry for bills that do not originate from a purchase order.
func CreateBillHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBillRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := requireCompany(body.CompanyID); err != nil {
			return err
		}
		if strings.TrimSpace(body.VendorName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "vendor_name is required")
		}
		dueDate, err := time.Parse(dateLayout, body.DueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
		}
		items, err := buildItems(body.Items)
		if err != nil {
			return err
		}

		bill := models.Bill{
			CompanyID:   body.CompanyID,
			VendorName:  strings.TrimSpace(body.VendorName),
			Items:       items,
			TotalAmount: TotalFromItems(items),
			DueDate:     dueDate,
			Status:      models.StatusUnpaid,
		}
		if err := database.DB.Create(&bill).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bill could not be saved")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &bill.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "bill",
				EntityID:    bill.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Bill created for %s", bill.VendorName),
				After:       bill,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(billResponse(bill))
	}
}

// GET /api/bills?company_id=1
func ListBillsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Bill{}).Preload("Items")
		if companyIDStr := c.Query("company_id"); companyIDStr != "" {
			companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
			if err != nil || companyID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
			}
			q = q.Where("company_id = ?", companyID)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var bills []models.Bill
		if err := q.Order("id desc").Find(&bills).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bills could not be listed")
		}

		resp := make([]BillResponse, 0, len(bills))
		for _, bill := range bills {
			resp = append(resp, billResponse(bill))
		}
		return c.JSON(resp)
	}
}

// PATCH /api/bills/:id/pay
func PayBillHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		bill, err := svc.MarkBillPaid(id)
		if err != nil {
			return serviceError(err, "Bill could not be updated")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &bill.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "bill",
				EntityID:    bill.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Bill %d marked paid", bill.ID),
				After:       bill,
			})
		}

		return c.JSON(billResponse(*bill))
	}
}

// DELETE /api/bills/:id
func DeleteBillHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteBill(id); err != nil {
			return serviceError(err, "Bill could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
