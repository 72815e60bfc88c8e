package balance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"smbooks-backend/internal/audit"
	"smbooks-backend/internal/auth"
	"smbooks-backend/internal/database"
	"smbooks-backend/internal/models"
)

type CreateBalanceItemRequest struct {
	CompanyID   uint            `json:"company_id"`
	Category    string          `json:"category"` // "Asset" | "Liability"
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
}

type BalanceItemResponse struct {
	ID          uint            `json:"id"`
	CompanyID   uint            `json:"company_id"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
}

type CreateEquityRequest struct {
	CompanyID uint            `json:"company_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

type EquityResponse struct {
	ID        uint            `json:"id"`
	CompanyID uint            `json:"company_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

func parseCompanyID(c *fiber.Ctx) (uint, error) {
	companyIDStr := c.Query("company_id")
	if companyIDStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "company_id is required")
	}
	companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
	if err != nil || companyID == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
	}
	return uint(companyID), nil
}

// POST /api/balance-items
func CreateBalanceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBalanceItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "company_id is required")
		}
		category := models.BalanceCategory(body.Category)
		if category != models.CategoryAsset && category != models.CategoryLiability {
			return fiber.NewError(fiber.StatusBadRequest, "category must be Asset or Liability")
		}
		if strings.TrimSpace(body.Subcategory) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "subcategory is required")
		}
		if body.Amount.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", body.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Company not found")
		}

		item := models.AssetLiability{
			CompanyID:   body.CompanyID,
			Category:    category,
			Subcategory: strings.TrimSpace(body.Subcategory),
			Amount:      body.Amount.Round(2),
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Balance item could not be saved")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &item.CompanyID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "asset_liability",
				EntityID:    item.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("%s added: %s", item.Category, item.Subcategory),
				After:       item,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(BalanceItemResponse{
			ID:          item.ID,
			CompanyID:   item.CompanyID,
			Category:    string(item.Category),
			Subcategory: item.Subcategory,
			Amount:      item.Amount,
		})
	}
}

// GET /api/balance-items?company_id=1[&category=Asset]
func ListBalanceItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyID(c)
		if err != nil {
			return err
		}

		q := database.DB.Model(&models.AssetLiability{}).Where("company_id = ?", companyID)
		if category := c.Query("category"); category != "" {
			if category != string(models.CategoryAsset) && category != string(models.CategoryLiability) {
				return fiber.NewError(fiber.StatusBadRequest, "category must be Asset or Liability")
			}
			q = q.Where("category = ?", category)
		}

		var items []models.AssetLiability
		if err := q.Order("category asc, subcategory asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Balance items could not be listed")
		}

		resp := make([]BalanceItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, BalanceItemResponse{
				ID:          item.ID,
				CompanyID:   item.CompanyID,
				Category:    string(item.Category),
				Subcategory: item.Subcategory,
				Amount:      item.Amount,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/equity
func CreateEquityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEquityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CompanyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "company_id is required")
		}
		if strings.TrimSpace(body.Category) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "category is required")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", body.CompanyID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Company not found")
		}

		entry := models.Equity{
			CompanyID: body.CompanyID,
			Category:  strings.TrimSpace(body.Category),
			Amount:    body.Amount.Round(2),
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Equity entry could not be saved")
		}

		return c.Status(fiber.StatusCreated).JSON(EquityResponse{
			ID:        entry.ID,
			CompanyID: entry.CompanyID,
			Category:  entry.Category,
			Amount:    entry.Amount,
		})
	}
}

// GET /api/equity?company_id=1
func ListEquityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := parseCompanyID(c)
		if err != nil {
			return err
		}

		var entries []models.Equity
		if err := database.DB.Where("company_id = ?", companyID).
			Order("category asc").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Equity entries could not be listed")
		}

		resp := make([]EquityResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, EquityResponse{
				ID:        entry.ID,
				CompanyID: entry.CompanyID,
				Category:  entry.Category,
				Amount:    entry.Amount,
			})
		}
		return c.JSON(resp)
	}
}
