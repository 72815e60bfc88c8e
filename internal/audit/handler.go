package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"smbooks-backend/internal/database"
	"smbooks-backend/internal/models"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CompanyID   *uint              `json:"company_id"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	CreatedAt   string             `json:"created_at"`
}

// GET /api/audit-logs?entity_type=invoice&company_id=1&limit=50
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			q = q.Where("entity_type = ?", entityType)
		}
		if companyIDStr := c.Query("company_id"); companyIDStr != "" {
			companyID, err := strconv.ParseUint(companyIDStr, 10, 32)
			if err != nil || companyID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
			}
			q = q.Where("company_id = ?", companyID)
		}

		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 || parsed > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit is invalid")
			}
			limit = parsed
		}

		var logs []models.AuditLog
		if err := q.Order("id desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CompanyID:   l.CompanyID,
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}
