package company

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"smbooks-backend/internal/audit"
	"smbooks-backend/internal/auth"
	"smbooks-backend/internal/database"
	"smbooks-backend/internal/models"
)

type CreateCompanyRequest struct {
	Name          string `json:"name"`
	ABN           string `json:"abn"`
	TFN           string `json:"tfn"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

type CompanyResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	ABN           string `json:"abn"`
	TFN           string `json:"tfn"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CreatedAt     string `json:"created_at"`
}

func toResponse(c models.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		ABN:           c.ABN,
		TFN:           c.TFN,
		ContactPerson: c.ContactPerson,
		Address:       c.Address,
		Email:         c.Email,
		Phone:         c.Phone,
		CreatedAt:     c.CreatedAt.Format("2006-01-02"),
	}
}

// POST /api/companies
func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || strings.TrimSpace(body.ContactPerson) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and contact_person are required")
		}

		// Same name means same company; creation is idempotent on name.
		var existing models.Company
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return c.JSON(toResponse(existing))
		}

		company := models.Company{
			Name:          body.Name,
			ABN:           body.ABN,
			TFN:           body.TFN,
			ContactPerson: body.ContactPerson,
			Address:       body.Address,
			Email:         body.Email,
			Phone:         body.Phone,
		}
		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Company could not be created")
		}

		if userID, userName, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				CompanyID:   &company.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "company",
				EntityID:    company.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Company created: %s", company.Name),
				After:       toResponse(company),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(company))
	}
}

// GET /api/companies
func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var companies []models.Company
		if err := database.DB.Order("name asc").Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Companies could not be listed")
		}

		resp := make([]CompanyResponse, 0, len(companies))
		for _, company := range companies {
			resp = append(resp, toResponse(company))
		}
		return c.JSON(resp)
	}
}

// GET /api/companies/:id
func GetCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Company id is invalid")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Company not found")
		}
		return c.JSON(toResponse(company))
	}
}
