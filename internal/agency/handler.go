package agency

import (
	"strings"

	"immo-backend/internal/database"
	"immo-backend/internal/filter"
	"immo-backend/internal/models"
	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CreateAgencyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateAgencyRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// GET /api/v1/agencies
func ListAgenciesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := filter.Apply(c, database.DB.Model(&models.Agency{}),
			filter.Like("name", "name"),
			filter.Like("email", "email"),
			filter.Like("phone", "phone"),
		).Order("created_at desc")

		var agencies []models.Agency
		meta, err := filter.Paginate(c, q, &agencies)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list agencies")
		}

		return response.SuccessWithPagination(c, agencies, "Agencies retrieved successfully.", meta)
	}
}

// POST /api/v1/agencies
func CreateAgencyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAgencyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)

		if msgs := validateAgencyFields(body.Name, body.Email, body.Phone, true); len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		agency := models.Agency{
			Name:  body.Name,
			Email: body.Email,
			Phone: body.Phone,
		}
		if err := database.DB.Create(&agency).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create agency")
		}

		return response.Success(c, fiber.StatusCreated, agency, "Agency created successfully.")
	}
}

// GET /api/v1/agencies/:id
func GetAgencyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var agency models.Agency
		if err := database.DB.First(&agency, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Agency not found.")
		}
		return response.Success(c, fiber.StatusOK, agency, "Agency retrieved successfully.")
	}
}

// PUT /api/v1/agencies/:id
func UpdateAgencyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var agency models.Agency
		if err := database.DB.First(&agency, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Agency not found.")
		}

		var body UpdateAgencyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var msgs []string
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				msgs = append(msgs, "The name field is required.")
			} else if len(name) > 255 {
				msgs = append(msgs, "The name may not be greater than 255 characters.")
			} else {
				agency.Name = name
			}
		}
		if body.Email != nil {
			if *body.Email != "" && !strings.Contains(*body.Email, "@") {
				msgs = append(msgs, "The email must be a valid email address.")
			} else if len(*body.Email) > 255 {
				msgs = append(msgs, "The email may not be greater than 255 characters.")
			} else {
				agency.Email = *body.Email
			}
		}
		if body.Phone != nil {
			if len(*body.Phone) > 20 {
				msgs = append(msgs, "The phone may not be greater than 20 characters.")
			} else {
				agency.Phone = *body.Phone
			}
		}
		if len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		if err := database.DB.Save(&agency).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update agency")
		}

		return response.Success(c, fiber.StatusOK, agency, "Agency updated successfully.")
	}
}

// DELETE /api/v1/agencies/:id
func DeleteAgencyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var agency models.Agency
		if err := database.DB.First(&agency, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Agency not found.")
		}

		if err := database.DB.Delete(&agency).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete agency")
		}

		return response.Success(c, fiber.StatusOK, nil, "Agency deleted successfully.")
	}
}

func validateAgencyFields(name, email, phone string, nameRequired bool) []string {
	var msgs []string
	if name == "" {
		if nameRequired {
			msgs = append(msgs, "The name field is required.")
		}
	} else if len(name) > 255 {
		msgs = append(msgs, "The name may not be greater than 255 characters.")
	}
	if email != "" && !strings.Contains(email, "@") {
		msgs = append(msgs, "The email must be a valid email address.")
	}
	if len(email) > 255 {
		msgs = append(msgs, "The email may not be greater than 255 characters.")
	}
	if len(phone) > 20 {
		msgs = append(msgs, "The phone may not be greater than 20 characters.")
	}
	return msgs
}
