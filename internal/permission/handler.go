package permission

import (
	"strings"

	"immo-backend/internal/database"
	"immo-backend/internal/models"
	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type NameRequest struct {
	Name string `json:"name"`
}

// GET /api/v1/permissions
func ListPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var permissions []models.Permission
		if err := database.DB.Find(&permissions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list permissions")
		}
		return response.Success(c, fiber.StatusOK, permissions, "Permissions retrieved successfully.")
	}
}

// POST /api/v1/permissions
func CreatePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if msgs := validatePermissionName(body.Name, 0); len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusBadRequest, msgs)
		}

		permission := models.Permission{Name: body.Name}
		if err := database.DB.Create(&permission).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create permission")
		}

		return response.Success(c, fiber.StatusCreated, permission, "Permission created successfully.")
	}
}

// GET /api/v1/permissions/:id
func GetPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var permission models.Permission
		if err := database.DB.First(&permission, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Permission not found.")
		}
		return response.Success(c, fiber.StatusOK, permission, "Permission retrieved successfully.")
	}
}

// PUT /api/v1/permissions/:id
func UpdatePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var permission models.Permission
		if err := database.DB.First(&permission, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Permission not found.")
		}

		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if msgs := validatePermissionName(body.Name, permission.ID); len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusBadRequest, msgs)
		}

		permission.Name = body.Name
		if err := database.DB.Save(&permission).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update permission")
		}

		return response.Success(c, fiber.StatusOK, permission, "Permission updated successfully.")
	}
}

// DELETE /api/v1/permissions/:id
func DeletePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var permission models.Permission
		if err := database.DB.First(&permission, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Permission not found.")
		}

		if err := database.DB.Delete(&permission).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete permission")
		}

		return response.Success(c, fiber.StatusOK, nil, "Permission deleted successfully.")
	}
}

func validatePermissionName(name string, excludeID uint) []string {
	var msgs []string
	if name == "" {
		msgs = append(msgs, "The name field is required.")
		return msgs
	}
	var count int64
	database.DB.Model(&models.Permission{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count)
	if count > 0 {
		msgs = append(msgs, "The name has already been taken.")
	}
	return msgs
}
