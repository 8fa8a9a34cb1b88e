package role

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

type PermissionRequest struct {
	PermissionName string `json:"permission_name"`
}

// GET /api/v1/roles
func ListRolesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var roles []models.Role
		if err := database.DB.Find(&roles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list roles")
		}
		return response.Success(c, fiber.StatusOK, roles, "Roles retrieved successfully.")
	}
}

// POST /api/v1/roles
func CreateRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if msgs := validateRoleName(body.Name, 0); len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusBadRequest, msgs)
		}

		role := models.Role{Name: body.Name}
		if err := database.DB.Create(&role).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create role")
		}

		return response.Success(c, fiber.StatusCreated, role, "Role created successfully.")
	}
}

// GET /api/v1/roles/:id
func GetRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var role models.Role
		if err := database.DB.First(&role, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Role not found.")
		}
		return response.Success(c, fiber.StatusOK, role, "Role retrieved successfully.")
	}
}

// PUT /api/v1/roles/:id
func UpdateRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var role models.Role
		if err := database.DB.First(&role, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Role not found.")
		}

		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if msgs := validateRoleName(body.Name, role.ID); len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusBadRequest, msgs)
		}

		role.Name = body.Name
		if err := database.DB.Save(&role).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update role")
		}

		return response.Success(c, fiber.StatusOK, role, "Role updated successfully.")
	}
}

// DELETE /api/v1/roles/:id
func DeleteRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var role models.Role
		if err := database.DB.First(&role, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Role not found.")
		}

		if err := database.DB.Delete(&role).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete role")
		}

		return response.Success(c, fiber.StatusOK, nil, "Role deleted successfully.")
	}
}

// GET /api/v1/roles/:id/permissions
func ListRolePermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var role models.Role
		if err := database.DB.Preload("Permissions").First(&role, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Role not found.")
		}
		return response.Success(c, fiber.StatusOK, role.Permissions, "Permissions retrieved successfully.")
	}
}

// POST /api/v1/roles/:id/permissions
func AddPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var role models.Role
		if err := database.DB.First(&role, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Role not found.")
		}

		var body PermissionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.PermissionName == "" {
			return response.NewValidationError(fiber.StatusBadRequest,
				[]string{"The permission name field is required."})
		}

		var permission models.Permission
		if err := database.DB.Where("name = ?", body.PermissionName).First(&permission).Error; err != nil {
			return response.NewValidationError(fiber.StatusBadRequest,
				[]string{"The selected permission name is invalid."})
		}

		if err := database.DB.Model(&role).Association("Permissions").Append(&permission); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not add permission")
		}

		return response.Success(c, fiber.StatusOK, role, "Permission added successfully.")
	}
}

func validateRoleName(name string, excludeID uint) []string {
	var msgs []string
	if name == "" {
		msgs = append(msgs, "The name field is required.")
		return msgs
	}
	var count int64
	database.DB.Model(&models.Role{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count)
	if count > 0 {
		msgs = append(msgs, "The name has already been taken.")
	}
	return msgs
}
