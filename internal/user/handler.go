package user

import (
	"strings"

	"immo-backend/internal/auth"
	"immo-backend/internal/database"
	"immo-backend/internal/filter"
	"immo-backend/internal/models"
	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    *string `json:"password"`
	NumberPhone *string `json:"number_phone"`
}

// GET /api/v1/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := filter.Apply(c, database.DB.Model(&models.User{}),
			filter.Like("name", "name"),
			filter.Like("email", "email"),
			filter.Preload("Properties", "Favorites", "Agencies"),
		)

		var users []models.User
		meta, err := filter.Paginate(c, q, &users)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		return response.SuccessWithPagination(c, users, "Users retrieved successfully.", meta)
	}
}

// GET /api/v1/users/:id
func GetUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found.")
		}
		return response.Success(c, fiber.StatusOK, user, "User retrieved successfully.")
	}
}

// PUT /api/v1/users/:id
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found.")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var msgs []string
		if body.Name == "" {
			msgs = append(msgs, "The name field is required.")
		} else if len(body.Name) > 255 {
			msgs = append(msgs, "The name may not be greater than 255 characters.")
		}
		if body.Email == "" {
			msgs = append(msgs, "The email field is required.")
		} else if !strings.Contains(body.Email, "@") {
			msgs = append(msgs, "The email must be a valid email address.")
		} else {
			// Uniqueness excludes the row being updated.
			var count int64
			database.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", body.Email, user.ID).
				Count(&count)
			if count > 0 {
				msgs = append(msgs, "The email has already been taken.")
			}
		}
		if body.Password != nil && len(*body.Password) < 8 {
			msgs = append(msgs, "The password must be at least 8 characters.")
		}
		if body.NumberPhone != nil && len(*body.NumberPhone) > 20 {
			msgs = append(msgs, "The number phone may not be greater than 20 characters.")
		}
		if len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		user.Name = body.Name
		user.Email = body.Email
		if body.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
			}
			user.Password = string(hash)
		}
		if body.NumberPhone != nil {
			user.NumberPhone = *body.NumberPhone
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}

		return response.Success(c, fiber.StatusOK, user, "User updated successfully.")
	}
}

// DELETE /api/v1/users/:id
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found.")
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}

		return response.Success(c, fiber.StatusOK, nil, "User deleted successfully.")
	}
}

type RoleRequest struct {
	Role string `json:"role"`
}

// POST /api/v1/users/:id/assign-role
func AssignRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, role, err := resolveUserAndRole(c)
		if err != nil {
			return err
		}

		if err := database.DB.Model(user).Association("Roles").Append(role); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not assign role")
		}

		return response.Success(c, fiber.StatusOK, user, "Role assigned successfully.")
	}
}

// POST /api/v1/users/:id/revoke-role
func RevokeRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, role, err := resolveUserAndRole(c)
		if err != nil {
			return err
		}

		if err := database.DB.Model(user).Association("Roles").Delete(role); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not revoke role")
		}

		return response.Success(c, fiber.StatusOK, user, "Role revoked successfully.")
	}
}

func resolveUserAndRole(c *fiber.Ctx) (*models.User, *models.Role, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "User not found.")
	}

	var body RoleRequest
	if err := c.BodyParser(&body); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if body.Role == "" {
		return nil, nil, response.NewValidationError(fiber.StatusBadRequest,
			[]string{"The role field is required."})
	}

	var role models.Role
	if err := database.DB.Where("name = ?", body.Role).First(&role).Error; err != nil {
		return nil, nil, response.NewValidationError(fiber.StatusBadRequest,
			[]string{"The selected role is invalid."})
	}

	return &user, &role, nil
}

// POST /api/v1/logout
//
// Bumping the token version invalidates every token issued to the caller.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := database.DB.Model(&models.User{}).
			Where("id = ?", auth.CurrentUserID(c)).
			UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not log out")
		}

		return response.Success(c, fiber.StatusOK, nil, "User logged out successfully.")
	}
}

// GET /api/v1/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, auth.CurrentUserID(c)).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found.")
		}
		return response.Success(c, fiber.StatusOK, user, "User retrieved successfully.")
	}
}
