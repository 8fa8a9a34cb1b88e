package property

import (
	"immo-backend/internal/auth"
	"immo-backend/internal/database"
	"immo-backend/internal/models"
	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

// GET /api/v1/properties/favorites
func FavoritesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := models.User{ID: auth.CurrentUserID(c)}
		var properties []models.Property
		if err := database.DB.Model(&user).Association("Favorites").Find(&properties); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list favorites")
		}
		return response.Success(c, fiber.StatusOK, properties, "Favorites retrieved successfully")
	}
}

// POST /api/v1/properties/:id/favorite
func AddFavoriteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}

		userID := auth.CurrentUserID(c)
		if favoriteExists(userID, property.ID) {
			return fiber.NewError(fiber.StatusConflict, "Property is already in favorites.")
		}

		// The join table's composite key stops a racing duplicate insert.
		user := models.User{ID: userID}
		if err := database.DB.Model(&user).Association("Favorites").Append(&property); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not add favorite")
		}

		return response.Success(c, fiber.StatusCreated, nil, "Property added to favorites successfully.")
	}
}

// DELETE /api/v1/properties/:id/favorite
func RemoveFavoriteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}

		userID := auth.CurrentUserID(c)
		if !favoriteExists(userID, property.ID) {
			return fiber.NewError(fiber.StatusNotFound, "Property not found in favorites")
		}

		user := models.User{ID: userID}
		if err := database.DB.Model(&user).Association("Favorites").Delete(&property); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not remove favorite")
		}

		return response.Success(c, fiber.StatusOK, nil, "Property removed from favorites successfully")
	}
}

func favoriteExists(userID, propertyID uint) bool {
	var count int64
	database.DB.Table("user_favorites").
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count)
	return count > 0
}
