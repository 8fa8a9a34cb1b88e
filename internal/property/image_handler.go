package property

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"immo-backend/internal/auth"
	"immo-backend/internal/database"
	"immo-backend/internal/models"
	"immo-backend/internal/response"
	"immo-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

const maxImageKilobytes = 2048

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".png":  true,
	".jpg":  true,
	".gif":  true,
	".svg":  true,
}

// POST /api/v1/properties/:id/images
func StoreImageHandler(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		if property.UserID != auth.CurrentUserID(c) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		fh, err := c.FormFile("image")
		if err != nil {
			return response.NewValidationError(fiber.StatusUnprocessableEntity,
				[]string{"The image field is required."})
		}

		var msgs []string
		if !allowedImageExts[strings.ToLower(filepath.Ext(fh.Filename))] {
			msgs = append(msgs, "The image must be a file of type: jpeg, png, jpg, gif, svg.")
		}
		if fh.Size > maxImageKilobytes*1024 {
			msgs = append(msgs, "The image may not be greater than 2048 kilobytes.")
		}
		if len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		src, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read image")
		}
		defer src.Close()

		name := fmt.Sprintf("%d_%s", time.Now().Unix(),
			strings.ReplaceAll(strings.TrimSpace(fh.Filename), " ", "_"))
		url, err := store.Save(name, src)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store image")
		}

		image := models.PropertyImage{
			PropertyID: property.ID,
			ImageURL:   url,
		}
		if err := database.DB.Create(&image).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store image")
		}

		database.DB.Preload("Images").First(&property, property.ID)

		return response.Success(c, fiber.StatusCreated, property, "Image uploaded successfully")
	}
}

// DELETE /api/v1/properties/:id/images/:imageId
func DestroyImageHandler(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		if property.UserID != auth.CurrentUserID(c) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		var image models.PropertyImage
		if err := database.DB.
			Where("id = ? AND property_id = ?", c.Params("imageId"), property.ID).
			First(&image).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Image not found")
		}

		// The row is authoritative; a missing file on disk is not an error.
		_ = store.Remove(image.ImageURL)

		if err := database.DB.Delete(&image).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete image")
		}

		return response.Success(c, fiber.StatusOK, nil, "Image deleted successfully")
	}
}
