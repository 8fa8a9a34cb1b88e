package property

import (
	"strconv"

	"immo-backend/internal/database"
	"immo-backend/internal/filter"
	"immo-backend/internal/models"
	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

// GET /api/v1/properties/search
//
// city/state/zip are exact matches ANDed together; latitude/longitude/radius
// form an all-or-nothing geolocation filter. Results are unpaginated.
func SearchPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var msgs []string
		if len(c.Query("city")) > 100 {
			msgs = append(msgs, "The city may not be greater than 100 characters.")
		}
		if len(c.Query("state")) > 100 {
			msgs = append(msgs, "The state may not be greater than 100 characters.")
		}
		if len(c.Query("zip")) > 20 {
			msgs = append(msgs, "The zip may not be greater than 20 characters.")
		}
		if v := c.Query("latitude"); v != "" {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				msgs = append(msgs, "The latitude must be a number.")
			}
		}
		if v := c.Query("longitude"); v != "" {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				msgs = append(msgs, "The longitude must be a number.")
			}
		}
		if v := c.Query("radius"); v != "" {
			r, err := strconv.ParseFloat(v, 64)
			if err != nil {
				msgs = append(msgs, "The radius must be a number.")
			} else if r < 1 {
				msgs = append(msgs, "The radius must be at least 1.")
			}
		}
		if len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		q := filter.Apply(c, database.DB.Model(&models.Property{}),
			filter.Equal("city", "city"),
			filter.Equal("state", "state"),
			filter.Equal("zip", "zip"),
			filter.WithinRadius("latitude", "longitude", "radius"),
		)

		var properties []models.Property
		if err := q.Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not search properties")
		}

		return response.Success(c, fiber.StatusOK, properties, "Properties retrieved successfully")
	}
}
