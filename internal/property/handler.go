package property

import (
	"strings"

	"immo-backend/internal/auth"
	"immo-backend/internal/database"
	"immo-backend/internal/filter"
	"immo-backend/internal/models"
	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CreatePropertyRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price"`
	Area         *float64 `json:"area"`
	Status       string   `json:"status"`
	PropertyType string   `json:"property_type"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type UpdatePropertyRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Area         *float64 `json:"area"`
	Status       *string  `json:"status"`
	PropertyType *string  `json:"property_type"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	Zip          *string  `json:"zip"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// GET /api/v1/properties
//
// Filter stages run in a fixed order regardless of which parameters are
// present; absent parameters are pass-throughs.
func ListPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := filter.Apply(c, database.DB.Model(&models.Property{}),
			filter.Equal("status", "status"),
			filter.Min("min_price", "price"),
			filter.Max("max_price", "price"),
			filter.Equal("city", "city"),
			filter.Equal("property_type", "property_type"),
			filter.Min("min_area", "area"),
			filter.Max("max_area", "area"),
			filter.WithinRadius("latitude", "longitude", "radius"),
			filter.Preload("Images"),
		)

		var properties []models.Property
		meta, err := filter.Paginate(c, q, &properties)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list properties")
		}

		return response.SuccessWithPagination(c, properties, "Properties retrieved successfully", meta)
	}
}

// POST /api/v1/properties
func CreatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)

		var msgs []string
		if body.Title == "" {
			msgs = append(msgs, "The title field is required.")
		} else if len(body.Title) > 255 {
			msgs = append(msgs, "The title may not be greater than 255 characters.")
		}
		if body.Price == nil {
			msgs = append(msgs, "The price field is required.")
		} else if *body.Price < 0 {
			msgs = append(msgs, "The price must be at least 0.")
		}
		if body.Area == nil {
			msgs = append(msgs, "The area field is required.")
		} else if *body.Area < 0 {
			msgs = append(msgs, "The area must be at least 0.")
		}
		if body.Status == "" {
			msgs = append(msgs, "The status field is required.")
		} else if !models.ValidStatus(body.Status) {
			msgs = append(msgs, "The selected status is invalid.")
		}
		if body.PropertyType == "" {
			msgs = append(msgs, "The property type field is required.")
		} else if !models.ValidPropertyType(body.PropertyType) {
			msgs = append(msgs, "The selected property type is invalid.")
		}
		msgs = append(msgs, validateOptionalFields(body.Address, body.City, body.State, body.Zip)...)
		if len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		property := models.Property{
			Title:        body.Title,
			Description:  body.Description,
			Price:        *body.Price,
			Area:         *body.Area,
			Status:       models.PropertyStatus(body.Status),
			PropertyType: models.PropertyType(body.PropertyType),
			Address:      body.Address,
			City:         body.City,
			State:        body.State,
			Zip:          body.Zip,
			Latitude:     body.Latitude,
			Longitude:    body.Longitude,
			UserID:       auth.CurrentUserID(c),
		}

		if err := database.DB.Create(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create property")
		}

		return response.Success(c, fiber.StatusCreated, property, "Property created successfully")
	}
}

// GET /api/v1/properties/:id
func GetPropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.Preload("Images").First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return response.Success(c, fiber.StatusOK, property, "Property retrieved successfully")
	}
}

// PUT /api/v1/properties/:id
func UpdatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		if property.UserID != auth.CurrentUserID(c) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		var body UpdatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		// Only supplied fields are validated and applied.
		var msgs []string
		if body.Title != nil && len(*body.Title) > 255 {
			msgs = append(msgs, "The title may not be greater than 255 characters.")
		}
		if body.Price != nil && *body.Price < 0 {
			msgs = append(msgs, "The price must be at least 0.")
		}
		if body.Area != nil && *body.Area < 0 {
			msgs = append(msgs, "The area must be at least 0.")
		}
		if body.Status != nil && !models.ValidStatus(*body.Status) {
			msgs = append(msgs, "The selected status is invalid.")
		}
		if body.PropertyType != nil && !models.ValidPropertyType(*body.PropertyType) {
			msgs = append(msgs, "The selected property type is invalid.")
		}
		if body.Address != nil && len(*body.Address) > 255 {
			msgs = append(msgs, "The address may not be greater than 255 characters.")
		}
		if body.City != nil && len(*body.City) > 100 {
			msgs = append(msgs, "The city may not be greater than 100 characters.")
		}
		if body.State != nil && len(*body.State) > 100 {
			msgs = append(msgs, "The state may not be greater than 100 characters.")
		}
		if body.Zip != nil && len(*body.Zip) > 20 {
			msgs = append(msgs, "The zip may not be greater than 20 characters.")
		}
		if len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		if body.Title != nil {
			property.Title = strings.TrimSpace(*body.Title)
		}
		if body.Description != nil {
			property.Description = *body.Description
		}
		if body.Price != nil {
			property.Price = *body.Price
		}
		if body.Area != nil {
			property.Area = *body.Area
		}
		if body.Status != nil {
			property.Status = models.PropertyStatus(*body.Status)
		}
		if body.PropertyType != nil {
			property.PropertyType = models.PropertyType(*body.PropertyType)
		}
		if body.Address != nil {
			property.Address = *body.Address
		}
		if body.City != nil {
			property.City = *body.City
		}
		if body.State != nil {
			property.State = *body.State
		}
		if body.Zip != nil {
			property.Zip = *body.Zip
		}
		if body.Latitude != nil {
			property.Latitude = body.Latitude
		}
		if body.Longitude != nil {
			property.Longitude = body.Longitude
		}

		if err := database.DB.Save(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update property")
		}

		return response.Success(c, fiber.StatusOK, property, "Property updated successfully")
	}
}

// DELETE /api/v1/properties/:id
//
// Image rows and favorite memberships go with the property; the delete is
// explicit rather than relying on store-level cascade.
func DeletePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		if property.UserID != auth.CurrentUserID(c) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		if err := database.DB.Where("property_id = ?", property.ID).Delete(&models.PropertyImage{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete property")
		}
		if err := database.DB.Exec("DELETE FROM user_favorites WHERE property_id = ?", property.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete property")
		}
		if err := database.DB.Delete(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete property")
		}

		return response.Success(c, fiber.StatusOK, nil, "Property deleted successfully")
	}
}

// GET /api/v1/properties/me
func MyPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var properties []models.Property
		if err := database.DB.Where("user_id = ?", auth.CurrentUserID(c)).Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list properties")
		}
		return response.Success(c, fiber.StatusOK, properties, "Properties retrieved successfully")
	}
}

func validateOptionalFields(address, city, state, zip string) []string {
	var msgs []string
	if len(address) > 255 {
		msgs = append(msgs, "The address may not be greater than 255 characters.")
	}
	if len(city) > 100 {
		msgs = append(msgs, "The city may not be greater than 100 characters.")
	}
	if len(state) > 100 {
		msgs = append(msgs, "The state may not be greater than 100 characters.")
	}
	if len(zip) > 20 {
		msgs = append(msgs, "The zip may not be greater than 20 characters.")
	}
	return msgs
}
