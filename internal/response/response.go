// Package response implements the uniform JSON envelope every endpoint
// answers through: {data, message} on success (optionally merged with
// pagination metadata) and {message, errorMessages?} on failure.
package response

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

type Meta struct {
	CurrentPage int
	PerPage     int
	Total       int64
	LastPage    int
}

func Success(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"data":    data,
		"message": message,
	})
}

func SuccessWithPagination(c *fiber.Ctx, data interface{}, message string, meta Meta) error {
	return c.JSON(fiber.Map{
		"data":         data,
		"message":      message,
		"current_page": meta.CurrentPage,
		"per_page":     meta.PerPage,
		"total":        meta.Total,
		"last_page":    meta.LastPage,
	})
}

// ValidationError carries the full list of failed field rules so the client
// sees every problem at once, not just the first.
type ValidationError struct {
	Status   int
	Messages []string
}

func (e *ValidationError) Error() string { return "validation error" }

func NewValidationError(status int, messages []string) error {
	return &ValidationError{Status: status, Messages: messages}
}

// ErrorHandler translates every handler error into the error envelope. It is
// installed as the Fiber app's ErrorHandler so nothing leaks past it.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(ve.Status).JSON(fiber.Map{
			"message":       "Validation error.",
			"errorMessages": ve.Messages,
		})
	}
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"message": e.Message,
		})
	}
	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error.",
	})
}
