package auth

import (
	"strings"

	"immo-backend/internal/config"
	"immo-backend/internal/database"
	"immo-backend/internal/models"
	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	NumberPhone string `json:"number_phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var msgs []string
		if body.Name == "" {
			msgs = append(msgs, "The name field is required.")
		}
		if body.Email == "" {
			msgs = append(msgs, "The email field is required.")
		} else if !strings.Contains(body.Email, "@") {
			msgs = append(msgs, "The email must be a valid email address.")
		} else {
			var count int64
			database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
			if count > 0 {
				msgs = append(msgs, "The email has already been taken.")
			}
		}
		if body.Password == "" {
			msgs = append(msgs, "The password field is required.")
		} else if len(body.Password) < 8 {
			msgs = append(msgs, "The password must be at least 8 characters.")
		}
		if len(body.NumberPhone) > 20 {
			msgs = append(msgs, "The number phone may not be greater than 20 characters.")
		}
		if len(msgs) > 0 {
			return response.NewValidationError(fiber.StatusUnprocessableEntity, msgs)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:        body.Name,
			Email:       body.Email,
			Password:    string(hash),
			NumberPhone: body.NumberPhone,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not issue token")
		}

		return response.Success(c, fiber.StatusCreated, fiber.Map{
			"token": token,
			"user":  user,
		}, "User registered successfully.")
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not issue token")
		}

		return response.Success(c, fiber.StatusOK, fiber.Map{
			"token": token,
			"user":  user,
		}, "User logged in successfully.")
	}
}
