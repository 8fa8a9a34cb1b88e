// Package usersvc is the auxiliary user service: a single endpoint over a
// secondary relational store that lazily creates and seeds a users table,
// then returns its contents. It shares nothing with the main API.
package usersvc

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SeedUser struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
}

func (SeedUser) TableName() string { return "users" }

var seedRows = []SeedUser{
	{Name: "User 1", Email: "user1@example.com"},
	{Name: "User 2", Email: "user2@example.com"},
	{Name: "User 3", Email: "user3@example.com"},
	{Name: "User 4", Email: "user4@example.com"},
	{Name: "User 5", Email: "user5@example.com"},
}

// GET /api/users
//
// First call creates and seeds the table; every call returns all rows as a
// bare JSON array. No auth, no envelope.
func Handler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !db.Migrator().HasTable(&SeedUser{}) {
			if err := db.AutoMigrate(&SeedUser{}); err != nil {
				log.Println("could not create users table:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Server error")
			}
			rows := make([]SeedUser, len(seedRows))
			copy(rows, seedRows)
			if err := db.Create(&rows).Error; err != nil {
				log.Println("could not seed users table:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Server error")
			}
		}

		var users []SeedUser
		if err := db.Find(&users).Error; err != nil {
			log.Println("could not read users table:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Server error")
		}

		return c.JSON(users)
	}
}
