package main

import (
	"log"

	"immo-backend/internal/config"
	"immo-backend/internal/usersvc"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadUsers()

	db, err := gorm.Open(postgres.Open(cfg.UsersDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to users database: %v", err)
	}

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Get("/api/users", usersvc.Handler(db))

	log.Println("User service listening on port", cfg.UsersPort)
	if err := app.Listen(":" + cfg.UsersPort); err != nil {
		log.Fatal(err)
	}
}
