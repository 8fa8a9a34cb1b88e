package main

import (
	"log"
	"strings"

	"immo-backend/internal/agency"
	"immo-backend/internal/auth"
	"immo-backend/internal/config"
	"immo-backend/internal/database"
	"immo-backend/internal/permission"
	"immo-backend/internal/property"
	"immo-backend/internal/response"
	"immo-backend/internal/role"
	"immo-backend/internal/storage"
	"immo-backend/internal/user"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: response.ErrorHandler,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	store := storage.NewDisk(cfg.ImagePath)

	api := app.Group("/api/v1")

	// Public auth
	api.Post("/register", auth.RegisterHandler(cfg))
	api.Post("/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	// Agencies
	protected.Get("/agencies", agency.ListAgenciesHandler())
	protected.Post("/agencies", agency.CreateAgencyHandler())
	protected.Get("/agencies/:id", agency.GetAgencyHandler())
	protected.Put("/agencies/:id", agency.UpdateAgencyHandler())
	protected.Delete("/agencies/:id", agency.DeleteAgencyHandler())

	// Properties. Static paths are registered before /properties/:id so they
	// are not swallowed by the id parameter.
	protected.Get("/properties/me", property.MyPropertiesHandler())
	protected.Get("/properties/favorites", property.FavoritesHandler())
	protected.Get("/properties/search", property.SearchPropertiesHandler())
	protected.Get("/properties", property.ListPropertiesHandler())
	protected.Post("/properties", property.CreatePropertyHandler())
	protected.Get("/properties/:id", property.GetPropertyHandler())
	protected.Put("/properties/:id", property.UpdatePropertyHandler())
	protected.Delete("/properties/:id", property.DeletePropertyHandler())
	protected.Post("/properties/:id/images", property.StoreImageHandler(store))
	protected.Delete("/properties/:id/images/:imageId", property.DestroyImageHandler(store))
	protected.Post("/properties/:id/favorite", property.AddFavoriteHandler())
	protected.Delete("/properties/:id/favorite", property.RemoveFavoriteHandler())

	// Roles & permissions
	protected.Get("/roles", role.ListRolesHandler())
	protected.Post("/roles", role.CreateRoleHandler())
	protected.Get("/roles/:id", role.GetRoleHandler())
	protected.Put("/roles/:id", role.UpdateRoleHandler())
	protected.Delete("/roles/:id", role.DeleteRoleHandler())
	protected.Get("/roles/:id/permissions", role.ListRolePermissionsHandler())
	protected.Post("/roles/:id/permissions", role.AddPermissionHandler())

	protected.Get("/permissions", permission.ListPermissionsHandler())
	protected.Post("/permissions", permission.CreatePermissionHandler())
	protected.Get("/permissions/:id", permission.GetPermissionHandler())
	protected.Put("/permissions/:id", permission.UpdatePermissionHandler())
	protected.Delete("/permissions/:id", permission.DeletePermissionHandler())

	// Users
	protected.Get("/users", user.ListUsersHandler())
	protected.Get("/users/:id", user.GetUserHandler())
	protected.Put("/users/:id", user.UpdateUserHandler())
	protected.Delete("/users/:id", user.DeleteUserHandler())
	protected.Post("/users/:id/assign-role", user.AssignRoleHandler())
	protected.Post("/users/:id/revoke-role", user.RevokeRoleHandler())

	protected.Post("/logout", user.LogoutHandler())
	protected.Get("/me", user.MeHandler())

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
