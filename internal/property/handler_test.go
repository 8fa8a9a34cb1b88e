package property

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"immo-backend/internal/auth"
	"immo-backend/internal/config"
	"immo-backend/internal/models"
	"immo-backend/internal/storage"
	"immo-backend/internal/testutil"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	cfg    *config.Config
	imgDir string
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenDB(t)
	cfg := testutil.Config()
	app := testutil.NewApp()
	imgDir := t.TempDir()
	store := storage.NewDisk(imgDir)

	api := app.Group("/api/v1")
	api.Use(auth.JWTMiddleware(cfg))
	api.Get("/properties/me", MyPropertiesHandler())
	api.Get("/properties/favorites", FavoritesHandler())
	api.Get("/properties/search", SearchPropertiesHandler())
	api.Get("/properties", ListPropertiesHandler())
	api.Post("/properties", CreatePropertyHandler())
	api.Get("/properties/:id", GetPropertyHandler())
	api.Put("/properties/:id", UpdatePropertyHandler())
	api.Delete("/properties/:id", DeletePropertyHandler())
	api.Post("/properties/:id/images", StoreImageHandler(store))
	api.Delete("/properties/:id/images/:imageId", DestroyImageHandler(store))
	api.Post("/properties/:id/favorite", AddFavoriteHandler())
	api.Delete("/properties/:id/favorite", RemoveFavoriteHandler())

	return &testEnv{app: app, db: db, cfg: cfg, imgDir: imgDir}
}

func (e *testEnv) createUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	u := models.User{Name: "Test User", Email: email, Password: "irrelevant"}
	require.NoError(t, e.db.Create(&u).Error)
	token, err := auth.GenerateToken(e.cfg.JWTSecret, &u)
	require.NoError(t, err)
	return &u, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (e *testEnv) seedProperty(t *testing.T, userID uint, mutate func(*models.Property)) *models.Property {
	t.Helper()
	p := models.Property{
		Title:        "Listing",
		Price:        100000,
		Area:         80,
		Status:       models.StatusAvailable,
		PropertyType: models.TypeApartment,
		City:         "Lyon",
		UserID:       userID,
	}
	if mutate != nil {
		mutate(&p)
	}
	require.NoError(t, e.db.Create(&p).Error)
	return &p
}

func TestPropertyOwnershipLifecycle(t *testing.T) {
	env := setup(t)
	owner, ownerTok := env.createUser(t, "owner@example.com")
	_, otherTok := env.createUser(t, "other@example.com")

	resp := env.request(t, http.MethodPost, "/api/v1/properties", ownerTok, fiber.Map{
		"title": "A", "price": 100, "area": 50,
		"status": "available", "property_type": "house",
		"address": "1 Main St", "city": "Paris",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data models.Property `json:"data"`
	}
	decode(t, resp, &created)
	require.Equal(t, owner.ID, created.Data.UserID)

	path := fmt.Sprintf("/api/v1/properties/%d", created.Data.ID)

	// A caller who is not the owner cannot mutate the property.
	resp = env.request(t, http.MethodPut, path, otherTok, fiber.Map{"title": "B"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var unchanged models.Property
	require.NoError(t, env.db.First(&unchanged, created.Data.ID).Error)
	require.Equal(t, "A", unchanged.Title)

	resp = env.request(t, http.MethodDelete, path, otherTok, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodPut, path, ownerTok, fiber.Map{"title": "B"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, path, ownerTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, path, ownerTok, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePropertyValidation(t *testing.T) {
	env := setup(t)
	_, tok := env.createUser(t, "u@example.com")

	resp := env.request(t, http.MethodPost, "/api/v1/properties", tok, fiber.Map{
		"status": "haunted", "property_type": "castle",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Message       string   `json:"message"`
		ErrorMessages []string `json:"errorMessages"`
	}
	decode(t, resp, &body)
	require.Equal(t, "Validation error.", body.Message)
	require.Contains(t, body.ErrorMessages, "The title field is required.")
	require.Contains(t, body.ErrorMessages, "The price field is required.")
	require.Contains(t, body.ErrorMessages, "The area field is required.")
	require.Contains(t, body.ErrorMessages, "The selected status is invalid.")
	require.Contains(t, body.ErrorMessages, "The selected property type is invalid.")
}

func TestListFiltersComposeByAnd(t *testing.T) {
	env := setup(t)
	u, tok := env.createUser(t, "u@example.com")

	env.seedProperty(t, u.ID, func(p *models.Property) {
		p.Status = models.StatusAvailable
		p.PropertyType = models.TypeHouse
	})
	env.seedProperty(t, u.ID, func(p *models.Property) {
		p.Status = models.StatusAvailable
		p.PropertyType = models.TypeApartment
	})
	env.seedProperty(t, u.ID, func(p *models.Property) {
		p.Status = models.StatusSold
		p.PropertyType = models.TypeHouse
	})

	resp := env.request(t, http.MethodGet, "/api/v1/properties?status=available&property_type=house", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []models.Property `json:"data"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Data, 1)
	for _, p := range body.Data {
		require.Equal(t, models.StatusAvailable, p.Status)
		require.Equal(t, models.TypeHouse, p.PropertyType)
	}
}

func TestListPriceRangeFilter(t *testing.T) {
	env := setup(t)
	u, tok := env.createUser(t, "u@example.com")

	for _, price := range []float64{50, 150, 250} {
		env.seedProperty(t, u.ID, func(p *models.Property) { p.Price = price })
	}

	resp := env.request(t, http.MethodGet, "/api/v1/properties?min_price=100&max_price=200", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []models.Property `json:"data"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, float64(150), body.Data[0].Price)
}

func TestListPagination(t *testing.T) {
	env := setup(t)
	u, tok := env.createUser(t, "u@example.com")

	for i := 0; i < 15; i++ {
		env.seedProperty(t, u.ID, nil)
	}

	var body struct {
		Data        []models.Property `json:"data"`
		CurrentPage int               `json:"current_page"`
		PerPage     int               `json:"per_page"`
		Total       int64             `json:"total"`
		LastPage    int               `json:"last_page"`
	}

	resp := env.request(t, http.MethodGet, "/api/v1/properties", tok, nil)
	decode(t, resp, &body)
	require.Len(t, body.Data, 10) // default limit
	require.Equal(t, 1, body.CurrentPage)
	require.Equal(t, int64(15), body.Total)
	require.Equal(t, 2, body.LastPage)

	resp = env.request(t, http.MethodGet, "/api/v1/properties?page=2", tok, nil)
	decode(t, resp, &body)
	require.Len(t, body.Data, 5)
	require.Equal(t, 2, body.CurrentPage)
}

func TestMyProperties(t *testing.T) {
	env := setup(t)
	u1, tok1 := env.createUser(t, "a@example.com")
	u2, _ := env.createUser(t, "b@example.com")

	env.seedProperty(t, u1.ID, nil)
	env.seedProperty(t, u2.ID, nil)

	resp := env.request(t, http.MethodGet, "/api/v1/properties/me", tok1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []models.Property `json:"data"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, u1.ID, body.Data[0].UserID)
}

func TestDeletePropertyRemovesImagesAndFavorites(t *testing.T) {
	env := setup(t)
	owner, ownerTok := env.createUser(t, "owner@example.com")
	_, fanTok := env.createUser(t, "fan@example.com")

	p := env.seedProperty(t, owner.ID, nil)
	require.NoError(t, env.db.Create(&models.PropertyImage{PropertyID: p.ID, ImageURL: "images/x.png"}).Error)

	resp := env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/properties/%d/favorite", p.ID), fanTok, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/properties/%d", p.ID), ownerTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var imgCount, favCount int64
	env.db.Model(&models.PropertyImage{}).Where("property_id = ?", p.ID).Count(&imgCount)
	env.db.Table("user_favorites").Where("property_id = ?", p.ID).Count(&favCount)
	require.Zero(t, imgCount)
	require.Zero(t, favCount)
}
