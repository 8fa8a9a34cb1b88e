// Package testutil wires handler tests to an in-memory sqlite database and a
// Fiber app configured like the real server.
package testutil

import (
	"database/sql"
	"math"
	"sync"
	"testing"

	"immo-backend/internal/config"
	"immo-backend/internal/database"
	"immo-backend/internal/response"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const driverName = "sqlite3_immo"

var registerOnce sync.Once

// registerDriver adds the trig functions the haversine predicate needs;
// sqlite does not ship them by default.
func registerDriver() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := conn.RegisterFunc("acos", math.Acos, true); err != nil {
				return err
			}
			if err := conn.RegisterFunc("cos", math.Cos, true); err != nil {
				return err
			}
			if err := conn.RegisterFunc("sin", math.Sin, true); err != nil {
				return err
			}
			return conn.RegisterFunc("radians", func(deg float64) float64 {
				return deg * math.Pi / 180
			}, true)
		},
	})
}

// OpenDB opens a unique in-memory database for the test, migrates the schema
// and installs it as the global connection handlers use.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	registerOnce.Do(registerDriver)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Dialector{DriverName: driverName, DSN: dsn}, &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
	return db
}

// NewApp builds a Fiber app with the production JSON codec and error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: response.ErrorHandler,
	})
}

// Config returns a config good enough for token issuance in tests.
func Config() *config.Config {
	return &config.Config{
		JWTSecret: "0123456789abcdef0123456789abcdef",
	}
}
