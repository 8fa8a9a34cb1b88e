// Package filter provides composable query-narrowing stages. Each handler
// declares its own ordered stage list per request; a stage whose query
// parameter is absent (or unparsable) is a pass-through, and all stages
// compose by logical AND.
package filter

import (
	"strconv"

	"immo-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Stage func(c *fiber.Ctx, q *gorm.DB) *gorm.DB

func Apply(c *fiber.Ctx, q *gorm.DB, stages ...Stage) *gorm.DB {
	for _, s := range stages {
		q = s(c, q)
	}
	return q
}

// Equal narrows on exact column equality.
func Equal(param, column string) Stage {
	return func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
		if v := c.Query(param); v != "" {
			return q.Where(column+" = ?", v)
		}
		return q
	}
}

// Like narrows on a case-sensitive substring match.
func Like(param, column string) Stage {
	return func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
		if v := c.Query(param); v != "" {
			return q.Where(column+" LIKE ?", "%"+v+"%")
		}
		return q
	}
}

// Min narrows on column >= value for a numeric parameter.
func Min(param, column string) Stage {
	return func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
		if v, ok := queryFloat(c, param); ok {
			return q.Where(column+" >= ?", v)
		}
		return q
	}
}

// Max narrows on column <= value for a numeric parameter.
func Max(param, column string) Stage {
	return func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
		if v, ok := queryFloat(c, param); ok {
			return q.Where(column+" <= ?", v)
		}
		return q
	}
}

// haversineSQL computes the great-circle distance in kilometers between the
// request point and each row's latitude/longitude.
const haversineSQL = "(6371 * acos(cos(radians(?)) * cos(radians(latitude)) * " +
	"cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude)))) < ?"

// WithinRadius includes rows whose haversine distance to the request point is
// strictly below the radius (kilometers). Applied only when all three
// parameters are present; otherwise a pass-through.
func WithinRadius(latParam, lonParam, radiusParam string) Stage {
	return func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
		lat, okLat := queryFloat(c, latParam)
		lon, okLon := queryFloat(c, lonParam)
		radius, okRad := queryFloat(c, radiusParam)
		if !okLat || !okLon || !okRad {
			return q
		}
		return q.Where(haversineSQL, lat, lon, lat, radius)
	}
}

// Preload eager-loads the named associations.
func Preload(assocs ...string) Stage {
	return func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
		for _, a := range assocs {
			q = q.Preload(a)
		}
		return q
	}
}

// Paginate runs the narrowed query with page/limit from the request (limit
// defaults to 10) and fills dest with the page rows.
func Paginate(c *fiber.Ctx, q *gorm.DB, dest interface{}) (response.Meta, error) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return response.Meta{}, err
	}

	if err := q.Offset((page - 1) * limit).Limit(limit).Find(dest).Error; err != nil {
		return response.Meta{}, err
	}

	lastPage := int((total + int64(limit) - 1) / int64(limit))
	if lastPage < 1 {
		lastPage = 1
	}

	return response.Meta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

func queryFloat(c *fiber.Ctx, param string) (float64, bool) {
	raw := c.Query(param)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
