package models

import "time"

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusRented    PropertyStatus = "rented"
	StatusSold      PropertyStatus = "sold"
)

type PropertyType string

const (
	TypeHouse      PropertyType = "house"
	TypeApartment  PropertyType = "apartment"
	TypeCommercial PropertyType = "commercial"
	TypeLand       PropertyType = "land"
)

func ValidStatus(s string) bool {
	switch PropertyStatus(s) {
	case StatusAvailable, StatusRented, StatusSold:
		return true
	}
	return false
}

func ValidPropertyType(t string) bool {
	switch PropertyType(t) {
	case TypeHouse, TypeApartment, TypeCommercial, TypeLand:
		return true
	}
	return false
}

type Property struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `json:"description"`
	Price        float64         `gorm:"not null" json:"price"`
	Area         float64         `gorm:"not null" json:"area"`
	Status       PropertyStatus  `gorm:"size:20;not null" json:"status"`
	PropertyType PropertyType    `gorm:"size:20;not null" json:"property_type"`
	Address      string          `gorm:"size:255" json:"address"`
	City         string          `gorm:"size:100" json:"city"`
	State        string          `gorm:"size:100" json:"state"`
	Zip          string          `gorm:"size:20" json:"zip"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	Images       []PropertyImage `json:"images,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
