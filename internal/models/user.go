package models

import "time"

type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Email       string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string `gorm:"size:255;not null" json:"-"`
	NumberPhone string `gorm:"size:20" json:"number_phone"`
	// TokenVersion is embedded in every issued JWT; logout bumps it, which
	// invalidates all outstanding tokens at once.
	TokenVersion uint       `gorm:"not null;default:0" json:"-"`
	Properties   []Property `json:"properties,omitempty"`
	Favorites    []Property `gorm:"many2many:user_favorites" json:"favorites,omitempty"`
	Roles        []Role     `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Agencies     []Agency   `gorm:"many2many:agency_user" json:"agencies,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
