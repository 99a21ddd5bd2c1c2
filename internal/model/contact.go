package model

import "time"

type Contact struct {
	ID string `gorm:"primaryKey" json:"id"`

	// OwnerID never changes after creation. Every read and mutation
	// checks it against the authenticated user.
	OwnerID string `gorm:"index;not null" json:"owner"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Favorite bool   `gorm:"default:false" json:"favorite"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
