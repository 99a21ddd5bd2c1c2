// Package model defines database models
package model

import "time"

const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Token holds the single currently valid session token. Login
	// overwrites it, logout clears it. A signed token that doesn't
	// match this column is rejected by the auth middleware.
	Token *string `json:"-"`

	Verified bool `gorm:"default:false" json:"verified"`

	// VerificationToken is present while the account is unverified
	// and cleared in the same update that sets Verified.
	VerificationToken *string `gorm:"uniqueIndex" json:"-"`

	Subscription string `gorm:"default:starter" json:"subscription"`
	AvatarURL    string `json:"avatarURL"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
