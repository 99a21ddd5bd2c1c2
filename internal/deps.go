package internal

import (
	"spongkj/contacts-api/internal/service"
	"spongkj/contacts-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB      *gorm.DB
	Argon   *security.ArgonHash
	Tokens  *security.TokenIssuer
	Mailer  service.Mailer
	Avatars service.AvatarStore
}
