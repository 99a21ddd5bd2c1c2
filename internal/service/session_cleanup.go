package service

import (
	"time"

	"spongkj/contacts-api/internal/model"
	"spongkj/contacts-api/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type staleSession struct {
	ID    string
	Token *string
}

// SessionCleanup periodically clears stored session tokens that no
// longer pass cryptographic validation, so the users table doesn't
// accumulate tokens that the auth middleware would reject anyway.
func SessionCleanup(t time.Duration, db *gorm.DB, tokens *security.TokenIssuer) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Session cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			var sessions []staleSession

			err := db.
				Model(model.User{}).
				Where("token IS NOT NULL").
				Select("id", "token").
				Find(&sessions).
				Error
			if err != nil {
				zap.L().Error("Failed to query db for stored sessions", zap.Error(err))
				continue
			}

			var toClear []string

			for _, s := range sessions {
				if s.Token == nil {
					continue
				}

				if _, err := tokens.Validate(*s.Token); err != nil {
					toClear = append(toClear, s.ID)
				}
			}

			if len(toClear) == 0 {
				continue
			}

			zap.L().Debug("Clearing expired sessions", zap.Int("count", len(toClear)))

			err = db.
				Model(model.User{}).
				Where("id IN ?", toClear).
				Update("token", nil).
				Error
			if err != nil {
				zap.L().Error("Failed to clear expired sessions", zap.Error(err))
			}
		}
	}()
}
