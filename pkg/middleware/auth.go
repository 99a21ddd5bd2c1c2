package middleware

import (
	"net/http"
	"strings"

	"spongkj/contacts-api/internal/model"
	"spongkj/contacts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware resolves the Authorization header into an
// authenticated user. A token passes only when it is validly signed,
// belongs to an existing user and equals the session token stored on
// that user's record. The last check is what makes logout and login
// rotation revoke older tokens before their cryptographic expiry.
func NewAuthMiddleware(d *gorm.DB, tokens *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, bearerPrefix)

		userID, err := tokens.Validate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized",
			})
			return
		}

		var user model.User

		err = d.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				zap.L().Error("Failed to look up token owner", zap.Error(err), zap.String("requestID", requestID))
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized",
			})
			return
		}

		// A validly signed token that was superseded by a newer login
		// or cleared by logout is rejected here
		if user.Token == nil || *user.Token != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized",
			})
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", &user)
		c.Next()
	}
}
