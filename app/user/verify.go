package user

import (
	"net/http"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserVerify consumes a single-use verification token. Marking the
// account verified and clearing the token happen in one update, so a
// consumed token can never be observed alongside verified = false.
func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("verificationToken")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "No verification token provided",
		})
		return
	}

	var user model.User

	err := d.DB.
		Where("verification_token = ?", token).
		First(&user).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "User not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to fetch user by verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(model.User{}).
		Where("id = ? AND verification_token = ?", user.ID, token).
		Updates(map[string]any{
			"verified":           true,
			"verification_token": nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to mark user as verified", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification successful",
	})
}
