package user

import (
	"net/http"
	"strings"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
		})
		return
	}

	if data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Email field can't be empty",
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Password field can't be empty",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(data.Email))

	var user model.User

	err := d.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
			})

			zap.L().Error("Failed to fetch user by email", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		// Deliberately the same message as a bad password so the
		// endpoint can't be used to probe which emails are registered
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Email or password is wrong",
		})
		return
	}

	if !user.Verified {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Email is not verified",
		})
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Email or password is wrong",
		})
		return
	}

	authToken, err := d.Tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to issue session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Overwriting the stored token invalidates any previous session,
	// there is at most one active session per user
	err = d.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Update("token", authToken).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to store session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": authToken,
		"user": gin.H{
			"email":        user.Email,
			"subscription": user.Subscription,
		},
	})
}
