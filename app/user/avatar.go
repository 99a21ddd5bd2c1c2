package user

import (
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var allowedAvatarExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// UserAvatar stores an uploaded avatar image and points the account
// at it. The object key is derived from the user ID, so a re-upload
// replaces the previous avatar.
func UserAvatar(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "missing required avatar file",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !slices.Contains(allowedAvatarExts, ext) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "unsupported avatar file type",
		})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to open uploaded avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	contentType := header.Header.Get("Content-Type")

	avatarURL, err := d.Avatars.Save(c.Request.Context(), user.ID+ext, f, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to store avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Update("avatar_url", avatarURL).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to update avatar URL", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"avatarURL": avatarURL,
	})
}
