package contact

import (
	"net/http"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type favoriteBody struct {
	Favorite *bool `json:"favorite"`
}

func ContactFavorite(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data favoriteBody
	if err := c.ShouldBind(&data); err != nil || data.Favorite == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing field favorite",
		})
		return
	}

	contact := fetchOwned(c, d, c.Param("contactId"), userID)
	if contact == nil {
		return
	}

	r := d.DB.Model(model.Contact{}).
		Where("id = ? AND owner_id = ?", contact.ID, userID).
		Update("favorite", *data.Favorite)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to update favorite", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if r.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Contact not found",
		})
		return
	}

	contact.Favorite = *data.Favorite

	c.JSON(http.StatusOK, contact)
}
