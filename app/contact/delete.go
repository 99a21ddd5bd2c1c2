package contact

import (
	"net/http"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ContactDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	contact := fetchOwned(c, d, c.Param("contactId"), userID)
	if contact == nil {
		return
	}

	err := d.DB.
		Where("id = ? AND owner_id = ?", contact.ID, userID).
		Delete(model.Contact{}).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to delete contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact deleted",
	})
}
