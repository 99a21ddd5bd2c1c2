package contact

import (
	"net/http"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type updateBody struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Favorite *bool   `json:"favorite"`
}

func ContactUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data updateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
		})
		return
	}

	updates := map[string]any{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Email != nil {
		updates["email"] = *data.Email
	}
	if data.Phone != nil {
		updates["phone"] = *data.Phone
	}
	if data.Favorite != nil {
		updates["favorite"] = *data.Favorite
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing fields",
		})
		return
	}

	contact := fetchOwned(c, d, c.Param("contactId"), userID)
	if contact == nil {
		return
	}

	// The owner condition makes the write conditional on ownership
	// still holding, closing the gap between the check above and the
	// update. The owner column itself is never part of the updates.
	r := d.DB.Model(model.Contact{}).
		Where("id = ? AND owner_id = ?", contact.ID, userID).
		Updates(updates)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to update contact", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	// Zero rows means the contact vanished between the check and the
	// write
	if r.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Contact not found",
		})
		return
	}

	var updated model.Contact
	err := d.DB.Where("id = ? AND owner_id = ?", contact.ID, userID).First(&updated).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Contact not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to fetch updated contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, updated)
}
