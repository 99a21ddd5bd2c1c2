// Package contact contains the owner-gated contact endpoints
package contact

import (
	"net/http"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fetchOwned loads a contact by ID and enforces that userID owns it.
// Absence and foreign ownership are distinct failures: 404 reveals
// nothing, 403 deliberately reveals existence, matching the wire
// contract. When nil is returned the response has been written.
func fetchOwned(c *gin.Context, d *internal.Deps, contactID, userID string) *model.Contact {
	requestID := c.MustGet("requestID").(string)

	if contactID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "No contact ID provided",
		})
		return nil
	}

	var contact model.Contact

	err := d.DB.Where("id = ?", contactID).First(&contact).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Contact not found",
			})
			return nil
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to fetch contact", zap.Error(err), zap.String("requestID", requestID))
		return nil
	}

	if contact.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "Access denied",
		})
		return nil
	}

	return &contact
}
