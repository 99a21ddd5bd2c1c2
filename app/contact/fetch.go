package contact

import (
	"net/http"

	"spongkj/contacts-api/internal"

	"github.com/gin-gonic/gin"
)

func ContactFetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	contact := fetchOwned(c, d, c.Param("contactId"), userID)
	if contact == nil {
		return
	}

	c.JSON(http.StatusOK, contact)
}
