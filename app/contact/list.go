package contact

import (
	"net/http"
	"strconv"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxListLimit = 250

// ContactList returns the requester's contacts, paginated, optionally
// narrowed to favorites. The query itself is scoped to the owner, no
// per-row ownership check happens afterwards.
func ContactList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid page provided",
		})
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > maxListLimit {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid limit provided",
		})
		return
	}

	query := d.DB.Where("owner_id = ?", userID)

	if favStr, set := c.GetQuery("favorite"); set {
		favorite, err := strconv.ParseBool(favStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid favorite filter provided",
			})
			return
		}

		query = query.Where("favorite = ?", favorite)
	}

	contacts := []model.Contact{}

	err = query.
		Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&contacts).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})

		zap.L().Error("Failed to list contacts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
