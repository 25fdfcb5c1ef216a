package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Me returns the caller's user record. The auth middleware has already
// verified the bearer token and attached the identity id.
func (h *Handler) Me(c *gin.Context) {
	identityID := c.GetString("userID")

	user, err := h.accounts.Profile(c.Request.Context(), identityID)
	if err != nil {
		h.logger.Error("profile lookup failed",
			zap.String("identity_id", identityID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})
		return
	}

	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
