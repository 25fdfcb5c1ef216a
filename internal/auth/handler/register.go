package handler

import (
	"errors"
	"net/http"

	"account-service/internal/auth/credentials"
	"account-service/internal/auth/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body carries no credentials at all.
		c.JSON(http.StatusBadRequest, gin.H{
			"message": credentials.ErrMissingFields.Error(),
		})
		return
	}

	user, err := h.accounts.Register(
		c.Request.Context(),
		req.Email,
		req.Password,
	)

	if err != nil {
		h.writeRegisterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

func (h *Handler) writeRegisterError(c *gin.Context, err error) {
	var providerErr *provider.Error

	switch {
	case errors.Is(err, credentials.ErrMissingFields),
		errors.Is(err, credentials.ErrEmailExists),
		errors.Is(err, credentials.ErrIdentityMissing):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.As(err, &providerErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": providerErr.Message})

	case errors.Is(err, credentials.ErrCreateAccount):
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})

	default:
		h.logger.Error("registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})
	}
}
