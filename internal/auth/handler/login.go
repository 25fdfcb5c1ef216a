package handler

import (
	"errors"
	"net/http"

	"account-service/internal/auth/credentials"
	"account-service/internal/auth/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": credentials.ErrMissingFields.Error(),
		})
		return
	}

	session, err := h.accounts.Authenticate(
		c.Request.Context(),
		req.Email,
		req.Password,
	)

	if err != nil {
		var providerErr *provider.Error
		switch {
		case errors.Is(err, credentials.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.As(err, &providerErr):
			c.JSON(http.StatusUnauthorized, gin.H{"message": providerErr.Message})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}
