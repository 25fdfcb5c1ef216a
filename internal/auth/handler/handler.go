package handler

import (
	"context"

	"account-service/internal/auth"
	"account-service/internal/auth/credentials"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountService is the slice of the credentials service the handlers need.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*credentials.RegisteredUser, error)
	Authenticate(ctx context.Context, email, password string) (*auth.Session, error)
	Profile(ctx context.Context, identityID string) (*credentials.RegisteredUser, error)
}

type Handler struct {
	accounts AccountService
	logger   *zap.Logger
}

func NewHandler(accounts AccountService, logger *zap.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		logger:   logger,
	}
}

// RegisterRoutes mounts the public auth endpoints. OPTIONS preflights are
// answered by the CORS middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth", h.Register)
	r.POST("/auth/login", h.Login)
}
