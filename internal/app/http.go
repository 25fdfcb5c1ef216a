package app

import (
	"context"
	"net/http"

	"account-service/internal/account"
	"account-service/internal/auth/credentials"
	"account-service/internal/auth/handler"
	"account-service/internal/auth/provider/keycloak"
	"account-service/internal/config"
	"account-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupHTTP(
	ctx context.Context,
	cfg config.Config,
	logger *zap.Logger,
) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	store := account.NewPostgresStore(infra.DB)

	idp, err := keycloak.New(ctx, keycloak.Config{
		Issuer:       cfg.KeycloakIssuer,
		ClientID:     cfg.KeycloakClientID,
		ClientSecret: cfg.KeycloakClientSecret,
		AdminURL:     cfg.KeycloakAdminURL,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	accounts := credentials.NewService(store, idp, logger)
	authHandler := handler.NewHandler(accounts, logger)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})
	}))
	router.Use(middleware.CORS())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.RequireAuth(idp))

	api.GET("/me", authHandler.Me)

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
