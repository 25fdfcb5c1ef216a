package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	KeycloakIssuer       string `env:"KEYCLOAK_ISSUER"`
	KeycloakClientID     string `env:"KEYCLOAK_CLIENT_ID"`
	KeycloakClientSecret string `env:"KEYCLOAK_CLIENT_SECRET"`

	// KeycloakAdminURL overrides the admin API base derived from the issuer.
	KeycloakAdminURL string `env:"KEYCLOAK_ADMIN_URL"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
