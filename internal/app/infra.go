package app

import (
	"context"
	"database/sql"

	"account-service/internal/config"
	"account-service/internal/db"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Infra struct {
	DB *db.DB
}

func setupInfra(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready")

	return &Infra{
		DB: &db.DB{DB: sqlDB},
	}, nil
}
