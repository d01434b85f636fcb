package database

import (
	"context"
	"fmt"
	"painel/src/config"
	aws_handler "painel/src/utils/aws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResolveDSN returns the configured connection string, reading it from AWS
// Secrets Manager when databases.sql.secretName is set.
func ResolveDSN(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.Databases.SQL.SecretName == "" {
		return cfg.Databases.SQL.DSN(), nil
	}
	handler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return "", fmt.Errorf("creating aws session: %w", err)
	}
	dsn, err := handler.SecretManager.GetSecretValue(ctx, cfg.Databases.SQL.SecretName)
	if err != nil {
		return "", fmt.Errorf("reading secret %s: %w", cfg.Databases.SQL.SecretName, err)
	}
	return dsn, nil
}

func SetupDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dsn, err := ResolveDSN(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Connect(ctx, dsn, cfg.Databases.SQL.MaxConns)
}

// Connect opens a pool on dsn and pings it.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
