package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	MaxConns          = 10
	MinConns          = 2
	MaxConnLifetime   = 10 * time.Minute
	MaxConnIdleTime   = 5 * time.Minute
	HealthCheckPeriod = time.Minute
)

// NewPostgresPool opens the pool every box mutation draws its transaction from.
func NewPostgresPool(ctx context.Context, databaseURL string, log logrus.FieldLogger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing postgres config: %w", err)
	}

	// Configure the pool
	config.MaxConns = MaxConns
	config.MinConns = MinConns
	config.MaxConnLifetime = MaxConnLifetime
	config.MaxConnIdleTime = MaxConnIdleTime
	config.HealthCheckPeriod = HealthCheckPeriod

	// Create the pool with config
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("error creating postgres pool: %w", err)
	}

	// Ping the pool to ensure connection is established
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging postgres pool: %w", err)
	}

	log.WithFields(logrus.Fields{
		"host":      config.ConnConfig.Host,
		"database":  config.ConnConfig.Database,
		"max_conns": MaxConns,
		"min_conns": MinConns,
	}).Info("postgres pool created")

	return pool, nil
}
