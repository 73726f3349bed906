// Package database owns the PostgreSQL connection pool shared by all services.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/bizdesk/pkg/logger"
)

// PoolOptions tunes the pgx pool. Zero values keep the pgx defaults.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Database wraps a pgxpool.Pool. Repositories use Pool (through Queryer);
// Watermill and goose use the database/sql view returned by DB.
type Database struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
	log   logger.Logger
}

// BuildPoolConfig parses dbURL and applies opts on top of it.
func BuildPoolConfig(dbURL string, opts PoolOptions) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("database: parse config: %w", err)
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		poolCfg.MinConns = opts.MinConns
	}
	if opts.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}
	return poolCfg, nil
}

// NewPool connects to PostgreSQL and verifies connectivity with a 5s deadline.
func NewPool(ctx context.Context, dbURL string, opts PoolOptions, log logger.Logger) (*Database, error) {
	poolCfg, err := BuildPoolConfig(dbURL, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("database: create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	log.Info("database pool ready",
		"max_conns", poolCfg.MaxConns,
		"min_conns", poolCfg.MinConns,
	)

	return &Database{
		pool:  pool,
		sqlDB: stdlib.OpenDBFromPool(pool),
		log:   log,
	}, nil
}

// Pool returns the underlying pgx pool.
func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}

// DB returns a database/sql handle sharing the pgx pool.
func (d *Database) DB() *sql.DB {
	return d.sqlDB
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close releases the sql.DB view and then the pool.
func (d *Database) Close() {
	if d.sqlDB != nil {
		if err := d.sqlDB.Close(); err != nil {
			d.log.Warn("database: close sql view", "error", err)
		}
	}
	d.pool.Close()
}
