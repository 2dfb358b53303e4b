// Package iodb implements the db.Operator interface. This is an impure
// I/O package wiring GORM onto a pgx connection pool for PostgreSQL, or
// onto a SQLite file for local use and tests.
package iodb

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/watertrack/jjmd/pkg/config"
	"github.com/watertrack/jjmd/pkg/db"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormOperator implements db.Operator. For PostgreSQL the GORM handle
// is opened from a pgx pool through the stdlib bridge so pool sizing
// stays under our control.
type gormOperator struct {
	pool *pgxpool.Pool
	db   *gorm.DB
}

// NewOperator creates a new database operator (without connecting).
func NewOperator() db.Operator {
	return &gormOperator{}
}

// Connect opens the store selected by cfg.Driver.
func (g *gormOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	switch cfg.Driver {
	case "postgres":
		return g.connectPostgres(ctx, cfg)
	case "sqlite":
		return g.connectSQLite(cfg)
	default:
		return UnknownDriverError(cfg.Driver)
	}
}

func (g *gormOperator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	g.pool = pool
	g.db = gormDB
	return nil
}

func (g *gormOperator) connectSQLite(cfg *config.DatabaseConfig) error {
	// foreign_keys pragma keeps the declared ON DELETE CASCADE
	// constraints live in SQLite.
	dsn := cfg.SQLitePath + "?_pragma=foreign_keys(1)"

	gormDB, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return SQLiteOpenError(cfg.SQLitePath, err)
	}

	g.db = gormDB
	return nil
}

// gormConfig is shared by both drivers. TranslateError maps
// driver-specific uniqueness violations onto gorm.ErrDuplicatedKey so
// conflict detection works the same against PostgreSQL and SQLite.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// Close releases the database connection.
func (g *gormOperator) Close() error {
	if g.pool != nil {
		g.pool.Close()
		g.pool = nil
		g.db = nil
		return nil
	}
	if g.db != nil {
		sqlDB, err := g.db.DB()
		if err != nil {
			return err
		}
		g.db = nil
		return sqlDB.Close()
	}
	return nil
}

// DB returns the GORM handle, or nil before Connect.
func (g *gormOperator) DB() *gorm.DB {
	return g.db
}

// Pool returns the pgx pool for PostgreSQL-specific operations; nil for
// the sqlite driver.
func (g *gormOperator) Pool() *pgxpool.Pool {
	return g.pool
}
