package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PoolSettings tune the database/sql connection pool.
type PoolSettings struct {
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Open connects to PostgreSQL through the pgx stdlib driver using a full
// connection string (e.g. a Supabase pooler URL) and verifies connectivity
// with a short ping. On a ping failure the handle is still returned alongside
// the error: connections are lazy, so the store can recover once the database
// comes back, and the caller may choose to run degraded in the meantime.
func Open(dsn string, pool PoolSettings) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSec) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return db, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
