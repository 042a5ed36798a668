package database

import (
	"context"
	"database/sql"
)

// Querier is the subset of DB that repositories need.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// DB is an open connection pool. SQLDB exposes the same pool through
// database/sql for tooling that needs it.
type DB interface {
	Querier

	Ping(ctx context.Context) error
	Close() error
	SQLDB() *sql.DB
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

type Row interface {
	Scan(dest ...any) error
}
