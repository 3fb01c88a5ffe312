package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn is a DBTX that can open a transaction. pgx.Tx satisfies it too, in
// which case Begin creates a savepoint.
type Conn interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}
