package db

import (
	"context"
	"database/sql"
)

// DBTX is what a repository needs to read and write roster tables. Both the
// pooled handle and an open transaction satisfy it, so the same repository
// type serves standalone reads and the writes inside a WithinTx callback.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
