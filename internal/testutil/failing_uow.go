package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/rota/internal/db"
)

// FailOnNthExecUoW runs the callback in a real transaction but returns Err
// from the FailOn-th write. Reads are never counted. When Match is set only
// writes whose SQL contains Match are counted, so a test can target e.g. the
// first "INSERT INTO assignments" without knowing how many writes precede it.
//
// Writes made before the failure are rolled back with the rest of the
// transaction, which is what rollback tests assert on.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error

	seen atomic.Int32
}

// Writes reports how many counted writes the last transactions attempted,
// including the one that failed.
func (u *FailOnNthExecUoW) Writes() int {
	return int(u.seen.Load())
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.seen.Store(0)

	if fnErr := fn(ctx, &failingTx{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		if f.uow.seen.Add(1) == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
