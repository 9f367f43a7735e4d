package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertDoctor(ctx context.Context, tx db.DBTX, id, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO doctors (id, name, created_at, updated_at) VALUES (?, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		id, name)
	return err
}

// doctorName reads a doctor's name through a read-only transaction.
func doctorName(uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	var name string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT name FROM doctors WHERE id = ?`, id).Scan(&name); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return name, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertDoctor(ctx, tx, "d1", "Dr. A")
	})
	require.NoError(t, err)

	name, found := doctorName(uow, "d1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "Dr. A", name)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertDoctor(ctx, tx, "d2", "Dr. B"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	_, found := doctorName(uow, "d2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertDoctor(ctx, tx, "d3", "Dr. C")
			panic("boom")
		})
	})

	_, found := doctorName(uow, "d3")
	assert.False(t, found, "row should not exist after panic rollback")
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertDoctor(ctx, tx, "d4", "Dr. D"); err != nil {
			return err
		}
		return insertDoctor(ctx, tx, "d5", "Dr. D")
	})
	require.Error(t, err, "duplicate name should fail")

	_, found := doctorName(uow, "d4")
	assert.False(t, found, "first insert must be rolled back with the failing one")
}
