package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// SQLiteConfigRepo implements ConfigRepo using a SQLite database.
// Configuration rows are append-only; the newest row wins.
type SQLiteConfigRepo struct {
	db db.DBTX
}

// NewSQLiteConfigRepo creates a new SQLiteConfigRepo.
func NewSQLiteConfigRepo(conn db.DBTX) *SQLiteConfigRepo {
	return &SQLiteConfigRepo{db: conn}
}

func (r *SQLiteConfigRepo) Current(ctx context.Context) (*domain.Configuration, error) {
	query := `SELECT id, max_shifts_total, max_shifts_per_period, required_doctors_per_day,
		freeze_days, created_at
		FROM configuration ORDER BY id DESC LIMIT 1`

	var c domain.Configuration
	var perPeriod sql.NullInt64
	var createdAt string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&c.ID,
		&c.MaxShiftsTotal,
		&perPeriod,
		&c.RequiredDoctorsPerDay,
		&c.FreezeDays,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("configuration: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning configuration: %w", err)
	}
	if perPeriod.Valid {
		v := int(perPeriod.Int64)
		c.MaxShiftsPerPeriod = &v
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}

func (r *SQLiteConfigRepo) Save(ctx context.Context, c *domain.Configuration) error {
	query := `INSERT INTO configuration (max_shifts_total, max_shifts_per_period,
		required_doctors_per_day, freeze_days, created_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		c.MaxShiftsTotal,
		nullableIntToValue(c.MaxShiftsPerPeriod),
		c.RequiredDoctorsPerDay,
		c.FreezeDays,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting configuration: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		c.ID = id
	}
	return nil
}
