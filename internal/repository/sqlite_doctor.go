package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// SQLiteDoctorRepo implements DoctorRepo using a SQLite database.
type SQLiteDoctorRepo struct {
	db db.DBTX
}

// NewSQLiteDoctorRepo creates a new SQLiteDoctorRepo.
func NewSQLiteDoctorRepo(conn db.DBTX) *SQLiteDoctorRepo {
	return &SQLiteDoctorRepo{db: conn}
}

const doctorColumns = `id, name, email, active, created_at, updated_at`

func (r *SQLiteDoctorRepo) Create(ctx context.Context, d *domain.Doctor) error {
	query := `INSERT INTO doctors (` + doctorColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Email,
		boolToInt(d.Active),
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting doctor: %w", err)
	}
	return nil
}

func (r *SQLiteDoctorRepo) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = ?`
	return r.scanDoctor(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteDoctorRepo) GetByName(ctx context.Context, name string) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE name = ?`
	return r.scanDoctor(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteDoctorRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*domain.Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating doctors: %w", err)
	}
	return doctors, nil
}

func (r *SQLiteDoctorRepo) SetActive(ctx context.Context, id string, active bool, now time.Time) error {
	query := `UPDATE doctors SET active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, boolToInt(active), formatTime(now), id)
	if err != nil {
		return fmt.Errorf("updating doctor active flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated doctor: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("doctor %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteDoctorRepo) scanDoctor(row rowScanner) (*domain.Doctor, error) {
	var d domain.Doctor
	var active int
	var createdAt, updatedAt string
	if err := row.Scan(&d.ID, &d.Name, &d.Email, &active, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("doctor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning doctor: %w", err)
	}
	d.Active = intToBool(active)

	var err error
	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &d, nil
}
