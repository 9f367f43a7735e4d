package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// SQLiteAvailabilityRepo implements AvailabilityRepo using a SQLite database.
type SQLiteAvailabilityRepo struct {
	db db.DBTX
}

// NewSQLiteAvailabilityRepo creates a new SQLiteAvailabilityRepo.
func NewSQLiteAvailabilityRepo(conn db.DBTX) *SQLiteAvailabilityRepo {
	return &SQLiteAvailabilityRepo{db: conn}
}

// Add records the dates as available. Dates already on file are ignored.
func (r *SQLiteAvailabilityRepo) Add(ctx context.Context, doctorID string, dates []string) error {
	query := `INSERT OR IGNORE INTO availability (doctor_id, date) VALUES (?, ?)`
	for _, date := range dates {
		if _, err := r.db.ExecContext(ctx, query, doctorID, date); err != nil {
			return fmt.Errorf("inserting availability %s: %w", date, err)
		}
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) ListByDoctor(ctx context.Context, doctorID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date FROM availability WHERE doctor_id = ? ORDER BY date`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("listing availability: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning availability row: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability: %w", err)
	}
	return dates, nil
}

func (r *SQLiteAvailabilityRepo) ListActive(ctx context.Context) ([]domain.DoctorAvailability, error) {
	doctors, err := NewSQLiteDoctorRepo(r.db).List(ctx, true)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT a.doctor_id, a.date
		FROM availability a
		JOIN doctors d ON d.id = a.doctor_id
		WHERE d.active = 1
		ORDER BY a.doctor_id, a.date`)
	if err != nil {
		return nil, fmt.Errorf("listing active availability: %w", err)
	}
	defer rows.Close()

	byDoctor := make(map[string][]string)
	for rows.Next() {
		var doctorID, date string
		if err := rows.Scan(&doctorID, &date); err != nil {
			return nil, fmt.Errorf("scanning availability row: %w", err)
		}
		byDoctor[doctorID] = append(byDoctor[doctorID], date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability: %w", err)
	}

	out := make([]domain.DoctorAvailability, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, domain.DoctorAvailability{Doctor: d, Dates: byDoctor[d.ID]})
	}
	return out, nil
}
