package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

const assignmentViewQuery = `SELECT a.date, a.doctor_id, d.name, a.period_id, p.name, a.plan_version_id
	FROM assignments a
	JOIN doctors d ON d.id = a.doctor_id
	JOIN periods p ON p.id = a.period_id`

func (r *SQLiteAssignmentRepo) CreateBatch(ctx context.Context, rows []*domain.Assignment) error {
	query := `INSERT INTO assignments (id, date, doctor_id, period_id, plan_version_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, a := range rows {
		_, err := r.db.ExecContext(ctx, query,
			a.ID,
			a.Date,
			a.DoctorID,
			a.PeriodID,
			a.PlanVersionID,
			formatTime(a.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting assignment %s/%s: %w", a.Date, a.DoctorID, err)
		}
	}
	return nil
}

func (r *SQLiteAssignmentRepo) ListByVersion(ctx context.Context, versionID string) ([]domain.AssignmentView, error) {
	return r.listViews(ctx, assignmentViewQuery+` WHERE a.plan_version_id = ? ORDER BY a.date, d.name`, versionID)
}

func (r *SQLiteAssignmentRepo) ListByDates(ctx context.Context, dates []string) ([]domain.AssignmentView, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	in, args := inClause(dates)
	return r.listViews(ctx, assignmentViewQuery+` WHERE a.date IN `+in+` ORDER BY a.date, d.name`, args...)
}

func (r *SQLiteAssignmentRepo) ListInWindow(ctx context.Context, from, to string) ([]*domain.Assignment, error) {
	query := `SELECT id, date, doctor_id, period_id, plan_version_id, created_at
		FROM assignments WHERE date >= ? AND date <= ? ORDER BY date, doctor_id`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing assignments in window: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Date, &a.DoctorID, &a.PeriodID, &a.PlanVersionID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssignmentRepo) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	in, args := inClause(ids)
	return r.delete(ctx, `DELETE FROM assignments WHERE id IN `+in, args)
}

func (r *SQLiteAssignmentRepo) DeleteByDates(ctx context.Context, dates []string) (int, error) {
	if len(dates) == 0 {
		return 0, nil
	}
	in, args := inClause(dates)
	return r.delete(ctx, `DELETE FROM assignments WHERE date IN `+in, args)
}

func (r *SQLiteAssignmentRepo) delete(ctx context.Context, query string, args []any) (int, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting assignments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted assignments: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteAssignmentRepo) listViews(ctx context.Context, query string, args ...any) ([]domain.AssignmentView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []domain.AssignmentView
	for rows.Next() {
		var v domain.AssignmentView
		if err := rows.Scan(&v.Date, &v.DoctorID, &v.DoctorName, &v.PeriodID, &v.PeriodName, &v.PlanVersionID); err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}
