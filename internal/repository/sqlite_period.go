package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// SQLitePeriodRepo implements PeriodRepo using a SQLite database.
// Periods are always returned with their days attached, ordered by date.
type SQLitePeriodRepo struct {
	db db.DBTX
}

// NewSQLitePeriodRepo creates a new SQLitePeriodRepo.
func NewSQLitePeriodRepo(conn db.DBTX) *SQLitePeriodRepo {
	return &SQLitePeriodRepo{db: conn}
}

func (r *SQLitePeriodRepo) Create(ctx context.Context, p *domain.Period) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO periods (id, name, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.StartDate, p.EndDate, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting period: %w", err)
	}
	for _, d := range p.Days {
		d.PeriodID = p.ID
		if d.State == "" {
			d.State = domain.DayPending
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO days (id, period_id, date, description, state) VALUES (?, ?, ?, ?, ?)`,
			d.ID, d.PeriodID, d.Date, d.Description, string(d.State))
		if err != nil {
			return fmt.Errorf("inserting day %s: %w", d.Date, err)
		}
	}
	return nil
}

func (r *SQLitePeriodRepo) GetByID(ctx context.Context, id string) (*domain.Period, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLitePeriodRepo) GetByName(ctx context.Context, name string) (*domain.Period, error) {
	return r.getOne(ctx, `WHERE name = ?`, name)
}

func (r *SQLitePeriodRepo) List(ctx context.Context) ([]*domain.Period, error) {
	periods, err := r.listPeriods(ctx)
	if err != nil {
		return nil, err
	}
	days, err := r.listDays(ctx, `SELECT id, period_id, date, description, state FROM days ORDER BY date`)
	if err != nil {
		return nil, err
	}
	return attachDays(periods, days, false), nil
}

func (r *SQLitePeriodRepo) ListPendingFrom(ctx context.Context, from string) ([]*domain.Period, error) {
	periods, err := r.listPeriods(ctx)
	if err != nil {
		return nil, err
	}
	days, err := r.listDays(ctx,
		`SELECT id, period_id, date, description, state FROM days
		WHERE state = ? AND date >= ? ORDER BY date`,
		string(domain.DayPending), from)
	if err != nil {
		return nil, err
	}
	return attachDays(periods, days, true), nil
}

func (r *SQLitePeriodRepo) MarkDaysPlanned(ctx context.Context, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	in, args := inClause(dates)
	args = append([]any{string(domain.DayPlanned)}, args...)
	if _, err := r.db.ExecContext(ctx, `UPDATE days SET state = ? WHERE date IN `+in, args...); err != nil {
		return fmt.Errorf("marking days planned: %w", err)
	}
	return nil
}

func (r *SQLitePeriodRepo) getOne(ctx context.Context, where string, arg string) (*domain.Period, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, start_date, end_date, created_at FROM periods `+where, arg)
	p, err := scanPeriod(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("period: %w", ErrNotFound)
		}
		return nil, err
	}
	p.Days, err = r.listDays(ctx,
		`SELECT id, period_id, date, description, state FROM days WHERE period_id = ? ORDER BY date`, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePeriodRepo) listPeriods(ctx context.Context) ([]*domain.Period, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, start_date, end_date, created_at FROM periods ORDER BY start_date, name`)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	defer rows.Close()

	var periods []*domain.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}
	return periods, nil
}

func (r *SQLitePeriodRepo) listDays(ctx context.Context, query string, args ...any) ([]*domain.Day, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing days: %w", err)
	}
	defer rows.Close()

	var days []*domain.Day
	for rows.Next() {
		var d domain.Day
		var state string
		if err := rows.Scan(&d.ID, &d.PeriodID, &d.Date, &d.Description, &state); err != nil {
			return nil, fmt.Errorf("scanning day row: %w", err)
		}
		d.State = domain.DayState(state)
		days = append(days, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}
	return days, nil
}

func scanPeriod(row rowScanner) (*domain.Period, error) {
	var p domain.Period
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning period: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.CreatedAt = t
	return &p, nil
}

// attachDays distributes days onto their periods, keeping period order.
// When dropEmpty is set, periods that received no day are left out.
func attachDays(periods []*domain.Period, days []*domain.Day, dropEmpty bool) []*domain.Period {
	byID := make(map[string]*domain.Period, len(periods))
	for _, p := range periods {
		byID[p.ID] = p
	}
	for _, d := range days {
		if p, ok := byID[d.PeriodID]; ok {
			p.Days = append(p.Days, d)
		}
	}
	if !dropEmpty {
		return periods
	}
	out := periods[:0]
	for _, p := range periods {
		if len(p.Days) > 0 {
			out = append(out, p)
		}
	}
	return out
}
