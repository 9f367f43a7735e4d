package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
)

// SQLiteAuditRepo implements AuditRepo using a SQLite database.
type SQLiteAuditRepo struct {
	db db.DBTX
}

// NewSQLiteAuditRepo creates a new SQLiteAuditRepo.
func NewSQLiteAuditRepo(conn db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: conn}
}

func (r *SQLiteAuditRepo) Create(ctx context.Context, e *domain.AuditEntry) error {
	var details any
	if e.Details != nil {
		s, err := marshalJSON(e.Details)
		if err != nil {
			return err
		}
		details = s
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (action, actor, details, created_at) VALUES (?, ?, ?, ?)`,
		string(e.Action), e.Actor, details, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (r *SQLiteAuditRepo) ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, action, actor, details, created_at FROM audit_log
		ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var action, createdAt string
		var details sql.NullString
		if err := rows.Scan(&e.ID, &action, &e.Actor, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		e.Action = domain.AuditAction(action)
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				return nil, fmt.Errorf("decoding audit details: %w", err)
			}
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}
	return out, nil
}
