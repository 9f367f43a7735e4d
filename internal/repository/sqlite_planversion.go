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

// SQLitePlanVersionRepo implements PlanVersionRepo using a SQLite database.
// Snapshot and metadata are stored as JSON text; a NULL snapshot marks a
// materialized version.
type SQLitePlanVersionRepo struct {
	db db.DBTX
}

// NewSQLitePlanVersionRepo creates a new SQLitePlanVersionRepo.
func NewSQLitePlanVersionRepo(conn db.DBTX) *SQLitePlanVersionRepo {
	return &SQLitePlanVersionRepo{db: conn}
}

const planVersionColumns = `id, kind, state, created_by, source_plan_version_id, snapshot,
	metadata, created_at, published_at`

func (r *SQLitePlanVersionRepo) Create(ctx context.Context, v *domain.PlanVersion) error {
	if err := v.Validate(); err != nil {
		return err
	}

	var snapshot any
	if v.Snapshot != nil {
		s, err := marshalJSON(v.Snapshot)
		if err != nil {
			return err
		}
		snapshot = s
	}
	meta := v.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	metadata, err := marshalJSON(meta)
	if err != nil {
		return err
	}

	query := `INSERT INTO plan_versions (` + planVersionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		v.ID,
		string(v.Kind),
		string(v.State),
		v.CreatedBy,
		nullableStringToValue(v.SourcePlanVersionID),
		snapshot,
		metadata,
		formatTime(v.CreatedAt),
		nullableTimeToString(v.PublishedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan version: %w", err)
	}
	return nil
}

func (r *SQLitePlanVersionRepo) GetByID(ctx context.Context, id string) (*domain.PlanVersion, error) {
	query := `SELECT ` + planVersionColumns + ` FROM plan_versions WHERE id = ?`
	return r.scanVersion(r.db.QueryRowContext(ctx, query, id))
}

// List returns all versions, newest first.
func (r *SQLitePlanVersionRepo) List(ctx context.Context) ([]*domain.PlanVersion, error) {
	query := `SELECT ` + planVersionColumns + ` FROM plan_versions ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plan versions: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlanVersion
	for rows.Next() {
		v, err := r.scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan versions: %w", err)
	}
	return out, nil
}

func (r *SQLitePlanVersionRepo) GetPublished(ctx context.Context) (*domain.PlanVersion, error) {
	query := `SELECT ` + planVersionColumns + ` FROM plan_versions WHERE state = ?`
	return r.scanVersion(r.db.QueryRowContext(ctx, query, string(domain.PlanPublished)))
}

func (r *SQLitePlanVersionRepo) DemotePublished(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE plan_versions SET state = ? WHERE state = ?`,
		string(domain.PlanDraft), string(domain.PlanPublished))
	if err != nil {
		return fmt.Errorf("demoting published version: %w", err)
	}
	return nil
}

func (r *SQLitePlanVersionRepo) Promote(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE plan_versions SET state = ?, published_at = ? WHERE id = ?`,
		string(domain.PlanPublished), formatTime(at), id)
	if err != nil {
		return fmt.Errorf("promoting plan version: %w", err)
	}
	return requireAffected(res, "plan version", id)
}

func (r *SQLitePlanVersionRepo) ClearSnapshot(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE plan_versions SET snapshot = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	return requireAffected(res, "plan version", id)
}

func (r *SQLitePlanVersionRepo) scanVersion(row rowScanner) (*domain.PlanVersion, error) {
	var v domain.PlanVersion
	var kind, state, metadata, createdAt string
	var source, snapshot, publishedAt sql.NullString

	err := row.Scan(&v.ID, &kind, &state, &v.CreatedBy, &source, &snapshot,
		&metadata, &createdAt, &publishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan version: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan version: %w", err)
	}
	v.Kind = domain.PlanKind(kind)
	v.State = domain.PlanState(state)
	if source.Valid {
		s := source.String
		v.SourcePlanVersionID = &s
	}
	if snapshot.Valid {
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(snapshot.String), &snap); err != nil {
			return nil, fmt.Errorf("decoding snapshot of %s: %w", v.ID, err)
		}
		if snap == nil {
			snap = domain.Snapshot{}
		}
		v.Snapshot = &snap
	}
	v.Metadata = map[string]string{}
	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &v.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata of %s: %w", v.ID, err)
		}
	}
	if v.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	v.PublishedAt = parseNullableTime(publishedAt, time.RFC3339)
	return &v, nil
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
