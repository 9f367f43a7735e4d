package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS doctors (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		email      TEXT NOT NULL DEFAULT '',
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS periods (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS days (
		id          TEXT PRIMARY KEY,
		period_id   TEXT NOT NULL REFERENCES periods(id) ON DELETE CASCADE,
		date        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		state       TEXT NOT NULL DEFAULT 'PENDING'
		            CHECK(state IN ('PENDING','PLANNED'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_days_period ON days(period_id)`,
	`CREATE INDEX IF NOT EXISTS idx_days_state_date ON days(state, date)`,

	`CREATE TABLE IF NOT EXISTS availability (
		doctor_id TEXT NOT NULL REFERENCES doctors(id) ON DELETE CASCADE,
		date      TEXT NOT NULL,
		PRIMARY KEY (doctor_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_availability_date ON availability(date)`,

	`CREATE TABLE IF NOT EXISTS configuration (
		id                       INTEGER PRIMARY KEY AUTOINCREMENT,
		max_shifts_total         INTEGER NOT NULL CHECK(max_shifts_total > 0),
		max_shifts_per_period    INTEGER,
		required_doctors_per_day INTEGER NOT NULL CHECK(required_doctors_per_day > 0),
		freeze_days              INTEGER NOT NULL DEFAULT 0 CHECK(freeze_days >= 0),
		created_at               TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_versions (
		id                     TEXT PRIMARY KEY,
		kind                   TEXT NOT NULL
		                       CHECK(kind IN ('BASE','REPAIR','REPAIR_CANDIDATE')),
		state                  TEXT NOT NULL DEFAULT 'DRAFT'
		                       CHECK(state IN ('DRAFT','PUBLISHED')),
		created_by             TEXT NOT NULL DEFAULT '',
		source_plan_version_id TEXT REFERENCES plan_versions(id),
		snapshot               TEXT,
		metadata               TEXT NOT NULL DEFAULT '{}',
		created_at             TEXT NOT NULL,
		published_at           TEXT
	)`,

	// At most one live version.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plan_versions_single_published
		ON plan_versions(state) WHERE state = 'PUBLISHED'`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id              TEXT PRIMARY KEY,
		date            TEXT NOT NULL,
		doctor_id       TEXT NOT NULL REFERENCES doctors(id),
		period_id       TEXT NOT NULL REFERENCES periods(id) ON DELETE CASCADE,
		plan_version_id TEXT NOT NULL REFERENCES plan_versions(id),
		created_at      TEXT NOT NULL,
		UNIQUE (date, doctor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_date ON assignments(date)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_version ON assignments(plan_version_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_doctor ON assignments(doctor_id)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		action     TEXT NOT NULL,
		actor      TEXT NOT NULL,
		details    TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at)`,
}
