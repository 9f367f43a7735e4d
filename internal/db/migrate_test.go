package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

const ts = "2025-01-01T00:00:00Z"

func seedVersion(t *testing.T, db *sql.DB, id, state string) error {
	t.Helper()
	_, err := db.Exec(`INSERT INTO plan_versions (id, kind, state, created_at) VALUES (?, 'BASE', ?, ?)`, id, state, ts)
	return err
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"doctors", "periods", "days", "availability", "configuration", "plan_versions", "assignments", "audit_log"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_days_period",
		"idx_days_state_date",
		"idx_availability_date",
		"idx_plan_versions_single_published",
		"idx_assignments_date",
		"idx_assignments_version",
		"idx_assignments_doctor",
		"idx_audit_log_created",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_SinglePublishedVersion(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, seedVersion(t, db, "v1", "PUBLISHED"))
	require.NoError(t, seedVersion(t, db, "v2", "DRAFT"))
	assert.Error(t, seedVersion(t, db, "v3", "PUBLISHED"), "second published version must be rejected")

	_, err := db.Exec(`UPDATE plan_versions SET state = 'PUBLISHED' WHERE id = 'v2'`)
	assert.Error(t, err, "promoting while another version is live must be rejected")
}

func TestMigrate_PlanVersionCheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plan_versions (id, kind, state, created_at) VALUES ('v1', 'NIGHTLY', 'DRAFT', ?)`, ts)
	assert.Error(t, err, "unknown kind should be rejected")

	_, err = db.Exec(`INSERT INTO plan_versions (id, kind, state, created_at) VALUES ('v1', 'BASE', 'ARCHIVED', ?)`, ts)
	assert.Error(t, err, "unknown state should be rejected")
}

func TestMigrate_AssignmentsUniquePerDoctorAndDate(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO doctors (id, name, created_at, updated_at) VALUES ('d1', 'Dr. A', ?, ?)`, ts, ts)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO periods (id, name, start_date, end_date, created_at) VALUES ('p1', 'Winter', '2025-12-24', '2025-12-26', ?)`, ts)
	require.NoError(t, err)
	require.NoError(t, seedVersion(t, db, "v1", "DRAFT"))

	insert := `INSERT INTO assignments (id, date, doctor_id, period_id, plan_version_id, created_at) VALUES (?, '2025-12-25', 'd1', 'p1', 'v1', ?)`
	_, err = db.Exec(insert, "a1", ts)
	require.NoError(t, err)
	_, err = db.Exec(insert, "a2", ts)
	assert.Error(t, err, "a doctor cannot hold two assignments on one date")
}

func TestMigrate_DayStateCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO periods (id, name, start_date, end_date, created_at) VALUES ('p1', 'Winter', '2025-12-24', '2025-12-26', ?)`, ts)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO days (id, period_id, date, state) VALUES ('x1', 'p1', '2025-12-25', 'DONE')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO days (id, period_id, date) VALUES ('x1', 'p1', '2025-12-25')`)
	require.NoError(t, err)

	var state string
	require.NoError(t, db.QueryRow(`SELECT state FROM days WHERE id = 'x1'`).Scan(&state))
	assert.Equal(t, "PENDING", state)
}
