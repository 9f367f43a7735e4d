package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_DoctorToAvailability verifies that removing a doctor
// row drops the dates they declared.
func TestCascadeDelete_DoctorToAvailability(t *testing.T) {
	f := rosterTestSetup(t)
	ctx := context.Background()
	availability := NewSQLiteAvailabilityRepo(f.db)

	require.NoError(t, availability.Add(ctx, f.ana.ID, []string{"2025-12-24"}))
	_, err := f.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = ?`, f.ana.ID)
	require.NoError(t, err)

	var n int
	require.NoError(t, f.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM availability WHERE doctor_id = ?`, f.ana.ID).Scan(&n))
	assert.Zero(t, n)
}

// TestCascadeDelete_PeriodToDaysAndAssignments verifies periods own their
// days and the assignments planned on them.
func TestCascadeDelete_PeriodToDaysAndAssignments(t *testing.T) {
	f := rosterTestSetup(t)
	ctx := context.Background()
	assignments := NewSQLiteAssignmentRepo(f.db)

	row := testutil.NewTestAssignment("2025-12-24", f.ana.ID, f.period.ID, f.version.ID)
	require.NoError(t, assignments.CreateBatch(ctx, []*domain.Assignment{row}))

	_, err := f.db.ExecContext(ctx, `DELETE FROM periods WHERE id = ?`, f.period.ID)
	require.NoError(t, err)

	_, err = NewSQLitePeriodRepo(f.db).GetByID(ctx, f.period.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	var days int
	require.NoError(t, f.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM days WHERE period_id = ?`, f.period.ID).Scan(&days))
	assert.Zero(t, days)

	rows, err := assignments.ListByVersion(ctx, f.version.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// TestForeignKey_AssignedDoctorCannotBeDeleted verifies assignments pin
// their doctor: history is never orphaned.
func TestForeignKey_AssignedDoctorCannotBeDeleted(t *testing.T) {
	f := rosterTestSetup(t)
	ctx := context.Background()

	row := testutil.NewTestAssignment("2025-12-25", f.bruno.ID, f.period.ID, f.version.ID)
	require.NoError(t, NewSQLiteAssignmentRepo(f.db).CreateBatch(ctx, []*domain.Assignment{row}))

	_, err := f.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = ?`, f.bruno.ID)
	assert.Error(t, err)
}

// TestForeignKey_AssignmentRequiresKnownRefs verifies rows pointing at an
// unknown doctor or version are rejected.
func TestForeignKey_AssignmentRequiresKnownRefs(t *testing.T) {
	f := rosterTestSetup(t)
	ctx := context.Background()
	assignments := NewSQLiteAssignmentRepo(f.db)

	unknownDoctor := testutil.NewTestAssignment("2025-12-24", "nobody", f.period.ID, f.version.ID)
	assert.Error(t, assignments.CreateBatch(ctx, []*domain.Assignment{unknownDoctor}))

	unknownVersion := testutil.NewTestAssignment("2025-12-24", f.ana.ID, f.period.ID, "missing")
	assert.Error(t, assignments.CreateBatch(ctx, []*domain.Assignment{unknownVersion}))
}
