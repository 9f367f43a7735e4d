package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepo_CreateBatchAndListByVersion(t *testing.T) {
	f := rosterTestSetup(t)
	repo := NewSQLiteAssignmentRepo(f.db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*domain.Assignment{
		testutil.NewTestAssignment("2025-12-25", f.bruno.ID, f.period.ID, f.version.ID),
		testutil.NewTestAssignment("2025-12-24", f.ana.ID, f.period.ID, f.version.ID),
	}))

	views, err := repo.ListByVersion(ctx, f.version.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, domain.AssignmentView{
		Date:          "2025-12-24",
		DoctorID:      f.ana.ID,
		DoctorName:    "Dr. Ana",
		PeriodID:      f.period.ID,
		PeriodName:    "Christmas",
		PlanVersionID: f.version.ID,
	}, views[0])
}

func TestAssignmentRepo_NoDoubleBooking(t *testing.T) {
	f := rosterTestSetup(t)
	repo := NewSQLiteAssignmentRepo(f.db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []*domain.Assignment{
		testutil.NewTestAssignment("2025-12-24", f.ana.ID, f.period.ID, f.version.ID),
	}))
	err := repo.CreateBatch(ctx, []*domain.Assignment{
		testutil.NewTestAssignment("2025-12-24", f.ana.ID, f.period.ID, f.version.ID),
	})
	assert.Error(t, err)
}

func TestAssignmentRepo_WindowAndDeletes(t *testing.T) {
	f := rosterTestSetup(t)
	repo := NewSQLiteAssignmentRepo(f.db)
	ctx := context.Background()

	a1 := testutil.NewTestAssignment("2025-12-24", f.ana.ID, f.period.ID, f.version.ID)
	a2 := testutil.NewTestAssignment("2025-12-25", f.ana.ID, f.period.ID, f.version.ID)
	a3 := testutil.NewTestAssignment("2025-12-26", f.bruno.ID, f.period.ID, f.version.ID)
	require.NoError(t, repo.CreateBatch(ctx, []*domain.Assignment{a1, a2, a3}))

	inWindow, err := repo.ListInWindow(ctx, "2025-12-25", "2025-12-26")
	require.NoError(t, err)
	require.Len(t, inWindow, 2)
	assert.Equal(t, a2.ID, inWindow[0].ID)

	byDate, err := repo.ListByDates(ctx, []string{"2025-12-26"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "Dr. Bruno", byDate[0].DoctorName)

	n, err := repo.DeleteByIDs(ctx, []string{a1.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.DeleteByDates(ctx, []string{"2025-12-25", "2025-12-26"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.DeleteByDates(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	remaining, err := repo.ListByVersion(ctx, f.version.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
