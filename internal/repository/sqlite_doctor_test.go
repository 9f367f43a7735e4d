package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDoctorRepo(db)
	ctx := context.Background()

	doc := testutil.NewTestDoctor("Dr. Ana", testutil.WithEmail("ana@example.org"))
	require.NoError(t, repo.Create(ctx, doc))

	fetched, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ana", fetched.Name)
	assert.Equal(t, "ana@example.org", fetched.Email)
	assert.True(t, fetched.Active)

	byName, err := repo.GetByName(ctx, "Dr. Ana")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, byName.ID)
}

func TestDoctorRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDoctorRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoctorRepo_UniqueName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDoctorRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestDoctor("Dr. Ana")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestDoctor("Dr. Ana")))
}

func TestDoctorRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDoctorRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestDoctor("Dr. Zoe")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestDoctor("Dr. Ana")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestDoctor("Dr. Off", testutil.WithInactive())))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dr. Ana", all[0].Name, "ordered by name")

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, d := range active {
		assert.True(t, d.Active)
	}
}

func TestDoctorRepo_SetActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDoctorRepo(db)
	ctx := context.Background()

	doc := testutil.NewTestDoctor("Dr. Ana")
	require.NoError(t, repo.Create(ctx, doc))

	later := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetActive(ctx, doc.ID, false, later))

	fetched, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Active)
	assert.Equal(t, later, fetched.UpdatedAt)

	assert.ErrorIs(t, repo.SetActive(ctx, "missing", false, later), ErrNotFound)
}
