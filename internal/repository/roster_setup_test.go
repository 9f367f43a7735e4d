package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/require"
)

// rosterFixture is a small persisted roster: two doctors and one period
// covering three days, plus a draft BASE version.
type rosterFixture struct {
	db      *sql.DB
	ana     *domain.Doctor
	bruno   *domain.Doctor
	period  *domain.Period
	version *domain.PlanVersion
}

func rosterTestSetup(t *testing.T) rosterFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	f := rosterFixture{
		db:      db,
		ana:     testutil.NewTestDoctor("Dr. Ana"),
		bruno:   testutil.NewTestDoctor("Dr. Bruno"),
		period:  testutil.NewTestPeriod("Christmas", []string{"2025-12-24", "2025-12-25", "2025-12-26"}),
		version: testutil.NewTestVersion(domain.PlanBase),
	}
	doctors := NewSQLiteDoctorRepo(db)
	require.NoError(t, doctors.Create(ctx, f.ana))
	require.NoError(t, doctors.Create(ctx, f.bruno))
	require.NoError(t, NewSQLitePeriodRepo(db).Create(ctx, f.period))
	require.NoError(t, NewSQLitePlanVersionRepo(db).Create(ctx, f.version))
	return f
}
