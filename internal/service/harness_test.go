package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testNow is early December, ahead of the holiday periods used in tests.
var testNow = time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

func nowPtr(t time.Time) *time.Time { return &t }

type testEnv struct {
	db           *sql.DB
	uow          db.UnitOfWork
	doctors      *repository.SQLiteDoctorRepo
	availability *repository.SQLiteAvailabilityRepo
	periods      *repository.SQLitePeriodRepo
	configs      *repository.SQLiteConfigRepo
	assignments  *repository.SQLiteAssignmentRepo
	versions     *repository.SQLitePlanVersionRepo
	auditRepo    *repository.SQLiteAuditRepo
	solver       *testutil.FakeSolver
	sink         *AuditSink
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:           database,
		uow:          testutil.NewTestUoW(database),
		doctors:      repository.NewSQLiteDoctorRepo(database),
		availability: repository.NewSQLiteAvailabilityRepo(database),
		periods:      repository.NewSQLitePeriodRepo(database),
		configs:      repository.NewSQLiteConfigRepo(database),
		assignments:  repository.NewSQLiteAssignmentRepo(database),
		versions:     repository.NewSQLitePlanVersionRepo(database),
		auditRepo:    repository.NewSQLiteAuditRepo(database),
		solver:       testutil.NewFakeSolver(),
	}
	env.sink = NewAuditSink(env.auditRepo, zap.NewNop())
	return env
}

func (e *testEnv) planning(uow db.UnitOfWork) PlanningService {
	return NewPlanningService(e.availability, e.periods, e.configs, e.assignments, e.solver, uow, e.sink)
}

func (e *testEnv) repair(uow db.UnitOfWork) RepairService {
	return NewRepairService(e.doctors, e.availability, e.periods, e.configs, e.assignments, e.solver, uow, e.sink)
}

func (e *testEnv) versionSvc() VersionService {
	return NewVersionService(e.versions, e.assignments, e.doctors, e.periods, e.configs, e.uow, e.sink)
}

func (e *testEnv) seedDoctor(t *testing.T, name string, dates ...string) *domain.Doctor {
	t.Helper()
	ctx := context.Background()
	d := testutil.NewTestDoctor(name)
	require.NoError(t, e.doctors.Create(ctx, d))
	require.NoError(t, e.availability.Add(ctx, d.ID, dates))
	return d
}

func (e *testEnv) seedPeriod(t *testing.T, name string, dates []string, opts ...testutil.PeriodOption) *domain.Period {
	t.Helper()
	p := testutil.NewTestPeriod(name, dates, opts...)
	require.NoError(t, e.periods.Create(context.Background(), p))
	return p
}

func (e *testEnv) saveConfig(t *testing.T, maxTotal, required, freeze int) {
	t.Helper()
	require.NoError(t, e.configs.Save(context.Background(), &domain.Configuration{
		MaxShiftsTotal:        maxTotal,
		RequiredDoctorsPerDay: required,
		FreezeDays:            freeze,
		CreatedAt:             testNow,
	}))
}

// seedVersion stores a materialized version owning the given rows.
func (e *testEnv) seedVersion(t *testing.T, kind domain.PlanKind, rows ...*domain.Assignment) *domain.PlanVersion {
	t.Helper()
	ctx := context.Background()
	v := testutil.NewTestVersion(kind)
	require.NoError(t, e.versions.Create(ctx, v))
	for _, r := range rows {
		r.PlanVersionID = v.ID
	}
	require.NoError(t, e.assignments.CreateBatch(ctx, rows))
	return v
}

func (e *testEnv) liveKeys(t *testing.T, dates ...string) map[domain.AssignmentKey]bool {
	t.Helper()
	rows, err := e.assignments.ListInWindow(context.Background(), "0000-01-01", "9999-12-31")
	require.NoError(t, err)
	keep := map[string]bool{}
	for _, d := range dates {
		keep[d] = true
	}
	out := map[domain.AssignmentKey]bool{}
	for _, r := range rows {
		if len(dates) == 0 || keep[r.Date] {
			out[domain.AssignmentKey{Date: r.Date, DoctorID: r.DoctorID}] = true
		}
	}
	return out
}

func (e *testEnv) countVersions(t *testing.T) int {
	t.Helper()
	list, err := e.versions.List(context.Background())
	require.NoError(t, err)
	return len(list)
}

func (e *testEnv) auditActions(t *testing.T) []domain.AuditAction {
	t.Helper()
	entries, err := e.auditRepo.ListRecent(context.Background(), 100)
	require.NoError(t, err)
	var out []domain.AuditAction
	for _, en := range entries {
		out = append(out, en.Action)
	}
	return out
}

func viewKeys(rows []domain.AssignmentView) map[domain.AssignmentKey]bool {
	out := make(map[domain.AssignmentKey]bool, len(rows))
	for _, r := range rows {
		out[r.Key()] = true
	}
	return out
}

func key(date, doctorID string) domain.AssignmentKey {
	return domain.AssignmentKey{Date: date, DoctorID: doctorID}
}
