package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/alexanderramin/rota/internal/teatest"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cliNow = time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

const christmasRoster = `{
  "configuration": {"max_shifts_total": 2, "required_doctors_per_day": 1},
  "doctors": [
    {"name": "Dr. Ana", "availability": ["2025-12-24", "2025-12-25", "2025-12-26"]},
    {"name": "Dr. Bruno", "availability": ["2025-12-24", "2025-12-25", "2025-12-26"]},
    {"name": "Dr. Carla", "availability": ["2025-12-24", "2025-12-25", "2025-12-26"]}
  ],
  "periods": [
    {"name": "Christmas", "start_date": "2025-12-24", "end_date": "2025-12-26",
     "days": [{"date": "2025-12-24"}, {"date": "2025-12-25"}, {"date": "2025-12-26"}]}
  ]
}`

// testApp wires a full App backed by an in-memory DB and the fake solver.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	doctors := repository.NewSQLiteDoctorRepo(database)
	availability := repository.NewSQLiteAvailabilityRepo(database)
	periods := repository.NewSQLitePeriodRepo(database)
	configs := repository.NewSQLiteConfigRepo(database)
	assignments := repository.NewSQLiteAssignmentRepo(database)
	versions := repository.NewSQLitePlanVersionRepo(database)
	auditRepo := repository.NewSQLiteAuditRepo(database)
	sink := service.NewAuditSink(auditRepo, zap.NewNop())
	solver := testutil.NewFakeSolver()

	return &App{
		Planning: service.NewPlanningService(availability, periods, configs, assignments, solver, uow, sink),
		Repair:   service.NewRepairService(doctors, availability, periods, configs, assignments, solver, uow, sink),
		Versions: service.NewVersionService(versions, assignments, doctors, periods, configs, uow, sink),
		Import:   service.NewImportService(uow, sink),
		Doctors:  service.NewDoctorService(doctors, availability),
		Audit:    service.NewAuditService(auditRepo),
		Now:      func() time.Time { return cliNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedPlanned imports the Christmas roster and plans it.
func seedPlanned(t *testing.T, app *App) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(christmasRoster), 0o644))

	out, err := executeCmd(t, app, "import", path, "--actor", "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 doctors, 1 periods (3 days)")

	out, err = executeCmd(t, app, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "FEASIBLE")
	assert.Contains(t, out, "Days planned:    3")
}

func doctorID(t *testing.T, app *App, name string) string {
	t.Helper()
	all, err := app.Doctors.List(context.Background(), false)
	require.NoError(t, err)
	for _, d := range all {
		if d.Name == name {
			return d.ID
		}
	}
	t.Fatalf("doctor %q not found", name)
	return ""
}

func latestVersion(t *testing.T, app *App) *domain.PlanVersion {
	t.Helper()
	versions, err := app.Versions.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	return versions[0]
}

func TestImportCmd_MissingFile(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestPlanCmd_NoDoctors(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_ACTIVE_DOCTORS")
}

func TestVersionCmds_ListShowRisk(t *testing.T) {
	app := testApp(t)
	seedPlanned(t, app)
	base := latestVersion(t, app)

	out, err := executeCmd(t, app, "version", "list")
	require.NoError(t, err)
	assert.Contains(t, out, base.ID)
	assert.Contains(t, out, "Draft")

	out, err = executeCmd(t, app, "version", "show", base.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Dr. Ana")
	assert.Contains(t, out, "2025-12-26")

	out, err = executeCmd(t, app, "version", "risk", base.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "+3 / -0 on 3 dates")

	_, err = executeCmd(t, app, "version", "show", "missing")
	assert.Error(t, err)
}

func TestRepairCmd_PreviewWritesNothing(t *testing.T) {
	app := testApp(t)
	seedPlanned(t, app)
	ana := doctorID(t, app, "Dr. Ana")

	out, err := executeCmd(t, app, "repair", ana)
	require.NoError(t, err)
	assert.Contains(t, out, "REPAIR PREVIEW")
	assert.Contains(t, out, "Shifts removed:    1")

	versions, err := app.Versions.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestRepairCmd_RejectsBadFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "repair", "some-id", "--mode", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")

	_, err = executeCmd(t, app, "repair", "some-id", "--from", "2025-13-01")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "repair")
	assert.Error(t, err)
}

func TestRepairCandidate_ThenPublish(t *testing.T) {
	app := testApp(t)
	seedPlanned(t, app)
	base := latestVersion(t, app)
	ana := doctorID(t, app, "Dr. Ana")

	out, err := executeCmd(t, app, "repair", ana, "--mode", "candidate", "--deactivate", "--actor", "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "rota version publish")
	candidate := latestVersion(t, app)
	assert.Equal(t, domain.PlanRepairCandidate, candidate.Kind)

	out, err = executeCmd(t, app, "version", "diff", base.ID, candidate.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "+1 added")
	assert.Contains(t, out, "-1 removed")

	out, err = executeCmd(t, app, "version", "publish", candidate.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "PUBLISHED")
	assert.Contains(t, out, "Materialized 3 shifts")
	assert.Contains(t, out, "Deactivated doctor "+ana)

	out, err = executeCmd(t, app, "doctor", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Dr. Ana")

	out, err = executeCmd(t, app, "doctor", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Inactive")

	out, err = executeCmd(t, app, "audit", "--limit", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "DOCTOR_DEACTIVATE")
	assert.Contains(t, out, "REPAIR_CANDIDATE")
	assert.Contains(t, out, "ROSTER_IMPORT")
}

func TestPublishCmd_DeclinedConfirmation(t *testing.T) {
	app := testApp(t)
	seedPlanned(t, app)
	base := latestVersion(t, app)

	var asked string
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	out, err := executeCmd(t, app, "version", "publish", base.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Publish cancelled.")
	assert.Contains(t, asked, base.ID)

	v, err := app.Versions.Get(context.Background(), base.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanDraft, v.State)
}

func TestDateValue(t *testing.T) {
	var d dateValue
	require.NoError(t, d.Set("2025-12-24"))
	assert.Equal(t, "2025-12-24", d.String())
	assert.Error(t, d.Set("24/12/2025"))
	assert.Equal(t, "2025-12-24", d.String(), "failed Set keeps the old value")
	assert.Equal(t, "date", d.Type())
}

func TestSpinnerModel_QuitsOnDone(t *testing.T) {
	d := teatest.New(t, newSpinnerModel("Solving..."))
	d.DrainInit()
	assert.Contains(t, d.View(), "Solving...")
	assert.Equal(t, 1, d.Seen["spinner.TickMsg"])

	d.Send(workDoneMsg{})
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestWithSpinner_NonInteractiveRunsInline(t *testing.T) {
	app := &App{}
	cmd := NewRootCmd(app)
	called := false
	err := app.withSpinner(cmd, "x", func() error {
		called = true
		return assert.AnError
	})
	assert.True(t, called)
	assert.ErrorIs(t, err, assert.AnError)
}
