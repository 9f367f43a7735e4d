package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/scheduler"
	"github.com/alexanderramin/rota/internal/solver"
	"github.com/google/uuid"
)

// openEnd stands in for an unbounded window end in range queries.
const openEnd = "9999-12-31"

const (
	msgFrozenWindow = "frozen window, no changes"
	msgNothingToDo  = "no shifts to repair in window"
)

type repairService struct {
	doctors      repository.DoctorRepo
	availability repository.AvailabilityRepo
	periods      repository.PeriodRepo
	configs      repository.ConfigRepo
	assignments  repository.AssignmentRepo
	solver       solver.Gateway
	uow          db.UnitOfWork
	audit        *AuditSink
	observer     UseCaseObserver
}

func NewRepairService(
	doctors repository.DoctorRepo,
	availability repository.AvailabilityRepo,
	periods repository.PeriodRepo,
	configs repository.ConfigRepo,
	assignments repository.AssignmentRepo,
	gateway solver.Gateway,
	uow db.UnitOfWork,
	audit *AuditSink,
	observers ...UseCaseObserver,
) RepairService {
	return &repairService{
		doctors:      doctors,
		availability: availability,
		periods:      periods,
		configs:      configs,
		assignments:  assignments,
		solver:       gateway,
		uow:          uow,
		audit:        audit,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// repairPlan is the computed, not yet persisted, result of a repair.
type repairPlan struct {
	now      time.Time
	actor    string
	doctor   *domain.Doctor
	boundary string
	window   app.Window

	departing     []*domain.Assignment
	kept          []*domain.Assignment
	sourceVersion string

	// done is set when the repair finished before reaching the solver.
	done *app.RepairOutcome

	feasible    bool
	bottlenecks []solver.Bottleneck
	entries     []domain.SnapshotEntry
	impact      *app.RepairImpact
}

func (s *repairService) Preview(ctx context.Context, req app.RepairRequest) (outcome *app.RepairOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"doctor_id": req.DoctorID, "mode": string(app.RepairPreview)}
	defer func() { observe(ctx, s.observer, "repair-preview", startedAt, fields, &err) }()

	plan, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	if plan.done != nil {
		plan.done.Mode = app.RepairPreview
		return plan.done, nil
	}
	return plan.outcome(app.RepairPreview), nil
}

func (s *repairService) Stage(ctx context.Context, req app.RepairRequest) (outcome *app.RepairOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"doctor_id": req.DoctorID, "mode": string(app.RepairCandidate)}
	defer func() { observe(ctx, s.observer, "repair-candidate", startedAt, fields, &err) }()

	plan, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	if plan.done != nil {
		return s.finishWithoutRepair(ctx, plan, req, app.RepairCandidate)
	}
	outcome = plan.outcome(app.RepairCandidate)
	if !plan.feasible {
		return outcome, nil
	}

	snapshot := make(domain.Snapshot, 0, len(plan.kept)+len(plan.entries))
	for _, a := range plan.kept {
		snapshot = append(snapshot, domain.SnapshotEntry{Date: a.Date, DoctorID: a.DoctorID, PeriodID: a.PeriodID})
	}
	snapshot = append(snapshot, plan.entries...)
	scheduler.SortEntries(snapshot)

	version := plan.newVersion(domain.PlanRepairCandidate, req.Deactivate)
	version.Snapshot = &snapshot

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanVersionRepo(tx).Create(ctx, version)
	})
	if err != nil {
		return nil, fmt.Errorf("storing repair candidate: %w", err)
	}

	fields["plan_version_id"] = version.ID
	s.audit.Record(ctx, domain.AuditRepairCandidate, plan.actor, map[string]any{
		"planVersionId":    version.ID,
		"doctorId":         plan.doctor.ID,
		"windowFrom":       plan.window.From,
		"windowTo":         plan.window.To,
		"shiftsReassigned": len(plan.entries),
		"snapshotRows":     len(snapshot),
	})
	outcome.PlanVersion = version
	return outcome, nil
}

func (s *repairService) Apply(ctx context.Context, req app.RepairRequest) (outcome *app.RepairOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"doctor_id": req.DoctorID, "mode": string(app.RepairApply)}
	defer func() { observe(ctx, s.observer, "repair-apply", startedAt, fields, &err) }()

	plan, err := s.compute(ctx, req)
	if err != nil {
		return nil, err
	}
	if plan.done != nil {
		return s.finishWithoutRepair(ctx, plan, req, app.RepairApply)
	}
	outcome = plan.outcome(app.RepairApply)
	if !plan.feasible {
		return outcome, nil
	}

	version := plan.newVersion(domain.PlanRepair, req.Deactivate)
	rows := toAssignments(plan.entries, version.ID, plan.now, func() string { return uuid.New().String() })
	departingIDs := make([]string, 0, len(plan.departing))
	for _, a := range plan.departing {
		departingIDs = append(departingIDs, a.ID)
	}
	deactivate := req.Deactivate && plan.doctor.Active

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVersions := repository.NewSQLitePlanVersionRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		if err := txVersions.Create(ctx, version); err != nil {
			return fmt.Errorf("creating repair version: %w", err)
		}
		if _, err := txAssignments.DeleteByIDs(ctx, departingIDs); err != nil {
			return err
		}
		if err := txAssignments.CreateBatch(ctx, rows); err != nil {
			return err
		}
		if deactivate {
			return repository.NewSQLiteDoctorRepo(tx).SetActive(ctx, plan.doctor.ID, false, plan.now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["plan_version_id"] = version.ID
	s.audit.Record(ctx, domain.AuditRepairApply, plan.actor, map[string]any{
		"planVersionId":    version.ID,
		"doctorId":         plan.doctor.ID,
		"windowFrom":       plan.window.From,
		"windowTo":         plan.window.To,
		"shiftsRemoved":    len(departingIDs),
		"shiftsReassigned": len(rows),
	})
	if deactivate {
		s.recordDeactivation(ctx, plan)
	}
	outcome.PlanVersion = version
	outcome.DoctorDeactivated = deactivate
	return outcome, nil
}

// compute runs the shared preamble and the gap-only solve. It never writes.
func (s *repairService) compute(ctx context.Context, req app.RepairRequest) (*repairPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	doctor, err := s.doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, mapNotFound(err, "doctor", req.DoctorID)
	}
	cfg, err := loadConfiguration(ctx, s.configs)
	if err != nil {
		return nil, err
	}

	plan := &repairPlan{
		now:    resolveNow(req.Now),
		actor:  actorOrSystem(req.ActorID),
		doctor: doctor,
	}
	plan.boundary = domain.FreezeBoundary(plan.now, cfg.FreezeDays)
	plan.window = app.Window{From: domain.MaxDate(req.From, plan.boundary), To: req.To}

	if plan.window.To != "" && plan.window.To < plan.window.From {
		plan.done = &app.RepairOutcome{Status: app.StatusOK, Message: msgFrozenWindow, Window: plan.window}
		return plan, nil
	}

	rows, err := s.assignments.ListInWindow(ctx, plan.window.From, domain.CoalesceStr(plan.window.To, openEnd))
	if err != nil {
		return nil, err
	}
	for _, a := range rows {
		if a.DoctorID == doctor.ID {
			plan.departing = append(plan.departing, a)
		} else {
			plan.kept = append(plan.kept, a)
		}
	}
	if len(plan.departing) == 0 {
		plan.done = &app.RepairOutcome{Status: app.StatusOK, Message: msgNothingToDo, Window: plan.window}
		return plan, nil
	}
	plan.sourceVersion = mostFrequentVersion(plan.departing)

	active, err := s.availability.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading doctors: %w", err)
	}
	others := make([]domain.DoctorAvailability, 0, len(active))
	for _, da := range active {
		if da.Doctor.ID != doctor.ID {
			others = append(others, da)
		}
	}

	gapDates := make(map[string]bool, len(plan.departing))
	for _, a := range plan.departing {
		gapDates[a.Date] = true
	}
	allPeriods, err := s.periods.List(ctx)
	if err != nil {
		return nil, err
	}
	var gapPeriods []*domain.Period
	for _, p := range allPeriods {
		if restricted := p.WithDays(gapDates); len(restricted.Days) > 0 {
			gapPeriods = append(gapPeriods, restricted)
		}
	}

	busy := make(map[domain.AssignmentKey]bool, len(plan.kept))
	for _, a := range plan.kept {
		busy[domain.AssignmentKey{Date: a.Date, DoctorID: a.DoctorID}] = true
	}

	problem := scheduler.BuildProblem(scheduler.ProblemInput{
		Doctors:        others,
		Periods:        gapPeriods,
		Config:         cfg,
		Capacities:     scheduler.RemainingCapacities(others, plan.kept, cfg.MaxShiftsTotal),
		RequiredPerDay: 1,
		Busy:           busy,
	})
	resp, err := s.solver.Solve(ctx, problem.Request)
	if err != nil {
		return nil, solverFailure(err)
	}
	if !resp.Feasible {
		plan.bottlenecks = resp.Bottlenecks
		return plan, nil
	}
	entries, err := problem.Resolve(resp)
	if err != nil {
		return nil, solverFailure(err)
	}
	plan.feasible = true
	plan.entries = entries
	plan.impact = buildImpact(plan.departing, entries, doctor, others, allPeriods)
	return plan, nil
}

// finishWithoutRepair handles the frozen and nothing-departing cases for
// the mutating modes. Only the latter may deactivate the doctor.
func (s *repairService) finishWithoutRepair(ctx context.Context, plan *repairPlan, req app.RepairRequest, mode app.RepairMode) (*app.RepairOutcome, error) {
	outcome := plan.done
	outcome.Mode = mode
	if outcome.Message == msgFrozenWindow || !req.Deactivate || !plan.doctor.Active {
		return outcome, nil
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteDoctorRepo(tx).SetActive(ctx, plan.doctor.ID, false, plan.now)
	})
	if err != nil {
		return nil, fmt.Errorf("deactivating doctor: %w", err)
	}
	s.recordDeactivation(ctx, plan)
	outcome.DoctorDeactivated = true
	return outcome, nil
}

func (s *repairService) recordDeactivation(ctx context.Context, plan *repairPlan) {
	s.audit.Record(ctx, domain.AuditDoctorDeactivate, plan.actor, map[string]any{
		"doctorId":   plan.doctor.ID,
		"doctorName": plan.doctor.Name,
	})
}

func (p *repairPlan) outcome(mode app.RepairMode) *app.RepairOutcome {
	if !p.feasible {
		return &app.RepairOutcome{
			Mode:        mode,
			Status:      app.StatusInfeasible,
			Window:      p.window,
			Bottlenecks: p.bottlenecks,
		}
	}
	return &app.RepairOutcome{
		Mode:   mode,
		Status: app.StatusFeasible,
		Window: p.window,
		Impact: p.impact,
	}
}

func (p *repairPlan) newVersion(kind domain.PlanKind, deactivate bool) *domain.PlanVersion {
	source := p.sourceVersion
	return &domain.PlanVersion{
		ID:                  uuid.New().String(),
		Kind:                kind,
		State:               domain.PlanDraft,
		CreatedBy:           p.actor,
		SourcePlanVersionID: &source,
		Metadata: map[string]string{
			domain.MetaDoctorID:         p.doctor.ID,
			domain.MetaDoctorName:       p.doctor.Name,
			domain.MetaWindowFrom:       p.window.From,
			domain.MetaWindowTo:         p.window.To,
			domain.MetaFreezeBoundary:   p.boundary,
			domain.MetaDeactivateDoctor: strconv.FormatBool(deactivate),
		},
		CreatedAt: p.now,
	}
}

func buildImpact(departing []*domain.Assignment, entries []domain.SnapshotEntry, leaving *domain.Doctor, others []domain.DoctorAvailability, periods []*domain.Period) *app.RepairImpact {
	names := make(map[string]string, len(others))
	for _, da := range others {
		names[da.Doctor.ID] = da.Doctor.Name
	}
	periodNames := make(map[string]string, len(periods))
	for _, p := range periods {
		periodNames[p.ID] = p.Name
	}

	days := make(map[string]bool)
	for _, a := range departing {
		days[a.Date] = true
	}
	incoming := make(map[string]bool)
	impact := &app.RepairImpact{
		ShiftsRemoved:    len(departing),
		ShiftsReassigned: len(entries),
		DaysAffected:     len(days),
	}
	for _, e := range entries {
		incoming[e.DoctorID] = true
		impact.Reassignments = append(impact.Reassignments, app.Reassignment{
			Date:           e.Date,
			PeriodID:       e.PeriodID,
			PeriodName:     periodNames[e.PeriodID],
			FromDoctorID:   leaving.ID,
			FromDoctorName: leaving.Name,
			ToDoctorID:     e.DoctorID,
			ToDoctorName:   names[e.DoctorID],
		})
	}
	impact.IncomingDoctors = len(incoming)
	return impact
}
