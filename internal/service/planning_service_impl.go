package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/scheduler"
	"github.com/alexanderramin/rota/internal/solver"
	"github.com/google/uuid"
)

type planningService struct {
	availability repository.AvailabilityRepo
	periods      repository.PeriodRepo
	configs      repository.ConfigRepo
	assignments  repository.AssignmentRepo
	solver       solver.Gateway
	uow          db.UnitOfWork
	audit        *AuditSink
	observer     UseCaseObserver
}

func NewPlanningService(
	availability repository.AvailabilityRepo,
	periods repository.PeriodRepo,
	configs repository.ConfigRepo,
	assignments repository.AssignmentRepo,
	gateway solver.Gateway,
	uow db.UnitOfWork,
	audit *AuditSink,
	observers ...UseCaseObserver,
) PlanningService {
	return &planningService{
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

// PlanAll re-plans every pending day on or after the freeze boundary.
// Nothing is written unless the solver returns a feasible, well-formed
// answer; the write itself is one transaction.
func (s *planningService) PlanAll(ctx context.Context, req app.PlanRequest) (outcome *app.PlanningOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "plan-all", startedAt, fields, &err) }()

	now := resolveNow(req.Now)
	actor := actorOrSystem(req.ActorID)

	cfg, err := loadConfiguration(ctx, s.configs)
	if err != nil {
		return nil, err
	}
	boundary := domain.FreezeBoundary(now, cfg.FreezeDays)
	fields["freeze_boundary"] = boundary

	doctors, err := s.availability.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading doctors: %w", err)
	}
	if len(doctors) == 0 {
		return nil, &app.PlanError{Code: app.PlanErrNoActiveDoctors, Message: "there are no active doctors to plan with"}
	}
	periods, err := s.periods.ListPendingFrom(ctx, boundary)
	if err != nil {
		return nil, fmt.Errorf("loading pending days: %w", err)
	}
	if len(periods) == 0 {
		return nil, &app.PlanError{Code: app.PlanErrNoPendingDays, Message: "no pending days on or after " + boundary}
	}

	kept, err := s.keptAfter(ctx, boundary, periods)
	if err != nil {
		return nil, err
	}
	input := scheduler.ProblemInput{
		Doctors: doctors,
		Periods: periods,
		Config:  cfg,
	}
	if len(kept) > 0 {
		input.Capacities = scheduler.RemainingCapacities(doctors, kept, cfg.MaxShiftsTotal)
	}
	fields["kept_assignments"] = len(kept)
	problem := scheduler.BuildProblem(input)
	fields["doctors"] = len(problem.Request.Doctors)
	fields["days"] = len(problem.Request.Days)

	resp, err := s.solver.Solve(ctx, problem.Request)
	if err != nil {
		return nil, solverFailure(err)
	}
	if !resp.Feasible {
		fields["feasible"] = false
		return &app.PlanningOutcome{
			Status:         app.StatusInfeasible,
			FreezeBoundary: boundary,
			Bottlenecks:    resp.Bottlenecks,
		}, nil
	}
	entries, err := problem.Resolve(resp)
	if err != nil {
		return nil, solverFailure(err)
	}

	version := &domain.PlanVersion{
		ID:        uuid.New().String(),
		Kind:      domain.PlanBase,
		State:     domain.PlanDraft,
		CreatedBy: actor,
		Metadata:  map[string]string{domain.MetaFreezeBoundary: boundary},
		CreatedAt: now,
	}
	rows := toAssignments(entries, version.ID, now, func() string { return uuid.New().String() })
	days := domain.Snapshot(entries).Dates()
	replanned := problem.Request.Days

	var removed int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVersions := repository.NewSQLitePlanVersionRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		txPeriods := repository.NewSQLitePeriodRepo(tx)

		if err := txVersions.Create(ctx, version); err != nil {
			return fmt.Errorf("creating plan version: %w", err)
		}
		n, err := txAssignments.DeleteByDates(ctx, replanned)
		if err != nil {
			return err
		}
		removed = n
		if err := txAssignments.CreateBatch(ctx, rows); err != nil {
			return err
		}
		return txPeriods.MarkDaysPlanned(ctx, days)
	})
	if err != nil {
		return nil, err
	}

	fields["feasible"] = true
	fields["assignments_created"] = len(rows)
	fields["plan_version_id"] = version.ID
	s.audit.Record(ctx, domain.AuditPlanAll, actor, map[string]any{
		"planVersionId":      version.ID,
		"freezeBoundary":     boundary,
		"assignmentsCreated": len(rows),
		"assignmentsRemoved": removed,
		"daysPlanned":        len(days),
	})

	return &app.PlanningOutcome{
		Status:             app.StatusFeasible,
		FreezeBoundary:     boundary,
		AssignmentsCreated: len(rows),
		AssignmentsRemoved: removed,
		DaysPlanned:        len(days),
		PlanVersion:        version,
	}, nil
}

// keptAfter returns the assignments on or after the boundary that this run
// leaves in place: everything not on a pending day being re-planned. They
// still count against each doctor's total cap.
func (s *planningService) keptAfter(ctx context.Context, boundary string, pending []*domain.Period) ([]*domain.Assignment, error) {
	live, err := s.assignments.ListInWindow(ctx, boundary, openEnd)
	if err != nil {
		return nil, fmt.Errorf("loading assignments after freeze: %w", err)
	}
	replanned := make(map[string]bool)
	for _, p := range pending {
		for _, d := range p.Days {
			replanned[d.Date] = true
		}
	}
	var kept []*domain.Assignment
	for _, a := range live {
		if !replanned[a.Date] {
			kept = append(kept, a)
		}
	}
	return kept, nil
}

