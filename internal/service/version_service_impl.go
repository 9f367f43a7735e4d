package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/scheduler"
	"github.com/google/uuid"
)

type versionService struct {
	versions    repository.PlanVersionRepo
	assignments repository.AssignmentRepo
	doctors     repository.DoctorRepo
	periods     repository.PeriodRepo
	configs     repository.ConfigRepo
	uow         db.UnitOfWork
	audit       *AuditSink
	observer    UseCaseObserver
}

func NewVersionService(
	versions repository.PlanVersionRepo,
	assignments repository.AssignmentRepo,
	doctors repository.DoctorRepo,
	periods repository.PeriodRepo,
	configs repository.ConfigRepo,
	uow db.UnitOfWork,
	audit *AuditSink,
	observers ...UseCaseObserver,
) VersionService {
	return &versionService{
		versions:    versions,
		assignments: assignments,
		doctors:     doctors,
		periods:     periods,
		configs:     configs,
		uow:         uow,
		audit:       audit,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *versionService) List(ctx context.Context) ([]*domain.PlanVersion, error) {
	return s.versions.List(ctx)
}

func (s *versionService) Get(ctx context.Context, id string) (*domain.PlanVersion, error) {
	v, err := s.versions.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "plan version", id)
	}
	return v, nil
}

func (s *versionService) Published(ctx context.Context) (*domain.PlanVersion, error) {
	v, err := s.versions.GetPublished(ctx)
	if err != nil {
		return nil, mapNotFound(err, "plan version", "published")
	}
	return v, nil
}

func (s *versionService) AssignmentsFor(ctx context.Context, id string) ([]domain.AssignmentView, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.rowsOf(ctx, v)
}

// rowsOf is the one place that distinguishes inline snapshots from rows in
// the assignment table. Callers see the same shape either way.
func (s *versionService) rowsOf(ctx context.Context, v *domain.PlanVersion) ([]domain.AssignmentView, error) {
	if v.IsMaterialized() {
		return s.assignments.ListByVersion(ctx, v.ID)
	}
	return s.hydrate(ctx, v.ID, *v.Snapshot)
}

func (s *versionService) hydrate(ctx context.Context, versionID string, snapshot domain.Snapshot) ([]domain.AssignmentView, error) {
	doctors, err := s.doctors.List(ctx, false)
	if err != nil {
		return nil, err
	}
	periods, err := s.periods.List(ctx)
	if err != nil {
		return nil, err
	}
	doctorNames := make(map[string]string, len(doctors))
	for _, d := range doctors {
		doctorNames[d.ID] = d.Name
	}
	periodNames := make(map[string]string, len(periods))
	for _, p := range periods {
		periodNames[p.ID] = p.Name
	}

	entries := append(domain.Snapshot(nil), snapshot...)
	scheduler.SortEntries(entries)
	out := make([]domain.AssignmentView, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.AssignmentView{
			Date:          e.Date,
			DoctorID:      e.DoctorID,
			DoctorName:    doctorNames[e.DoctorID],
			PeriodID:      e.PeriodID,
			PeriodName:    periodNames[e.PeriodID],
			PlanVersionID: versionID,
		})
	}
	return out, nil
}

func (s *versionService) Diff(ctx context.Context, fromID, toID string) (*app.DiffResponse, error) {
	from, err := s.AssignmentsFor(ctx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.AssignmentsFor(ctx, toID)
	if err != nil {
		return nil, err
	}
	return &app.DiffResponse{
		FromVersionID: fromID,
		ToVersionID:   toID,
		DiffResult:    scheduler.Diff(from, to),
	}, nil
}

// Risk scores the change a version makes against its baseline. Only the
// dates the version speaks for are compared. A candidate is read from its
// snapshot; a materialized version is read as the live rows on its dates.
func (s *versionService) Risk(ctx context.Context, id string, now time.Time) (*app.RiskResponse, error) {
	target, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfiguration(ctx, s.configs)
	if err != nil {
		return nil, err
	}

	own, err := s.rowsOf(ctx, target)
	if err != nil {
		return nil, err
	}
	dates := scheduler.DistinctDates(own)
	effective := own
	if target.IsMaterialized() {
		if effective, err = s.assignments.ListByDates(ctx, dates); err != nil {
			return nil, err
		}
	}

	baseline, err := s.baselineOf(ctx, target)
	if err != nil {
		return nil, err
	}
	var before []domain.AssignmentView
	resp := &app.RiskResponse{
		VersionID:      target.ID,
		FreezeBoundary: domain.FreezeBoundary(now, cfg.FreezeDays),
		Required:       cfg.RequiredDoctorsPerDay,
	}
	if baseline != nil {
		resp.BaselineVersionID = baseline.ID
		rows, err := s.rowsOf(ctx, baseline)
		if err != nil {
			return nil, err
		}
		before = scheduler.RestrictToDates(rows, dates)
	}

	resp.RiskResult = scheduler.ComputeRisk(scheduler.RiskInput{
		Diff:           scheduler.Diff(before, effective),
		CoverageRows:   effective,
		Required:       cfg.RequiredDoctorsPerDay,
		FreezeBoundary: resp.FreezeBoundary,
	})
	return resp, nil
}

// baselineOf returns the version a change is measured against: its source,
// else the published version unless that is the target itself.
func (s *versionService) baselineOf(ctx context.Context, target *domain.PlanVersion) (*domain.PlanVersion, error) {
	if target.SourcePlanVersionID != nil && *target.SourcePlanVersionID != "" {
		v, err := s.versions.GetByID(ctx, *target.SourcePlanVersionID)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	v, err := s.versions.GetPublished(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if v.ID == target.ID {
		return nil, nil
	}
	return v, nil
}

// Publish makes the version live. A candidate is materialized first: every
// row on its snapshot dates is replaced by the snapshot rows. Versions that
// already own rows only change state.
func (s *versionService) Publish(ctx context.Context, id, actorID string) (resp *app.PublishResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_version_id": id}
	defer func() { observe(ctx, s.observer, "publish", startedAt, fields, &err) }()

	actor := actorOrSystem(actorID)
	now := time.Now().UTC()
	resp = &app.PublishResponse{}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVersions := repository.NewSQLitePlanVersionRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		txDoctors := repository.NewSQLiteDoctorRepo(tx)

		target, err := txVersions.GetByID(ctx, id)
		if err != nil {
			return mapNotFound(err, "plan version", id)
		}
		current, err := txVersions.GetPublished(ctx)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return err
		case current.ID != target.ID:
			resp.DemotedVersionID = current.ID
		}
		if err := txVersions.DemotePublished(ctx); err != nil {
			return err
		}

		if !target.IsMaterialized() {
			snapshot := *target.Snapshot
			replaced, err := txAssignments.DeleteByDates(ctx, snapshot.Dates())
			if err != nil {
				return err
			}
			rows := toAssignments(snapshot, target.ID, now, func() string { return uuid.New().String() })
			if err := txAssignments.CreateBatch(ctx, rows); err != nil {
				return err
			}
			if err := txVersions.ClearSnapshot(ctx, target.ID); err != nil {
				return err
			}
			resp.Replaced = replaced
			resp.Materialized = len(rows)

			if doctorID, ok := target.DeactivationRequested(); ok {
				doc, err := txDoctors.GetByID(ctx, doctorID)
				if err != nil {
					return fmt.Errorf("loading doctor to deactivate: %w", err)
				}
				if doc.Active {
					if err := txDoctors.SetActive(ctx, doctorID, false, now); err != nil {
						return err
					}
					resp.DeactivatedDoctor = doctorID
				}
			}
		}

		if err := txVersions.Promote(ctx, target.ID, now); err != nil {
			return err
		}
		resp.Version, err = txVersions.GetByID(ctx, target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	fields["materialized"] = resp.Materialized
	s.audit.Record(ctx, domain.AuditPublish, actor, map[string]any{
		"planVersionId":    id,
		"demotedVersionId": resp.DemotedVersionID,
		"materialized":     resp.Materialized,
		"replaced":         resp.Replaced,
	})
	if resp.DeactivatedDoctor != "" {
		s.audit.Record(ctx, domain.AuditDoctorDeactivate, actor, map[string]any{
			"doctorId":      resp.DeactivatedDoctor,
			"planVersionId": id,
		})
	}
	return resp, nil
}
