package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
)

type DoctorRepo interface {
	Create(ctx context.Context, d *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByName(ctx context.Context, name string) (*domain.Doctor, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Doctor, error)
	SetActive(ctx context.Context, id string, active bool, now time.Time) error
}

type AvailabilityRepo interface {
	Add(ctx context.Context, doctorID string, dates []string) error
	ListByDoctor(ctx context.Context, doctorID string) ([]string, error)
	// ListActive returns every active doctor paired with their declared dates.
	ListActive(ctx context.Context) ([]domain.DoctorAvailability, error)
}

type PeriodRepo interface {
	Create(ctx context.Context, p *domain.Period) error
	GetByID(ctx context.Context, id string) (*domain.Period, error)
	GetByName(ctx context.Context, name string) (*domain.Period, error)
	List(ctx context.Context) ([]*domain.Period, error)
	// ListPendingFrom returns periods carrying only their PENDING days dated
	// on or after from. Periods with no such day are omitted.
	ListPendingFrom(ctx context.Context, from string) ([]*domain.Period, error)
	MarkDaysPlanned(ctx context.Context, dates []string) error
}

type ConfigRepo interface {
	// Current returns the most recently stored configuration.
	Current(ctx context.Context) (*domain.Configuration, error)
	Save(ctx context.Context, c *domain.Configuration) error
}

type AssignmentRepo interface {
	CreateBatch(ctx context.Context, rows []*domain.Assignment) error
	ListByVersion(ctx context.Context, versionID string) ([]domain.AssignmentView, error)
	ListByDates(ctx context.Context, dates []string) ([]domain.AssignmentView, error)
	ListInWindow(ctx context.Context, from, to string) ([]*domain.Assignment, error)
	DeleteByIDs(ctx context.Context, ids []string) (int, error)
	DeleteByDates(ctx context.Context, dates []string) (int, error)
}

type PlanVersionRepo interface {
	Create(ctx context.Context, v *domain.PlanVersion) error
	GetByID(ctx context.Context, id string) (*domain.PlanVersion, error)
	List(ctx context.Context) ([]*domain.PlanVersion, error)
	GetPublished(ctx context.Context) (*domain.PlanVersion, error)
	DemotePublished(ctx context.Context) error
	Promote(ctx context.Context, id string, at time.Time) error
	ClearSnapshot(ctx context.Context, id string) error
}

type AuditRepo interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}
