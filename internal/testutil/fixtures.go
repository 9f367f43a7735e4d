package testutil

import (
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/google/uuid"
)

// Doctor options
type DoctorOption func(*domain.Doctor)

func WithInactive() DoctorOption {
	return func(d *domain.Doctor) {
		d.Active = false
	}
}

func WithEmail(email string) DoctorOption {
	return func(d *domain.Doctor) {
		d.Email = email
	}
}

func NewTestDoctor(name string, opts ...DoctorOption) *domain.Doctor {
	now := time.Now().UTC()
	d := &domain.Doctor{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Period options
type PeriodOption func(*domain.Period)

func WithDayState(date string, state domain.DayState) PeriodOption {
	return func(p *domain.Period) {
		for _, d := range p.Days {
			if d.Date == date {
				d.State = state
			}
		}
	}
}

// NewTestPeriod builds a period spanning its first to last date with one
// PENDING day per date.
func NewTestPeriod(name string, dates []string, opts ...PeriodOption) *domain.Period {
	p := &domain.Period{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, date := range dates {
		if p.StartDate == "" || date < p.StartDate {
			p.StartDate = date
		}
		if date > p.EndDate {
			p.EndDate = date
		}
		p.Days = append(p.Days, &domain.Day{
			ID:       uuid.New().String(),
			PeriodID: p.ID,
			Date:     date,
			State:    domain.DayPending,
		})
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlanVersion options
type VersionOption func(*domain.PlanVersion)

func WithVersionState(s domain.PlanState) VersionOption {
	return func(v *domain.PlanVersion) {
		v.State = s
	}
}

func WithSource(id string) VersionOption {
	return func(v *domain.PlanVersion) {
		v.SourcePlanVersionID = &id
	}
}

func WithSnapshot(entries ...domain.SnapshotEntry) VersionOption {
	return func(v *domain.PlanVersion) {
		s := domain.Snapshot(entries)
		if s == nil {
			s = domain.Snapshot{}
		}
		v.Snapshot = &s
	}
}

func WithMetadata(key, value string) VersionOption {
	return func(v *domain.PlanVersion) {
		v.Metadata[key] = value
	}
}

func WithCreatedAt(t time.Time) VersionOption {
	return func(v *domain.PlanVersion) {
		v.CreatedAt = t
	}
}

func NewTestVersion(kind domain.PlanKind, opts ...VersionOption) *domain.PlanVersion {
	v := &domain.PlanVersion{
		ID:        uuid.New().String(),
		Kind:      kind,
		State:     domain.PlanDraft,
		CreatedBy: "tester",
		Metadata:  map[string]string{},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func NewTestAssignment(date, doctorID, periodID, versionID string) *domain.Assignment {
	return &domain.Assignment{
		ID:            uuid.New().String(),
		Date:          date,
		DoctorID:      doctorID,
		PeriodID:      periodID,
		PlanVersionID: versionID,
		CreatedAt:     time.Now().UTC(),
	}
}
