package app

import (
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/solver"
)

type RepairMode string

const (
	RepairPreview   RepairMode = "preview"
	RepairCandidate RepairMode = "candidate"
	RepairApply     RepairMode = "apply"
)

// ValidRepairModes is the canonical set of accepted repair modes.
var ValidRepairModes = map[RepairMode]bool{
	RepairPreview: true, RepairCandidate: true, RepairApply: true,
}

// RepairRequest asks to move a doctor's shifts in [From, To] to others.
// An empty From starts at the freeze boundary; an empty To is unbounded.
type RepairRequest struct {
	DoctorID   string
	From       string
	To         string
	Deactivate bool
	ActorID    string
	Now        *time.Time
}

// Validate checks the request shape before anything is loaded.
func (r RepairRequest) Validate() error {
	if r.DoctorID == "" {
		return &ValidationError{Field: "doctorId", Message: "is required"}
	}
	if r.From != "" {
		if _, err := domain.ParseDate(r.From); err != nil {
			return &ValidationError{Field: "from", Message: err.Error()}
		}
	}
	if r.To != "" {
		if _, err := domain.ParseDate(r.To); err != nil {
			return &ValidationError{Field: "to", Message: err.Error()}
		}
	}
	if r.From != "" && r.To != "" && r.To < r.From {
		return &ValidationError{Field: "to", Message: "window ends before it starts"}
	}
	return nil
}

// Window is an inclusive date range. An empty To is unbounded.
type Window struct {
	From string
	To   string
}

// Reassignment moves one shift from the departing doctor to another.
type Reassignment struct {
	Date           string
	PeriodID       string
	PeriodName     string
	FromDoctorID   string
	FromDoctorName string
	ToDoctorID     string
	ToDoctorName   string
}

type RepairImpact struct {
	ShiftsRemoved    int
	ShiftsReassigned int
	DaysAffected     int
	IncomingDoctors  int
	Reassignments    []Reassignment
}

type RepairOutcome struct {
	Mode              RepairMode
	Status            OutcomeStatus
	Message           string
	Window            Window
	Impact            *RepairImpact
	Bottlenecks       []solver.Bottleneck
	PlanVersion       *domain.PlanVersion
	DoctorDeactivated bool
}
