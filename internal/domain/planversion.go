package domain

import (
	"fmt"
	"time"
)

// Metadata keys recorded on plan versions.
const (
	MetaDoctorID         = "doctorId"
	MetaDoctorName       = "doctorName"
	MetaDeactivateDoctor = "deactivateDoctor"
	MetaWindowFrom       = "windowFrom"
	MetaWindowTo         = "windowTo"
	MetaFreezeBoundary   = "freezeBoundary"
)

// PlanVersion is one identified state of the schedule. A version either owns
// rows in the assignment table (materialized) or carries them inline in
// Snapshot until it is published.
type PlanVersion struct {
	ID                  string
	Kind                PlanKind
	State               PlanState
	CreatedBy           string
	SourcePlanVersionID *string
	Snapshot            *Snapshot
	Metadata            map[string]string
	CreatedAt           time.Time
	PublishedAt         *time.Time
}

// IsMaterialized reports whether the version's rows live in the assignment table.
func (v *PlanVersion) IsMaterialized() bool {
	return v.Snapshot == nil
}

// IsPublished reports whether the version is the live one.
func (v *PlanVersion) IsPublished() bool {
	return v.State == PlanPublished
}

// Validate checks the invariants every persisted version must satisfy.
func (v *PlanVersion) Validate() error {
	if !ValidPlanKinds[v.Kind] {
		return fmt.Errorf("invalid plan kind %q", v.Kind)
	}
	if v.State != PlanDraft && v.State != PlanPublished {
		return fmt.Errorf("invalid plan state %q", v.State)
	}
	if v.Kind == PlanRepairCandidate && v.Snapshot == nil {
		return fmt.Errorf("repair candidate requires a snapshot")
	}
	return nil
}

// DeactivationRequested reports whether the version asks for its doctor to
// be deactivated when it goes live.
func (v *PlanVersion) DeactivationRequested() (string, bool) {
	if v.Metadata[MetaDeactivateDoctor] != "true" {
		return "", false
	}
	id := v.Metadata[MetaDoctorID]
	return id, id != ""
}
