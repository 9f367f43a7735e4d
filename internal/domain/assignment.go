package domain

import "time"

// Assignment is the ground truth of who works when. Rows are never updated:
// a changed day gets its old row deleted and a new one inserted.
type Assignment struct {
	ID            string
	Date          string
	DoctorID      string
	PeriodID      string
	PlanVersionID string
	CreatedAt     time.Time
}

// AssignmentView is an assignment hydrated with display names. It is also
// the shape snapshot rows take when read through a plan version.
type AssignmentView struct {
	Date          string
	DoctorID      string
	DoctorName    string
	PeriodID      string
	PeriodName    string
	PlanVersionID string
}

// Key identifies an assignment for diffing: (date, doctor) only.
func (v AssignmentView) Key() AssignmentKey {
	return AssignmentKey{Date: v.Date, DoctorID: v.DoctorID}
}

type AssignmentKey struct {
	Date     string
	DoctorID string
}

// SnapshotEntry is one inline row of a not-yet-materialized plan version.
type SnapshotEntry struct {
	Date     string `json:"date"`
	DoctorID string `json:"doctorId"`
	PeriodID string `json:"periodId"`
}

// Snapshot is the inline row set of a candidate plan version.
type Snapshot []SnapshotEntry

// Dates returns the distinct dates covered by the snapshot.
func (s Snapshot) Dates() []string {
	seen := make(map[string]bool, len(s))
	var dates []string
	for _, e := range s {
		if !seen[e.Date] {
			seen[e.Date] = true
			dates = append(dates, e.Date)
		}
	}
	return dates
}
