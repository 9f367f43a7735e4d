package domain

import (
	"fmt"
	"strings"
	"time"
)

type Doctor struct {
	ID        string
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DoctorAvailability pairs a doctor with the dates they declared they can work.
type DoctorAvailability struct {
	Doctor *Doctor
	Dates  []string
}

// Validate checks the fields the solver relies on. The name doubles as the
// doctor's identity in solver requests, so it must be non-blank.
func (d *Doctor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("doctor name is required")
	}
	return nil
}

// Deactivate marks the doctor inactive. Returns false if already inactive.
func (d *Doctor) Deactivate(now time.Time) bool {
	if !d.Active {
		return false
	}
	d.Active = false
	d.UpdatedAt = now
	return true
}
