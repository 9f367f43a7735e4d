package app

import (
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/scheduler"
)

type DiffResponse struct {
	FromVersionID string
	ToVersionID   string
	scheduler.DiffResult
}

type RiskResponse struct {
	VersionID         string
	BaselineVersionID string // empty when no baseline exists
	FreezeBoundary    string
	Required          int
	scheduler.RiskResult
}

type PublishResponse struct {
	Version           *domain.PlanVersion
	DemotedVersionID  string
	Materialized      int
	Replaced          int
	DeactivatedDoctor string
}

// ImportResult holds the outcome of a roster import.
type ImportResult struct {
	Doctors            int
	Periods            int
	Days               int
	Availability       int
	ConfigurationSaved bool
}
