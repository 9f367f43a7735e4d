package scheduler

import (
	"sort"

	"github.com/alexanderramin/rota/internal/domain"
)

// RiskInput carries everything needed to score a version change.
type RiskInput struct {
	Diff DiffResult
	// CoverageRows are the rows that would be live on the affected dates
	// once the target version is in effect.
	CoverageRows   []domain.AssignmentView
	Required       int
	FreezeBoundary string
}

// DateCoverage is the staffing of one affected date.
type DateCoverage struct {
	Date         string
	Assigned     int
	Required     int
	UnderCovered bool
}

// RiskResult summarizes the operational impact of a version change.
type RiskResult struct {
	AddedCount        int
	RemovedCount      int
	AffectedDates     []string
	Coverage          []DateCoverage
	UnderCoveredDates []string
	// FrozenViolations counts changes dated before the freeze boundary.
	FrozenViolations int
	FrozenDates      []string
	ChangesByDoctor  map[string]int
	ChangesByPeriod  map[string]int
}

// HasWarnings reports whether the change leaves a date under-covered or
// touches the frozen window.
func (r RiskResult) HasWarnings() bool {
	return len(r.UnderCoveredDates) > 0 || r.FrozenViolations > 0
}

func ComputeRisk(input RiskInput) RiskResult {
	changes := make([]domain.AssignmentView, 0, input.Diff.AddedCount+input.Diff.RemovedCount)
	changes = append(changes, input.Diff.Added...)
	changes = append(changes, input.Diff.Removed...)

	result := RiskResult{
		AddedCount:      input.Diff.AddedCount,
		RemovedCount:    input.Diff.RemovedCount,
		AffectedDates:   DistinctDates(changes),
		ChangesByDoctor: map[string]int{},
		ChangesByPeriod: map[string]int{},
	}

	assigned := make(map[string]map[string]bool)
	for _, r := range input.CoverageRows {
		if assigned[r.Date] == nil {
			assigned[r.Date] = map[string]bool{}
		}
		assigned[r.Date][r.DoctorID] = true
	}
	for _, date := range result.AffectedDates {
		c := DateCoverage{Date: date, Assigned: len(assigned[date]), Required: input.Required}
		c.UnderCovered = c.Assigned < c.Required
		result.Coverage = append(result.Coverage, c)
		if c.UnderCovered {
			result.UnderCoveredDates = append(result.UnderCoveredDates, date)
		}
	}

	frozen := map[string]bool{}
	for _, ch := range changes {
		if input.FreezeBoundary != "" && ch.Date < input.FreezeBoundary {
			result.FrozenViolations++
			frozen[ch.Date] = true
		}
		result.ChangesByDoctor[domain.CoalesceStr(ch.DoctorName, ch.DoctorID)]++
		result.ChangesByPeriod[domain.CoalesceStr(ch.PeriodName, ch.PeriodID)]++
	}
	for date := range frozen {
		result.FrozenDates = append(result.FrozenDates, date)
	}
	sort.Strings(result.FrozenDates)

	return result
}
