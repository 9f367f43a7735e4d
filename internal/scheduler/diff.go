package scheduler

import (
	"sort"

	"github.com/alexanderramin/rota/internal/domain"
)

// DiffResult lists the assignments that differ between two versions.
type DiffResult struct {
	Added        []domain.AssignmentView
	Removed      []domain.AssignmentView
	AddedCount   int
	RemovedCount int
}

// IsEmpty reports whether the two versions hold the same (date, doctor) set.
func (d DiffResult) IsEmpty() bool {
	return d.AddedCount == 0 && d.RemovedCount == 0
}

// Diff computes the symmetric difference of two assignment sets keyed by
// (date, doctor id). Moving a doctor/date pair to another period is not a
// change.
func Diff(from, to []domain.AssignmentView) DiffResult {
	fromSet := indexByKey(from)
	toSet := indexByKey(to)

	var res DiffResult
	for k, v := range toSet {
		if _, ok := fromSet[k]; !ok {
			res.Added = append(res.Added, v)
		}
	}
	for k, v := range fromSet {
		if _, ok := toSet[k]; !ok {
			res.Removed = append(res.Removed, v)
		}
	}
	sortViews(res.Added)
	sortViews(res.Removed)
	res.AddedCount = len(res.Added)
	res.RemovedCount = len(res.Removed)
	return res
}

// RestrictToDates keeps only rows dated on one of the given dates.
func RestrictToDates(rows []domain.AssignmentView, dates []string) []domain.AssignmentView {
	keep := make(map[string]bool, len(dates))
	for _, d := range dates {
		keep[d] = true
	}
	var out []domain.AssignmentView
	for _, r := range rows {
		if keep[r.Date] {
			out = append(out, r)
		}
	}
	return out
}

// DistinctDates returns the sorted set of dates present in rows.
func DistinctDates(rows []domain.AssignmentView) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if !seen[r.Date] {
			seen[r.Date] = true
			out = append(out, r.Date)
		}
	}
	sort.Strings(out)
	return out
}

func indexByKey(rows []domain.AssignmentView) map[domain.AssignmentKey]domain.AssignmentView {
	m := make(map[domain.AssignmentKey]domain.AssignmentView, len(rows))
	for _, r := range rows {
		if _, dup := m[r.Key()]; !dup {
			m[r.Key()] = r
		}
	}
	return m
}

func sortViews(rows []domain.AssignmentView) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].DoctorID < rows[j].DoctorID
	})
}
