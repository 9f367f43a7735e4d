package scheduler

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/solver"
)

// ProblemInput is the domain snapshot a solver request is built from.
type ProblemInput struct {
	Doctors []domain.DoctorAvailability
	Periods []*domain.Period
	Config  *domain.Configuration

	// Capacities maps doctor name to remaining shifts. When set it replaces
	// the global cap for the listed doctors in this request only.
	Capacities map[string]int

	// RequiredPerDay replaces Config.RequiredDoctorsPerDay when positive.
	RequiredPerDay int

	// Busy lists (date, doctor id) pairs that must not be offered to the
	// solver even when the doctor declared availability.
	Busy map[domain.AssignmentKey]bool
}

// Problem is a built solver request plus the lookups needed to map the
// solver's answer back onto domain ids.
type Problem struct {
	Request solver.Request

	doctorIDs  map[string]string // name -> id
	dayPeriods map[string]string // date -> period id
}

// BuildProblem turns the domain snapshot into a solver request. Doctors are
// ordered by name, periods by start date then name and days ascending, so
// identical inputs always produce identical requests.
func BuildProblem(in ProblemInput) *Problem {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.DefaultConfiguration()
	}

	periods := make([]*domain.Period, len(in.Periods))
	copy(periods, in.Periods)
	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].StartDate != periods[j].StartDate {
			return periods[i].StartDate < periods[j].StartDate
		}
		return periods[i].Name < periods[j].Name
	})

	p := &Problem{
		doctorIDs:  make(map[string]string, len(in.Doctors)),
		dayPeriods: make(map[string]string),
	}
	req := solver.Request{
		Doctors:               []string{},
		Days:                  []string{},
		Periods:               []solver.Period{},
		Availability:          map[string][]string{},
		MaxShiftsPerPeriod:    cfg.MaxShiftsPerPeriod,
		MaxShiftsTotal:        cfg.MaxShiftsTotal,
		RequiredDoctorsPerDay: cfg.RequiredDoctorsPerDay,
	}
	if in.RequiredPerDay > 0 {
		req.RequiredDoctorsPerDay = in.RequiredPerDay
	}

	for _, period := range periods {
		dates := period.DayDates()
		sort.Strings(dates)
		var own []string
		for _, date := range dates {
			if _, dup := p.dayPeriods[date]; dup {
				continue
			}
			p.dayPeriods[date] = period.ID
			own = append(own, date)
		}
		if len(own) == 0 {
			continue
		}
		req.Periods = append(req.Periods, solver.Period{ID: period.Name, Days: own})
		req.Days = append(req.Days, own...)
	}
	sort.Strings(req.Days)

	doctors := make([]domain.DoctorAvailability, len(in.Doctors))
	copy(doctors, in.Doctors)
	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].Doctor.Name < doctors[j].Doctor.Name
	})

	for _, da := range doctors {
		d := da.Doctor
		if _, dup := p.doctorIDs[d.Name]; dup {
			continue
		}
		p.doctorIDs[d.Name] = d.ID
		req.Doctors = append(req.Doctors, d.Name)

		var avail []string
		for _, date := range da.Dates {
			if _, inProblem := p.dayPeriods[date]; !inProblem {
				continue
			}
			if in.Busy[domain.AssignmentKey{Date: date, DoctorID: d.ID}] {
				continue
			}
			avail = append(avail, date)
		}
		if len(avail) == 0 {
			continue
		}
		sort.Strings(avail)
		req.Availability[d.Name] = avail
	}

	if in.Capacities != nil {
		req.Capacities = make(map[string]int, len(in.Capacities))
		for name, c := range in.Capacities {
			if _, ok := p.doctorIDs[name]; ok {
				req.Capacities[name] = c
			}
		}
	}

	p.Request = req
	return p
}

// Resolve maps the pairs of a feasible response back to domain ids,
// ordered by date then doctor id.
func (p *Problem) Resolve(resp *solver.Response) ([]domain.SnapshotEntry, error) {
	if err := solver.CheckResponse(p.Request, resp); err != nil {
		return nil, err
	}
	out := make([]domain.SnapshotEntry, 0, len(resp.Assignments))
	for _, pair := range resp.Assignments {
		doctorID, ok := p.doctorIDs[pair.Doctor]
		if !ok {
			return nil, fmt.Errorf("%w: unknown doctor %q", solver.ErrProtocol, pair.Doctor)
		}
		out = append(out, domain.SnapshotEntry{
			Date:     pair.Day,
			DoctorID: doctorID,
			PeriodID: p.dayPeriods[pair.Day],
		})
	}
	SortEntries(out)
	return out, nil
}

// SortEntries orders snapshot rows by date then doctor id.
func SortEntries(entries []domain.SnapshotEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].DoctorID < entries[j].DoctorID
	})
}
