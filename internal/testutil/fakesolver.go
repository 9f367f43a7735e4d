package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/alexanderramin/rota/internal/solver"
)

// FakeSolver is a deterministic in-process solver for service tests. It
// fills each day in date order with the least-loaded available doctors,
// honouring capacities and the per-period cap. When a day cannot be filled
// it reports the problem as infeasible with one bottleneck per short day.
type FakeSolver struct {
	mu       sync.Mutex
	calls    int
	requests []solver.Request

	// Err, when set, is returned instead of solving.
	Err error
}

func NewFakeSolver() *FakeSolver {
	return &FakeSolver{}
}

func (f *FakeSolver) Solve(ctx context.Context, req solver.Request) (*solver.Response, error) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return greedySolve(req), nil
}

// Calls returns how many times Solve was invoked.
func (f *FakeSolver) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastRequest returns the most recent request, or nil if none was made.
func (f *FakeSolver) LastRequest() *solver.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	r := f.requests[len(f.requests)-1]
	return &r
}

func greedySolve(req solver.Request) *solver.Response {
	periodOf := make(map[string]string)
	for _, p := range req.Periods {
		for _, d := range p.Days {
			periodOf[d] = p.ID
		}
	}
	canWork := make(map[string]map[string]bool)
	for doctor, dates := range req.Availability {
		canWork[doctor] = make(map[string]bool, len(dates))
		for _, d := range dates {
			canWork[doctor][d] = true
		}
	}

	load := make(map[string]int)
	periodLoad := make(map[[2]string]int)
	days := append([]string(nil), req.Days...)
	sort.Strings(days)

	resp := &solver.Response{Feasible: true, Assignments: []solver.Pair{}}
	for _, day := range days {
		var eligible []string
		for _, doctor := range req.Doctors {
			if !canWork[doctor][day] || load[doctor] >= req.CapacityFor(doctor) {
				continue
			}
			if req.MaxShiftsPerPeriod != nil && periodLoad[[2]string{doctor, periodOf[day]}] >= *req.MaxShiftsPerPeriod {
				continue
			}
			eligible = append(eligible, doctor)
		}
		sort.SliceStable(eligible, func(i, j int) bool { return load[eligible[i]] < load[eligible[j]] })

		if len(eligible) < req.RequiredDoctorsPerDay {
			resp.Feasible = false
			resp.Bottlenecks = append(resp.Bottlenecks, solver.Bottleneck{
				ID:     day,
				Kind:   "day",
				Reason: "not enough available doctors with remaining capacity",
			})
			continue
		}
		for _, doctor := range eligible[:req.RequiredDoctorsPerDay] {
			load[doctor]++
			periodLoad[[2]string{doctor, periodOf[day]}]++
			resp.Assignments = append(resp.Assignments, solver.Pair{Day: day, Doctor: doctor})
		}
	}

	if !resp.Feasible {
		resp.Assignments = []solver.Pair{}
	}
	return resp
}
