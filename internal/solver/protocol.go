package solver

// Request is the problem sent to the solver process on stdin. Doctors are
// identified by display name; days by ISO date.
type Request struct {
	Doctors               []string            `json:"doctors"`
	Days                  []string            `json:"days"`
	Periods               []Period            `json:"periods"`
	Availability          map[string][]string `json:"availability"`
	MaxShiftsPerPeriod    *int                `json:"maxShiftsPerPeriod,omitempty"`
	MaxShiftsTotal        int                 `json:"maxShiftsTotal"`
	RequiredDoctorsPerDay int                 `json:"requiredDoctorsPerDay"`
	// Capacities overrides MaxShiftsTotal per doctor for this call only.
	Capacities map[string]int `json:"capacities,omitempty"`
}

// Period groups request days under a period label.
type Period struct {
	ID   string   `json:"id"`
	Days []string `json:"days"`
}

// Response is the solver's answer. Bottlenecks are only meaningful when
// Feasible is false and are passed to operators as-is.
type Response struct {
	Feasible    bool         `json:"feasible"`
	Assignments []Pair       `json:"assignments"`
	Bottlenecks []Bottleneck `json:"bottlenecks,omitempty"`
}

// Pair is one (day, doctor) assignment proposed by the solver.
type Pair struct {
	Day    string `json:"day"`
	Doctor string `json:"doctor"`
}

// Bottleneck explains a min-cut that made the problem infeasible.
type Bottleneck struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// CapacityFor returns the effective shift budget of a doctor in this request.
func (r Request) CapacityFor(doctor string) int {
	if c, ok := r.Capacities[doctor]; ok {
		return c
	}
	return r.MaxShiftsTotal
}
