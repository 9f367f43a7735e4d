package scheduler

import "github.com/alexanderramin/rota/internal/domain"

// RemainingCapacities returns, per doctor name, how many more shifts each
// doctor may take: maxTotal minus the shifts they keep anywhere in the
// examined window, floored at zero.
func RemainingCapacities(doctors []domain.DoctorAvailability, kept []*domain.Assignment, maxTotal int) map[string]int {
	held := make(map[string]int)
	for _, a := range kept {
		held[a.DoctorID]++
	}
	out := make(map[string]int, len(doctors))
	for _, da := range doctors {
		remaining := maxTotal - held[da.Doctor.ID]
		if remaining < 0 {
			remaining = 0
		}
		out[da.Doctor.Name] = remaining
	}
	return out
}
