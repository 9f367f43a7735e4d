package importer

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/google/uuid"
)

// Roster is a converted roster file ready for persistence.
type Roster struct {
	Configuration *domain.Configuration // nil when the file carries none
	Doctors       []domain.DoctorAvailability
	Periods       []*domain.Period
}

// Convert transforms a validated RosterSchema into domain objects.
// Call ValidateRosterSchema first; Convert assumes the schema is valid.
func Convert(schema *RosterSchema, now time.Time) *Roster {
	now = now.UTC()
	roster := &Roster{}

	if c := schema.Configuration; c != nil {
		def := domain.DefaultConfiguration()
		roster.Configuration = &domain.Configuration{
			MaxShiftsTotal:        domain.IntFromPtrWithDefault(def.MaxShiftsTotal, c.MaxShiftsTotal),
			MaxShiftsPerPeriod:    c.MaxShiftsPerPeriod,
			RequiredDoctorsPerDay: domain.IntFromPtrWithDefault(def.RequiredDoctorsPerDay, c.RequiredDoctorsPerDay),
			FreezeDays:            domain.IntFromPtrWithDefault(def.FreezeDays, c.FreezeDays),
			CreatedAt:             now,
		}
	}

	for _, p := range schema.Periods {
		period := &domain.Period{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(p.Name),
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			CreatedAt: now,
		}
		for _, d := range p.Days {
			period.Days = append(period.Days, &domain.Day{
				ID:          uuid.New().String(),
				PeriodID:    period.ID,
				Date:        d.Date,
				Description: d.Description,
				State:       domain.DayPending,
			})
		}
		sort.Slice(period.Days, func(i, j int) bool { return period.Days[i].Date < period.Days[j].Date })
		roster.Periods = append(roster.Periods, period)
	}

	for _, d := range schema.Doctors {
		dates := append([]string(nil), d.Availability...)
		sort.Strings(dates)
		roster.Doctors = append(roster.Doctors, domain.DoctorAvailability{
			Doctor: &domain.Doctor{
				ID:        uuid.New().String(),
				Name:      strings.TrimSpace(d.Name),
				Email:     strings.TrimSpace(d.Email),
				Active:    domain.BoolFromPtrWithDefault(true, d.Active),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Dates: dedupe(dates),
		})
	}

	return roster
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
