package domain

import (
	"fmt"
	"time"
)

// Period is a named scheduling window, typically a holiday block.
type Period struct {
	ID        string
	Name      string
	StartDate string
	EndDate   string
	Days      []*Day
	CreatedAt time.Time
}

type Day struct {
	ID          string
	PeriodID    string
	Date        string
	Description string
	State       DayState
}

// Validate checks the period bounds and that every day falls inside them.
func (p *Period) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("period name is required")
	}
	if _, err := ParseDate(p.StartDate); err != nil {
		return fmt.Errorf("period %q start: %w", p.Name, err)
	}
	if _, err := ParseDate(p.EndDate); err != nil {
		return fmt.Errorf("period %q end: %w", p.Name, err)
	}
	if p.EndDate < p.StartDate {
		return fmt.Errorf("period %q ends before it starts", p.Name)
	}
	for _, d := range p.Days {
		if d.Date < p.StartDate || d.Date > p.EndDate {
			return fmt.Errorf("day %s is outside period %q", d.Date, p.Name)
		}
	}
	return nil
}

// DayDates returns the dates of the period's days in their current order.
func (p *Period) DayDates() []string {
	dates := make([]string, 0, len(p.Days))
	for _, d := range p.Days {
		dates = append(dates, d.Date)
	}
	return dates
}

// WithDays returns a shallow copy of the period restricted to the given dates.
func (p *Period) WithDays(dates map[string]bool) *Period {
	cp := *p
	cp.Days = nil
	for _, d := range p.Days {
		if dates[d.Date] {
			cp.Days = append(cp.Days, d)
		}
	}
	return &cp
}
