package importer

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ValidateRosterSchema checks the roster for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateRosterSchema(schema *RosterSchema) []error {
	var errs []error

	errs = append(errs, validateConfiguration(schema.Configuration)...)

	days := make(map[string]bool)
	errs = append(errs, validatePeriods(schema.Periods, days)...)
	errs = append(errs, validateDoctors(schema.Doctors, days)...)

	return errs
}

func validateConfiguration(c *ConfigurationImport) []error {
	if c == nil {
		return nil
	}
	var errs []error

	if c.MaxShiftsTotal != nil && *c.MaxShiftsTotal < 1 {
		errs = append(errs, fmt.Errorf("configuration.max_shifts_total must be positive"))
	}
	if c.MaxShiftsPerPeriod != nil && *c.MaxShiftsPerPeriod < 1 {
		errs = append(errs, fmt.Errorf("configuration.max_shifts_per_period must be positive"))
	}
	if c.RequiredDoctorsPerDay != nil && *c.RequiredDoctorsPerDay < 1 {
		errs = append(errs, fmt.Errorf("configuration.required_doctors_per_day must be positive"))
	}
	if c.FreezeDays != nil && *c.FreezeDays < 0 {
		errs = append(errs, fmt.Errorf("configuration.freeze_days cannot be negative"))
	}

	return errs
}

func validatePeriods(periods []PeriodImport, days map[string]bool) []error {
	var errs []error
	names := make(map[string]bool)

	for i, p := range periods {
		prefix := fmt.Sprintf("periods[%d]", i)

		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[p.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, p.Name))
		} else {
			names[p.Name] = true
		}

		start, startErr := parseDate(prefix+".start_date", p.StartDate)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		end, endErr := parseDate(prefix+".end_date", p.EndDate)
		if endErr != nil {
			errs = append(errs, endErr)
		}
		bounded := startErr == nil && endErr == nil
		if bounded && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, p.EndDate, p.StartDate))
			bounded = false
		}

		if len(p.Days) == 0 {
			errs = append(errs, fmt.Errorf("%s.days: at least one day is required", prefix))
		}
		for j, d := range p.Days {
			dayPrefix := fmt.Sprintf("%s.days[%d]", prefix, j)
			date, err := parseDate(dayPrefix+".date", d.Date)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if days[d.Date] {
				errs = append(errs, fmt.Errorf("%s.date: %q is already used by another day", dayPrefix, d.Date))
				continue
			}
			days[d.Date] = true
			if bounded && (date.Before(start) || date.After(end)) {
				errs = append(errs, fmt.Errorf("%s.date: %q is outside %s..%s", dayPrefix, d.Date, p.StartDate, p.EndDate))
			}
		}
	}

	return errs
}

func validateDoctors(doctors []DoctorImport, days map[string]bool) []error {
	var errs []error
	names := make(map[string]bool)

	for i, d := range doctors {
		prefix := fmt.Sprintf("doctors[%d]", i)

		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[d.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, d.Name))
		} else {
			names[d.Name] = true
		}

		for j, date := range d.Availability {
			field := fmt.Sprintf("%s.availability[%d]", prefix, j)
			if _, err := parseDate(field, date); err != nil {
				errs = append(errs, err)
				continue
			}
			if !days[date] {
				errs = append(errs, fmt.Errorf("%s: %q is not a day of any period", field, date))
			}
		}
	}

	return errs
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)
	}
	return t, nil
}
