package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// RosterSchema is the top-level JSON structure of a roster file.
type RosterSchema struct {
	Configuration *ConfigurationImport `json:"configuration,omitempty"`
	Doctors       []DoctorImport       `json:"doctors"`
	Periods       []PeriodImport       `json:"periods"`
}

// ConfigurationImport defines the planning limits. Omitted fields fall back
// to the built-in defaults.
type ConfigurationImport struct {
	MaxShiftsTotal        *int `json:"max_shifts_total,omitempty"`
	MaxShiftsPerPeriod    *int `json:"max_shifts_per_period,omitempty"`
	RequiredDoctorsPerDay *int `json:"required_doctors_per_day,omitempty"`
	FreezeDays            *int `json:"freeze_days,omitempty"`
}

// DoctorImport defines a doctor and the dates they can work.
type DoctorImport struct {
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	Active       *bool    `json:"active,omitempty"`
	Availability []string `json:"availability,omitempty"`
}

// PeriodImport defines a scheduling period and its mandatory days.
type PeriodImport struct {
	Name      string      `json:"name"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Days      []DayImport `json:"days"`
}

type DayImport struct {
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

// LoadRosterSchema reads and parses a roster JSON file.
func LoadRosterSchema(path string) (*RosterSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema RosterSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing roster file: %w", err)
	}
	return &schema, nil
}
