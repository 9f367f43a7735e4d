package domain

import (
	"fmt"
	"time"
)

// Configuration holds the global planning limits. Rows are append-only and
// the most recent one is authoritative.
type Configuration struct {
	ID                    int64
	MaxShiftsTotal        int
	MaxShiftsPerPeriod    *int
	RequiredDoctorsPerDay int
	FreezeDays            int
	CreatedAt             time.Time
}

// DefaultConfiguration is used until an operator stores a configuration.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		MaxShiftsTotal:        3,
		RequiredDoctorsPerDay: 1,
		FreezeDays:            0,
	}
}

func (c *Configuration) Validate() error {
	if c.MaxShiftsTotal < 1 {
		return fmt.Errorf("maxShiftsTotal must be at least 1")
	}
	if c.MaxShiftsPerPeriod != nil && *c.MaxShiftsPerPeriod < 1 {
		return fmt.Errorf("maxShiftsPerPeriod must be at least 1 when set")
	}
	if c.RequiredDoctorsPerDay < 1 {
		return fmt.Errorf("requiredDoctorsPerDay must be at least 1")
	}
	if c.FreezeDays < 0 {
		return fmt.Errorf("freezeDays cannot be negative")
	}
	return nil
}
