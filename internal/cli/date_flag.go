package cli

import (
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*dateValue)(nil)
	_ pflag.Value = (*repairModeValue)(nil)
)

// dateValue is a pflag.Value accepting YYYY-MM-DD. The zero value is unset.
type dateValue struct {
	date string
}

func (d *dateValue) String() string { return d.date }

func (d *dateValue) Set(s string) error {
	if _, err := domain.ParseDate(s); err != nil {
		return err
	}
	d.date = s
	return nil
}

func (d *dateValue) Type() string { return "date" }

// repairModeValue is a pflag.Value restricted to the known repair modes.
type repairModeValue struct {
	mode string
}

func (m *repairModeValue) String() string { return m.mode }

func (m *repairModeValue) Set(s string) error {
	if !validRepairMode(s) {
		return errInvalidMode(s)
	}
	m.mode = s
	return nil
}

func (m *repairModeValue) Type() string { return "mode" }
