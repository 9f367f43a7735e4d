package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importNow = time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

func TestConvert_MinimalRoster(t *testing.T) {
	roster := Convert(validMinimalRoster(), importNow)

	assert.Nil(t, roster.Configuration)

	require.Len(t, roster.Periods, 1)
	p := roster.Periods[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Christmas", p.Name)
	require.Len(t, p.Days, 1)
	assert.Equal(t, p.ID, p.Days[0].PeriodID)
	assert.Equal(t, domain.DayPending, p.Days[0].State)
	assert.Equal(t, "Christmas Eve", p.Days[0].Description)
	assert.NoError(t, p.Validate())

	require.Len(t, roster.Doctors, 1)
	d := roster.Doctors[0]
	assert.NotEmpty(t, d.Doctor.ID)
	assert.True(t, d.Doctor.Active, "doctors are active unless stated otherwise")
	assert.Equal(t, []string{"2025-12-24"}, d.Dates)
	assert.Equal(t, importNow, d.Doctor.CreatedAt)
}

func TestConvert_ConfigurationDefaults(t *testing.T) {
	schema := validMinimalRoster()
	schema.Configuration = &ConfigurationImport{FreezeDays: ptrInt(2)}

	roster := Convert(schema, importNow)
	require.NotNil(t, roster.Configuration)
	assert.Equal(t, 3, roster.Configuration.MaxShiftsTotal)
	assert.Equal(t, 1, roster.Configuration.RequiredDoctorsPerDay)
	assert.Equal(t, 2, roster.Configuration.FreezeDays)
	assert.Nil(t, roster.Configuration.MaxShiftsPerPeriod)
	assert.NoError(t, roster.Configuration.Validate())
}

func TestConvert_SortsAndDedupesAvailability(t *testing.T) {
	schema := validMinimalRoster()
	schema.Periods[0].Days = []DayImport{{Date: "2025-12-25"}, {Date: "2025-12-24"}}
	schema.Doctors[0].Availability = []string{"2025-12-25", "2025-12-24", "2025-12-25"}
	schema.Doctors = append(schema.Doctors, DoctorImport{Name: " Dr. Bruno ", Active: ptrBool(false)})

	roster := Convert(schema, importNow)
	assert.Equal(t, []string{"2025-12-24", "2025-12-25"}, roster.Periods[0].DayDates())
	assert.Equal(t, []string{"2025-12-24", "2025-12-25"}, roster.Doctors[0].Dates)
	assert.Equal(t, "Dr. Bruno", roster.Doctors[1].Doctor.Name)
	assert.False(t, roster.Doctors[1].Doctor.Active)
}

func TestLoadRosterSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"configuration": {"max_shifts_total": 2},
		"doctors": [{"name": "Dr. Ana", "availability": ["2025-12-24"]}],
		"periods": [{"name": "Christmas", "start_date": "2025-12-24", "end_date": "2025-12-25",
			"days": [{"date": "2025-12-24"}]}]
	}`), 0o644))

	schema, err := LoadRosterSchema(path)
	require.NoError(t, err)
	require.NotNil(t, schema.Configuration)
	assert.Equal(t, 2, *schema.Configuration.MaxShiftsTotal)
	assert.Len(t, schema.Doctors, 1)
	assert.Empty(t, ValidateRosterSchema(schema))

	_, err = LoadRosterSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
