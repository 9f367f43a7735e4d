package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/domain"
)

// FormatImport renders the counts of a roster import.
func FormatImport(r *app.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d doctors, %d periods (%d days), %d availability dates.\n",
		r.Doctors, r.Periods, r.Days, r.Availability)
	if r.ConfigurationSaved {
		b.WriteString(Dim("Configuration updated.") + "\n")
	}
	return b.String()
}

// DoctorRow pairs a doctor with the number of dates they can work.
type DoctorRow struct {
	Doctor    *domain.Doctor
	Available int
}

// FormatDoctors renders the doctor roster.
func FormatDoctors(rows []DoctorRow) string {
	if len(rows) == 0 {
		return Dim("No doctors. Import a roster with `rota import <file>`.") + "\n"
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Doctor.Name,
			r.Doctor.ID,
			OrDash(r.Doctor.Email),
			ActivePill(r.Doctor.Active),
			fmt.Sprintf("%d", r.Available),
		})
	}
	return RenderTable([]string{"Name", "ID", "Email", "Status", "Available"}, table)
}

// FormatAudit renders audit entries newest first.
func FormatAudit(entries []*domain.AuditEntry) string {
	if len(entries) == 0 {
		return Dim("Audit log is empty.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Timestamp(e.CreatedAt),
			StyleBlue.Render(string(e.Action)),
			e.Actor,
			Dim(KeyValues(e.Details)),
		})
	}
	return RenderTable([]string{"When", "Action", "Actor", "Details"}, rows)
}
