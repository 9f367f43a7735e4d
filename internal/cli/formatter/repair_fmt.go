package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/app"
)

// FormatRepair renders a repair outcome in any of the three modes.
func FormatRepair(out *app.RepairOutcome) string {
	var b strings.Builder
	b.WriteString(Header("Repair "+string(out.Mode)) + "\n")
	fmt.Fprintf(&b, "  Status: %s\n", OutcomeBadge(out.Status))
	fmt.Fprintf(&b, "  Window: %s .. %s\n", out.Window.From, windowEnd(out.Window.To))
	if out.Message != "" {
		fmt.Fprintf(&b, "  %s\n", Dim(out.Message))
	}

	if out.Status == app.StatusInfeasible {
		b.WriteString("\n")
		b.WriteString(FormatBottlenecks(out.Bottlenecks))
		b.WriteString(Dim("  Nothing was written.") + "\n")
		return b.String()
	}

	if imp := out.Impact; imp != nil {
		fmt.Fprintf(&b, "  Shifts removed:    %d\n", imp.ShiftsRemoved)
		fmt.Fprintf(&b, "  Shifts reassigned: %d\n", imp.ShiftsReassigned)
		fmt.Fprintf(&b, "  Days affected:     %d\n", imp.DaysAffected)
		fmt.Fprintf(&b, "  Incoming doctors:  %d\n", imp.IncomingDoctors)
		if len(imp.Reassignments) > 0 {
			b.WriteString("\n")
			rows := make([][]string, 0, len(imp.Reassignments))
			for _, r := range imp.Reassignments {
				rows = append(rows, []string{r.Date, r.PeriodName, r.FromDoctorName, StyleGreen.Render(r.ToDoctorName)})
			}
			b.WriteString(RenderTable([]string{"Date", "Period", "From", "To"}, rows))
		}
	}

	if out.PlanVersion != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Version: %s %s %s\n", out.PlanVersion.ID, KindLabel(out.PlanVersion.Kind), StateBadge(out.PlanVersion.State))
		if out.Mode == app.RepairCandidate {
			fmt.Fprintf(&b, "  %s\n", Dim("Run `rota version publish "+out.PlanVersion.ID+"` to make it live."))
		}
	}
	if out.DoctorDeactivated {
		fmt.Fprintf(&b, "  %s\n", StyleYellow.Render("Doctor deactivated."))
	}
	return b.String()
}

func windowEnd(to string) string {
	if to == "" {
		return "open"
	}
	return to
}
