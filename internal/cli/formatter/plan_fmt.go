package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/solver"
)

// FormatPlanning renders the result of a full re-plan.
func FormatPlanning(out *app.PlanningOutcome) string {
	var b strings.Builder
	b.WriteString(Header("Plan All") + "\n")
	fmt.Fprintf(&b, "  Status:          %s\n", OutcomeBadge(out.Status))
	fmt.Fprintf(&b, "  Freeze boundary: %s\n", out.FreezeBoundary)

	if out.Status == app.StatusInfeasible {
		b.WriteString("\n")
		b.WriteString(FormatBottlenecks(out.Bottlenecks))
		b.WriteString(Dim("  Nothing was written.") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  Days planned:    %d\n", out.DaysPlanned)
	fmt.Fprintf(&b, "  Shifts created:  %d\n", out.AssignmentsCreated)
	if out.AssignmentsRemoved > 0 {
		fmt.Fprintf(&b, "  Shifts replaced: %d\n", out.AssignmentsRemoved)
	}
	if out.PlanVersion != nil {
		fmt.Fprintf(&b, "  Version:         %s %s\n", out.PlanVersion.ID, StateBadge(out.PlanVersion.State))
	}
	return b.String()
}

// FormatBottlenecks renders the min-cut explanation of an infeasible solve.
func FormatBottlenecks(bottlenecks []solver.Bottleneck) string {
	if len(bottlenecks) == 0 {
		return Dim("  No bottleneck details reported.") + "\n"
	}
	rows := make([][]string, 0, len(bottlenecks))
	for _, bn := range bottlenecks {
		rows = append(rows, []string{bn.Kind, bn.ID, OrDash(bn.Reason)})
	}
	return RenderTable([]string{"Kind", "ID", "Reason"}, rows)
}
