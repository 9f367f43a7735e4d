package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/domain"
)

// FormatVersionList renders plan versions newest first.
func FormatVersionList(versions []*domain.PlanVersion) string {
	if len(versions) == 0 {
		return Dim("No plan versions yet. Run `rota plan` first.") + "\n"
	}
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		source := ""
		if v.SourcePlanVersionID != nil {
			source = ShortID(*v.SourcePlanVersionID)
		}
		rows = append(rows, []string{
			v.ID,
			KindLabel(v.Kind),
			StateBadge(v.State),
			OrDash(source),
			v.CreatedBy,
			Timestamp(v.CreatedAt),
		})
	}
	return RenderTable([]string{"ID", "Kind", "State", "Source", "By", "Created"}, rows)
}

// FormatVersion renders one version with its rows.
func FormatVersion(v *domain.PlanVersion, rows []domain.AssignmentView) string {
	var b strings.Builder
	b.WriteString(Header("Plan Version") + "\n")
	fmt.Fprintf(&b, "  ID:      %s\n", v.ID)
	fmt.Fprintf(&b, "  Kind:    %s\n", KindLabel(v.Kind))
	fmt.Fprintf(&b, "  State:   %s\n", StateBadge(v.State))
	fmt.Fprintf(&b, "  By:      %s\n", v.CreatedBy)
	fmt.Fprintf(&b, "  Created: %s\n", Timestamp(v.CreatedAt))
	if v.SourcePlanVersionID != nil {
		fmt.Fprintf(&b, "  Source:  %s\n", *v.SourcePlanVersionID)
	}
	if !v.IsMaterialized() {
		fmt.Fprintf(&b, "  %s\n", Dim("Snapshot only; publish to materialize."))
	}
	if len(v.Metadata) > 0 {
		meta := make(map[string]any, len(v.Metadata))
		for k, val := range v.Metadata {
			meta[k] = val
		}
		fmt.Fprintf(&b, "  Meta:    %s\n", Dim(KeyValues(meta)))
	}
	b.WriteString("\n")
	b.WriteString(FormatAssignments(rows))
	return b.String()
}

// FormatAssignments renders hydrated rows in date order.
func FormatAssignments(rows []domain.AssignmentView) string {
	if len(rows) == 0 {
		return Dim("  No assignments.") + "\n"
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.Date, r.PeriodName, r.DoctorName})
	}
	return RenderTable([]string{"Date", "Period", "Doctor"}, table)
}

// FormatDiff renders the change set between two versions.
func FormatDiff(d *app.DiffResponse) string {
	var b strings.Builder
	b.WriteString(Header("Diff") + "\n")
	fmt.Fprintf(&b, "  %s → %s\n", d.FromVersionID, d.ToVersionID)
	fmt.Fprintf(&b, "  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("+%d added", d.AddedCount)),
		StyleRed.Render(fmt.Sprintf("-%d removed", d.RemovedCount)))
	if d.AddedCount+d.RemovedCount == 0 {
		b.WriteString(Dim("  No differences.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, d.AddedCount+d.RemovedCount)
	for _, r := range d.Removed {
		rows = append(rows, []string{StyleRed.Render("-"), r.Date, r.PeriodName, r.DoctorName})
	}
	for _, r := range d.Added {
		rows = append(rows, []string{StyleGreen.Render("+"), r.Date, r.PeriodName, r.DoctorName})
	}
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"", "Date", "Period", "Doctor"}, rows))
	return b.String()
}

// FormatRisk renders the operational impact of a version.
func FormatRisk(r *app.RiskResponse) string {
	var b strings.Builder
	b.WriteString(Header("Risk") + "\n")
	fmt.Fprintf(&b, "  Version:         %s\n", r.VersionID)
	fmt.Fprintf(&b, "  Baseline:        %s\n", OrDash(r.BaselineVersionID))
	fmt.Fprintf(&b, "  Freeze boundary: %s\n", r.FreezeBoundary)
	fmt.Fprintf(&b, "  Changes:         +%d / -%d on %d dates\n", r.AddedCount, r.RemovedCount, len(r.AffectedDates))

	if r.FrozenViolations > 0 {
		fmt.Fprintf(&b, "  %s\n", StyleRed.Render(fmt.Sprintf(
			"▲ %d changes inside the frozen window: %s", r.FrozenViolations, strings.Join(r.FrozenDates, ", "))))
	}
	if len(r.UnderCoveredDates) > 0 {
		fmt.Fprintf(&b, "  %s\n", StyleYellow.Render(fmt.Sprintf(
			"▲ under-covered: %s", strings.Join(r.UnderCoveredDates, ", "))))
	}
	if !r.HasWarnings() {
		fmt.Fprintf(&b, "  %s\n", StyleGreen.Render("● No coverage or freeze warnings"))
	}

	if len(r.Coverage) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(r.Coverage))
		for _, c := range r.Coverage {
			assigned := fmt.Sprintf("%d/%d", c.Assigned, c.Required)
			if c.UnderCovered {
				assigned = StyleYellow.Render(assigned)
			}
			rows = append(rows, []string{c.Date, assigned})
		}
		b.WriteString(RenderTable([]string{"Date", "Staffed"}, rows))
	}
	if len(r.ChangesByDoctor) > 0 {
		fmt.Fprintf(&b, "\n  By doctor: %s\n", countsLine(r.ChangesByDoctor))
		fmt.Fprintf(&b, "  By period: %s\n", countsLine(r.ChangesByPeriod))
	}
	return b.String()
}

// FormatPublish renders the result of making a version live.
func FormatPublish(p *app.PublishResponse) string {
	var b strings.Builder
	b.WriteString(Header("Published") + "\n")
	fmt.Fprintf(&b, "  Version: %s %s\n", p.Version.ID, StateBadge(p.Version.State))
	if p.DemotedVersionID != "" {
		fmt.Fprintf(&b, "  Demoted: %s\n", p.DemotedVersionID)
	}
	if p.Materialized > 0 {
		fmt.Fprintf(&b, "  Materialized %d shifts, replaced %d.\n", p.Materialized, p.Replaced)
	}
	if p.DeactivatedDoctor != "" {
		fmt.Fprintf(&b, "  %s\n", StyleYellow.Render("Deactivated doctor "+p.DeactivatedDoctor))
	}
	return b.String()
}
