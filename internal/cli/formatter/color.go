package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OutcomeBadge renders a solver outcome such as "● FEASIBLE".
func OutcomeBadge(status app.OutcomeStatus) string {
	switch status {
	case app.StatusFeasible, app.StatusOK:
		return StyleGreen.Render("● " + string(status))
	case app.StatusInfeasible:
		return StyleRed.Render("▲ " + string(status))
	default:
		return StyleDim.Render("● " + string(status))
	}
}

// StateBadge renders a plan version state. The published version is the
// only green one.
func StateBadge(state domain.PlanState) string {
	if state == domain.PlanPublished {
		return StyleGreen.Render("● Published")
	}
	return StyleBlue.Render("○ Draft")
}

// KindLabel renders a plan version kind.
func KindLabel(kind domain.PlanKind) string {
	switch kind {
	case domain.PlanRepairCandidate:
		return StyleYellow.Render("candidate")
	case domain.PlanRepair:
		return StylePurple.Render("repair")
	default:
		return StyleFg.Render("base")
	}
}

// ActivePill renders a doctor's active flag.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● Active")
	}
	return StyleDim.Render("✖ Inactive")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
