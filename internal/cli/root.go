package cli

import (
	"time"

	"github.com/alexanderramin/rota/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Planning service.PlanningService
	Repair   service.RepairService
	Versions service.VersionService
	Import   service.ImportService
	Doctors  service.DoctorService
	Audit    service.AuditService

	// IsInteractive reports whether stdin is a terminal. Nil means never;
	// spinners and confirmations are skipped.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh form.
	Confirm func(title string) (bool, error)
	// Now pins the reference time. Nil means the wall clock.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmWithForm(title)
}

func (a *App) now() *time.Time {
	if a.Now == nil {
		return nil
	}
	t := a.Now().UTC()
	return &t
}

// NewRootCmd creates the top-level "rota" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var actor string

	root := &cobra.Command{
		Use:           "rota",
		Short:         "Holiday on-call planning and repair",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&actor, "actor", "", "Who is acting, recorded in the audit log (default \"system\")")

	root.AddCommand(
		newImportCmd(app, &actor),
		newPlanCmd(app, &actor),
		newRepairCmd(app, &actor),
		newVersionCmd(app, &actor),
		newDoctorCmd(app),
		newAuditCmd(app),
	)

	return root
}
