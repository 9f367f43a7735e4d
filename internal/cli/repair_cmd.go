package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func validRepairMode(s string) bool {
	return app.ValidRepairModes[app.RepairMode(s)]
}

func errInvalidMode(s string) error {
	return fmt.Errorf("invalid mode %q (preview|candidate|apply)", s)
}

func newRepairCmd(a *App, actor *string) *cobra.Command {
	mode := &repairModeValue{mode: string(app.RepairPreview)}
	var from, to dateValue
	var deactivate bool

	cmd := &cobra.Command{
		Use:   "repair <doctor-id>",
		Short: "Move a doctor's shifts in a window to other doctors",
		Long: `Reassigns the doctor's shifts between --from and --to.

  preview    show the reassignment, write nothing
  candidate  store it as a draft version for review and publish
  apply      write it to the live schedule now`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.RepairRequest{
				DoctorID:   args[0],
				From:       from.String(),
				To:         to.String(),
				Deactivate: deactivate,
				ActorID:    *actor,
				Now:        a.now(),
			}

			run := a.Repair.Preview
			switch app.RepairMode(mode.String()) {
			case app.RepairCandidate:
				run = a.Repair.Stage
			case app.RepairApply:
				run = a.Repair.Apply
			}

			var out *app.RepairOutcome
			err := a.withSpinner(cmd, "Computing repair...", func() error {
				var err error
				out, err = run(cmd.Context(), req)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRepair(out))
			return nil
		},
	}

	cmd.Flags().Var(mode, "mode", "Repair mode (preview|candidate|apply)")
	cmd.Flags().Var(&from, "from", "First date of the window, clamped to the freeze boundary")
	cmd.Flags().Var(&to, "to", "Last date of the window (default: open)")
	cmd.Flags().BoolVar(&deactivate, "deactivate", false, "Deactivate the doctor once the repair is live")

	return cmd
}
