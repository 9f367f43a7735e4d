package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/app"
	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App, actor *string) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Plan every pending day after the freeze boundary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out *app.PlanningOutcome
			err := a.withSpinner(cmd, "Solving schedule...", func() error {
				var err error
				out, err = a.Planning.PlanAll(cmd.Context(), app.PlanRequest{ActorID: *actor, Now: a.now()})
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanning(out))
			return nil
		},
	}
}
