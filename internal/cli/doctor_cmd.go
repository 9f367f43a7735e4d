package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Inspect the doctor roster",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List doctors and how many dates they can work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doctors, err := app.Doctors.List(cmd.Context(), !all)
			if err != nil {
				return err
			}
			rows := make([]formatter.DoctorRow, 0, len(doctors))
			for _, d := range doctors {
				dates, err := app.Doctors.Availability(cmd.Context(), d.ID)
				if err != nil {
					return err
				}
				rows = append(rows, formatter.DoctorRow{Doctor: d, Available: len(dates)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDoctors(rows))
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "Include inactive doctors")

	cmd.AddCommand(list)
	return cmd
}
