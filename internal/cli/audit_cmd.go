package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/spf13/cobra"
)

func newAuditCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Audit.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAudit(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultAuditLimit, "Maximum number of entries")

	return cmd
}
