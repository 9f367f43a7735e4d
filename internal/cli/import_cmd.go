package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App, actor *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import doctors, periods and availability from a JSON roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportRoster(cmd.Context(), args[0], *actor)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImport(res))
			return nil
		},
	}
}
