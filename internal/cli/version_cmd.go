package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newVersionCmd(app *App, actor *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Inspect, compare and publish plan versions",
	}

	cmd.AddCommand(
		newVersionListCmd(app),
		newVersionShowCmd(app),
		newVersionDiffCmd(app),
		newVersionRiskCmd(app),
		newVersionPublishCmd(app, actor),
	)

	return cmd
}

func newVersionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plan versions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := app.Versions.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVersionList(versions))
			return nil
		},
	}
}

func newVersionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a plan version and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Versions.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows, err := app.Versions.AssignmentsFor(cmd.Context(), v.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVersion(v, rows))
			return nil
		},
	}
}

func newVersionDiffCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from-id> <to-id>",
		Short: "Show assignments added and removed between two versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Versions.Diff(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiff(d))
			return nil
		},
	}
}

func newVersionRiskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "risk <id>",
		Short: "Assess coverage and freeze impact of a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if t := app.now(); t != nil {
				now = *t
			}
			r, err := app.Versions.Risk(cmd.Context(), args[0], now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRisk(r))
			return nil
		},
	}
}

func newVersionPublishCmd(app *App, actor *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Make a plan version the live one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Publish version %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Publish cancelled."))
					return nil
				}
			}

			res, err := app.Versions.Publish(cmd.Context(), args[0], *actor)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPublish(res))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
