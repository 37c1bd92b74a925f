package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avermeer/scribe/internal/cli/formatter"
	"github.com/avermeer/scribe/internal/planfile"
	"github.com/avermeer/scribe/internal/service"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Work with the combined outline and timeline",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanDumpCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the combined planning snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			view, err := service.Snapshot(ctx, owner, app.Outline, app.Timeline)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(view))
			return nil
		},
	}
}

func newPlanDumpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Write the current plan to a loadable plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			view, err := service.Snapshot(ctx, owner, app.Outline, app.Timeline)
			if err != nil {
				return err
			}
			if err := planfile.Save(args[0], planfile.FromSnapshot(view)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote plan to %s\n", args[0])
			return nil
		},
	}
}
