package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avermeer/scribe/internal/cli/formatter"
	"github.com/avermeer/scribe/internal/planfile"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Manage the research timeline",
	}

	cmd.AddCommand(
		newTimelineShowCmd(app),
		newTimelineLoadCmd(app),
		newTimelineToggleCmd(app),
		newTimelineRemoveCmd(app),
	)

	return cmd
}

func newTimelineShowCmd(app *App) *cobra.Command {
	var phaseID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show phases with derived progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			phases, err := app.Timeline.GetPhases(ctx, owner)
			if err != nil {
				return err
			}

			if phaseID != "" {
				for i := range phases {
					if phases[i].ID == phaseID {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPhase(&phases[i]))
						return nil
					}
				}
				return fmt.Errorf("phase not found: %q", phaseID)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimeline(phases))
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseID, "phase", "", "Show one phase with its task checklist")

	return cmd
}

func newTimelineLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE",
		Short: "Replace the timeline from a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			doc, err := planfile.Load(args[0])
			if err != nil {
				return err
			}
			phases, err := app.Timeline.ReplacePhases(ctx, owner, doc.Timeline)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded timeline with %d phases\n", len(phases))
			return nil
		},
	}
}

func newTimelineToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle PHASE TASK",
		Short: "Flip a task's completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			task, err := app.Timeline.ToggleTask(ctx, owner, args[0], args[1])
			if err != nil {
				return err
			}

			state := "open"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %q is now %s\n", task.Description, state)
			return nil
		},
	}
}

func newTimelineRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm PHASE",
		Short: "Remove a phase and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}
			if err := app.Timeline.DeletePhase(ctx, owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed phase %s\n", shortID(args[0]))
			return nil
		},
	}
}
