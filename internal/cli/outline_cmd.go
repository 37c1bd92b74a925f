package cli

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/avermeer/scribe/internal/cli/formatter"
	"github.com/avermeer/scribe/internal/contract"
	"github.com/avermeer/scribe/internal/export"
	"github.com/avermeer/scribe/internal/planfile"
)

func newOutlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Manage the research outline",
	}

	cmd.AddCommand(
		newOutlineShowCmd(app),
		newOutlineLoadCmd(app),
		newOutlineAddCmd(app),
		newOutlineEditCmd(app),
		newOutlineRemoveCmd(app),
		newOutlineExportCmd(app),
		newOutlineCompleteCmd(app),
	)

	return cmd
}

func newOutlineShowCmd(app *App) *cobra.Command {
	var nodeID, formatStr string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the outline tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			var forest []contract.SectionNode
			if nodeID != "" {
				node, err := app.Outline.GetSubtree(ctx, owner, nodeID)
				if err != nil {
					return err
				}
				forest = []contract.SectionNode{*node}
			} else {
				forest, err = app.Outline.GetTree(ctx, owner)
				if err != nil {
					return err
				}
			}

			if formatStr != "tree" {
				format, err := export.ParseFormat(formatStr)
				if err != nil {
					return fmt.Errorf("%w: %q", err, formatStr)
				}
				rendered, err := export.Render(forest, format)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return nil
			}

			if nodeID != "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSection(&forest[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOutline(forest))
			return nil
		},
	}

	cmd.Flags().StringVar(&nodeID, "node", "", "Show only the subtree rooted at this section")
	cmd.Flags().StringVar(&formatStr, "format", "tree", "Output format (tree|plain|markdown)")

	return cmd
}

func newOutlineLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE",
		Short: "Replace the outline from a plan file",
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
			tree, err := app.Outline.ReplaceTree(ctx, owner, doc.Outline)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded outline with %d top-level sections\n", len(tree))
			return nil
		},
	}
}

func newOutlineAddCmd(app *App) *cobra.Command {
	var title, summary, parentID string
	var order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a single section",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			// Without --title, fall back to a form on a terminal.
			if title == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required in non-interactive mode")
				}
				if err := runSectionForm(&title, &summary); err != nil {
					return err
				}
			}

			spec := contract.SectionCreate{Title: title, Summary: summary, Order: order}
			if parentID != "" {
				spec.ParentID = &parentID
			}

			node, err := app.Outline.CreateSection(ctx, owner, spec)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added section %q [%s]\n", node.Title, shortID(node.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Section title")
	cmd.Flags().StringVar(&summary, "summary", "", "Section summary")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent section ID (omit for a root section)")
	cmd.Flags().IntVar(&order, "order", 0, "Position among siblings")

	return cmd
}

func newOutlineEditCmd(app *App) *cobra.Command {
	var title, summary, parent string
	var order int

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			var patch contract.SectionPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("summary") {
				patch.Summary = &summary
			}
			if cmd.Flags().Changed("order") {
				patch.Order = &order
			}
			if cmd.Flags().Changed("parent") {
				// --parent "" moves the section to the root level.
				patch.Parent = &contract.ParentRef{ID: parent}
			}

			node, err := app.Outline.UpdateSection(ctx, owner, args[0], patch)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated section %q [%s]\n", node.Title, shortID(node.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&summary, "summary", "", "New summary")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent section ID (empty string for root)")
	cmd.Flags().IntVar(&order, "order", 0, "New position among siblings")

	return cmd
}

func newOutlineRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a section and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}
			if err := app.Outline.DeleteSection(ctx, owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed section %s\n", shortID(args[0]))
			return nil
		},
	}
}

func newOutlineExportCmd(app *App) *cobra.Command {
	var formatStr, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the outline as plain text or Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}

			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return fmt.Errorf("%w: %q", err, formatStr)
			}

			tree, err := app.Outline.GetTree(ctx, owner)
			if err != nil {
				return err
			}
			rendered, err := export.Render(tree, format)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := atomic.WriteFile(outPath, bytes.NewReader([]byte(rendered+"\n"))); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported outline to %s\n", outPath)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatStr, "format", "plain", "Export format (plain|markdown)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to a file instead of stdout")

	return cmd
}

func newOutlineCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Record the outline-complete milestone on the timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := app.owner(ctx)
			if err != nil {
				return err
			}
			if err := app.Timeline.MarkOutlineComplete(ctx, owner); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Outline marked complete")
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
