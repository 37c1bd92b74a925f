package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/avermeer/scribe/internal/identity"
	"github.com/avermeer/scribe/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Outline  service.OutlineService
	Timeline service.TimelineService
	Identity identity.Resolver

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// are only offered when it returns true.
	IsInteractive func() bool
}

func (app *App) owner(ctx context.Context) (string, error) {
	return app.Identity.Resolve(ctx)
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "scribe" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "scribe",
		Short: "Research outline and timeline planner",
	}

	root.AddCommand(
		newOutlineCmd(app),
		newTimelineCmd(app),
		newPlanCmd(app),
		newBoardCmd(app),
	)

	return root
}
