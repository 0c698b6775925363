package cli

import (
	"time"

	"github.com/alexanderramin/trestle/internal/config"
	"github.com/alexanderramin/trestle/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Wbs      service.WbsService
	Deps     service.DependencyService
	Schedule service.ScheduleService
	Cost     service.CostService
	Import   service.ImportService

	Config *config.Config

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// browser only run when it returns true.
	IsInteractive func() bool

	// Now is the clock used for "as of" defaults; tests pin it.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) maxPasses() int {
	if a.Config == nil {
		return 0
	}
	return a.Config.MaxPasses
}

// NewRootCmd creates the top-level "trestle" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "trestle",
		Short:         "Construction WBS scheduling and cost control",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newWbsCmd(app),
		newDepCmd(app),
		newScheduleCmd(app),
		newCostCmd(app),
		newImportCmd(app),
	)

	return root
}
