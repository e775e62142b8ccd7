// Package cli wires the cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/droplet-hq/jibble-export/internal/service"
	"github.com/droplet-hq/jibble-export/pkg/config"
	"github.com/droplet-hq/jibble-export/pkg/storage"
)

// App bundles the wired dependencies the commands run against.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Reports  *service.ReportService
	Clocking *service.ClockingService
	Holidays *service.HolidayService
	Storage  *storage.LocalStorage
}

// NewRootCommand builds the jibble command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "jibble",
		Short:        "Attendance export and clocking helper for the Jibble API",
		SilenceUsage: true,
	}

	root.AddCommand(newExportCommand(app))
	root.AddCommand(newClockInCommand(app))
	root.AddCommand(newClockOutCommand(app))
	root.AddCommand(newCalendarsCommand(app))
	root.AddCommand(newLastCommand(app))
	root.AddCommand(newCleanupCommand(app))

	return root
}
