package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"retainer-tracker/internal/api"
	"retainer-tracker/internal/config"
	"retainer-tracker/internal/services"
)

// Version is set at build time.
var Version = "dev"

// App bundles the dependencies every command needs. Commands write their
// output to Out so tests can capture it.
type App struct {
	API       api.API
	Timer     services.TimerService
	Billing   services.BillingService
	Reporting services.ReportingService
	Config    *config.Config
	Logger    zerolog.Logger
	Out       io.Writer

	errors *ErrorHandler
}

// NewApp creates the command application.
func NewApp(apiInstance api.API, timer services.TimerService, billing services.BillingService, reporting services.ReportingService, cfg *config.Config, logger zerolog.Logger, out io.Writer) *App {
	return &App{
		API:       apiInstance,
		Timer:     timer,
		Billing:   billing,
		Reporting: reporting,
		Config:    cfg,
		Logger:    logger,
		Out:       out,
		errors:    NewErrorHandler(),
	}
}

// RootCommand builds the root cobra command with all subcommands attached.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rt",
		Short: "Track time and retainer budgets per client",
		Long: `rt is a command-line time tracker built around retainer billing.

Track time with a single running timer, group work under clients and
projects, and bill against prepaid hour blocks that carry overage
forward from one invoice period to the next.

EXAMPLES:
  rt start "API integration" --project 01HQ...   # Start the timer
  rt pause                                       # Hold the clock
  rt resume                                      # Release it again
  rt stop                                       # Close the entry
  rt status                                     # Timer and today's totals
  rt client add "Acme" --currency EUR --rate 95 # Create a client
  rt block add <client-id> --hours 40           # Open a retainer block
  rt block reset <block-id> --carry --hours 40  # Close it, carry overage
  rt report clients --from 2026-03-01           # Hours per client
  rt export --out entries.csv                   # CSV dump of entries

CONFIGURATION:
  Settings load from ~/.rt/config.yaml and RT_* environment variables:
    RT_WORKSPACE_ID, RT_WORKSPACE_NAME          Workspace identity
    RT_DATABASE_DIR, RT_DATABASE_FILENAME       Database location
    RT_LOGGING_LEVEL, RT_LOGGING_FORMAT         Logging behavior`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(a.versionCommand())
	root.AddCommand(a.startCommand())
	root.AddCommand(a.pauseCommand())
	root.AddCommand(a.resumeCommand())
	root.AddCommand(a.stopCommand())
	root.AddCommand(a.statusCommand())
	root.AddCommand(a.logCommand())
	root.AddCommand(a.entriesCommand())
	root.AddCommand(a.exportCommand())
	root.AddCommand(a.clientCommand())
	root.AddCommand(a.projectCommand())
	root.AddCommand(a.blockCommand())
	root.AddCommand(a.tagCommand())
	root.AddCommand(a.reportCommand())

	return root
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.Out, "rt %s\n", Version)
		},
	}
}
