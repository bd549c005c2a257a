package cli

import (
	"context"
	stderrors "errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/skomura/medlabel/pkg/buildinfo"
	"github.com/skomura/medlabel/pkg/errors"
)

// appName is the application name used for directories and display.
const appName = "medlabel"

// Execute runs the medlabel CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Medlabel issues printable medication-schedule labels",
		Long:          `Medlabel expands a patient's dosing schedule into a multi-page PDF sized for 29×52mm adhesive labels, one page per day and dosing timing.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPrintCmd())
	root.AddCommand(newPatientsCmd())
	root.AddCommand(newCalendarCmd())
	root.AddCommand(newCompletionCmd())

	err := root.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, context.Canceled) {
		printError("%s", errors.UserMessage(err))
	}
	return err
}
