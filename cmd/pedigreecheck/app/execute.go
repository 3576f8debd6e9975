package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/pedigreecheck/internal/cmd/output"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/logging"
)

// Execute runs the pedigreecheck CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pedigreecheck",
		Short:   "Reconcile pedigree registration submissions",
		Version: a.version,
		Long: `pedigreecheck checks a batch of submitted registration records (an
intake form export) against the reference registry dataset.

Each record's affix, chip code, owner, veterinarian and dog identity are
compared with the registry. Every outcome is written to a timestamped audit
log, and the deduplicated messages to an output file.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.pedigreecheck.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("pedigreecheck {{.Version}}\n")

	rootCmd.AddCommand(a.NewCheckCommand())
	rootCmd.AddCommand(a.NewSchemaCommand())
	rootCmd.AddCommand(a.NewVersionCommand())

	return rootCmd
}

// setupCommand is called before any command runs. An explicit --config
// reloads the configuration before flags are applied.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		config, err := LoadConfig(path)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		if hint := errorHint(err); hint != "" {
			_, _ = os.Stderr.WriteString("Hint: " + hint + "\n")
		}
		os.Exit(1)
	}
}

// errorHint suggests a next step for the errors an operator can fix.
func errorHint(err error) string {
	switch {
	case errors.IsSchemaError(err):
		return "run 'pedigreecheck schema <file> --kind reference|submitted' to list the required columns"
	case errors.IsNotFound(err):
		return "select the worksheet with --reference-sheet or --submitted-sheet"
	case errors.IsValidationError(err):
		return "see 'pedigreecheck <command> --help' for accepted values"
	case errors.IsCanceled(err):
		return "the run was interrupted before the report was written"
	default:
		return ""
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
