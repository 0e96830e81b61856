package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tomyedwab/jamajira/config"
	"github.com/tomyedwab/jamajira/database"
	"github.com/tomyedwab/jamajira/logging"
	"github.com/tomyedwab/jamajira/output"
	"github.com/tomyedwab/jamajira/state"
)

// runtime is populated by the root command before any subcommand runs.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	closer  io.Closer
	ops     *database.Operations
	store   *state.Store
	printer *output.Printer
}

type globalFlags struct {
	configFile string
	dbPath     string
	driver     string
	verbose    bool
	noColor    bool
}

// Execute runs one jamajira invocation. The log writer is closed and any
// error is reported on errOut before it is returned.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	return execute(ctx, &runtime{}, args, out, errOut)
}

func execute(ctx context.Context, rt *runtime, args []string, out, errOut io.Writer) error {
	cmd := newRootCommand(rt, out, errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if cerr := rt.close(); err == nil {
		err = cerr
	}
	if err != nil {
		printer := rt.printer
		if printer == nil {
			printer = output.NewPrinter(out, errOut, false)
		}
		printer.Error("%v", err)
	}
	return err
}

func newRootCommand(rt *runtime, out, errOut io.Writer) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "jamajira",
		Short: "Inspect and edit the Jama/Jira sync database",
		Long: `jamajira operates on the local SQLite file that records which Jama items
and fields are linked to which Jira issues.

Example usage:
  jamajira init                              # Create the Items, Fields and SyncInformation tables
  jamajira get Items ID 20006                # Print matching rows
  jamajira update Items ID 20006 LinkedID 1002
  jamajira demo --seed                       # Run the demo sequence`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(flags, out, errOut)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default is .jamajira.yaml)")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "database file (default is ../"+config.DefaultDatabaseFile+")")
	cmd.PersistentFlags().StringVar(&flags.driver, "driver", "", "SQLite driver: sqlite3 or sqlite")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log every statement")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newDemoCommand(rt))
	cmd.AddCommand(newInitCommand(rt))
	cmd.AddCommand(newCreateTableCommand(rt))
	cmd.AddCommand(newRenameColumnCommand(rt))
	cmd.AddCommand(newInsertCommand(rt))
	cmd.AddCommand(newGetCommand(rt))
	cmd.AddCommand(newUpdateCommand(rt))
	return cmd
}

func (rt *runtime) init(flags globalFlags, out, errOut io.Writer) error {
	overrides := config.Overrides{
		DatabasePath: flags.dbPath,
		Driver:       flags.driver,
	}
	if flags.verbose {
		overrides.LogLevel = "debug"
	}

	cfg, err := config.Load(flags.configFile, overrides)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	rt.cfg = cfg
	rt.logger = logger
	rt.closer = closer
	rt.ops = database.New(cfg.Database.Path,
		database.WithDriver(cfg.Database.Driver),
		database.WithLogger(logger),
	)
	rt.store = state.NewStore(rt.ops)
	rt.printer = output.NewPrinter(out, errOut, !flags.noColor && output.ResolveColors(cfg.Output.Colors))

	logger.Debug("configuration loaded",
		"database", cfg.Database.Path,
		"driver", cfg.Database.Driver,
	)
	return nil
}

// close releases the log writer. Calling it again is a no-op.
func (rt *runtime) close() error {
	if rt.closer == nil {
		return nil
	}
	err := rt.closer.Close()
	rt.closer = nil
	return err
}
