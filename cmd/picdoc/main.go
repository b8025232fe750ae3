package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"picdoc/config"
	"picdoc/document"
	"picdoc/export"
	"picdoc/misc"
	"picdoc/projects"
	"picdoc/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			// we do not want any of your secrets!
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt so a long export can be cancelled
	// cleanly between pages
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "photo report layout and export engine",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "export",
				Usage:        "Lays out photos on A4 pages and produces PDF or JPEG output",
				OnUsageError: usageErrorHandler,
				Action:       export.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Value: config.OutputFmtPdf.String(),
						Usage: "output `TYPE` (supported types: " + strings.Join(config.OutputFmtNames(), ", ") + ")"},
					&cli.StringFlag{Name: "quality", Aliases: []string{"q"},
						Usage: "resolution `PRESET` (supported presets: " + strings.Join(config.QualityTierNames(), ", ") + ")"},
					&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Value: "fourCut-portrait",
						Usage: "page `TEMPLATE` used when SOURCE is a directory (see templates command)"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to a project file (YAML) describing pages and slots, or
    path to a directory - photos are picked up in natural name order and
    distributed over pages using the --template grid

DESTINATION:
    output directory, if absent - taken from configuration, then current working directory
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "projects",
				Usage:        "Manages the registry of known project names",
				OnUsageError: usageErrorHandler,
				Commands: []*cli.Command{
					{
						Name:         "list",
						Usage:        "Lists registered project names",
						OnUsageError: usageErrorHandler,
						Action:       projectsList,
					},
					{
						Name:         "add",
						Usage:        "Registers a new project name",
						OnUsageError: usageErrorHandler,
						Action:       projectsAdd,
						ArgsUsage:    "NAME",
					},
					{
						Name:         "rename",
						Usage:        "Renames a registered project",
						OnUsageError: usageErrorHandler,
						Action:       projectsRename,
						ArgsUsage:    "OLD NEW",
					},
					{
						Name:         "delete",
						Usage:        "Removes a project name from the registry",
						OnUsageError: usageErrorHandler,
						Action:       projectsDelete,
						ArgsUsage:    "NAME",
					},
				},
			},
			{
				Name:         "templates",
				Usage:        "Lists available page templates",
				OnUsageError: usageErrorHandler,
				Action:       outputTemplates,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func openStore(ctx context.Context) (*projects.Store, error) {
	env := state.EnvFromContext(ctx)
	store, err := projects.Open(env.Cfg.Projects.Path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func projectsList(ctx context.Context, _ *cli.Command) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List()
	if err != nil {
		return err
	}
	for _, p := range list {
		fmt.Fprintln(os.Stdout, p.Name)
	}
	return nil
}

func projectsAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().Get(0)
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Add(name)
	if err != nil {
		return err
	}
	state.EnvFromContext(ctx).Log.Info("Project registered", zap.String("name", p.Name), zap.Int64("id", p.ID))
	return nil
}

func projectsRename(ctx context.Context, cmd *cli.Command) error {
	oldName, newName := cmd.Args().Get(0), cmd.Args().Get(1)
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Rename(oldName, newName); err != nil {
		return err
	}
	state.EnvFromContext(ctx).Log.Info("Project renamed", zap.String("from", oldName), zap.String("to", newName))
	return nil
}

func projectsDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().Get(0)
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(name); err != nil {
		return err
	}
	state.EnvFromContext(ctx).Log.Info("Project removed", zap.String("name", name))
	return nil
}

func outputTemplates(_ context.Context, _ *cli.Command) error {
	for _, id := range document.TemplateIDs() {
		fmt.Fprintln(os.Stdout, id)
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
