package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"twstyle/config"
	"twstyle/device"
	"twstyle/misc"
	"twstyle/state"
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
		if len(configFile) > 0 {
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
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
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

	// log is synced now and can go into the report, errors must be reported
	// directly to stderr from now on
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

// Subcommands return regular errors instead of cli.Exit().
var errWasHandled bool

// called before appContext is destroyed so errors from subcommands get logged
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// reported either by exitErrHandler or on exit directly to stderr
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

// deviceFlags override the configured device context.
func deviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{Name: "width", Usage: "window `WIDTH` in points"},
		&cli.FloatFlag{Name: "height", Usage: "window `HEIGHT` in points"},
		&cli.StringFlag{Name: "scheme", Usage: "color `SCHEME` (light, dark)"},
		&cli.StringFlag{Name: "platform", Usage: "host `PLATFORM` (ios, android, windows, macos, web)"},
		&cli.IntFlag{Name: "density", Usage: "pixel `DENSITY` (1 or 2)"},
		&cli.FloatFlag{Name: "font-scale", Usage: "font `SCALE` reported by the host"},
	}
}

func main() {

	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "resolves utility class names into native style objects",
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
				Name:         "resolve",
				Usage:        "Resolves utilities into a style object",
				OnUsageError: usageErrorHandler,
				Action:       resolveUtilities,
				Flags: append(deviceFlags(),
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "output `FORMAT` (json, yaml)"},
					&cli.StringFlag{Name: "raw", Usage: "`JSON` object merged over the resolved style"},
				),
				ArgsUsage: "UTILITIES...",
				CustomHelpTemplate: fmt.Sprintf(`%s
UTILITIES:
    space separated utility names, optionally prefixed: "p-4 md:dark:bg-gray-800 ios:text-lg"
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "match",
				Usage:        "Reports whether prefixes match the device context",
				OnUsageError: usageErrorHandler,
				Action:       matchPrefixes,
				Flags:        deviceFlags(),
				ArgsUsage:    "PREFIXES...",
			},
			{
				Name:         "utilities",
				Usage:        "Lists static and registered utility names",
				OnUsageError: usageErrorHandler,
				Action:       listUtilities,
			},
			{
				Name:         "generate",
				Usage:        "Writes resolved styles of every static and registered utility (JSON)",
				OnUsageError: usageErrorHandler,
				Action:       generateUtilities,
				Flags:        deviceFlags(),
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s
DESTINATION:
    file name to write styles to, if absent - STDOUT
`, cli.CommandHelpTemplate),
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

Produces file with actual "active" configuration values which is composition of
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
			// log may be either not set yet (argument parsing) or already closed
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// applyDeviceFlags overrides the device context with flags set on cmd.
func applyDeviceFlags(env *state.LocalEnv, cmd *cli.Command) error {
	eng := env.Engine
	if cmd.IsSet("width") || cmd.IsSet("height") {
		d := eng.Device()
		w, h := cmd.Float("width"), cmd.Float("height")
		if !cmd.IsSet("width") && d.Width != nil {
			w = *d.Width
		}
		if !cmd.IsSet("height") && d.Height != nil {
			h = *d.Height
		}
		eng.SetWindowDimensions(w, h)
	}
	if cmd.IsSet("scheme") {
		scheme, err := device.ParseColorScheme(cmd.String("scheme"))
		if err != nil {
			return err
		}
		eng.SetColorScheme(scheme)
	}
	if cmd.IsSet("platform") {
		eng.SetPlatform(cmd.String("platform"))
	}
	if cmd.IsSet("density") {
		eng.SetPixelDensity(int(cmd.Int("density")))
	}
	if cmd.IsSet("font-scale") {
		eng.SetFontScale(cmd.Float("font-scale"))
	}
	env.Log.Debug("Device context", zap.String("partition", eng.PartitionKey()))
	return nil
}
