package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scribble/internal/api"
	"scribble/internal/config"
	"scribble/internal/logs"
	"scribble/internal/notes"
)

// Version is stamped at build time with -ldflags "-X scribble/internal/cli.Version=...".
var Version = "dev"

// skipConfig marks commands that run without loading configuration.
const skipConfig = "skip-config"

// app carries the parsed global flags and the configuration loaded from them
// to every subcommand.
type app struct {
	flags config.CLIFlags
	cfg   *config.Config
}

// Run executes the CLI with the given arguments and returns the process exit
// code. With no arguments it launches the TUI.
func Run(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defer logs.Close()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scribble",
		Short: "A terminal client for a remote note list",
		Long: `Scribble keeps an ordered list of short text notes on a notes server.

Running scribble without a command launches the interactive TUI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.ServerURL, "server", "s", "", "Notes server base URL (default "+config.DefaultServerURL+")")
	pf.StringVar(&a.flags.Timeout, "timeout", "", "Per-request timeout, e.g. 5s (default "+config.DefaultTimeout.String()+")")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&a.flags.ConfigPath, "config", "", "Config file (default ~/.config/scribble/config.json)")

	root.AddCommand(
		a.newTUICmd(),
		a.newListCmd(),
		a.newAddCmd(),
		a.newRemoveCmd(),
		a.newImportCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// load resolves the configuration and points the logger at the log file.
// serve replaces the file logger with stderr once it starts.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if err := logs.Initialize(cfg.LogDir, cfg.Verbose); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}
	logs.Logger.Debug("Config loaded", "command", cmd.Name(), "server", cfg.ServerURL, "timeout", cfg.Timeout)
	return nil
}

// synchronizer builds a synchronizer over the configured server.
func (a *app) synchronizer() (*notes.Synchronizer, error) {
	client, err := api.New(a.cfg.ServerURL,
		api.WithTimeout(a.cfg.Timeout),
		api.WithUserAgent("scribble/"+Version),
		api.WithLogger(logs.Logger),
	)
	if err != nil {
		return nil, err
	}
	return notes.NewSynchronizer(client), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version number of scribble",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scribble version %s\n", Version)
		},
	}
}
