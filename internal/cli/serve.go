package cli

import (
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"scribble/internal/config"
	"scribble/internal/logs"
	"scribble/internal/server"
	"scribble/internal/tui"
)

// runProgram runs the TUI. Replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive note list (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	if err := config.EnsureConfigFile(a.flags.ConfigPath); err != nil {
		logs.Logger.Warn("Could not create config file", "error", err)
	}

	sync, err := a.synchronizer()
	if err != nil {
		return err
	}

	logs.Logger.Info("Starting app in TUI mode", "server", a.cfg.ServerURL)
	return runProgram(tui.NewAppModel(sync, a.cfg.ServerURL))
}

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory notes server for development",
		Long: `Serve runs a notes server that keeps notes in memory. It exposes the
notes API under /api/notes, a health check on /health and Prometheus
metrics on /metrics. Notes are lost when it stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs.InitializeStderr(a.cfg.Verbose)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(a.cfg.ListenAddr, nil).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&a.flags.ListenAddr, "listen", "l", "", "Address to listen on (default "+config.DefaultListenAddr+")")
	return cmd
}
