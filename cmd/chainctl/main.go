// ABOUTME: Entry point for chainctl, the agent interface chain manager CLI
// ABOUTME: Runs the demo, the showcase, the interactive console and one-shot stats

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/2389/chainmgr/internal/config"
	"github.com/2389/chainmgr/internal/render"
)

// Version is set at build time.
var version = "dev"

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configFlag string
	logLevel   string
	logFormat  string

	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.Red("Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "chainctl",
		Short: "Agent interface chain manager",
		Long: `chainctl manages agents through chains of interfaces.

Agents attach to interfaces, interfaces are grouped into ordered chains,
and commands are routed to interfaces by id. Control is spread across
many interfaces so no single one is a point of failure.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	root.PersistentFlags().StringVar(&a.configFlag, "config", "", "config file (default $"+config.EnvPath+" or the user config dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "override logging.format (text, json)")

	root.AddCommand(
		a.demoCmd(),
		a.showcaseCmd(),
		a.interactiveCmd(),
		a.statsCmd(),
		a.visualizeCmd(),
		versionCmd(),
	)
	return root
}

// load resolves the config file, applies flag overrides and builds the logger.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.LoadResolved(a.configFlag)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.cfgPath = path
	a.logger = setupLogger(cfg.Logging, cmd.ErrOrStderr())
	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}
	return nil
}

// renderer writes to the command's stdout; the screen is cleared only on
// a real terminal.
func (a *app) renderer(cmd *cobra.Command) *render.Renderer {
	out := cmd.OutOrStdout()
	return render.New(out, render.WithClearScreen(isTerminal(out)))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chainctl version",
		Args:  cobra.NoArgs,
		// Works even when the config file is broken
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "chainctl %s\n", version)
			return err
		},
	}
}
