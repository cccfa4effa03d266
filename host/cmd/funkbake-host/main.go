// Package main provides funkbake-host, the workstation companion to the
// beacon firmware: it plans and simulates transmissions and monitors a
// running beacon over its serial link.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"funkbake/config"
	"funkbake/protocol"
)

const appName = "funkbake-host"

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands
type app struct {
	out        io.Writer
	configPath string
	logLevel   string
	cfg        *config.BeaconConfig
}

func rootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Morse beacon planning, simulation and monitoring",
		Long: `funkbake-host works with the funkbake Morse beacon.

It can:
- show the keying plan and duration of a message
- simulate beacon cycles against a virtual clock
- print the selector switch table
- monitor a running beacon over USB serial or the UART console`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Beacon config file (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		planCmd(a),
		simulateCmd(a),
		selectorCmd(a),
		monitorCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(a.out, "%s version %s\n", appName, protocol.Version)
			},
		},
	)
	return cmd
}

func (a *app) setup() error {
	level := slog.LevelInfo
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	if a.configPath != "" {
		slog.Debug("Loaded config", "path", a.configPath, "presets", len(cfg.Presets))
	}
	return nil
}

// signalContext is cancelled on Ctrl-C or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
