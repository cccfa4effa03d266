package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"funkbake/core"
	"funkbake/host/mcu"
	"funkbake/host/serial"
	"funkbake/host/sim"
)

func ms[T uint32 | int64](v T) string {
	return humanize.Comma(int64(v)) + " ms"
}

func planCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <message>",
		Short: "Show the keying plan and duration of a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			timing := a.cfg.Timing()
			plan := core.Encode(message)

			if bad := core.UnsupportedCharacters(message); len(bad) > 0 {
				slog.Warn("Characters without Morse code are sent as silence",
					"chars", string(bad))
			}

			fmt.Fprintf(a.out, "message:  %q\n", message)
			fmt.Fprintf(a.out, "dit:      %s\n", ms(timing.DitMs))
			fmt.Fprintf(a.out, "keying:   |%s|\n", sim.RenderPlan(plan))
			for _, action := range plan.Actions {
				fmt.Fprintf(a.out, "  %-5s %2d units %s\n",
					action.Element, action.Units, ms(action.Units*timing.DitMs))
			}

			duration := plan.DurationMs(timing.DitMs)
			fmt.Fprintf(a.out, "duration: %s (%d units)\n", ms(duration), plan.Units)

			budget := timing.Budget()
			if int64(duration) > budget {
				fmt.Fprintf(a.out, "overrun:  exceeds the %s budget by %s\n",
					ms(budget), ms(int64(duration)-budget))
			} else {
				fmt.Fprintf(a.out, "idle:     about %s of %s\n",
					ms(budget-int64(duration)), ms(timing.PeriodMs))
			}
			return nil
		},
	}
}

func simulateCmd(a *app) *cobra.Command {
	var (
		raw    uint8
		index  int
		cycles int
		edges  bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run beacon cycles against a virtual clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cycles < 1 {
				return fmt.Errorf("cycles must be at least 1, got %d", cycles)
			}
			if cmd.Flags().Changed("index") {
				if index < 0 || index >= core.SelectorPositions {
					return fmt.Errorf("index must be 0..%d, got %d", core.SelectorPositions-1, index)
				}
				raw = core.EncodeSelector(uint8(index))
			}

			s := sim.New(a.cfg, raw)
			slog.Debug("Simulating", "raw", raw, "index", core.DecodeSelector(raw), "cycles", cycles)

			for _, r := range s.Run(cycles) {
				fmt.Fprintf(a.out, "cycle %d idx=%d %q: sent %s, idle %s, trailer %s, total %s",
					r.Cycle, r.Index, r.Message, ms(r.ElapsedMs), ms(r.IdleMs), ms(r.TrailerMs), ms(r.TotalMs))
				if r.Overrun {
					fmt.Fprint(a.out, " OVERRUN")
				}
				fmt.Fprintln(a.out)
			}

			if edges {
				for _, e := range s.Recorder.Edges() {
					level := "off"
					if e.On {
						level = "on"
					}
					fmt.Fprintf(a.out, "  %10s %-14s %s\n",
						humanize.Comma(int64(e.AtMs)), e.Channel, level)
				}
			}
			fmt.Fprintf(a.out, "elapsed: %s ms\n", humanize.Comma(int64(s.Clock.Now())))
			return nil
		},
	}

	cmd.Flags().Uint8Var(&raw, "selector", 0x0F, "Raw selector line levels (bit i = line i, 1 = open)")
	cmd.Flags().IntVar(&index, "index", 0, "Preset index; overrides --selector")
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 1, "Number of cycles to run")
	cmd.Flags().BoolVar(&edges, "edges", false, "Print every output edge")
	return cmd
}

func selectorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selector",
		Short: "Print the selector switch table",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := a.cfg.PresetTable()
			fmt.Fprintln(a.out, "lines 3210  index  message")
			for idx := uint8(0); idx < core.SelectorPositions; idx++ {
				raw := core.EncodeSelector(idx)
				fmt.Fprintf(a.out, "      %04b  %5d  %q\n", raw, idx, presets.Message(idx))
			}
			return nil
		},
	}
}

func monitorCmd(a *app) *cobra.Command {
	var (
		device string
		baud   int
		text   bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Print cycle reports from a running beacon",
		Long: `Monitor reads telemetry frames from the beacon's USB serial port.
With --text it reads the per-cycle debug lines from the UART console instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg := serial.DefaultConfig(device)
			if baud > 0 {
				cfg.Baud = baud
			}

			printReport := func(r core.CycleReport) {
				slog.Info("Cycle",
					"n", r.Cycle,
					"idx", r.Index,
					"message", r.Message,
					"sent", ms(r.ElapsedMs),
					"idle", ms(r.IdleMs),
					"total", ms(r.TotalMs),
					"overrun", r.Overrun)
				if r.Overrun {
					slog.Warn("Message longer than the cycle budget", "idx", r.Index)
				}
			}

			if text {
				// Block in Read; closing the port ends the scan
				cfg.ReadTimeout = 0
				port, err := serial.Open(cfg)
				if err != nil {
					return err
				}
				return scanConsole(ctx, port, printReport)
			}

			beacon := mcu.NewMCU(slog.Default())
			if err := beacon.ConnectWithConfig(cfg); err != nil {
				return err
			}
			defer beacon.Close()

			beacon.OnBoot(func(info core.BootInfo) {
				slog.Info("Beacon booted",
					"version", info.Version,
					"dit", ms(info.Timing.DitMs),
					"period", ms(info.Timing.PeriodMs),
					"presets", info.Presets,
					"sidetone", info.Sidetone)
			})
			beacon.OnReport(printReport)

			err := beacon.Run(ctx)
			stats := beacon.Stats()
			slog.Debug("Link statistics",
				"frames", stats.Frames,
				"crc_errors", stats.CRCErrors,
				"resyncs", stats.Resyncs,
				"unknown", stats.Unknown,
				"malformed", stats.Malformed)
			return err
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "/dev/ttyACM0", "Serial device path")
	cmd.Flags().IntVar(&baud, "baud", 0, "Baud rate (default 115200, ignored by USB CDC)")
	cmd.Flags().BoolVar(&text, "text", false, "Parse UART debug lines instead of telemetry frames")
	return cmd
}

// scanConsole prints cycle lines from a debug console until the port
// ends or the context is cancelled. The port is closed exactly once.
func scanConsole(ctx context.Context, port io.ReadCloser, fn func(core.CycleReport)) error {
	// Cancellation closes the port to unblock the pending Read
	stop := context.AfterFunc(ctx, func() { port.Close() })

	err := mcu.ScanDebugLines(ctx, port, fn, func(line string) {
		slog.Debug("Console", "line", line)
	})
	if stop() {
		if cerr := port.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close console: %w", cerr)
		}
	}
	return err
}
