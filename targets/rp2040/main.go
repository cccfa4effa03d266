//go:build rp2040

package main

import (
	"machine"

	"funkbake/config"
	"funkbake/core"
	"funkbake/protocol"
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	// Telemetry frames go over USB CDC, text debug lines over UART0
	InitUSB()
	if InitDebugUART() {
		core.SetDebugWriter(debugWriteln)
	}

	cfg := config.Default()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		debugWriteln("[BEACON] invalid config, using defaults: " + err.Error())
		cfg = config.Default()
	}
	core.SetDebugEnabled(cfg.Debug)

	gpio := NewRPGPIODriver()
	keyer, err := core.NewPinKeyer(gpio,
		core.GPIOPin(cfg.Pins.Relay),
		core.GPIOPin(cfg.Pins.OpenCollector))
	if err != nil {
		halt("[BEACON] output pins: " + err.Error())
	}
	// Outputs come up active, as the carrier marker does between messages
	keyer.Set(core.ChannelRelay, true)
	keyer.Set(core.ChannelOpenCollector, true)

	selector, err := core.NewPinSelector(gpio, cfg.SelectorPins())
	if err != nil {
		halt("[BEACON] selector pins: " + err.Error())
	}

	sched := core.NewScheduler(cfg.Timing(), cfg.PresetTable(), selector, keyer, busyWaiter{})

	sidetone := newSidetone(cfg.Sidetone)
	if sidetone != nil {
		sched.Transmitter().SetSidetone(sidetone)
	}

	telemetry := core.NewTelemetry(writeTelemetry)
	telemetry.SendBoot(core.BootInfo{
		Version:  protocol.Version,
		Timing:   sched.Timing(),
		Presets:  cfg.PresetTable().Configured(),
		Sidetone: sidetone != nil,
	})
	debugWriteln("funkbake " + protocol.Version)

	sched.SetCycleHook(func(r core.CycleReport) {
		telemetry.SendCycleReport(r)
		core.DebugPrintln(core.FormatCycleReport(r))
		if r.Overrun {
			core.DumpEventRing()
		}
	})

	// Never returns
	sched.Run()
}

// halt reports a fatal setup error and parks the CPU. There is no safe
// way to key a transmitter with broken pin setup.
func halt(msg string) {
	for {
		debugWriteln(msg)
		busyWaiter{}.WaitMs(5000)
	}
}
