//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/buzzer"

	"funkbake/config"
	"funkbake/core"
	"funkbake/targets/pio"
)

// buzzerSidetone drives an active buzzer that sounds while its pin is high
type buzzerSidetone struct {
	dev buzzer.Device
}

func newBuzzerSidetone(pin machine.Pin) *buzzerSidetone {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &buzzerSidetone{dev: buzzer.New(pin)}
}

// Key implements core.Sidetone
func (b *buzzerSidetone) Key(on bool) {
	if on {
		b.dev.On()
	} else {
		b.dev.Off()
	}
}

// newSidetone builds the configured sidetone output, or nil when it is
// off or cannot be set up.
func newSidetone(cfg config.SidetoneConfig) core.Sidetone {
	pin := machine.Pin(cfg.Pin)
	switch cfg.Mode {
	case config.SidetoneBuzzer:
		return newBuzzerSidetone(pin)
	case config.SidetonePIO:
		s, err := pio.NewSidetone(pin, cfg.FrequencyHz)
		if err != nil {
			core.DebugPrintln("[BEACON] sidetone disabled: " + err.Error())
			return nil
		}
		return s
	default:
		return nil
	}
}
