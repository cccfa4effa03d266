// Package config holds the beacon deployment settings: preset messages,
// keying speed, cycle period, pin assignment and sidetone.
//
// The types carry YAML tags for the host loader; the firmware only uses
// Default() and never parses files.
package config

import (
	"errors"

	"funkbake/core"
)

// Sidetone modes
const (
	SidetoneOff    = "off"
	SidetoneBuzzer = "buzzer"
	SidetonePIO    = "pio"
)

const (
	// MinWPM and MaxWPM bound the keying speed to what a relay can follow
	MinWPM = 1
	MaxWPM = 60

	// DefaultSidetoneHz is a comfortable listening pitch
	DefaultSidetoneHz = 700
)

var (
	ErrInvalidWPM     = errors.New("wpm out of range")
	ErrInvalidDit     = errors.New("dit length must be positive")
	ErrInvalidPeriod  = errors.New("period shorter than the trailer")
	ErrTooManyPresets = errors.New("more than 16 presets")
	ErrSelectorPins   = errors.New("selector needs exactly 4 pins")
	ErrSidetoneMode   = errors.New("unknown sidetone mode")
)

// BeaconConfig is the complete beacon configuration
type BeaconConfig struct {
	// Presets are indexed by selector position; missing slots are silent
	Presets []string `yaml:"presets"`

	// WPM sets the dit length as 1200/WPM. DitMs overrides it when set.
	WPM   uint32 `yaml:"wpm"`
	DitMs uint32 `yaml:"dit_ms,omitempty"`

	// PeriodMs is the time between cycle starts
	PeriodMs uint32 `yaml:"period_ms"`

	Pins     PinConfig      `yaml:"pins"`
	Sidetone SidetoneConfig `yaml:"sidetone"`

	// Debug enables the per-cycle debug line on the target
	Debug bool `yaml:"debug"`
}

// PinConfig assigns GPIO numbers
type PinConfig struct {
	Relay         uint32   `yaml:"relay"`
	OpenCollector uint32   `yaml:"open_collector"`
	Selector      []uint32 `yaml:"selector"` // Lines 0..3
}

// SidetoneConfig selects the audio monitor output
type SidetoneConfig struct {
	Mode        string `yaml:"mode"`
	Pin         uint32 `yaml:"pin"`
	FrequencyHz uint32 `yaml:"frequency_hz"`
}

// Default returns the stock deployment: five call signs at 15 WPM, one
// cycle per minute.
func Default() *BeaconConfig {
	return &BeaconConfig{
		Presets:  []string{"DF0MU ", "DJ8EN", "DK2FD", "DL8YEH", "DH8AF"},
		WPM:      core.DefaultWPM,
		PeriodMs: core.DefaultPeriodMs,
		Pins: PinConfig{
			Relay:         15,
			OpenCollector: 14,
			Selector:      []uint32{2, 3, 4, 5},
		},
		Sidetone: SidetoneConfig{
			Mode:        SidetoneOff,
			Pin:         16,
			FrequencyHz: DefaultSidetoneHz,
		},
	}
}

// ApplyDefaults fills zero values from Default(). Presets are left alone:
// an empty list is a valid (silent) deployment.
func (c *BeaconConfig) ApplyDefaults() {
	d := Default()
	if c.WPM == 0 && c.DitMs == 0 {
		c.WPM = d.WPM
	}
	if c.PeriodMs == 0 {
		c.PeriodMs = d.PeriodMs
	}
	if c.Pins.Relay == 0 && c.Pins.OpenCollector == 0 {
		c.Pins.Relay = d.Pins.Relay
		c.Pins.OpenCollector = d.Pins.OpenCollector
	}
	if len(c.Pins.Selector) == 0 {
		c.Pins.Selector = d.Pins.Selector
	}
	if c.Sidetone.Mode == "" {
		c.Sidetone.Mode = SidetoneOff
	}
	if c.Sidetone.Pin == 0 {
		c.Sidetone.Pin = d.Sidetone.Pin
	}
	if c.Sidetone.FrequencyHz == 0 {
		c.Sidetone.FrequencyHz = d.Sidetone.FrequencyHz
	}
}

// Validate checks the configuration for values the scheduler cannot run with
func (c *BeaconConfig) Validate() error {
	if len(c.Presets) > core.SelectorPositions {
		return ErrTooManyPresets
	}
	if c.DitMs == 0 {
		if c.WPM < MinWPM || c.WPM > MaxWPM {
			return ErrInvalidWPM
		}
	}
	t := c.Timing()
	if t.DitMs == 0 {
		return ErrInvalidDit
	}
	if t.PeriodMs <= t.TrailerMs() {
		return ErrInvalidPeriod
	}
	if len(c.Pins.Selector) != core.SelectorLines {
		return ErrSelectorPins
	}
	switch c.Sidetone.Mode {
	case SidetoneOff, SidetoneBuzzer, SidetonePIO:
	default:
		return ErrSidetoneMode
	}
	return nil
}

// Timing derives the scheduler timing. An explicit DitMs wins over WPM.
func (c *BeaconConfig) Timing() core.Timing {
	dit := c.DitMs
	if dit == 0 {
		dit = core.WPMToDitMs(c.WPM)
	}
	return core.Timing{DitMs: dit, PeriodMs: c.PeriodMs}
}

// PresetTable builds the 16-slot table; extra presets are dropped
func (c *BeaconConfig) PresetTable() core.PresetTable {
	return core.NewPresetTable(c.Presets)
}

// SelectorPins returns the selector lines as GPIO pins. Missing lines read
// as pin 0; Validate rejects that case.
func (c *BeaconConfig) SelectorPins() [core.SelectorLines]core.GPIOPin {
	var pins [core.SelectorLines]core.GPIOPin
	for i := 0; i < core.SelectorLines && i < len(c.Pins.Selector); i++ {
		pins[i] = core.GPIOPin(c.Pins.Selector[i])
	}
	return pins
}
