package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funkbake/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"DF0MU ", "DJ8EN", "DK2FD", "DL8YEH", "DH8AF"}, cfg.Presets)
	assert.Equal(t, core.Timing{DitMs: 80, PeriodMs: 60000}, cfg.Timing())
	assert.Equal(t, core.DefaultPresets(), cfg.PresetTable())
	assert.Equal(t, [core.SelectorLines]core.GPIOPin{2, 3, 4, 5}, cfg.SelectorPins())
	assert.Equal(t, SidetoneOff, cfg.Sidetone.Mode)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*BeaconConfig)
		wantErr error
	}{
		{
			name:   "valid default config",
			modify: func(c *BeaconConfig) {},
		},
		{
			name:    "wpm zero",
			modify:  func(c *BeaconConfig) { c.WPM = 0 },
			wantErr: ErrInvalidWPM,
		},
		{
			name:    "wpm too fast",
			modify:  func(c *BeaconConfig) { c.WPM = MaxWPM + 1 },
			wantErr: ErrInvalidWPM,
		},
		{
			name:   "explicit dit ignores wpm",
			modify: func(c *BeaconConfig) { c.WPM = 0; c.DitMs = 200 },
		},
		{
			name:    "period inside trailer",
			modify:  func(c *BeaconConfig) { c.PeriodMs = 7 * 80 },
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "seventeen presets",
			modify: func(c *BeaconConfig) {
				c.Presets = make([]string, core.SelectorPositions+1)
			},
			wantErr: ErrTooManyPresets,
		},
		{
			name:   "sixteen presets",
			modify: func(c *BeaconConfig) { c.Presets = make([]string, core.SelectorPositions) },
		},
		{
			name:   "no presets",
			modify: func(c *BeaconConfig) { c.Presets = nil },
		},
		{
			name:    "three selector pins",
			modify:  func(c *BeaconConfig) { c.Pins.Selector = []uint32{2, 3, 4} },
			wantErr: ErrSelectorPins,
		},
		{
			name:    "unknown sidetone",
			modify:  func(c *BeaconConfig) { c.Sidetone.Mode = "speaker" },
			wantErr: ErrSidetoneMode,
		},
		{
			name:   "pio sidetone",
			modify: func(c *BeaconConfig) { c.Sidetone.Mode = SidetonePIO },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTimingPrefersExplicitDit(t *testing.T) {
	cfg := Default()
	cfg.DitMs = 200
	assert.Equal(t, uint32(200), cfg.Timing().DitMs)

	cfg.DitMs = 0
	cfg.WPM = 20
	assert.Equal(t, uint32(60), cfg.Timing().DitMs)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
presets:
  - "SOS"
  - "TEST DE DF0MU"
wpm: 12
pins:
  relay: 20
  open_collector: 21
sidetone:
  mode: buzzer
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"SOS", "TEST DE DF0MU"}, cfg.Presets)
	assert.Equal(t, uint32(100), cfg.Timing().DitMs)
	assert.Equal(t, uint32(core.DefaultPeriodMs), cfg.PeriodMs)
	assert.Equal(t, uint32(20), cfg.Pins.Relay)
	assert.Equal(t, uint32(21), cfg.Pins.OpenCollector)
	assert.Equal(t, []uint32{2, 3, 4, 5}, cfg.Pins.Selector)
	assert.Equal(t, SidetoneBuzzer, cfg.Sidetone.Mode)
	assert.Equal(t, uint32(DefaultSidetoneHz), cfg.Sidetone.FrequencyHz)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("wpm: 500\n"))
	assert.ErrorIs(t, err, ErrInvalidWPM)

	_, err = Parse([]byte("presets: [unclosed\n"))
	assert.Error(t, err)
}

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	cfg := &BeaconConfig{}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	assert.Empty(t, cfg.Presets)
	assert.Equal(t, core.DefaultTiming(), cfg.Timing())
	assert.Equal(t, uint32(15), cfg.Pins.Relay)
	assert.Equal(t, SidetoneOff, cfg.Sidetone.Mode)
}

func TestLoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beacon.yaml")

	want := Default()
	want.Presets = []string{"VVV DE DF0MU"}
	want.DitMs = 120
	want.Debug = true
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
