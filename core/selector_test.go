package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSelectorTable(t *testing.T) {
	// raw line levels (bit i = line i, 1 = open) -> index
	want := [16]uint8{
		0x0: 15, 0x1: 7, 0x2: 11, 0x3: 3,
		0x4: 13, 0x5: 5, 0x6: 9, 0x7: 1,
		0x8: 14, 0x9: 6, 0xA: 10, 0xB: 2,
		0xC: 12, 0xD: 4, 0xE: 8, 0xF: 0,
	}
	for raw := 0; raw < 16; raw++ {
		assert.Equal(t, want[raw], DecodeSelector(uint8(raw)), "raw %04b", raw)
	}
}

func TestDecodeSelectorIsBijective(t *testing.T) {
	var seen [SelectorPositions]bool
	for raw := 0; raw < 16; raw++ {
		idx := DecodeSelector(uint8(raw))
		require.Less(t, idx, uint8(SelectorPositions))
		assert.False(t, seen[idx], "index %d produced twice", idx)
		seen[idx] = true
	}
}

func TestDecodeSelectorSingleLine(t *testing.T) {
	// Only line 0 closed (pulled low)
	assert.Equal(t, uint8(8), DecodeSelector(0x0E))
	// Only line 3 closed
	assert.Equal(t, uint8(1), DecodeSelector(0x07))
	// All open selects the first preset
	assert.Equal(t, uint8(0), DecodeSelector(0x0F))
}

func TestDecodeSelectorIgnoresHighBits(t *testing.T) {
	for raw := 0; raw < 256; raw++ {
		assert.Equal(t, DecodeSelector(uint8(raw)&0x0F), DecodeSelector(uint8(raw)))
	}
}

func TestEncodeSelectorRoundTrip(t *testing.T) {
	for idx := uint8(0); idx < SelectorPositions; idx++ {
		raw := EncodeSelector(idx)
		assert.LessOrEqual(t, raw, uint8(0x0F))
		assert.Equal(t, idx, DecodeSelector(raw))
	}
}

func TestPinSelectorReadsActiveLow(t *testing.T) {
	gpio := newMockGPIODriver()
	pins := [SelectorLines]GPIOPin{2, 3, 4, 5}
	sel, err := NewPinSelector(gpio, pins)
	require.NoError(t, err)

	for _, p := range pins {
		assert.True(t, gpio.pullUps[p], "pin %d not pulled up", p)
	}

	// All switches open
	assert.Equal(t, uint8(0x0F), sel.ReadRaw())
	assert.Equal(t, uint8(0), ReadIndex(sel))

	// Close the switch on line 0
	gpio.inputs[2] = false
	assert.Equal(t, uint8(0x0E), sel.ReadRaw())
	assert.Equal(t, uint8(8), ReadIndex(sel))

	// Close line 3 as well
	gpio.inputs[5] = false
	assert.Equal(t, uint8(9), ReadIndex(sel))
}

func TestPinSelectorConfigureError(t *testing.T) {
	gpio := newMockGPIODriver()
	gpio.failOn = 4
	_, err := NewPinSelector(gpio, [SelectorLines]GPIOPin{2, 3, 4, 5})
	assert.ErrorIs(t, err, errPinBusy)
}

func TestFixedSelector(t *testing.T) {
	assert.Equal(t, uint8(3), ReadIndex(FixedSelector(EncodeSelector(3))))
}

func TestPresetTable(t *testing.T) {
	presets := DefaultPresets()
	assert.Equal(t, 5, presets.Configured())
	assert.Equal(t, "DF0MU ", presets.Message(0))
	assert.Equal(t, "DH8AF", presets.Message(4))
	assert.Equal(t, "", presets.Message(15), "unset slots are empty")
	assert.Equal(t, "DJ8EN", presets.Message(0x11), "index wraps to the low nibble")

	custom := NewPresetTable([]string{"A", "B"})
	assert.Equal(t, 2, custom.Configured())
	assert.Equal(t, "B", custom.Message(1))
}
