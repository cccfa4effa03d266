package core

// SelectorPositions is the number of distinct selector settings (4 bits)
const SelectorPositions = 16

// SelectorLines is the number of physical selector inputs
const SelectorLines = 4

// SelectorSource returns the raw selector reading, one bit per line in
// line order (bit 0 = line 0). Lines are active-low: a closed switch reads 0.
type SelectorSource interface {
	ReadRaw() uint8
}

// DecodeSelector inverts the active-low lines and reorders them to match
// the switch positions: line 0 is the most significant index bit and
// line 3 the least significant. Bits above the low nibble are ignored.
//
// Every one of the 16 raw patterns maps to a distinct index.
func DecodeSelector(raw uint8) uint8 {
	inv := ^raw
	return (inv&0x1)<<3 |
		(inv&0x2)<<1 |
		(inv&0x4)>>1 |
		(inv&0x8)>>3
}

// EncodeSelector returns the raw reading that selects index.
// It is the inverse of DecodeSelector on the low nibble.
func EncodeSelector(index uint8) uint8 {
	// Inversion plus bit reversal is an involution on a nibble.
	return DecodeSelector(index & 0x0F)
}

// ReadIndex samples a selector source once and decodes the reading
func ReadIndex(src SelectorSource) uint8 {
	return DecodeSelector(src.ReadRaw())
}

// FixedSelector is a SelectorSource that always returns the same raw value
type FixedSelector uint8

// ReadRaw returns the fixed raw value
func (f FixedSelector) ReadRaw() uint8 {
	return uint8(f)
}

// PinSelector reads the selector lines through the GPIO HAL.
// No debouncing is done; a glitch selects another message for one cycle.
type PinSelector struct {
	driver GPIODriver
	pins   [SelectorLines]GPIOPin
}

// NewPinSelector configures the four selector lines as pull-up inputs
func NewPinSelector(driver GPIODriver, pins [SelectorLines]GPIOPin) (*PinSelector, error) {
	for _, pin := range pins {
		if err := driver.ConfigureInputPullUp(pin); err != nil {
			return nil, err
		}
	}
	return &PinSelector{driver: driver, pins: pins}, nil
}

// ReadRaw samples the four lines into a nibble
func (s *PinSelector) ReadRaw() uint8 {
	var raw uint8
	for i, pin := range s.pins {
		if s.driver.ReadPin(pin) {
			raw |= 1 << uint(i)
		}
	}
	return raw
}
