package core

// Channel names one of the beacon's keyed outputs.
type Channel uint8

const (
	// ChannelRelay drives the reed relay. It also carries the idle
	// "carrier present" marker between transmissions.
	ChannelRelay Channel = iota
	// ChannelOpenCollector drives the open-collector output.
	ChannelOpenCollector

	NumChannels
)

// String returns the channel name used in debug output
func (c Channel) String() string {
	switch c {
	case ChannelRelay:
		return "relay"
	case ChannelOpenCollector:
		return "open_collector"
	default:
		return "unknown"
	}
}

// Keyer drives the beacon outputs. Implementations must not block.
type Keyer interface {
	Set(ch Channel, on bool)
}

// Sidetone is an optional audible monitor keyed in lockstep with the outputs.
type Sidetone interface {
	Key(on bool)
}

// PinKeyer maps output channels onto GPIO pins.
type PinKeyer struct {
	driver GPIODriver
	pins   [NumChannels]GPIOPin
}

// NewPinKeyer configures both output pins and returns a keyer for them.
func NewPinKeyer(driver GPIODriver, relay, openCollector GPIOPin) (*PinKeyer, error) {
	k := &PinKeyer{
		driver: driver,
		pins:   [NumChannels]GPIOPin{relay, openCollector},
	}
	for _, pin := range k.pins {
		if err := driver.ConfigureOutput(pin); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// Set drives one channel. Driver errors are dropped: the beacon has no
// path to report them and must keep keying.
func (k *PinKeyer) Set(ch Channel, on bool) {
	if ch >= NumChannels {
		return
	}
	_ = k.driver.SetPin(k.pins[ch], on)
}

// Pin returns the GPIO pin assigned to a channel
func (k *PinKeyer) Pin(ch Channel) GPIOPin {
	if ch >= NumChannels {
		return 0
	}
	return k.pins[ch]
}

// setBoth drives every channel to the same level
func setBoth(k Keyer, on bool) {
	for ch := Channel(0); ch < NumChannels; ch++ {
		k.Set(ch, on)
	}
}
