package core

import "errors"

// transition is one output change observed by the recording keyer
type transition struct {
	At      uint64
	Channel Channel
	On      bool
}

// recordingKeyer logs every Set call against a virtual clock
type recordingKeyer struct {
	clock  *VirtualClock
	levels [NumChannels]bool
	log    []transition
}

func newRecordingKeyer(clock *VirtualClock) *recordingKeyer {
	return &recordingKeyer{clock: clock}
}

func (k *recordingKeyer) Set(ch Channel, on bool) {
	k.levels[ch] = on
	k.log = append(k.log, transition{At: k.clock.Now(), Channel: ch, On: on})
}

// onTime sums how long a channel was high, up to the clock's current time
func (k *recordingKeyer) onTime(ch Channel) uint64 {
	var total, since uint64
	on := false
	for _, tr := range k.log {
		if tr.Channel != ch {
			continue
		}
		if tr.On && !on {
			since = tr.At
		} else if !tr.On && on {
			total += tr.At - since
		}
		on = tr.On
	}
	if on {
		total += k.clock.Now() - since
	}
	return total
}

type recordingSidetone struct {
	keyed []bool
}

func (s *recordingSidetone) Key(on bool) {
	s.keyed = append(s.keyed, on)
}

var errPinBusy = errors.New("pin busy")

// mockGPIODriver is a test implementation of GPIODriver
type mockGPIODriver struct {
	outputs map[GPIOPin]bool
	inputs  map[GPIOPin]bool
	pullUps map[GPIOPin]bool
	failOn  GPIOPin
	writes  int
}

func newMockGPIODriver() *mockGPIODriver {
	return &mockGPIODriver{
		outputs: make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]bool),
		pullUps: make(map[GPIOPin]bool),
		failOn:  ^GPIOPin(0),
	}
}

func (m *mockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	if pin == m.failOn {
		return errPinBusy
	}
	m.outputs[pin] = false
	return nil
}

func (m *mockGPIODriver) ConfigureInputPullUp(pin GPIOPin) error {
	if pin == m.failOn {
		return errPinBusy
	}
	m.pullUps[pin] = true
	// Pull-up: an open switch reads high
	m.inputs[pin] = true
	return nil
}

func (m *mockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	m.writes++
	m.outputs[pin] = value
	return nil
}

func (m *mockGPIODriver) ReadPin(pin GPIOPin) bool {
	return m.inputs[pin]
}
