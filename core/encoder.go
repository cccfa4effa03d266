package core

// Element is the kind of a timed action
type Element uint8

const (
	// Mark keys both outputs on
	Mark Element = iota + 1
	// Space keys both outputs off (the symbol space after a dit or dah)
	Space
	// Gap is silence that leaves the outputs untouched. Letter and word
	// spaces are gaps: the preceding space already released the key.
	Gap
)

func (e Element) String() string {
	switch e {
	case Mark:
		return "mark"
	case Space:
		return "space"
	case Gap:
		return "gap"
	default:
		return "unknown"
	}
}

// Action is one timed step of a transmission
type Action struct {
	Element Element
	Units   uint32
}

// On reports whether the outputs are keyed during this action
func (a Action) On() bool {
	return a.Element == Mark
}

// Plan is the timed action list for one message
type Plan struct {
	Actions []Action
	Units   uint32 // Sum of all action units
}

// DurationMs returns the plan length for a given dit length
func (p Plan) DurationMs(ditMs uint32) uint32 {
	return p.Units * ditMs
}

func (p *Plan) add(e Element, units uint32) {
	p.Actions = append(p.Actions, Action{Element: e, Units: units})
	p.Units += units
}

// Encode converts a message into its timed action list.
//
// Coded characters become mark/space pairs; any character without a code
// becomes a 4 unit word gap. Every character, coded or not, is followed by
// a 2 unit letter gap, so an unknown character is 6 units of silence.
func Encode(message string) Plan {
	var p Plan
	for i := 0; i < len(message); i++ {
		if symbols, ok := Lookup(message[i]); ok {
			for _, s := range symbols {
				p.add(Mark, s.OnUnits())
				p.add(Space, s.OffUnits())
			}
		} else {
			p.add(Gap, WordSpaceUnits)
		}
		p.add(Gap, LetterSpaceUnits)
	}
	return p
}

// TrailerPlan returns the fixed silence that closes every cycle:
// a symbol space that releases the idle marker, then a letter gap and a
// word gap.
func TrailerPlan() Plan {
	var p Plan
	p.add(Space, SymbolSpaceUnits)
	p.add(Gap, LetterSpaceUnits)
	p.add(Gap, WordSpaceUnits)
	return p
}

// MessageDurationMs returns how long a message takes to send
func MessageDurationMs(message string, ditMs uint32) uint32 {
	var units uint32
	for i := 0; i < len(message); i++ {
		units += CharacterUnits(message[i])
	}
	return units * ditMs
}

// Transmitter keys a message onto the outputs.
// The dit length is fixed for the lifetime of the transmitter.
type Transmitter struct {
	keyer    Keyer
	waiter   Waiter
	ditMs    uint32
	sidetone Sidetone
}

// NewTransmitter creates a transmitter for the given outputs and wait primitive
func NewTransmitter(keyer Keyer, waiter Waiter, ditMs uint32) *Transmitter {
	return &Transmitter{
		keyer:  keyer,
		waiter: waiter,
		ditMs:  ditMs,
	}
}

// SetSidetone attaches an audible monitor. Pass nil to detach.
func (t *Transmitter) SetSidetone(s Sidetone) {
	t.sidetone = s
}

// DitMs returns the dit length in milliseconds
func (t *Transmitter) DitMs() uint32 {
	return t.ditMs
}

// Send encodes and transmits a message, returning the elapsed time in ms.
// An empty message returns 0 without touching the outputs.
func (t *Transmitter) Send(message string) uint32 {
	return t.Play(Encode(message))
}

// Play runs a plan against the outputs and returns the elapsed time in ms.
// Once started a plan always runs to completion.
func (t *Transmitter) Play(p Plan) uint32 {
	var elapsed uint32
	for _, a := range p.Actions {
		switch a.Element {
		case Mark:
			t.key(true)
		case Space:
			t.key(false)
		}
		d := a.Units * t.ditMs
		t.waiter.WaitMs(d)
		elapsed += d
	}
	return elapsed
}

func (t *Transmitter) key(on bool) {
	setBoth(t.keyer, on)
	if t.sidetone != nil {
		t.sidetone.Key(on)
	}
}

// Transmit is the one-shot form of Transmitter.Send
func Transmit(message string, keyer Keyer, waiter Waiter, ditMs uint32) uint32 {
	return NewTransmitter(keyer, waiter, ditMs).Send(message)
}
