//go:build rp2040

package pio

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// cyclesPerPeriod is the length of one square wave period in PIO cycles:
// two SET instructions each followed by a 31 cycle delay.
const cyclesPerPeriod = 64

const sidetonePIOOrigin = -1 // Any free offset; the program has no jumps

var (
	ErrNoStateMachine = errors.New("no free PIO state machine")
	ErrFrequency      = errors.New("sidetone frequency out of range")
)

// buildSidetoneProgram creates a free-running square wave
func buildSidetoneProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Set(rp2pio.SetDestPins, 1).Delay(31).Encode(), // 0: set pins, 1 [31]
		asm.Set(rp2pio.SetDestPins, 0).Delay(31).Encode(), // 1: set pins, 0 [31]
		// .wrap
	}
}

// clockDivider returns the integer and fractional state machine clock
// divider for a tone frequency. The fraction is in 1/256 steps.
func clockDivider(sysHz, toneHz uint32) (uint16, uint8, error) {
	if toneHz == 0 {
		return 0, 0, ErrFrequency
	}
	div256 := uint64(sysHz) * 256 / (uint64(toneHz) * cyclesPerPeriod)
	whole := div256 >> 8
	if whole < 1 || whole > 0xFFFF {
		return 0, 0, ErrFrequency
	}
	return uint16(whole), uint8(div256 & 0xFF), nil
}

// Sidetone is an audio square wave on one pin, gated by Key. It
// implements core.Sidetone.
type Sidetone struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pin    machine.Pin
	pioNum uint8
	smNum  uint8
	keyed  bool
}

// NewSidetone claims a state machine and loads the tone program. The
// output stays low until keyed.
func NewSidetone(pin machine.Pin, toneHz uint32) (*Sidetone, error) {
	whole, frac, err := clockDivider(machine.CPUFrequency(), toneHz)
	if err != nil {
		return nil, err
	}

	pioNum, smNum, ok := allocatePIO()
	if !ok {
		return nil, ErrNoStateMachine
	}
	pioHW := rp2pio.PIO0
	if pioNum == 1 {
		pioHW = rp2pio.PIO1
	}

	s := &Sidetone{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		pin:    pin,
		pioNum: pioNum,
		smNum:  smNum,
	}

	// Claim the state machine before touching it
	s.sm.TryClaim()

	program := buildSidetoneProgram()
	offset, err := s.pio.AddProgram(program, sidetonePIOOrigin)
	if err != nil {
		releasePIO(pioNum, smNum)
		return nil, err
	}

	s.pin.Configure(machine.PinConfig{Mode: s.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(s.pin, 1)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(whole, frac)

	// Init first, pin directions after
	s.sm.Init(offset, cfg)
	s.sm.SetPindirsConsecutive(s.pin, 1, true)
	s.sm.SetPinsConsecutive(s.pin, 1, false)

	return s, nil
}

// Key starts or stops the tone. A stopped tone parks the pin low.
func (s *Sidetone) Key(on bool) {
	if on == s.keyed {
		return
	}
	s.keyed = on
	if on {
		s.sm.Restart()
		s.sm.SetEnabled(true)
		return
	}
	s.sm.SetEnabled(false)
	s.sm.SetPinsConsecutive(s.pin, 1, false)
}
