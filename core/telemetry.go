package core

import (
	"errors"

	"funkbake/protocol"
)

// MaxReportMessage caps the message text carried in a cycle report so
// the frame stays within protocol.MessageLengthMax.
const MaxReportMessage = 24

// Link backoff: after maxSendFailures consecutive failed sends the
// encoder skips frames, doubling the gap after each failed retry.
const (
	maxSendFailures = 3
	maxSendBackoff  = 64
)

var ErrUnexpectedMessage = errors.New("unexpected telemetry message")

// BootInfo is announced once at power-up
type BootInfo struct {
	Version  string
	Timing   Timing
	Presets  int // Number of configured preset slots
	Sidetone bool
}

// Telemetry frames cycle reports for the host link
type Telemetry struct {
	out  *protocol.ScratchOutput
	seq  uint8
	send func([]byte) error

	failures uint32
	backoff  uint32
	skip     uint32
	dropped  uint32
}

// NewTelemetry creates a telemetry encoder that hands complete frames to
// send. A send error means no host is listening; frames are then dropped
// with growing gaps between retries so keying never waits on the link.
func NewTelemetry(send func([]byte) error) *Telemetry {
	return &Telemetry{
		out:  protocol.NewScratchOutput(),
		send: send,
	}
}

// SendBoot frames and sends the boot announcement
func (t *Telemetry) SendBoot(info BootInfo) {
	t.emit(func(o protocol.OutputBuffer) {
		EncodeBootInfo(o, info)
	})
}

// SendCycleReport frames and sends one cycle report
func (t *Telemetry) SendCycleReport(r CycleReport) {
	t.emit(func(o protocol.OutputBuffer) {
		EncodeCycleReport(o, r)
	})
}

func (t *Telemetry) emit(payload func(protocol.OutputBuffer)) {
	t.out.Reset()
	if err := protocol.EncodeFrame(t.out, t.seq, payload); err != nil {
		return
	}
	t.seq = (t.seq + 1) & protocol.MessageSeqMask
	if t.send == nil {
		return
	}
	if t.skip > 0 {
		t.skip--
		t.dropped++
		return
	}

	if err := t.send(t.out.Result()); err != nil {
		t.dropped++
		t.failures++
		if t.failures >= maxSendFailures {
			t.backoff = min(max(t.backoff*2, 1), maxSendBackoff)
			t.skip = t.backoff
		}
		return
	}
	t.failures = 0
	t.backoff = 0
}

// Dropped returns how many frames were not delivered
func (t *Telemetry) Dropped() uint32 {
	return t.dropped
}

// EncodeBootInfo writes a MsgBoot payload
func EncodeBootInfo(o protocol.OutputBuffer, info BootInfo) {
	protocol.EncodeVLQUint(o, protocol.MsgBoot)
	protocol.EncodeVLQString(o, info.Version)
	protocol.EncodeVLQUint(o, info.Timing.DitMs)
	protocol.EncodeVLQUint(o, info.Timing.PeriodMs)
	protocol.EncodeVLQUint(o, uint32(info.Presets))
	protocol.EncodeVLQUint(o, boolValue(info.Sidetone))
}

// EncodeCycleReport writes a MsgCycleReport payload
func EncodeCycleReport(o protocol.OutputBuffer, r CycleReport) {
	msg := r.Message
	if len(msg) > MaxReportMessage {
		msg = msg[:MaxReportMessage]
	}
	protocol.EncodeVLQUint(o, protocol.MsgCycleReport)
	protocol.EncodeVLQUint(o, r.Cycle)
	protocol.EncodeVLQUint(o, uint32(r.Raw))
	protocol.EncodeVLQUint(o, uint32(r.Index))
	protocol.EncodeVLQString(o, msg)
	protocol.EncodeVLQUint(o, r.ElapsedMs)
	protocol.EncodeVLQUint(o, r.IdleMs)
	protocol.EncodeVLQUint(o, r.TrailerMs)
	protocol.EncodeVLQUint(o, r.TotalMs)
	protocol.EncodeVLQUint(o, boolValue(r.Overrun))
}

// Message is one decoded telemetry payload. Boot or Report is set
// according to ID.
type Message struct {
	ID     uint32
	Boot   BootInfo
	Report CycleReport
}

// DecodeMessage decodes a complete frame payload. Unknown message IDs
// return ErrUnexpectedMessage with ID set.
func DecodeMessage(payload []byte) (Message, error) {
	var m Message
	id, err := DecodeMessageID(&payload)
	if err != nil {
		return m, err
	}
	m.ID = id

	switch id {
	case protocol.MsgBoot:
		m.Boot, err = DecodeBootInfo(&payload)
	case protocol.MsgCycleReport:
		m.Report, err = DecodeCycleReport(&payload)
	default:
		err = ErrUnexpectedMessage
	}
	return m, err
}

// DecodeMessageID reads the message ID that starts every payload
func DecodeMessageID(data *[]byte) (uint32, error) {
	return protocol.DecodeVLQUint(data)
}

// DecodeBootInfo reads a MsgBoot payload after its message ID
func DecodeBootInfo(data *[]byte) (BootInfo, error) {
	var info BootInfo
	var err error
	if info.Version, err = protocol.DecodeVLQString(data); err != nil {
		return info, err
	}
	fields := []*uint32{&info.Timing.DitMs, &info.Timing.PeriodMs}
	for _, f := range fields {
		if *f, err = protocol.DecodeVLQUint(data); err != nil {
			return info, err
		}
	}
	presets, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return info, err
	}
	info.Presets = int(presets)
	sidetone, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return info, err
	}
	info.Sidetone = sidetone != 0
	return info, nil
}

// DecodeCycleReport reads a MsgCycleReport payload after its message ID
func DecodeCycleReport(data *[]byte) (CycleReport, error) {
	var r CycleReport
	var err error
	if r.Cycle, err = protocol.DecodeVLQUint(data); err != nil {
		return r, err
	}
	raw, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return r, err
	}
	index, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return r, err
	}
	r.Raw, r.Index = uint8(raw), uint8(index)
	if r.Message, err = protocol.DecodeVLQString(data); err != nil {
		return r, err
	}
	fields := []*uint32{&r.ElapsedMs, &r.IdleMs, &r.TrailerMs, &r.TotalMs}
	for _, f := range fields {
		if *f, err = protocol.DecodeVLQUint(data); err != nil {
			return r, err
		}
	}
	overrun, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return r, err
	}
	r.Overrun = overrun != 0
	return r, nil
}

func boolValue(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
