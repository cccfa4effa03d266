// Package mcu connects to a running beacon and decodes its telemetry
// frames into boot announcements and cycle reports.
package mcu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"funkbake/core"
	"funkbake/host/serial"
	"funkbake/protocol"
)

// receiveBufferSize holds several frames of unread input
const receiveBufferSize = 4 * protocol.MessageLengthMax

var ErrNotConnected = errors.New("not connected to beacon")

// Stats counts link-level events
type Stats struct {
	Frames    uint32
	CRCErrors uint32
	Resyncs   uint32
	Unknown   uint32 // Valid frames with an unknown message ID
	Malformed uint32 // Valid frames whose payload failed to decode
}

// MCU represents a connection to a beacon
type MCU struct {
	port    serial.Port
	logger  *slog.Logger
	fifo    *protocol.FifoBuffer
	decoder *protocol.FrameDecoder

	boot     *core.BootInfo
	onBoot   func(core.BootInfo)
	onReport func(core.CycleReport)

	unknown   uint32
	malformed uint32
}

// NewMCU creates a new MCU instance (not yet connected)
func NewMCU(logger *slog.Logger) *MCU {
	if logger == nil {
		logger = slog.Default()
	}
	m := &MCU{
		logger: logger,
		fifo:   protocol.NewFifoBuffer(receiveBufferSize),
	}
	m.decoder = protocol.NewFrameDecoder(m.handleFrame)
	return m
}

// ConnectWithConfig opens a serial port with a custom config
func (m *MCU) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	m.Attach(port)
	m.logger.Debug("Connected to beacon", slog.String("device", cfg.Device))
	return nil
}

// Attach uses an already open port
func (m *MCU) Attach(port serial.Port) {
	m.port = port
	m.fifo.Reset()
	m.decoder.Reset()
}

// Close closes the connection
func (m *MCU) Close() error {
	if m.port == nil {
		return nil
	}
	err := m.port.Close()
	m.port = nil
	return err
}

// OnBoot registers a callback for boot announcements
func (m *MCU) OnBoot(fn func(core.BootInfo)) {
	m.onBoot = fn
}

// OnReport registers a callback for cycle reports
func (m *MCU) OnReport(fn func(core.CycleReport)) {
	m.onReport = fn
}

// Boot returns the last boot announcement, or nil if none was seen
func (m *MCU) Boot() *core.BootInfo {
	return m.boot
}

// Stats returns the link counters
func (m *MCU) Stats() Stats {
	return Stats{
		Frames:    m.decoder.Frames,
		CRCErrors: m.decoder.CRCErrors,
		Resyncs:   m.decoder.Resyncs,
		Unknown:   m.unknown,
		Malformed: m.malformed,
	}
}

// Run reads from the port and dispatches frames until the context is
// cancelled or the port fails. Cancellation is not an error.
func (m *MCU) Run(ctx context.Context) error {
	if m.port == nil {
		return ErrNotConnected
	}

	buf := make([]byte, receiveBufferSize)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := m.port.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if err != nil {
			// Read timeouts surface as EOF with no data
			if errors.Is(err, io.EOF) && n == 0 && ctx.Err() == nil {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read from beacon: %w", err)
		}
	}
}

// Feed pushes raw bytes through the frame decoder
func (m *MCU) Feed(data []byte) {
	for len(data) > 0 {
		n := m.fifo.Write(data)
		data = data[n:]
		m.decoder.Receive(m.fifo)

		if n == 0 && m.fifo.Free() == 0 {
			// A full buffer without a complete frame is garbage
			m.logger.Warn("Receive buffer overflow, discarding",
				slog.Int("bytes", m.fifo.Available()))
			m.fifo.Reset()
			m.decoder.Reset()
		}
	}
}

func (m *MCU) handleFrame(seq uint8, payload []byte) {
	msg, err := core.DecodeMessage(payload)
	if errors.Is(err, core.ErrUnexpectedMessage) {
		m.unknown++
		m.logger.Debug("Unknown message",
			slog.Int("id", int(msg.ID)),
			slog.Int("seq", int(seq)))
		return
	}
	if err != nil {
		m.malformed++
		m.logger.Debug("Malformed frame",
			slog.Int("id", int(msg.ID)),
			slog.String("error", err.Error()))
		return
	}

	switch msg.ID {
	case protocol.MsgBoot:
		info := msg.Boot
		m.boot = &info
		if m.onBoot != nil {
			m.onBoot(info)
		}

	case protocol.MsgCycleReport:
		if m.onReport != nil {
			m.onReport(msg.Report)
		}
	}
}
