package protocol

import "errors"

var (
	ErrFrameTooLong = errors.New("frame payload too long")
)

// CRC16 calculates the CRC16-CCITT checksum used by Klipper frames
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b = b ^ uint8(crc&0xFF)
		b = b ^ (b << 4)
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}

// EncodeFrame writes one complete frame to output. The payload callback
// writes the frame contents; the length, sequence, CRC and sync byte are
// filled in here.
func EncodeFrame(output OutputBuffer, seq uint8, payload func(output OutputBuffer)) error {
	cursor := output.CurPosition()

	// Header with length placeholder
	output.Output([]byte{0, MessageDest | (seq & MessageSeqMask)})
	payload(output)

	length := len(output.DataSince(cursor)) + MessageTrailerSize
	if length > MessageLengthMax {
		return ErrFrameTooLong
	}
	output.Update(cursor, uint8(length))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
	return nil
}

// FrameHandler receives the sequence number and payload of a valid frame.
// The payload slice is only valid during the call.
type FrameHandler func(seq uint8, payload []byte)

// FrameDecoder extracts frames from a byte stream. Garbage, truncated
// frames and CRC errors drop the decoder out of sync; it resynchronizes on
// the next sync byte.
type FrameDecoder struct {
	synchronized bool
	handler      FrameHandler

	// Counters for diagnostics
	Frames    uint32
	CRCErrors uint32
	Resyncs   uint32
}

// NewFrameDecoder creates a decoder that passes valid frames to handler
func NewFrameDecoder(handler FrameHandler) *FrameDecoder {
	return &FrameDecoder{
		synchronized: true,
		handler:      handler,
	}
}

// Receive consumes every complete frame available in input. A trailing
// partial frame is left in the buffer for the next call.
func (d *FrameDecoder) Receive(input InputBuffer) {
	data := input.Data()
	start := len(data)

	for len(data) > 0 {
		if !d.synchronized {
			// Skip everything up to and including the next sync byte
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			d.Resyncs++
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.synchronized = false
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.synchronized = false
			continue
		}

		// Wait for the full frame
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.synchronized = false
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.CRCErrors++
			d.synchronized = false
			continue
		}

		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]
		d.Frames++
		if d.handler != nil {
			d.handler(seq&MessageSeqMask, payload)
		}
	}

	input.Pop(start - len(data))
}

// Reset returns the decoder to the synchronized state
func (d *FrameDecoder) Reset() {
	d.synchronized = true
}
