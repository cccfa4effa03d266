// Package protocol implements the framed telemetry link from the beacon to
// the host. Frames use the Klipper block layout:
//
//	<len> <seq> <payload...> <crc hi> <crc lo> <0x7E>
//
// The payload is a sequence of VLQ-encoded values starting with a message ID.
package protocol

// Version represents the funkbake firmware version
const Version = "0.1.0"

// Frame layout constants
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// Message IDs carried as the first payload value
const (
	MsgBoot        = 1 // version, dit_ms, period_ms, presets
	MsgCycleReport = 2 // one completed beacon cycle
)
