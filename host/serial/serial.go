package serial

import (
	"io"
)

// Port represents a serial port interface.
// The native implementation uses github.com/tarm/serial; tests substitute
// an in-memory port.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC ignores it; the UART debug console runs at 115200.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud matches the beacon's UART debug console
const DefaultBaud = 115200

// DefaultConfig returns a default configuration for the beacon link
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100, // lets the monitor notice cancellation
	}
}
