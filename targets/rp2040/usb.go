//go:build rp2040

package main

import (
	"errors"
	"machine"
)

var errUSBWrite = errors.New("usb write failed")

// InitUSB initializes USB serial communication.
// On RP2040, machine.Serial is USB CDC, not UART.
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// writeTelemetry sends one frame over USB. With no host attached writes
// fail and core.Telemetry backs off.
func writeTelemetry(frame []byte) error {
	written := 0
	for written < len(frame) {
		n, err := machine.Serial.Write(frame[written:])
		if err != nil {
			return err
		}
		if n == 0 {
			return errUSBWrite
		}
		written += n
	}
	return nil
}
