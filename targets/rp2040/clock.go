//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word, no latching
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// GetHardwareTime reads the low 32 bits of the 1 MHz microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// busyWaiter spins on the hardware timer. The beacon has nothing else to
// run, and the counter keeps dit timing independent of scheduler jitter.
type busyWaiter struct{}

// WaitMs blocks for ms milliseconds. Long waits are split so the
// 32-bit microsecond difference never wraps.
func (busyWaiter) WaitMs(ms uint32) {
	const chunkMs = 1000
	for ms > 0 {
		step := ms
		if step > chunkMs {
			step = chunkMs
		}
		waitUs(step * 1000)
		ms -= step
	}
}

func waitUs(us uint32) {
	start := GetHardwareTime()
	for GetHardwareTime()-start < us {
	}
}
