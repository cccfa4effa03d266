package core

// Waiter blocks for a number of milliseconds. The target implementation
// busy-waits on the hardware timer; there is nothing else to run.
type Waiter interface {
	WaitMs(ms uint32)
}

// VirtualClock is a Waiter that advances simulated time instead of
// blocking. Tests and the host simulator drive the scheduler with it.
type VirtualClock struct {
	now   uint64
	waits uint32
}

// NewVirtualClock returns a clock starting at zero milliseconds
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// WaitMs advances the clock by ms
func (c *VirtualClock) WaitMs(ms uint32) {
	c.now += uint64(ms)
	c.waits++
}

// Now returns the simulated time in milliseconds
func (c *VirtualClock) Now() uint64 {
	return c.now
}

// Waits returns how many WaitMs calls have been made
func (c *VirtualClock) Waits() uint32 {
	return c.waits
}
