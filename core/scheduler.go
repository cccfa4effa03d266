package core

// CycleReport describes one completed broadcast cycle
type CycleReport struct {
	Cycle     uint32 // Cycle number, starting at 1
	Raw       uint8  // Raw selector reading
	Index     uint8  // Decoded selector index
	Message   string // Message that was sent
	ElapsedMs uint32 // Active phase: time spent keying the message
	IdleMs    uint32 // Idle phase: time spent holding the carrier marker
	TrailerMs uint32 // Fixed trailer after the idle phase
	TotalMs   uint32 // Whole cycle
	Overrun   bool   // Message alone exceeded the period budget
}

// Scheduler runs the beacon cycle: sample the selector, send the selected
// message, hold the idle marker for the rest of the period, then close the
// cycle with a fixed trailer.
type Scheduler struct {
	timing   Timing
	presets  PresetTable
	selector SelectorSource
	keyer    Keyer
	waiter   Waiter
	tx       *Transmitter

	cycles  uint32
	onCycle func(CycleReport)
}

// NewScheduler wires the scheduler to its collaborators. A zero dit length
// is replaced by the default speed, since the idle loop steps by one dit.
func NewScheduler(timing Timing, presets PresetTable, selector SelectorSource, keyer Keyer, waiter Waiter) *Scheduler {
	if timing.DitMs == 0 {
		timing.DitMs = WPMToDitMs(DefaultWPM)
	}
	return &Scheduler{
		timing:   timing,
		presets:  presets,
		selector: selector,
		keyer:    keyer,
		waiter:   waiter,
		tx:       NewTransmitter(keyer, waiter, timing.DitMs),
	}
}

// Transmitter returns the transmitter used for the active phase
func (s *Scheduler) Transmitter() *Transmitter {
	return s.tx
}

// Timing returns the timing the scheduler runs with
func (s *Scheduler) Timing() Timing {
	return s.timing
}

// SetCycleHook registers a function called after every cycle
func (s *Scheduler) SetCycleHook(fn func(CycleReport)) {
	s.onCycle = fn
}

// RunCycle performs exactly one broadcast cycle
func (s *Scheduler) RunCycle() CycleReport {
	s.cycles++
	r := CycleReport{Cycle: s.cycles}

	// Active phase
	r.Raw = s.selector.ReadRaw()
	r.Index = DecodeSelector(r.Raw)
	r.Message = s.presets.Message(r.Index)
	RecordEvent(EvtCycleStart, r.Cycle, uint32(r.Raw), uint32(r.Index))

	r.ElapsedMs = s.tx.Send(r.Message)
	RecordEvent(EvtSent, r.Cycle, r.ElapsedMs, 0)

	// Idle phase: carrier marker on the relay, then wait out the remainder
	// in whole dits. The last step may overshoot by less than one dit.
	s.keyer.Set(ChannelRelay, true)
	dit := int64(s.timing.DitMs)
	remainder := s.timing.Budget() - int64(r.ElapsedMs)
	if remainder < 0 {
		r.Overrun = true
		RecordEvent(EvtOverrun, r.Cycle, r.ElapsedMs, uint32(max(s.timing.Budget(), 0)))
		DebugPrintln("[BEACON] overrun idx=" + utoa(uint32(r.Index)) +
			" remainder=" + itoa(int(remainder)))
	}
	for i := remainder; i > 0; i -= dit {
		s.waiter.WaitMs(uint32(dit))
		r.IdleMs += uint32(dit)
	}
	RecordEvent(EvtIdle, r.Cycle, r.IdleMs, 0)

	r.TrailerMs = s.tx.Play(TrailerPlan())
	r.TotalMs = r.ElapsedMs + r.IdleMs + r.TrailerMs
	RecordEvent(EvtCycleEnd, r.Cycle, r.TotalMs, 0)

	if s.onCycle != nil {
		s.onCycle(r)
	}
	return r
}

// RunCycles performs n cycles and returns their reports
func (s *Scheduler) RunCycles(n int) []CycleReport {
	reports := make([]CycleReport, 0, n)
	for i := 0; i < n; i++ {
		reports = append(reports, s.RunCycle())
	}
	return reports
}

// Run loops forever. It is the whole runtime of the beacon and never returns.
func (s *Scheduler) Run() {
	for {
		s.RunCycle()
	}
}
