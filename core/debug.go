package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures one scheduler milestone for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Cycle  uint32 // Cycle number the event belongs to
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtCycleStart = 1 // Selector sampled (v1=raw, v2=index)
	EvtSent       = 2 // Message transmitted (v1=elapsed ms)
	EvtIdle       = 3 // Idle wait finished (v1=idle ms)
	EvtOverrun    = 4 // Message longer than the budget (v1=elapsed ms, v2=budget ms)
	EvtCycleEnd   = 5 // Trailer finished (v1=total ms)
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	eventRing     [EventRingSize]Event
	eventRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer. Never blocks.
func RecordEvent(eventType uint8, cycle, value1, value2 uint32) {
	idx := eventRingHead
	eventRing[idx] = Event{
		Type:   eventType,
		Cycle:  cycle,
		Value1: value1,
		Value2: value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Type == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

func eventName(t uint8) string {
	switch t {
	case EvtCycleStart:
		return "CYCLE_START"
	case EvtSent:
		return "SENT"
	case EvtIdle:
		return "IDLE"
	case EvtOverrun:
		return "OVERRUN!"
	case EvtCycleEnd:
		return "CYCLE_END"
	default:
		return "UNKNOWN"
	}
}

// DumpEventRing writes the event ring through the debug writer
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + eventName(evt.Type) +
			" cycle=" + utoa(evt.Cycle) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}

// FormatCycleReport renders a cycle report as a single debug line
func FormatCycleReport(r CycleReport) string {
	return "[BEACON] cycle n=" + utoa(r.Cycle) +
		" idx=" + utoa(uint32(r.Index)) +
		" t=" + utoa(r.ElapsedMs) +
		" idle=" + utoa(r.IdleMs) +
		" total=" + utoa(r.TotalMs) +
		" overrun=" + boolDigit(r.Overrun)
}
