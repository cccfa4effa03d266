package core

// Element durations in dit units. Every symbol already ends with a one-unit
// symbol space, so the letter and word spaces only add the remainder.
const (
	DitUnits         = 1
	DahUnits         = 3
	SymbolSpaceUnits = 1
	LetterSpaceUnits = 2
	WordSpaceUnits   = 4

	// TrailerUnits is the fixed silence that closes every cycle
	// (symbol space + letter space + word space).
	TrailerUnits = SymbolSpaceUnits + LetterSpaceUnits + WordSpaceUnits
)

const (
	// DitMsPerWPM converts words per minute to a dit length: "PARIS" is
	// 50 units, so one unit lasts 60000 / (50 * wpm) = 1200 / wpm ms.
	DitMsPerWPM = 1200

	DefaultWPM      = 15
	DefaultPeriodMs = 60000
)

// Timing holds the transmission speed and cycle period.
// The dit length never changes during a transmission.
type Timing struct {
	DitMs    uint32
	PeriodMs uint32
}

// WPMToDitMs returns the dit length for a words-per-minute setting.
// Zero WPM yields zero, which callers treat as invalid.
func WPMToDitMs(wpm uint32) uint32 {
	if wpm == 0 {
		return 0
	}
	return DitMsPerWPM / wpm
}

// DefaultTiming returns 15 WPM (80 ms dit) and a one minute period
func DefaultTiming() Timing {
	return Timing{
		DitMs:    WPMToDitMs(DefaultWPM),
		PeriodMs: DefaultPeriodMs,
	}
}

// TrailerMs returns the duration of the fixed cycle trailer
func (t Timing) TrailerMs() uint32 {
	return TrailerUnits * t.DitMs
}

// Budget returns the longest transmission that still fits the period
// together with the trailer. It is negative when the trailer alone
// exceeds the period.
func (t Timing) Budget() int64 {
	return int64(t.PeriodMs) - int64(t.TrailerMs())
}
