package core

// PresetTable maps a selector index to the message it transmits.
// Slots without a configured message hold the empty string, which
// transmits nothing.
type PresetTable [SelectorPositions]string

// Message returns the preset for a selector index. Only the low four bits
// are used, so every index is in range.
func (t *PresetTable) Message(index uint8) string {
	return t[index&(SelectorPositions-1)]
}

// Configured returns the number of slots holding a non-empty message
func (t *PresetTable) Configured() int {
	n := 0
	for _, m := range t {
		if m != "" {
			n++
		}
	}
	return n
}

// NewPresetTable fills a table from a list of messages. Messages beyond
// the table capacity are ignored; callers validate the length first.
func NewPresetTable(messages []string) PresetTable {
	var t PresetTable
	copy(t[:], messages)
	return t
}

// DefaultPresets returns the call signs of the original deployment
func DefaultPresets() PresetTable {
	return PresetTable{
		"DF0MU ",
		"DJ8EN",
		"DK2FD",
		"DL8YEH",
		"DH8AF",
	}
}
