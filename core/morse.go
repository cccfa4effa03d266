// Morse code character table
// Covers the international code for A-Z and 0-9 only; every other
// character is sent as a word space.

package core

// Symbol is one keyed element of a character
type Symbol uint8

const (
	Dit Symbol = iota + 1
	Dah
)

// OnUnits returns how long the outputs are keyed for this symbol
func (s Symbol) OnUnits() uint32 {
	if s == Dah {
		return DahUnits
	}
	return DitUnits
}

// OffUnits returns the symbol space that follows every symbol
func (s Symbol) OffUnits() uint32 {
	return SymbolSpaceUnits
}

func (s Symbol) String() string {
	switch s {
	case Dit:
		return "."
	case Dah:
		return "-"
	default:
		return "?"
	}
}

// morsePatterns is the international code, '.' = dit and '-' = dah
var morsePatterns = map[byte]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..",
	'E': ".", 'F': "..-.", 'G': "--.", 'H': "....",
	'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.",
	'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..",
	'9': "----.", '0': "-----",
}

// morseTable holds the decoded symbols, indexed by ASCII code.
// A nil entry means the character has no code.
var morseTable [128][]Symbol

func init() {
	for c, pattern := range morsePatterns {
		symbols := make([]Symbol, len(pattern))
		for i := 0; i < len(pattern); i++ {
			if pattern[i] == '-' {
				symbols[i] = Dah
			} else {
				symbols[i] = Dit
			}
		}
		morseTable[c] = symbols
	}
}

// FoldCase converts ASCII lowercase letters to uppercase.
// Everything else passes through unchanged.
func FoldCase(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Lookup returns the symbols for a character, folding case first.
// The returned slice is shared and must not be modified.
func Lookup(c byte) ([]Symbol, bool) {
	c = FoldCase(c)
	if c >= byte(len(morseTable)) || morseTable[c] == nil {
		return nil, false
	}
	return morseTable[c], true
}

// Pattern returns the dot/dash notation of a character
func Pattern(c byte) (string, bool) {
	p, ok := morsePatterns[FoldCase(c)]
	return p, ok
}

// CharacterUnits returns the total dit units one character occupies,
// including its trailing letter space.
func CharacterUnits(c byte) uint32 {
	symbols, ok := Lookup(c)
	if !ok {
		return WordSpaceUnits + LetterSpaceUnits
	}
	var units uint32
	for _, s := range symbols {
		units += s.OnUnits() + s.OffUnits()
	}
	return units + LetterSpaceUnits
}

// UnsupportedCharacters returns the characters of a message that will be
// sent as word spaces, in order of first appearance. Spaces are expected
// word separators and are not reported.
func UnsupportedCharacters(message string) []byte {
	var out []byte
	seen := [256]bool{}
	for i := 0; i < len(message); i++ {
		c := message[i]
		if c == ' ' || seen[c] {
			continue
		}
		if _, ok := Lookup(c); !ok {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
