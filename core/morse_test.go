package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMorseTableCoversAlphanumerics(t *testing.T) {
	for c := byte('A'); c <= 'Z'; c++ {
		_, ok := Lookup(c)
		assert.True(t, ok, "missing letter %c", c)
	}
	for c := byte('0'); c <= '9'; c++ {
		_, ok := Lookup(c)
		assert.True(t, ok, "missing digit %c", c)
	}
	assert.Len(t, morsePatterns, 36)
}

func TestLookupFoldsCase(t *testing.T) {
	upper, ok := Lookup('Q')
	require.True(t, ok)
	lower, ok := Lookup('q')
	require.True(t, ok)
	assert.Equal(t, upper, lower)
	assert.Equal(t, []Symbol{Dah, Dah, Dit, Dah}, lower)
}

func TestLookupRejectsEverythingElse(t *testing.T) {
	for _, c := range []byte{' ', '.', '/', '?', '-', 0, 0x7F, 0xC4, '@', '[', '`', '{'} {
		_, ok := Lookup(c)
		assert.False(t, ok, "unexpected code for %q", c)
	}
}

func TestFoldCase(t *testing.T) {
	assert.Equal(t, byte('A'), FoldCase('a'))
	assert.Equal(t, byte('Z'), FoldCase('z'))
	assert.Equal(t, byte('A'), FoldCase('A'))
	assert.Equal(t, byte('5'), FoldCase('5'))
	assert.Equal(t, byte('{'), FoldCase('{'))
	assert.Equal(t, byte(0xE4), FoldCase(0xE4), "non-ASCII passes through")
}

func TestPatternsMatchSymbols(t *testing.T) {
	for c, pattern := range morsePatterns {
		symbols, ok := Lookup(c)
		require.True(t, ok)
		require.Len(t, symbols, len(pattern))
		for i, s := range symbols {
			assert.Equal(t, string(pattern[i]), s.String(), "char %c symbol %d", c, i)
		}
	}
}

func TestSelectedPatterns(t *testing.T) {
	cases := map[byte]string{
		'E': ".", 'T': "-", 'S': "...", 'O': "---",
		'D': "-..", 'F': "..-.", '0': "-----", '5': ".....",
		'8': "---..", 'Y': "-.--", 'h': "....",
	}
	for c, want := range cases {
		got, ok := Pattern(c)
		require.True(t, ok)
		assert.Equal(t, want, got, "char %c", c)
	}
}

func TestCharacterUnits(t *testing.T) {
	// E: dit(1) + space(1) + letter space(2)
	assert.Equal(t, uint32(4), CharacterUnits('E'))
	// T: dah(3) + space(1) + letter space(2)
	assert.Equal(t, uint32(6), CharacterUnits('T'))
	// 0: five dahs (5 * 4) + letter space
	assert.Equal(t, uint32(22), CharacterUnits('0'))
	// Unknown: word space + letter space, never 7
	assert.Equal(t, uint32(6), CharacterUnits(' '))
	assert.Equal(t, uint32(6), CharacterUnits('#'))
}

func TestUnsupportedCharacters(t *testing.T) {
	assert.Empty(t, UnsupportedCharacters("DF0MU "))
	assert.Equal(t, []byte{'/', '.'}, UnsupportedCharacters("DL8YEH/P. /P."))
}
