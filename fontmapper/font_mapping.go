// Package fontmapper replaces glyphs of fonts which encode symbols on
// ordinary code points, such as the Symbol font, by their Unicode
// characters.
package fontmapper

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// FontMap maps a code point as typed in a font to its replacement.
type FontMap map[rune]string

// Mode decides how a configured map is combined with an existing mapping.
type Mode string

const (
	ModeAppend  Mode = "append"
	ModeReplace Mode = "replace"
)

// Valid reports whether m is a known mode. The empty mode means append.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeAppend, ModeReplace:
		return true
	}
	return false
}

// baseMap keeps markup characters and the no-break space stable whatever a
// font encodes on these code points.
var baseMap = FontMap{
	'"':      `"`,
	'&':      "&",
	'\'':     "'",
	'<':      "<",
	'>':      ">",
	'\u00a0': "\u00a0",
}

// FontMapping replaces characters of a single font.
type FontMapping struct {
	fontMap FontMap
}

// NewFontMapping returns a mapping for fontMap on top of the base map.
func NewFontMapping(fontMap FontMap) *FontMapping {
	m := &FontMapping{}
	m.ApplyMapConfig(fontMap, ModeReplace)
	return m
}

// ApplyMapConfig merges fontMap into the mapping. ModeReplace drops all
// previously configured entries first. Replacements may be given as
// character references.
func (m *FontMapping) ApplyMapConfig(fontMap FontMap, mode Mode) {
	if mode == ModeReplace || m.fontMap == nil {
		m.fontMap = maps.Clone(baseMap)
	}
	for code, replacement := range fontMap {
		m.fontMap[code] = html.UnescapeString(replacement)
	}
}

// ToReplacementCharacter maps every character of s, which must be decoded
// text; character references in s are mapped like any other text.
// Unmapped characters are kept. The result is NFC normalized.
func (m *FontMapping) ToReplacementCharacter(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if replacement, ok := m.fontMap[r]; ok {
			sb.WriteString(replacement)
			continue
		}
		sb.WriteRune(r)
	}
	return norm.NFC.String(sb.String())
}

// Len returns the number of mapped characters, including the base map.
func (m *FontMapping) Len() int {
	return len(m.fontMap)
}

func (m *FontMapping) String() string {
	return fmt.Sprintf("FontMapping(%d entries)", len(m.fontMap))
}
