package fontmapper

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/rgonek/richtext-converter/htmlfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		fontFamily string
		found      bool
	}{
		{fontFamily: "Symbol", found: true},
		{fontFamily: "'Symbol', serif", found: true},
		{fontFamily: ` "SYMBOL" `, found: true},
		{fontFamily: "Arial, Symbol", found: false},
		{fontFamily: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.fontFamily, func(t *testing.T) {
			_, ok := registry.Lookup(tt.fontFamily)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(ConfigEntry{Font: "Wingdings", Map: FontMap{'J': "☺"}}))
	mapping, ok := registry.Mapping("wingdings")
	require.True(t, ok)
	assert.Equal(t, "☺", mapping.ToReplacementCharacter("J"))

	require.NoError(t, registry.Register(ConfigEntry{Font: "symbol", Map: FontMap{'z': "Z"}, Mode: ModeAppend}))
	symbol, ok := registry.Mapping("Symbol")
	require.True(t, ok)
	assert.Equal(t, "αZ", symbol.ToReplacementCharacter("az"))

	require.NoError(t, registry.Register(ConfigEntry{Font: "Symbol", Map: FontMap{'z': "Z"}, Mode: ModeReplace}))
	assert.Equal(t, "aZ", symbol.ToReplacementCharacter("az"))
}

func TestRegistryRegisterErrors(t *testing.T) {
	tests := []struct {
		name    string
		entry   ConfigEntry
		wantErr string
	}{
		{name: "missing font", entry: ConfigEntry{Font: " "}, wantErr: "font mapping requires a font name"},
		{name: "unknown mode", entry: ConfigEntry{Font: "x", Mode: "merge"}, wantErr: `invalid mode "merge" for font "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.entry)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistryRuleSet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "font family is the only declaration",
			input:    `<p><span style="font-family: Symbol">abc</span></p>`,
			expected: `<p><span>αβχ</span></p>`,
		},
		{
			name:     "other declarations are kept",
			input:    `<p style="font-family: 'Symbol', serif; color: red">a<b>b</b></p>`,
			expected: `<p style="color: red">α<b>β</b></p>`,
		},
		{
			name:     "nested font family wins",
			input:    `<p style="font-family: Symbol">a<span style="font-family: Arial">a</span></p>`,
			expected: `<p>α<span style="font-family: Arial">a</span></p>`,
		},
		{
			name:     "unmapped font is untouched",
			input:    `<p style="font-family: Arial">abc</p>`,
			expected: `<p style="font-family: Arial">abc</p>`,
		},
		{
			name:     "no style",
			input:    `<p>abc</p>`,
			expected: `<p>abc</p>`,
		},
	}

	filter := htmlfilter.New(NewRegistry().RuleSet())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString("<div>"+tt.input+"</div>"))

			filter.ApplyTo(doc.Root())

			out, err := doc.WriteToString()
			require.NoError(t, err)
			assert.Equal(t, "<div>"+tt.expected+"</div>", out)
		})
	}
}
