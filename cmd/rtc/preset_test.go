package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgonek/richtext-converter/fontmapper"
	"github.com/rgonek/richtext-converter/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetConfig(t *testing.T) {
	tests := []struct {
		preset   string
		expected richtext.Config
	}{
		{preset: presetDefault, expected: richtext.Config{}},
		{preset: "", expected: richtext.Config{}},
		{preset: presetStrict, expected: richtext.Config{Strictness: richtext.StrictnessStrict}},
		{preset: " LOOSE ", expected: richtext.Config{Strictness: richtext.StrictnessLoose}},
		{preset: presetLegacy, expected: richtext.Config{Strictness: richtext.StrictnessLegacy}},
		{preset: presetReview, expected: richtext.Config{Strictness: richtext.StrictnessLoose, Highlight: true}},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg, err := presetConfig(tt.preset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestPresetConfigInvalid(t *testing.T) {
	_, err := presetConfig("unknown")
	require.Error(t, err)
	assert.Equal(t, `unknown preset "unknown" (allowed: default, strict, loose, legacy, review)`, err.Error())
}

func TestResolveConfigPrecedence(t *testing.T) {
	file := fileConfig{Strictness: richtext.StrictnessLegacy}

	cfg, err := resolveConfig(presetLoose, file, "", false)
	require.NoError(t, err)
	assert.Equal(t, richtext.StrictnessLegacy, cfg.Strictness)
	assert.False(t, cfg.Highlight)

	cfg, err = resolveConfig(presetLoose, file, "strict", true)
	require.NoError(t, err)
	assert.Equal(t, richtext.StrictnessStrict, cfg.Strictness)
	assert.True(t, cfg.Highlight)

	_, err = resolveConfig(presetDefault, fileConfig{}, "lenient", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid strictness")
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtc.yaml")
	content := strings.Join([]string{
		"strictness: loose",
		"highlight: true",
		"fontMappings:",
		"  - font: Wingdings",
		"    mode: replace",
		"    map:",
		"      74: \"☺\"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, richtext.StrictnessLoose, cfg.Strictness)
	assert.True(t, cfg.Highlight)
	assert.Equal(t, []fontmapper.ConfigEntry{
		{Font: "Wingdings", Mode: fontmapper.ModeReplace, Map: fontmapper.FontMap{'J': "☺"}},
	}, cfg.FontMappings)

	empty, err := loadFileConfig("")
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, empty)

	_, err = loadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	dataRoot := `<div xmlns="` + richtext.NamespaceRichText + `" xmlns:xlink="` + richtext.NamespaceXLink + `">`

	tests := []struct {
		name     string
		opts     options
		input    string
		expected string
	}{
		{
			name:     "view to data",
			opts:     options{format: formatHTML},
			input:    `<h1>T</h1>`,
			expected: dataRoot + `<p class="p--heading-1">T</p></div>`,
		},
		{
			name:     "data to view",
			opts:     options{reverse: true, format: formatHTML},
			input:    dataRoot + `<p class="p--heading-1">T</p></div>`,
			expected: `<h1>T</h1>`,
		},
		{
			name:     "data to markdown",
			opts:     options{reverse: true, format: formatMarkdown},
			input:    dataRoot + `<p class="p--heading-1">T</p></div>`,
			expected: `# T`,
		},
		{
			name:     "pasted html",
			opts:     options{paste: true, format: formatHTML},
			input:    `<p style="font-family: Symbol">a</p><script>x</script>`,
			expected: dataRoot + `<p>α</p></div>`,
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, convert(tt.opts, tt.input, &out, logger))
			assert.Equal(t, tt.expected, strings.TrimSpace(out.String()))
		})
	}
}

func TestConvertRejectsInvalidOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := convert(options{format: "rtf"}, "", io.Discard, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "rtf"`)

	err = convert(options{format: formatHTML, reverse: true, paste: true}, "", io.Discard, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-paste requires html input")
}
