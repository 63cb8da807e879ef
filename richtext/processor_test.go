package richtext

import (
	"testing"

	"github.com/rgonek/richtext-converter/htmlfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataRoot = `<div xmlns="` + NamespaceRichText + `" xmlns:xlink="` + NamespaceXLink + `">`

func TestProcessorToData(t *testing.T) {
	tests := []struct {
		name     string
		view     string
		expected string
	}{
		{
			name:     "headings and inline formatting",
			view:     "<h1>Title</h1><p>Hello <b>World</b>&nbsp;!</p>",
			expected: dataRoot + "<p class=\"p--heading-1\">Title</p><p>Hello <strong>World</strong>\u00a0!</p></div>",
		},
		{
			name:     "content link",
			view:     `<p><a href="content:42" target="_blank">x</a></p>`,
			expected: dataRoot + `<p><a xlink:href="content/42" xlink:show="new">x</a></p></div>`,
		},
		{
			name:     "table without tbody",
			view:     `<figure class="table"><table><tr><th>H</th></tr><tr><td>D<br></td></tr></table></figure>`,
			expected: dataRoot + `<table><tbody><tr><td class="td--header">H</td></tr><tr><td>D</td></tr></tbody></table></div>`,
		},
		{
			name:     "markup characters are escaped",
			view:     `<p>a &lt; b &amp;&amp; c</p>`,
			expected: dataRoot + `<p>a &lt; b &amp;&amp; c</p></div>`,
		},
		{
			name:     "empty input",
			view:     "",
			expected: `<div xmlns="` + NamespaceRichText + `" xmlns:xlink="` + NamespaceXLink + `"/>`,
		},
	}

	p, err := New(Config{})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.ToData(tt.view)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Markup)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestProcessorToView(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected string
	}{
		{
			name:     "headings and entities",
			data:     dataRoot + `<p class="p--heading-1">Title</p><p>Hello <strong>World</strong>&nbsp;!</p></div>`,
			expected: "<h1>Title</h1><p>Hello <strong>World</strong>\u00a0!</p>",
		},
		{
			name:     "content link",
			data:     dataRoot + `<p><a xlink:type="simple" xlink:href="content/42" xlink:show="new">x</a></p></div>`,
			expected: `<p><a href="content:42" target="_blank">x</a></p>`,
		},
		{
			name:     "table sections",
			data:     dataRoot + `<table><tbody><tr class="tr--header"><td class="td--header">H</td></tr><tr><td>D</td></tr></tbody></table></div>`,
			expected: `<table><thead><tr><th>H</th></tr></thead><tbody><tr><td>D</td></tr></tbody></table>`,
		},
		{
			name:     "void elements",
			data:     dataRoot + `<p>A<br/>B</p><p><img alt="" xlink:href="content/2"/></p></div>`,
			expected: `<p>A<br/>B</p><p><img alt="" src="content:2"/></p>`,
		},
		{
			name:     "language",
			data:     dataRoot + `<p xml:lang="en">Hi</p></div>`,
			expected: `<p lang="en">Hi</p>`,
		},
	}

	p, err := New(Config{})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.ToView(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Markup)
		})
	}
}

func TestProcessorRoundTrip(t *testing.T) {
	views := []string{
		`<h3></h3>`,
		`<p><i>it</i> <u>under</u> <s>gone</s> <code>x()</code></p>`,
		`<ol class="alpha"><li lang="de">eins</li></ol>`,
		`<table><thead><tr><th>H</th></tr></thead><tbody><tr><td>D</td></tr></tbody></table>`,
		`<p><a href="https://example.org/" title="T" target="preview">x</a></p>`,
	}

	p, err := New(Config{})
	require.NoError(t, err)

	for _, view := range views {
		t.Run(view, func(t *testing.T) {
			data, err := p.ToData(view)
			require.NoError(t, err)
			back, err := p.ToView(data.Markup)
			require.NoError(t, err)
			assert.Equal(t, view, back.Markup)
		})
	}
}

func TestProcessorStrictness(t *testing.T) {
	view := `<p style="color:red" dir="up">x</p><section>y</section>`

	tests := []struct {
		strictness Strictness
		expected   string
		warnings   []WarningType
	}{
		{
			strictness: StrictnessStrict,
			expected:   dataRoot + `<p>x</p>y</div>`,
			warnings:   []WarningType{WarningSchemaViolation, WarningInvalidAttribute, WarningUnsupportedElement},
		},
		{
			strictness: StrictnessLoose,
			expected:   dataRoot + `<p dir="up">x</p>y</div>`,
			warnings:   []WarningType{WarningSchemaViolation, WarningUnsupportedElement},
		},
		{
			strictness: StrictnessLegacy,
			expected:   dataRoot + `<p style="color:red" dir="up">x</p><section>y</section></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.strictness.String(), func(t *testing.T) {
			p, err := New(Config{Strictness: tt.strictness})
			require.NoError(t, err)

			result, err := p.ToData(view)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Markup)

			var types []WarningType
			for _, w := range result.Warnings {
				types = append(types, w.Type)
			}
			assert.Equal(t, tt.warnings, types)
		})
	}
}

func TestProcessorWarningDetails(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)

	result, err := p.ToData(`<p xml:lang="not a language">x</p>`)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)

	assert.Equal(t, Warning{
		Type:    WarningInvalidAttribute,
		Element: "p",
		Message: `invalid value "not a language" for attribute "xml:lang", removed`,
	}, result.Warnings[0])
}

func TestProcessorParseErrors(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)

	_, err = p.ToView(`<div class=></div>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse RichText XML")

	_, err = p.ToView("")
	require.Error(t, err)
}

func TestProcessorCustomRules(t *testing.T) {
	var seen []string
	p, err := New(Config{
		Rules: map[string]RuleConfig{
			"kbd": {
				ToData: func(el *htmlfilter.MutableElement) {
					el.SetName("span")
					el.Attributes().AddClass("kbd")
				},
				ToView: func(el *htmlfilter.MutableElement) {
					if el.Attributes().HasClass("kbd") {
						el.Attributes().RemoveClass("kbd")
						el.SetName("kbd")
					}
				},
				ToViewOn: "span",
			},
			"p": {
				ToData: func(el *htmlfilter.MutableElement) {
					seen = append(seen, el.Name())
				},
			},
		},
	})
	require.NoError(t, err)

	data, err := p.ToData(`<p>Press <kbd>Enter</kbd></p>`)
	require.NoError(t, err)
	assert.Equal(t, dataRoot+`<p>Press <span class="kbd">Enter</span></p></div>`, data.Markup)
	assert.Equal(t, []string{"p"}, seen)

	view, err := p.ToView(data.Markup)
	require.NoError(t, err)
	assert.Equal(t, `<p>Press <kbd>Enter</kbd></p>`, view.Markup)
}

func TestProcessorCustomRulesRunOnUnwrappedChildren(t *testing.T) {
	var calls int
	p, err := New(Config{
		Rules: map[string]RuleConfig{
			"p": {
				ToData: func(el *htmlfilter.MutableElement) {
					calls++
					if !el.Attributes().HasClass("note") {
						el.Attributes().AddClass("note")
					}
				},
			},
		},
	})
	require.NoError(t, err)

	result, err := p.ToData(`<section><p>x</p></section>`)
	require.NoError(t, err)
	assert.Equal(t, dataRoot+`<p class="note">x</p></div>`, result.Markup)
	assert.Equal(t, 2, calls)
}
