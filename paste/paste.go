// Package paste prepares HTML taken from the clipboard for the editing
// view. Pasted markup is untrusted: it is sanitized first, then glyphs of
// symbol fonts are replaced by their Unicode characters.
package paste

import (
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rgonek/richtext-converter/fontmapper"
	"github.com/rgonek/richtext-converter/htmlfilter"
	"github.com/rgonek/richtext-converter/richtext"
)

// Config configures a Preparer.
type Config struct {
	// FontMappings are registered on top of the default Symbol mapping.
	FontMappings []fontmapper.ConfigEntry `json:"fontMappings,omitempty" yaml:"fontMappings,omitempty"`
	Logger       *slog.Logger             `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Validate checks all font mapping entries.
func (c Config) Validate() error {
	for i, entry := range c.FontMappings {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("fontMappings[%d]: %w", i, err)
		}
	}
	return nil
}

// Preparer sanitizes pasted HTML and maps font glyphs.
type Preparer struct {
	policy *bluemonday.Policy
	filter *htmlfilter.Filter
	logger *slog.Logger
}

// New creates a Preparer for the given config.
func New(config Config) (*Preparer, error) {
	config = config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	registry := fontmapper.NewRegistry(fontmapper.WithLogger(config.Logger))
	for _, entry := range config.FontMappings {
		if err := registry.Register(entry); err != nil {
			return nil, err
		}
	}

	return &Preparer{
		policy: newPolicy(),
		filter: htmlfilter.New(registry.RuleSet(), htmlfilter.WithLogger(config.Logger)),
		logger: config.Logger,
	}, nil
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowURLSchemes("content")
	p.AllowElements("span", "s", "strike", "del", "u", "mark", "figure")
	p.AllowAttrs("class", "lang").Globally()
	p.AllowAttrs("target", "title").OnElements("a")
	p.AllowStyles("font-family").Globally()
	return p
}

// Prepare returns the sanitized and font mapped tree of markup below a
// RichText root, ready for the toData filter.
func (p *Preparer) Prepare(markup string) (*etree.Document, error) {
	sanitized := p.policy.Sanitize(markup)
	if len(sanitized) != len(markup) {
		p.logger.Debug("sanitized pasted markup", "before", len(markup), "after", len(sanitized))
	}

	doc, err := richtext.ParseView(sanitized)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare pasted HTML: %w", err)
	}
	p.filter.ApplyTo(doc.Root())
	return doc, nil
}

// PrepareHTML is Prepare rendered back to editing view HTML.
func (p *Preparer) PrepareHTML(markup string) (string, error) {
	doc, err := p.Prepare(markup)
	if err != nil {
		return "", err
	}
	return richtext.RenderView(doc.Root())
}
