package fontmapper

import (
	"fmt"
	"log/slog"
	"strings"
)

// DefaultFont is registered by NewRegistry.
const DefaultFont = "symbol"

// ConfigEntry configures the mapping of one font.
type ConfigEntry struct {
	Font string  `json:"font" yaml:"font"`
	Map  FontMap `json:"map" yaml:"map"`
	Mode Mode    `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// Validate checks the entry before it is registered.
func (e ConfigEntry) Validate() error {
	if strings.TrimSpace(e.Font) == "" {
		return fmt.Errorf("font mapping requires a font name")
	}
	if !e.Mode.Valid() {
		return fmt.Errorf("invalid mode %q for font %q: must be one of append, replace", e.Mode, e.Font)
	}
	return nil
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug records while remapping.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry holds font mappings keyed by lowercase font family.
type Registry struct {
	mappings map[string]*FontMapping
	logger   *slog.Logger
}

// NewRegistry returns a registry knowing the Symbol font.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		mappings: map[string]*FontMapping{
			DefaultFont: NewFontMapping(SymbolFontMap()),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register applies entry to the mapping of its font, creating the mapping
// if the font is not known yet.
func (r *Registry) Register(entry ConfigEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	font := normalizeFont(entry.Font)
	if mapping, ok := r.mappings[font]; ok {
		mapping.ApplyMapConfig(entry.Map, entry.Mode)
		r.logger.Debug("updated font mapping", "font", font, "mode", entry.Mode, "mapping", mapping)
		return nil
	}
	r.mappings[font] = NewFontMapping(entry.Map)
	r.logger.Debug("registered font mapping", "font", font, "mapping", r.mappings[font])
	return nil
}

// Mapping returns the mapping registered for font, ignoring case.
func (r *Registry) Mapping(font string) (*FontMapping, bool) {
	mapping, ok := r.mappings[normalizeFont(font)]
	return mapping, ok
}

// Lookup returns the mapping for the first family of a CSS font-family
// value.
func (r *Registry) Lookup(fontFamily string) (*FontMapping, bool) {
	first, _, _ := strings.Cut(fontFamily, ",")
	return r.Mapping(first)
}

func normalizeFont(font string) string {
	font = strings.TrimSpace(font)
	font = strings.Trim(font, `"'`)
	return strings.ToLower(strings.TrimSpace(font))
}
