package richtext

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rgonek/richtext-converter/htmlfilter"
)

// RuleConfig registers additional rules for one element. The rules run
// after the built-in rules of the same element.
//
// Rules must be idempotent: an element which becomes the first child
// moved up by an unwrapped parent is filtered a second time.
type RuleConfig struct {
	// ToData is applied to the element while converting to stored form.
	ToData htmlfilter.ElementRule
	// ToView is applied while converting to the editing view.
	ToView htmlfilter.ElementRule
	// ToViewOn names the element ToView is registered on, for rules whose
	// stored representation uses another element. Defaults to the key the
	// RuleConfig is registered with.
	ToViewOn string
}

// Config holds all conversion options.
type Config struct {
	Strictness Strictness            `json:"strictness,omitempty" yaml:"strictness,omitempty"`
	Highlight  bool                  `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Rules      map[string]RuleConfig `json:"-" yaml:"-"`
	Logger     *slog.Logger          `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.Strictness == strictnessUnset {
		c.Strictness = StrictnessStrict
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// clone returns a deep copy of Config for map-backed fields.
func (c Config) clone() Config {
	cloned := c
	if c.Rules != nil {
		cloned.Rules = make(map[string]RuleConfig, len(c.Rules))
		for name, rule := range c.Rules {
			cloned.Rules[name] = rule
		}
	}
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if !c.Strictness.Valid() {
		return fmt.Errorf("invalid strictness %d", int(c.Strictness))
	}
	for name, rule := range c.Rules {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("rules contains empty element name")
		}
		if strings.ContainsAny(name, " \t\n") {
			return fmt.Errorf("invalid element name %q in rules", name)
		}
		if rule.ToData == nil && rule.ToView == nil {
			return fmt.Errorf("rule for %q defines neither toData nor toView", name)
		}
		if rule.ToViewOn != "" && rule.ToView == nil {
			return fmt.Errorf("rule for %q sets toViewOn without toView", name)
		}
	}
	return nil
}
