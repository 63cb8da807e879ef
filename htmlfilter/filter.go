// Package htmlfilter implements a rule driven rewrite of element trees.
//
// Rules are looked up per lowercase qualified element name. For every
// element the filter applies, in order: the BeforeElement rule, the element
// rule, the AfterElement rule, then it filters the children, applies the
// AfterElementAndChildren rule and finally persists the decisions collected
// in the MutableElement. Only the last sentinel may judge whether an element
// became empty through filtering of its children.
package htmlfilter

import (
	"log/slog"
	"strings"

	"github.com/beevik/etree"
)

// Sentinel keys of a RuleSet. They are never matched against element names.
const (
	BeforeElement           = "^"
	AfterElement            = "$"
	AfterElementAndChildren = "$$"
)

// ElementRule inspects an element and records the changes to apply.
type ElementRule func(el *MutableElement)

// TextRule may replace a text node. Returning nil or the node itself keeps
// the node; any other token replaces it.
type TextRule func(text *etree.CharData) etree.Token

// RuleSet maps lowercase element names and sentinel keys to rules.
type RuleSet struct {
	Elements map[string]ElementRule
	Text     TextRule
}

// With returns a copy of the rule set with rule chained after any rule
// already registered for name.
func (r RuleSet) With(name string, rule ElementRule) RuleSet {
	elements := make(map[string]ElementRule, len(r.Elements)+1)
	for key, value := range r.Elements {
		elements[key] = value
	}
	key := ruleKey(name)
	elements[key] = AllRules(elements[key], rule)
	return RuleSet{Elements: elements, Text: r.Text}
}

// AllRules combines rules into one that applies them in order. Nil rules
// are skipped.
func AllRules(rules ...ElementRule) ElementRule {
	var active []ElementRule
	for _, rule := range rules {
		if rule != nil {
			active = append(active, rule)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(el *MutableElement) {
		for _, rule := range active {
			rule(el)
		}
	}
}

func ruleKey(name string) string {
	switch name {
	case BeforeElement, AfterElement, AfterElementAndChildren:
		return name
	}
	return strings.ToLower(name)
}

// Option configures a Filter.
type Option func(*Filter)

// WithLogger sets the logger receiving per-node debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Filter applies a RuleSet to element trees.
type Filter struct {
	rules  RuleSet
	logger *slog.Logger
}

// New creates a Filter for the given rules.
func New(rules RuleSet, opts ...Option) *Filter {
	f := &Filter{
		rules:  rules,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ApplyTo filters all descendants of root in place. The root itself is
// never subject to rules, so it is never replaced.
func (f *Filter) ApplyTo(root *etree.Element) {
	f.logger.Debug("applying filter", "root", root.FullTag())
	f.applyToChildren(root)
}

func (f *Filter) applyToChildren(parent *etree.Element) {
	// Rules may move or remove siblings; iterate over a snapshot and skip
	// nodes that left this parent meanwhile.
	children := append([]etree.Token(nil), parent.Child...)
	for _, child := range children {
		if child.Parent() != parent {
			continue
		}
		switch node := child.(type) {
		case *etree.Element:
			f.applyToElement(node)
		case *etree.CharData:
			f.applyToText(node)
		}
	}
}

func (f *Filter) applyToElement(el *etree.Element) {
	current := el
	for current != nil {
		next := f.applyRules(current)
		if next == current {
			return
		}
		current = next
	}
}

func (f *Filter) applyRules(el *etree.Element) *etree.Element {
	name := strings.ToLower(el.FullTag())
	f.logger.Debug("filtering element", "element", name)

	m := NewMutableElement(el)
	f.apply(BeforeElement, m)
	f.apply(name, m)
	f.apply(AfterElement, m)
	f.applyToChildren(el)
	f.apply(AfterElementAndChildren, m)

	next := m.Persist()
	if next != el {
		if next == nil {
			f.logger.Debug("element removed", "element", name)
		} else {
			f.logger.Debug("element substituted", "element", name, "substitute", next.FullTag())
		}
	}
	return next
}

func (f *Filter) apply(key string, m *MutableElement) {
	if f.rules.Elements == nil {
		return
	}
	if rule := f.rules.Elements[key]; rule != nil {
		rule(m)
	}
}

func (f *Filter) applyToText(text *etree.CharData) {
	if f.rules.Text == nil {
		return
	}
	replacement := f.rules.Text(text)
	if replacement == nil || replacement == etree.Token(text) {
		return
	}
	Replace(text, replacement)
}
