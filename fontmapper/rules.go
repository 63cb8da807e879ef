package fontmapper

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/beevik/etree"
	"github.com/rgonek/richtext-converter/htmlfilter"
)

const (
	styleAttribute = "style"
	fontFamily     = "font-family"
)

// RuleSet returns filter rules which remap the text of every element
// declaring a registered font family and drop that declaration.
func (r *Registry) RuleSet() htmlfilter.RuleSet {
	return htmlfilter.RuleSet{
		Elements: map[string]htmlfilter.ElementRule{
			htmlfilter.BeforeElement: r.replaceFontFamily,
		},
	}
}

func (r *Registry) replaceFontFamily(el *htmlfilter.MutableElement) {
	style, ok := el.Attributes().Get(styleAttribute)
	if !ok {
		return
	}
	declarations, err := parser.ParseDeclarations(style)
	if err != nil {
		r.logger.Debug("ignoring unparsable style", "element", el.Name(), "style", style, "error", err)
		return
	}
	family, ok := declaredFontFamily(declarations)
	if !ok {
		return
	}
	mapping, ok := r.Lookup(family)
	if !ok {
		return
	}

	r.logger.Debug("replacing font characters", "element", el.Name(), "font", family)
	remapText(el.Element(), mapping)

	remaining := withoutFontFamily(declarations)
	if remaining == "" {
		el.Attributes().Delete(styleAttribute)
		return
	}
	el.Attributes().Set(styleAttribute, remaining)
}

// remapText replaces the text below el. Nested elements declaring a font
// family of their own are left to their own rule.
func remapText(el *etree.Element, mapping *FontMapping) {
	for _, child := range el.Child {
		switch typed := child.(type) {
		case *etree.CharData:
			typed.Data = mapping.ToReplacementCharacter(typed.Data)
		case *etree.Element:
			if declaresFontFamily(typed) {
				continue
			}
			remapText(typed, mapping)
		}
	}
}

func declaresFontFamily(el *etree.Element) bool {
	style, ok := htmlfilter.Attr(el, styleAttribute)
	if !ok {
		return false
	}
	declarations, err := parser.ParseDeclarations(style)
	if err != nil {
		return false
	}
	_, ok = declaredFontFamily(declarations)
	return ok
}

func declaredFontFamily(declarations []*css.Declaration) (string, bool) {
	family, found := "", false
	for _, decl := range declarations {
		if strings.EqualFold(decl.Property, fontFamily) {
			family, found = decl.Value, true
		}
	}
	return family, found
}

func withoutFontFamily(declarations []*css.Declaration) string {
	var parts []string
	for _, decl := range declarations {
		if strings.EqualFold(decl.Property, fontFamily) {
			continue
		}
		part := decl.Property + ": " + decl.Value
		if decl.Important {
			part += " !important"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}
