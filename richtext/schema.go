package richtext

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// attributeValidator reports whether an attribute value is acceptable in
// strict mode.
type attributeValidator func(value string) bool

var commonAttributes = []string{"class", "lang", "xml:lang", "dir"}

// schema lists the elements of CoreMedia RichText 1.0 together with the
// attributes each one accepts besides the common ones.
var schema = map[string][]string{
	"div":        nil,
	"p":          nil,
	"ul":         nil,
	"ol":         nil,
	"li":         nil,
	"pre":        {"xml:space"},
	"blockquote": {"cite"},
	"a":          {"xlink:type", "xlink:href", "xlink:role", "xlink:title", "xlink:show", "xlink:actuate"},
	"span":       nil,
	"br":         nil,
	"em":         nil,
	"strong":     nil,
	"sub":        nil,
	"sup":        nil,
	"img":        {"alt", "height", "width", "xlink:type", "xlink:href", "xlink:role", "xlink:title", "xlink:show", "xlink:actuate"},
	"table":      {"summary"},
	"tbody":      {"align", "valign"},
	"tr":         {"align", "valign"},
	"td":         {"abbr", "align", "valign", "rowspan", "colspan"},
}

var attributeValidators = map[string]attributeValidator{
	"xml:lang":      validLanguageTag,
	"dir":           oneOf("ltr", "rtl"),
	"xml:space":     oneOf("preserve"),
	"xlink:type":    oneOf("simple"),
	"xlink:show":    oneOf("new", "replace", "embed", "other", "none"),
	"xlink:actuate": oneOf("onLoad", "onRequest", "other", "none"),
	"align":         oneOf("left", "center", "right"),
	"valign":        oneOf("top", "middle", "bottom", "baseline"),
	"rowspan":       positiveInteger,
	"colspan":       positiveInteger,
	"height":        nonNegativeInteger,
	"width":         nonNegativeInteger,
}

// isSchemaElement reports whether stored RichText knows the element.
func isSchemaElement(name string) bool {
	_, ok := schema[strings.ToLower(name)]
	return ok
}

// allowsAttribute reports whether the element accepts the attribute.
// Namespace declarations are always accepted.
func allowsAttribute(element, attribute string) bool {
	if isNamespaceDeclaration(attribute) {
		return true
	}
	for _, common := range commonAttributes {
		if attribute == common {
			return true
		}
	}
	for _, allowed := range schema[strings.ToLower(element)] {
		if attribute == allowed {
			return true
		}
	}
	return false
}

// validAttributeValue reports whether value is valid for the attribute.
// Attributes without a validator accept any value.
func validAttributeValue(attribute, value string) bool {
	validate, ok := attributeValidators[attribute]
	if !ok {
		return true
	}
	return validate(value)
}

func isNamespaceDeclaration(attribute string) bool {
	return attribute == "xmlns" || strings.HasPrefix(attribute, "xmlns:")
}

func validLanguageTag(value string) bool {
	if value == "" {
		return true
	}
	_, err := language.Parse(value)
	return err == nil
}

func oneOf(values ...string) attributeValidator {
	return func(value string) bool {
		for _, candidate := range values {
			if value == candidate {
				return true
			}
		}
		return false
	}
}

func positiveInteger(value string) bool {
	n, err := strconv.Atoi(value)
	return err == nil && n > 0
}

func nonNegativeInteger(value string) bool {
	n, err := strconv.Atoi(value)
	return err == nil && n >= 0
}
