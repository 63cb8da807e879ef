package richtext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/rgonek/richtext-converter/htmlfilter"
)

// unwrapDiff removes difference markup of the preview: elements of the
// xdiff namespace are replaced by their children, xdiff attributes dropped.
func unwrapDiff(el *htmlfilter.MutableElement) {
	element := el.Element()
	if element.Space == "xdiff" || element.NamespaceURI() == NamespaceXDiff {
		el.SetReplaceByChildren(true)
		return
	}
	for _, attr := range element.Attr {
		if attr.Space == "xdiff" || attr.NamespaceURI() == NamespaceXDiff {
			el.Attributes().Delete(attr.FullKey())
		}
	}
}

// removeForeignNamespace drops default namespace declarations the editor
// adds for XHTML, so the element falls back to the RichText namespace.
func removeForeignNamespace(el *htmlfilter.MutableElement) {
	namespace, ok := el.Attributes().Get("xmlns")
	if !ok {
		return
	}
	if namespace == "" || namespace == NamespaceXHTML {
		el.Attributes().Delete("xmlns")
	}
}

func langToData(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	lang, ok := attrs.Get("lang")
	if !ok {
		return
	}
	if !attrs.Has("xml:lang") {
		attrs.Set("xml:lang", lang)
	}
	attrs.Delete("lang")
}

func langToView(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	lang, ok := attrs.Get("xml:lang")
	if !ok {
		return
	}
	if !attrs.Has("lang") {
		attrs.Set("lang", lang)
	}
	attrs.Delete("xml:lang")
}

// enforceSchema applies the strictness policy to elements and attributes
// unknown to RichText 1.0. It runs after the element rules, so renamed
// elements are judged by their new name.
func (s *state) enforceSchema(el *htmlfilter.MutableElement) {
	if el.Remove() || el.ReplaceByChildren() {
		return
	}
	strictness := s.config.Strictness
	name := strings.ToLower(el.Name())

	if !isSchemaElement(name) {
		if strictness == StrictnessLegacy {
			return
		}
		s.addWarning(WarningUnsupportedElement, name,
			fmt.Sprintf("element <%s> is not part of RichText, replaced by its children", name))
		el.SetReplaceByChildren(true)
		return
	}

	attrs := el.Attributes()
	for _, key := range attrs.Keys() {
		if !allowsAttribute(name, key) {
			if strictness == StrictnessLegacy {
				continue
			}
			s.addWarning(WarningSchemaViolation, name,
				fmt.Sprintf("attribute %q is not allowed on <%s>, removed", key, name))
			attrs.Delete(key)
			continue
		}
		if strictness != StrictnessStrict {
			continue
		}
		if value := attrs.Value(key); !validAttributeValue(key, value) {
			s.addWarning(WarningInvalidAttribute, name,
				fmt.Sprintf("invalid value %q for attribute %q, removed", value, key))
			attrs.Delete(key)
		}
	}
}

// stripInvalidCharacters removes characters XML 1.0 documents must not
// contain.
func stripInvalidCharacters(text *etree.CharData) etree.Token {
	if !strings.ContainsFunc(text.Data, invalidXMLRune) {
		return nil
	}
	return etree.NewText(strings.Map(func(r rune) rune {
		if invalidXMLRune(r) {
			return -1
		}
		return r
	}, text.Data))
}

func invalidXMLRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF:
		return true
	case r == 0xFFFE || r == 0xFFFF:
		return true
	}
	return r > utf8.MaxRune
}
