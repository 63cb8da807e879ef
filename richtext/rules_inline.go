package richtext

import (
	"regexp"
	"strings"

	"github.com/rgonek/richtext-converter/htmlfilter"
)

var markClassPattern = regexp.MustCompile(`^` + markClassPrefix + `(\S*)$`)

// spanClasses maps the class of a semantic span to the view element
// representing it. Aliases such as strike and del are not restored.
var spanClasses = []struct {
	class   string
	element string
}{
	{ClassUnderline, "u"},
	{ClassStrike, "s"},
	{ClassCode, "code"},
}

func spanWithClass(class string) htmlfilter.ElementRule {
	return func(el *htmlfilter.MutableElement) {
		el.SetName("span")
		el.Attributes().AddClass(class)
	}
}

func spanToView(el *htmlfilter.MutableElement) {
	if pending(el) {
		return
	}
	attrs := el.Attributes()
	for _, candidate := range spanClasses {
		if attrs.HasClass(candidate.class) {
			attrs.RemoveClass(candidate.class)
			el.SetName(candidate.element)
			return
		}
	}
}

// markToData stores highlights as span, keeping the highlight style in a
// prefixed class.
func markToData(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	el.SetName("span")
	attrs.Set("class", markClassPrefix+attrs.Value("class"))
}

func markToView(el *htmlfilter.MutableElement) {
	if pending(el) {
		return
	}
	attrs := el.Attributes()
	match := markClassPattern.FindStringSubmatch(attrs.Value("class"))
	if match == nil {
		return
	}
	el.SetName("mark")
	if match[1] == "" {
		attrs.Delete("class")
		return
	}
	attrs.Set("class", match[1])
}

// linkTargets maps reserved view targets to xlink:show values.
var linkTargets = map[string]string{
	"_blank": "new",
	"_self":  "replace",
	"_embed": "embed",
	"_none":  "none",
	"_other": "other",
}

func linkToData(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	moveAttribute(attrs, "href", "xlink:href", contentLinkToData)
	moveAttribute(attrs, "title", "xlink:title", nil)

	target, ok := attrs.Get("target")
	if !ok {
		return
	}
	attrs.Delete("target")
	if target == "" {
		return
	}
	if show, reserved := linkTargets[target]; reserved {
		attrs.Set("xlink:show", show)
		return
	}
	attrs.Set("xlink:show", "other")
	attrs.Set("xlink:role", target)
}

func linkToView(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	moveAttribute(attrs, "xlink:href", "href", contentLinkToView)
	moveAttribute(attrs, "xlink:title", "title", nil)
	attrs.Delete("xlink:type")

	show, ok := attrs.Get("xlink:show")
	if !ok {
		return
	}
	role, hasRole := attrs.Get("xlink:role")
	if show == "other" && hasRole && role != "" {
		attrs.Set("target", role)
		attrs.Delete("xlink:role")
		attrs.Delete("xlink:show")
		return
	}
	for target, candidate := range linkTargets {
		if candidate == show {
			attrs.Set("target", target)
			attrs.Delete("xlink:show")
			return
		}
	}
}

// imageToData stores the image source as xlink reference. Stored images
// require an alt attribute.
func imageToData(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	moveAttribute(attrs, "src", "xlink:href", contentLinkToData)
	moveAttribute(attrs, "title", "xlink:title", nil)
	if !attrs.Has("alt") {
		attrs.Set("alt", "")
	}
}

func imageToView(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	moveAttribute(attrs, "xlink:href", "src", contentLinkToView)
	moveAttribute(attrs, "xlink:title", "title", nil)
	attrs.Delete("xlink:type")
}

// moveAttribute renames an attribute, optionally mapping its value. An
// existing target attribute is overwritten.
func moveAttribute(attrs *htmlfilter.Attributes, from, to string, mapValue func(string) string) {
	value, ok := attrs.Get(from)
	if !ok {
		return
	}
	if mapValue != nil {
		value = mapValue(value)
	}
	attrs.Delete(from)
	attrs.Set(to, value)
}

// contentLinkToData maps editor content URIs like content:42 to the stored
// reference content/42. Only numeric ids are content references.
func contentLinkToData(href string) string {
	if id, ok := strings.CutPrefix(href, contentURIPrefix); ok && isContentID(id) {
		return contentLinkPrefix + id
	}
	return href
}

func contentLinkToView(href string) string {
	if id, ok := strings.CutPrefix(href, contentLinkPrefix); ok && isContentID(id) {
		return contentURIPrefix + id
	}
	return href
}

func isContentID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
