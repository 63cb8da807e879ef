package richtext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/rgonek/richtext-converter/htmlfilter"
)

var headingClassPattern = regexp.MustCompile(`^p--heading-([1-6])$`)

// headingToData maps a heading to a paragraph carrying its level as class.
// Empty headings are kept.
func headingToData(level int) htmlfilter.ElementRule {
	class := headingClassPrefix + strconv.Itoa(level)
	return func(el *htmlfilter.MutableElement) {
		el.SetName("p")
		el.Attributes().AddClass(class)
	}
}

// headingToView restores headings of level 1 to 6. Paragraphs with other
// heading-like classes are left alone.
func headingToView(el *htmlfilter.MutableElement) {
	attrs := el.Attributes()
	for _, token := range strings.Fields(attrs.Value("class")) {
		match := headingClassPattern.FindStringSubmatch(token)
		if match == nil {
			continue
		}
		attrs.RemoveClass(token)
		el.SetName("h" + match[1])
		return
	}
}

// removeBlockBreak drops br elements directly inside a div, which have no
// meaning in RichText.
func removeBlockBreak(el *htmlfilter.MutableElement) {
	if htmlfilter.IsElement(el.Parent(), "div") {
		el.SetRemove(true)
	}
}

// cleanupAfterChildren removes containers which became invalid through
// filtering their children, and trailing line breaks. Tables and bodies
// without rows and rows without cells go, whatever text they still hold.
func cleanupAfterChildren(el *htmlfilter.MutableElement) {
	if el.Remove() || el.ReplaceByChildren() {
		return
	}
	switch strings.ToLower(el.Name()) {
	case "table", "tbody":
		if el.FindFirst("tr") == nil {
			el.SetRemove(true)
		}
	case "tr":
		if el.FindFirst("td") == nil {
			el.SetRemove(true)
		}
	case "ul", "ol":
		if el.IsEmpty() || el.FindFirst("li") == nil {
			el.SetRemove(true)
		}
	case "p":
		removeTrailingBreak(el.Element())
	case "td":
		removeTrailingBreak(el.Element())
		removeSingletonParagraph(el.Element())
	}
}

func removeTrailingBreak(el *etree.Element) {
	last, ok := htmlfilter.LastSignificantChild(el).(*etree.Element)
	if ok && htmlfilter.IsElement(last, "br") {
		htmlfilter.Detach(last)
	}
}

// removeSingletonParagraph empties a cell whose only content is a
// paragraph without text, possibly holding a line break.
func removeSingletonParagraph(cell *etree.Element) {
	var paragraph *etree.Element
	for _, child := range cell.Child {
		switch typed := child.(type) {
		case *etree.Element:
			if paragraph != nil || !htmlfilter.IsElement(typed, "p") {
				return
			}
			paragraph = typed
		case *etree.CharData:
			if strings.TrimSpace(typed.Data) != "" {
				return
			}
		}
	}
	if paragraph == nil || !onlyBreaks(paragraph) {
		return
	}
	htmlfilter.Detach(paragraph)
}

func onlyBreaks(el *etree.Element) bool {
	for _, child := range el.Child {
		switch typed := child.(type) {
		case *etree.Element:
			if !htmlfilter.IsElement(typed, "br") {
				return false
			}
		case *etree.CharData:
			if strings.TrimSpace(typed.Data) != "" {
				return false
			}
		}
	}
	return true
}
