// Package richtext converts between the editing view of CoreMedia RichText
// and its stored XML form.
//
// Conversion happens in two directions. toData maps view HTML to RichText
// 1.0 XML; toView maps stored XML back to markup the editor understands.
// Both directions are rule sets for the htmlfilter engine, built per call
// and parameterized by a Strictness.
package richtext

// Namespaces used by stored RichText and the markup exchanged with the
// editing view.
const (
	NamespaceRichText = "http://www.coremedia.com/2003/richtext-1.0"
	NamespaceXHTML    = "http://www.w3.org/1999/xhtml"
	NamespaceXLink    = "http://www.w3.org/1999/xlink"
	NamespaceXDiff    = "http://www.coremedia.com/2015/xdiff"
)

// Class tokens marking view constructs that stored RichText has no element
// for.
const (
	ClassHeaderRow  = "tr--header"
	ClassFooterRow  = "tr--footer"
	ClassHeaderCell = "td--header"
	ClassUnderline  = "underline"
	ClassStrike     = "strike"
	ClassCode       = "code"

	headingClassPrefix = "p--heading-"
	markClassPrefix    = "mark--"
	contentURIPrefix   = "content:"
	contentLinkPrefix  = "content/"
)
