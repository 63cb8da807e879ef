package richtext

import (
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
)

// ParseData parses stored RichText XML. Named HTML entities, which older
// RichText documents contain, are decoded to UTF-8.
func ParseData(markup string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromString(markup); err != nil {
		return nil, fmt.Errorf("failed to parse RichText XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse RichText XML: missing root element")
	}
	return doc, nil
}

// WriteData serializes stored RichText. Characters are written as UTF-8;
// only markup characters are escaped.
func WriteData(doc *etree.Document) (string, error) {
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	markup, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize RichText XML: %w", err)
	}
	return markup, nil
}
