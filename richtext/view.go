package richtext

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var bodyContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "body",
	DataAtom: atom.Body,
}

// NewRoot returns the RichText root div declaring the RichText and XLink
// namespaces. Filters are applied below this root, so it is never replaced.
func NewRoot() *etree.Element {
	root := etree.NewElement("div")
	root.CreateAttr("xmlns", NamespaceRichText)
	root.CreateAttr("xmlns:xlink", NamespaceXLink)
	return root
}

// ParseView parses an editing view HTML fragment into a document whose
// root is a RichText div holding the fragment. Character references are
// resolved by the HTML parser.
func ParseView(markup string) (*etree.Document, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse view HTML: %w", err)
	}

	root := NewRoot()
	for _, node := range nodes {
		appendViewNode(root, node)
	}

	doc := etree.NewDocument()
	doc.SetRoot(root)
	return doc, nil
}

func appendViewNode(parent *etree.Element, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		parent.CreateText(node.Data)
	case html.ElementNode:
		el := parent.CreateElement(node.Data)
		for _, attr := range node.Attr {
			key := attr.Key
			if attr.Namespace != "" {
				key = attr.Namespace + ":" + attr.Key
			}
			el.CreateAttr(key, attr.Val)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			appendViewNode(el, child)
		}
	}
}

// RenderView renders the children of root as HTML. Namespace declarations
// are omitted.
func RenderView(root *etree.Element) (string, error) {
	var sb strings.Builder
	for _, child := range root.Child {
		node := viewNode(child)
		if node == nil {
			continue
		}
		if err := html.Render(&sb, node); err != nil {
			return "", fmt.Errorf("failed to render view HTML: %w", err)
		}
	}
	return sb.String(), nil
}

func viewNode(token etree.Token) *html.Node {
	switch typed := token.(type) {
	case *etree.CharData:
		return &html.Node{Type: html.TextNode, Data: typed.Data}
	case *etree.Element:
		name := typed.FullTag()
		node := &html.Node{
			Type:     html.ElementNode,
			Data:     name,
			DataAtom: atom.Lookup([]byte(name)),
		}
		for _, attr := range typed.Attr {
			key := attr.FullKey()
			if isNamespaceDeclaration(key) {
				continue
			}
			node.Attr = append(node.Attr, html.Attribute{Key: key, Val: attr.Value})
		}
		for _, child := range typed.Child {
			if childNode := viewNode(child); childNode != nil {
				node.AppendChild(childNode)
			}
		}
		return node
	}
	return nil
}
