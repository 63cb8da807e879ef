package htmlfilter

import (
	"strings"

	"github.com/beevik/etree"
)

func parentElement(t etree.Token) *etree.Element {
	if t == nil {
		return nil
	}
	return t.Parent()
}

// detach removes t from its parent, if any.
func detach(t etree.Token) {
	if parent := t.Parent(); parent != nil {
		parent.RemoveChildAt(t.Index())
	}
}

// insertBefore moves t into parent right before ref. If ref is not a child
// of parent, t is appended.
func insertBefore(parent *etree.Element, t etree.Token, ref etree.Token) {
	detach(t)
	if ref == nil || ref.Parent() != parent {
		parent.AddChild(t)
		return
	}
	parent.InsertChildAt(ref.Index(), t)
}

// Detach removes t from its parent. Detaching a token without parent is a
// no-op.
func Detach(t etree.Token) {
	detach(t)
}

// InsertBefore moves t into parent at the position of ref, appending when
// ref is nil or not a child of parent.
func InsertBefore(parent *etree.Element, t etree.Token, ref etree.Token) {
	insertBefore(parent, t, ref)
}

// Replace puts replacement at the position of old and detaches old.
func Replace(old etree.Token, replacement etree.Token) {
	parent := old.Parent()
	if parent == nil {
		return
	}
	insertBefore(parent, replacement, old)
	detach(old)
}

// Attr returns the value of the attribute with exactly the given qualified
// name.
func Attr(el *etree.Element, key string) (string, bool) {
	for _, a := range el.Attr {
		if a.FullKey() == key {
			return a.Value, true
		}
	}
	return "", false
}

func removeAttr(el *etree.Element, key string) {
	for i, a := range el.Attr {
		if a.FullKey() == key {
			el.Attr = append(el.Attr[:i], el.Attr[i+1:]...)
			return
		}
	}
}

// IsEmpty reports whether el has no element children and only whitespace
// text.
func IsEmpty(el *etree.Element) bool {
	for _, child := range el.Child {
		switch typed := child.(type) {
		case *etree.Element:
			return false
		case *etree.CharData:
			if strings.TrimSpace(typed.Data) != "" {
				return false
			}
		}
	}
	return true
}

// IsElement reports whether el has the given qualified name, ignoring case.
func IsElement(el *etree.Element, name string) bool {
	return el != nil && strings.EqualFold(el.FullTag(), name)
}

// FindFirst returns the first descendant of el with the given qualified
// name (case-insensitive) in document order, or nil.
func FindFirst(el *etree.Element, name string) *etree.Element {
	for _, child := range el.ChildElements() {
		if IsElement(child, name) {
			return child
		}
		if found := FindFirst(child, name); found != nil {
			return found
		}
	}
	return nil
}

// LastSignificantChild returns the last child of el that is an element or
// non-whitespace text, or nil.
func LastSignificantChild(el *etree.Element) etree.Token {
	for i := len(el.Child) - 1; i >= 0; i-- {
		switch typed := el.Child[i].(type) {
		case *etree.Element:
			return typed
		case *etree.CharData:
			if strings.TrimSpace(typed.Data) != "" {
				return typed
			}
		}
	}
	return nil
}
