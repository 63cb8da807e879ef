package htmlfilter

import (
	"strings"

	"github.com/beevik/etree"
)

type nameState int

const (
	nameKeep nameState = iota
	nameRemove
	nameReplaceByChildren
	nameRename
)

// MutableElement wraps an element during a single filter pass. Changes
// requested by rules are buffered and only applied to the tree by Persist.
type MutableElement struct {
	delegate   *etree.Element
	state      nameState
	newName    string
	attributes *Attributes
	persisted  bool
}

// NewMutableElement wraps el. No mutation happens until Persist is called.
func NewMutableElement(el *etree.Element) *MutableElement {
	m := &MutableElement{delegate: el}
	m.attributes = &Attributes{element: el, index: map[string]int{}}
	return m
}

// Element gives direct access to the wrapped element.
func (m *MutableElement) Element() *etree.Element {
	return m.delegate
}

// Parent returns the parent of the wrapped element, or nil when detached.
func (m *MutableElement) Parent() *etree.Element {
	return parentElement(m.delegate)
}

// ChildElements returns the element children of the wrapped element.
func (m *MutableElement) ChildElements() []*etree.Element {
	return m.delegate.ChildElements()
}

// OriginalName returns the qualified tag name of the wrapped element.
func (m *MutableElement) OriginalName() string {
	return m.delegate.FullTag()
}

// Name returns the pending new name if a rename was requested, otherwise
// the original qualified tag name.
func (m *MutableElement) Name() string {
	if m.state == nameRename {
		return m.newName
	}
	return m.delegate.FullTag()
}

// SetName requests a new name. The empty string requests replacing the
// element by its children. A name equal to the original one (ignoring case)
// resets any pending decision.
func (m *MutableElement) SetName(name string) {
	switch {
	case name == "":
		m.state = nameReplaceByChildren
		m.newName = ""
	case strings.EqualFold(name, m.delegate.FullTag()):
		m.state = nameKeep
		m.newName = ""
	default:
		m.state = nameRename
		m.newName = name
	}
}

// Remove reports whether the element, including its subtree, is going to be
// removed.
func (m *MutableElement) Remove() bool {
	return m.state == nameRemove
}

// SetRemove marks the element for removal. Passing false resets to keeping
// the element as is, which also drops a pending rename.
func (m *MutableElement) SetRemove(b bool) {
	m.newName = ""
	if b {
		m.state = nameRemove
		return
	}
	m.state = nameKeep
}

// ReplaceByChildren reports whether the element is going to be replaced by
// its children.
func (m *MutableElement) ReplaceByChildren() bool {
	return m.state == nameReplaceByChildren
}

// SetReplaceByChildren marks the element to be replaced by its children.
// Passing false resets to keeping the element as is.
func (m *MutableElement) SetReplaceByChildren(b bool) {
	m.newName = ""
	if b {
		m.state = nameReplaceByChildren
		return
	}
	m.state = nameKeep
}

// Replace reports whether the element is going to be replaced by a new
// element of a different name.
func (m *MutableElement) Replace() bool {
	return m.state == nameRename
}

// Attributes returns the live attribute view of this element.
func (m *MutableElement) Attributes() *Attributes {
	return m.attributes
}

// IsEmpty reports whether the element has no element children and no
// text other than whitespace.
func (m *MutableElement) IsEmpty() bool {
	return IsEmpty(m.delegate)
}

// FindFirst returns the first descendant element with the given qualified
// name (case-insensitive), or nil.
func (m *MutableElement) FindFirst(name string) *etree.Element {
	return FindFirst(m.delegate, name)
}

// Persist applies the pending decision to the tree.
//
// It returns the element itself when only attributes changed, the new
// element on rename, the first element moved to the parent when replaced
// by children, and nil on removal.
func (m *MutableElement) Persist() *etree.Element {
	if m.persisted {
		panic("htmlfilter: MutableElement persisted twice")
	}
	m.persisted = true

	switch m.state {
	case nameRemove:
		return m.persistDeletion()
	case nameReplaceByChildren:
		return m.persistReplaceByChildren()
	case nameRename:
		return m.persistReplaceBy(m.newName)
	default:
		return m.persistAttributes()
	}
}

func (m *MutableElement) persistAttributes() *etree.Element {
	for _, o := range m.attributes.overrides {
		if o.deleted {
			removeAttr(m.delegate, o.key)
			continue
		}
		m.delegate.CreateAttr(o.key, o.value)
	}
	return m.delegate
}

func (m *MutableElement) persistDeletion() *etree.Element {
	detach(m.delegate)
	return nil
}

func (m *MutableElement) persistReplaceByChildren() *etree.Element {
	parent := parentElement(m.delegate)
	if parent == nil {
		// Nowhere to move the children to: the element just vanishes.
		return nil
	}

	var first *etree.Element
	children := append([]etree.Token(nil), m.delegate.Child...)
	for _, child := range children {
		insertBefore(parent, child, m.delegate)
		if el, ok := child.(*etree.Element); ok && first == nil {
			first = el
		}
	}
	detach(m.delegate)
	return first
}

func (m *MutableElement) persistReplaceBy(name string) *etree.Element {
	replacement := etree.NewElement(name)
	for _, key := range m.attributes.Keys() {
		value, _ := m.attributes.Get(key)
		replacement.CreateAttr(key, value)
	}

	children := append([]etree.Token(nil), m.delegate.Child...)
	for _, child := range children {
		detach(child)
		replacement.AddChild(child)
	}

	if parent := parentElement(m.delegate); parent != nil {
		insertBefore(parent, replacement, m.delegate)
		detach(m.delegate)
	}
	return replacement
}
