package htmlfilter

import (
	"strings"

	"github.com/beevik/etree"
)

type override struct {
	key     string
	value   string
	deleted bool
}

// Attributes is a live view on the attributes of a MutableElement.
// Modifications are recorded as overrides and only reach the element when
// the MutableElement is persisted. Reads consult the overrides first and
// fall back to the element's real attributes.
type Attributes struct {
	element   *etree.Element
	overrides []override
	index     map[string]int
}

// Get returns the current value of the attribute with the given qualified
// name.
func (a *Attributes) Get(key string) (string, bool) {
	if i, ok := a.index[key]; ok {
		o := a.overrides[i]
		if o.deleted {
			return "", false
		}
		return o.value, true
	}
	return Attr(a.element, key)
}

// Value returns the current value of an attribute, or the empty string.
func (a *Attributes) Value(key string) string {
	value, _ := a.Get(key)
	return value
}

// Has reports whether the attribute exists and is not marked for deletion.
func (a *Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Set overrides the value of an attribute.
func (a *Attributes) Set(key, value string) {
	a.put(override{key: key, value: value})
}

// Delete marks an attribute for deletion. A deleted attribute is distinct
// from one that was never set: it hides the element's real attribute.
func (a *Attributes) Delete(key string) {
	a.put(override{key: key, deleted: true})
}

func (a *Attributes) put(o override) {
	if i, ok := a.index[o.key]; ok {
		a.overrides[i] = o
		return
	}
	a.index[o.key] = len(a.overrides)
	a.overrides = append(a.overrides, o)
}

// Keys returns the names of all existing attributes: the element's own
// attributes in document order, followed by added attributes in the order
// they were set. Deleted attributes are skipped.
func (a *Attributes) Keys() []string {
	keys := make([]string, 0, len(a.element.Attr)+len(a.overrides))
	seen := make(map[string]bool, len(a.element.Attr))
	for _, attr := range a.element.Attr {
		key := attr.FullKey()
		seen[key] = true
		if a.Has(key) {
			keys = append(keys, key)
		}
	}
	for _, o := range a.overrides {
		if seen[o.key] || o.deleted {
			continue
		}
		keys = append(keys, o.key)
	}
	return keys
}

// HasClass reports whether the class attribute contains the given token.
func (a *Attributes) HasClass(class string) bool {
	for _, token := range strings.Fields(a.Value("class")) {
		if token == class {
			return true
		}
	}
	return false
}

// AddClass prepends a class token unless already present.
func (a *Attributes) AddClass(class string) {
	if a.HasClass(class) {
		return
	}
	tokens := append([]string{class}, strings.Fields(a.Value("class"))...)
	a.Set("class", strings.Join(tokens, " "))
}

// RemoveClass removes a class token. The class attribute is deleted when
// no token remains.
func (a *Attributes) RemoveClass(class string) {
	if !a.HasClass(class) {
		return
	}
	var remaining []string
	for _, token := range strings.Fields(a.Value("class")) {
		if token != class {
			remaining = append(remaining, token)
		}
	}
	if len(remaining) == 0 {
		a.Delete("class")
		return
	}
	a.Set("class", strings.Join(remaining, " "))
}
