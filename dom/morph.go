// Package dom provides the render-node ("morph") layer consumed by the hook
// dispatcher: identity-stable slots in an output tree that values, elements,
// or keyed child lists are written into and later updated in place.
//
// This is a reference in-memory implementation. It carries no browser or
// virtual-DOM semantics beyond what the hooks require: a mutable state slot,
// content primitives, and doubly linked keyed child lists.
package dom

// Morph is a mutable slot in the output tree. A morph holds exactly one of:
// scalar content, an element node, or a list of child morphs. Writing one
// kind clears the others.
//
// Morph identity is load-bearing: re-render decisions upstream compare
// morph pointers across passes, so a morph is never copied by value.
type Morph struct {
	state   interface{} // owned by the hook layer, opaque here
	content interface{}
	node    *Element
	childList *MorphList

	owner *Element // element this morph renders into, if any

	list       *MorphList
	next, prev *Morph

	destroyed bool
}

// NewMorph allocates a detached morph with no owner element.
func NewMorph() *Morph {
	return &Morph{}
}

// NewMorphAt allocates a morph rendering into el.
func NewMorphAt(el *Element) *Morph {
	return &Morph{owner: el}
}

// State returns the opaque state slot.
func (m *Morph) State() interface{} { return m.state }

// SetState replaces the opaque state slot.
func (m *Morph) SetState(s interface{}) { m.state = s }

// Element returns the element this morph renders into, or nil for a
// detached morph.
func (m *Morph) Element() *Element { return m.owner }

// Content returns the scalar content, or nil if the morph holds an element
// or a child list.
func (m *Morph) Content() interface{} { return m.content }

// Node returns the element content set by SetNode, or nil.
func (m *Morph) Node() *Element { return m.node }

// ChildList returns the keyed child list, or nil.
func (m *Morph) ChildList() *MorphList { return m.childList }

// SetContent replaces the morph's content with a scalar value, dropping any
// element or child list it previously held.
func (m *Morph) SetContent(v interface{}) {
	m.clearChildList()
	m.node = nil
	m.content = v
}

// SetNode replaces the morph's content with an element.
func (m *Morph) SetNode(el *Element) {
	m.clearChildList()
	m.content = nil
	m.node = el
}

// SetMorphList replaces the morph's content with a keyed child list.
func (m *Morph) SetMorphList(l *MorphList) {
	m.content = nil
	m.node = nil
	m.childList = l
}

func (m *Morph) clearChildList() {
	if m.childList == nil {
		return
	}
	for child := m.childList.FirstChild(); child != nil; {
		next := child.NextMorph()
		child.Destroy()
		child = next
	}
	m.childList = nil
}

// Destroyed reports whether Destroy has run.
func (m *Morph) Destroyed() bool { return m.destroyed }

// Destroy unlinks the morph from its parent list, destroys its children,
// and marks it dead. Destroying twice is a no-op.
func (m *Morph) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.list != nil {
		m.list.Remove(m)
	}
	m.clearChildList()
	m.content = nil
	m.node = nil
	m.state = nil
}
