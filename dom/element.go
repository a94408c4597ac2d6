package dom

// Element is a minimal element node: a tag, ordered attributes, and child
// content. Attribute order is insertion order so that serialized trees are
// deterministic.
type Element struct {
	Tag string

	attrs     map[string]string
	attrOrder []string

	children []interface{}
}

// Helper creates elements on behalf of an environment. It stands in for the
// host's document.
type Helper struct{}

// NewHelper returns an element factory.
func NewHelper() *Helper {
	return &Helper{}
}

// CreateElement allocates an element with the given tag.
func (h *Helper) CreateElement(tag string) *Element {
	return &Element{Tag: tag, attrs: make(map[string]string)}
}

// SetAttribute sets one named attribute, preserving first-set order.
func (e *Element) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	if _, ok := e.attrs[name]; !ok {
		e.attrOrder = append(e.attrOrder, name)
	}
	e.attrs[name] = value
}

// Attribute returns a named attribute and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// AttributeNames returns attribute names in first-set order.
func (e *Element) AttributeNames() []string {
	out := make([]string, len(e.attrOrder))
	copy(out, e.attrOrder)
	return out
}

// AppendChild adds child content: a string, an *Element, a *Morph, or any
// value the host knows how to flatten.
func (e *Element) AppendChild(child interface{}) {
	e.children = append(e.children, child)
}

// Children returns the child content in order.
func (e *Element) Children() []interface{} {
	return e.children
}
