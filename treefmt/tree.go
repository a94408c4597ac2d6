// Package treefmt serializes rendered morph trees into a deterministic
// binary snapshot: a fixed preamble, a canonical CBOR body, and a
// BLAKE2b-256 digest over the body. Equal trees always produce equal bytes
// and equal digests, so snapshots are usable as golden files and for
// detecting drift between renders.
package treefmt

import (
	"fmt"

	"github.com/remorph/remorph/dom"
	"github.com/remorph/remorph/hooks"
)

// Node kinds.
const (
	KindEmpty   = "empty"
	KindValue   = "value"
	KindElement = "element"
	KindList    = "list"
)

// Tree is the canonical form of one rendered morph tree.
type Tree struct {
	Version uint8
	Root    Node
}

// Node is a union over the three things a morph can hold. Type selects the
// populated fields.
type Node struct {
	Type string

	// Key tags a keyed child of a list node, rendered to a string.
	Key string `cbor:",omitempty"`

	// Value holds stringified scalar content for value nodes.
	Value string `cbor:",omitempty"`

	// Element fields.
	Tag      string `cbor:",omitempty"`
	Attrs    []Attr `cbor:",omitempty"`
	Children []Node `cbor:",omitempty"`
}

// Attr is one element attribute, in first-set order.
type Attr struct {
	Name  string
	Value string
}

// Capture walks a rendered morph into its canonical tree form.
func Capture(m *dom.Morph) Tree {
	return Tree{Version: 1, Root: captureMorph(m)}
}

func captureMorph(m *dom.Morph) Node {
	n := Node{Type: KindEmpty}
	if key, ok := hooks.Key(m); ok {
		n.Key = fmt.Sprint(key)
	}

	switch {
	case m.ChildList() != nil:
		n.Type = KindList
		for _, child := range m.ChildList().Morphs() {
			n.Children = append(n.Children, captureMorph(child))
		}
	case m.Node() != nil:
		n.Type = KindElement
		el := captureElement(m.Node())
		n.Tag = el.Tag
		n.Attrs = el.Attrs
		n.Children = el.Children
	case m.Content() != nil:
		n.Type = KindValue
		n.Value = fmt.Sprint(m.Content())
	}
	return n
}

func captureElement(el *dom.Element) Node {
	n := Node{Type: KindElement, Tag: el.Tag}
	for _, name := range el.AttributeNames() {
		value, _ := el.Attribute(name)
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	}
	for _, child := range el.Children() {
		switch c := child.(type) {
		case *dom.Element:
			n.Children = append(n.Children, captureElement(c))
		case *dom.Morph:
			n.Children = append(n.Children, captureMorph(c))
		default:
			n.Children = append(n.Children, Node{Type: KindValue, Value: fmt.Sprint(c)})
		}
	}
	return n
}
