package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMorph_ContentKindsAreExclusive(t *testing.T) {
	m := NewMorph()

	m.SetContent("hello")
	assert.Equal(t, "hello", m.Content())
	assert.Nil(t, m.Node())
	assert.Nil(t, m.ChildList())

	el := NewHelper().CreateElement("div")
	m.SetNode(el)
	assert.Nil(t, m.Content(), "setting an element must clear scalar content")
	assert.Same(t, el, m.Node())

	m.SetMorphList(NewMorphList())
	assert.Nil(t, m.Node(), "setting a list must clear the element")
	require.NotNil(t, m.ChildList())

	m.SetContent(42)
	assert.Nil(t, m.ChildList(), "setting content must drop the list")
	assert.Equal(t, 42, m.Content())
}

func TestMorph_SettingContentDestroysChildList(t *testing.T) {
	parent := NewMorph()
	list := NewMorphList()
	parent.SetMorphList(list)

	a, b := NewMorph(), NewMorph()
	list.Append(a)
	list.Append(b)

	parent.SetContent("replaced")

	assert.True(t, a.Destroyed())
	assert.True(t, b.Destroyed())
	assert.Nil(t, parent.ChildList())
}

func TestMorph_DestroyUnlinksAndRecurses(t *testing.T) {
	parent := NewMorph()
	list := NewMorphList()
	parent.SetMorphList(list)

	child := NewMorph()
	grandList := NewMorphList()
	child.SetMorphList(grandList)
	grandChild := NewMorph()
	grandList.Append(grandChild)
	list.Append(child)

	child.Destroy()

	assert.True(t, child.Destroyed())
	assert.True(t, grandChild.Destroyed())
	assert.Equal(t, 0, list.Len())
	assert.Nil(t, child.State(), "destroy drops state")
}

func TestMorph_DestroyIsIdempotent(t *testing.T) {
	list := NewMorphList()
	m := NewMorph()
	list.Append(m)

	m.Destroy()
	m.Destroy()

	assert.True(t, m.Destroyed())
	assert.Equal(t, 0, list.Len())
}

func TestMorphList_AppendOrder(t *testing.T) {
	list := NewMorphList()
	a, b, c := NewMorph(), NewMorph(), NewMorph()
	list.Append(a)
	list.Append(b)
	list.Append(c)

	assert.Equal(t, []*Morph{a, b, c}, list.Morphs())
	assert.Equal(t, 3, list.Len())
	assert.Same(t, a, list.FirstChild())
	assert.Same(t, c, list.LastChild())
	assert.Same(t, b, a.NextMorph())
	assert.Same(t, b, c.PrevMorph())
}

func TestMorphList_InsertBeforeMovesWithinList(t *testing.T) {
	list := NewMorphList()
	a, b, c := NewMorph(), NewMorph(), NewMorph()
	list.Append(a)
	list.Append(b)
	list.Append(c)

	// Move the tail to the front. The morph is relinked, never reallocated.
	list.InsertBefore(c, a)

	assert.Equal(t, []*Morph{c, a, b}, list.Morphs())
	assert.Equal(t, 3, list.Len(), "a move must not change the length")
	assert.Same(t, c, list.FirstChild())
	assert.Same(t, b, list.LastChild())
}

func TestMorphList_InsertBeforeSelfIsNoop(t *testing.T) {
	list := NewMorphList()
	a, b := NewMorph(), NewMorph()
	list.Append(a)
	list.Append(b)

	list.InsertBefore(a, a)

	assert.Equal(t, []*Morph{a, b}, list.Morphs())
	assert.Equal(t, 2, list.Len())
}

func TestMorphList_InsertBeforeNilAppends(t *testing.T) {
	list := NewMorphList()
	a, b := NewMorph(), NewMorph()
	list.InsertBefore(a, nil)
	list.InsertBefore(b, nil)

	assert.Equal(t, []*Morph{a, b}, list.Morphs())

	// Appending an already-linked morph moves it to the tail.
	list.InsertBefore(a, nil)
	assert.Equal(t, []*Morph{b, a}, list.Morphs())
	assert.Equal(t, 2, list.Len())
}

func TestMorphList_RemoveMiddle(t *testing.T) {
	list := NewMorphList()
	a, b, c := NewMorph(), NewMorph(), NewMorph()
	list.Append(a)
	list.Append(b)
	list.Append(c)

	list.Remove(b)

	assert.Equal(t, []*Morph{a, c}, list.Morphs())
	assert.Same(t, c, a.NextMorph())
	assert.Same(t, a, c.PrevMorph())
	assert.Nil(t, b.NextMorph())
	assert.Nil(t, b.PrevMorph())
}

func TestMorphList_RemoveForeignMorphIsNoop(t *testing.T) {
	list, other := NewMorphList(), NewMorphList()
	a := NewMorph()
	other.Append(a)

	list.Remove(a)

	assert.Equal(t, 1, other.Len())
	assert.Same(t, a, other.FirstChild())
}

func TestElement_AttributeOrderIsFirstSet(t *testing.T) {
	el := NewHelper().CreateElement("input")
	el.SetAttribute("type", "text")
	el.SetAttribute("name", "q")
	el.SetAttribute("type", "search")

	assert.Equal(t, []string{"type", "name"}, el.AttributeNames())
	v, ok := el.Attribute("type")
	require.True(t, ok)
	assert.Equal(t, "search", v)
	_, ok = el.Attribute("missing")
	assert.False(t, ok)
}

func TestElement_Children(t *testing.T) {
	el := NewHelper().CreateElement("ul")
	li := NewHelper().CreateElement("li")
	el.AppendChild("text")
	el.AppendChild(li)

	children := el.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "text", children[0])
	assert.Same(t, li, children[1])
}
