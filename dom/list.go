package dom

// MorphList is an ordered, doubly linked list of child morphs. Reordering a
// morph relinks pointers; the morph itself is never reallocated, which is
// what lets keyed reconciliation preserve node identity across passes.
type MorphList struct {
	first, last *Morph
	length      int
}

// NewMorphList returns an empty list.
func NewMorphList() *MorphList {
	return &MorphList{}
}

// FirstChild returns the first morph in the list, or nil when empty.
func (l *MorphList) FirstChild() *Morph { return l.first }

// LastChild returns the last morph in the list, or nil when empty.
func (l *MorphList) LastChild() *Morph { return l.last }

// Len returns the number of morphs in the list.
func (l *MorphList) Len() int { return l.length }

// NextMorph returns the next sibling, or nil at the end of the list.
func (m *Morph) NextMorph() *Morph { return m.next }

// PrevMorph returns the previous sibling, or nil at the start of the list.
func (m *Morph) PrevMorph() *Morph { return m.prev }

// InsertBefore places m immediately before ref. A nil ref appends. If m is
// already linked, anywhere, it is unlinked first, so InsertBefore doubles as
// the move primitive.
func (l *MorphList) InsertBefore(m, ref *Morph) {
	if m == ref {
		return
	}
	if m.list != nil {
		m.list.Remove(m)
	}
	m.list = l
	if ref == nil {
		m.prev = l.last
		m.next = nil
		if l.last != nil {
			l.last.next = m
		}
		l.last = m
		if l.first == nil {
			l.first = m
		}
	} else {
		m.prev = ref.prev
		m.next = ref
		if ref.prev != nil {
			ref.prev.next = m
		} else {
			l.first = m
		}
		ref.prev = m
		if l.last == nil {
			l.last = m
		}
	}
	l.length++
}

// Append adds m at the end of the list.
func (l *MorphList) Append(m *Morph) {
	l.InsertBefore(m, nil)
}

// Remove unlinks m from the list. Removing a morph that is not in the list
// is a no-op.
func (l *MorphList) Remove(m *Morph) {
	if m.list != l {
		return
	}
	if m.prev != nil {
		m.prev.next = m.next
	} else {
		l.first = m.next
	}
	if m.next != nil {
		m.next.prev = m.prev
	} else {
		l.last = m.prev
	}
	m.list = nil
	m.next = nil
	m.prev = nil
	l.length--
}

// Morphs returns the list contents in order. The slice is a snapshot;
// mutating the list does not affect it.
func (l *MorphList) Morphs() []*Morph {
	out := make([]*Morph, 0, l.length)
	for m := l.first; m != nil; m = m.next {
		out = append(out, m)
	}
	return out
}
