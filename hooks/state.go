package hooks

import (
	"github.com/remorph/remorph/dom"
)

// YieldRecord captures what a morph last rendered through the yield
// protocol. Template and Layout are compared by identity on the next pass to
// decide between revalidation and re-render; Layout is non-nil only when the
// morph was last populated via WithLayout.
type YieldRecord struct {
	Self     interface{}
	Template Template
	Layout   Template
}

// renderState is the typed cross-pass memory attached to a morph. One struct
// covers the three node kinds - value node (lastValue), yielded-block node
// (lastYielded/lastResult), keyed-list node (list/keyMap) - because a morph
// can change kind between passes and the stale fields gate the transition.
//
// Invariant: list and keyMap are both set or both nil.
type renderState struct {
	lastValue interface{}
	hasValue  bool

	lastAttrs map[string]interface{}

	lastYielded *YieldRecord
	lastResult  RenderResult

	list   *dom.MorphList
	keyMap map[interface{}]*dom.Morph

	// key tags a morph that is itself a keyed child of a list.
	key    interface{}
	hasKey bool
}

// stateOf returns the morph's render state, allocating it on first touch.
func stateOf(m *dom.Morph) *renderState {
	if st, ok := m.State().(*renderState); ok {
		return st
	}
	st := &renderState{}
	m.SetState(st)
	return st
}

// clearList drops the keyed-list state together, preserving the both-or-
// neither invariant.
func (st *renderState) clearList() {
	st.list = nil
	st.keyMap = nil
}

// Key returns the reconciliation key tagged onto a keyed child morph.
func Key(m *dom.Morph) (interface{}, bool) {
	st, ok := m.State().(*renderState)
	if !ok || !st.hasKey {
		return nil, false
	}
	return st.key, true
}
