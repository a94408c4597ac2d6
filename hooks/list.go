package hooks

import (
	"go.uber.org/zap"

	"github.com/remorph/remorph/dom"
	"github.com/remorph/remorph/internal/invariant"
)

// pruneCursor is the single cursor one reconciliation pass holds. item
// starts at the first child of the previous list - captured by the Block
// hook before the helper runs - and advances only on the in-order fast
// path, so everything from its final position to the end of the list is
// exactly the set of keys the pass never revisited. seen rejects duplicate
// keys within the pass.
type pruneCursor struct {
	item *dom.Morph
	seen map[interface{}]bool
}

// YieldItem renders one keyed child of the wrapped template, reconciling
// against the previous pass with minimal structural churn:
//
//  1. cursor's node has the same key: revalidate it in place, advance.
//  2. key exists elsewhere in the map: revalidate that node, then move it
//     to immediately precede the cursor. Identity is preserved; the output
//     is relinked, not recreated.
//  3. new key: create a child node, tag and register it, insert it before
//     the cursor, render into it.
//
// The walk is a single O(n) pass with O(1) amortized work per item. Keys
// must be unique within one pass; a repeat returns a StaleKeyError.
func (y *Yieldable) YieldItem(key interface{}, blockArgs []interface{}) error {
	invariant.Precondition(key != nil, "yieldItem key must not be nil")

	st := stateOf(y.node)
	if st.list == nil {
		st.list = dom.NewMorphList()
		st.keyMap = make(map[interface{}]*dom.Morph)
		y.node.SetMorphList(st.list)
	}
	invariant.Invariant((st.list == nil) == (st.keyMap == nil), "morph list and key map must exist together")

	cursor := y.prune
	if cursor.seen == nil {
		cursor.seen = make(map[interface{}]bool)
	}
	if cursor.seen[key] {
		return &StaleKeyError{Key: key}
	}
	cursor.seen[key] = true

	if current := cursor.item; current != nil {
		if k, ok := Key(current); ok && sameValue(k, key) {
			cursor.item = current.NextMorph()
			return y.renderItem(current, blockArgs)
		}
	}

	if found, ok := st.keyMap[key]; ok {
		if err := y.renderItem(found, blockArgs); err != nil {
			return err
		}
		st.list.InsertBefore(found, cursor.item)
		y.env.logger.Debug("moved keyed child", zap.Any("key", key))
		return nil
	}

	child := dom.NewMorphAt(y.node.Element())
	childState := stateOf(child)
	childState.key = key
	childState.hasKey = true
	st.keyMap[key] = child
	st.list.InsertBefore(child, cursor.item)
	y.env.logger.Debug("created keyed child", zap.Any("key", key))
	return y.renderItem(child, blockArgs)
}

// renderItem renders or revalidates one keyed child through the regular
// yield stability check, with its own (unused) cursor: items do not nest
// into the parent's reconciliation pass.
func (y *Yieldable) renderItem(m *dom.Morph, blockArgs []interface{}) error {
	item := &Yieldable{template: y.template, env: y.env, scope: y.scope, node: m, prune: &pruneCursor{}}
	return item.Yield(blockArgs, nil)
}
