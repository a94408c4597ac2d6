package hooks

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/remorph/remorph/dom"
	"github.com/remorph/remorph/internal/invariant"
)

// The host hooks in this file are invoked by a compiled template's render
// walk with (renderNode, env, scope, ...). Hooks are side-effect-gated: a
// node is written only when the computed value differs from what the node's
// state remembers, so re-running a pass with identical inputs mutates
// nothing downstream.

// Content resolves a path in content position. A path naming a keyword or a
// registered helper dispatches through Inline; anything else resolves as a
// plain value and flows through Range.
func Content(node *dom.Morph, env *Env, scope *Scope, path string) error {
	if _, ok := env.Keyword(path); ok {
		return Inline(node, env, scope, path, nil, nil)
	}
	if env.Helpers.Has(path) {
		return Inline(node, env, scope, path, nil, nil)
	}
	return Range(node, env, scope.Get(path))
}

// Range writes a resolved value into the node iff it differs from the
// cached last value. The cache is updated either way.
func Range(node *dom.Morph, env *Env, value interface{}) error {
	st := stateOf(node)
	if st.hasValue && sameValue(st.lastValue, value) {
		return nil
	}
	st.lastValue = value
	st.hasValue = true
	st.clearList()
	node.SetContent(value)
	return nil
}

// Attribute writes one named attribute on the node's element, gated per
// attribute name the way Range gates content.
func Attribute(node *dom.Morph, env *Env, name string, value interface{}) error {
	st := stateOf(node)
	if prev, ok := st.lastAttrs[name]; ok && sameValue(prev, value) {
		return nil
	}
	if st.lastAttrs == nil {
		st.lastAttrs = make(map[string]interface{})
	}
	st.lastAttrs[name] = value
	el := node.Element()
	if el == nil {
		return fmt.Errorf("attribute %q: render node has no element", name)
	}
	el.SetAttribute(name, stringify(value))
	return nil
}

// Inline resolves a path in inline-expression position. Keywords bypass
// helper lookup entirely; otherwise the helper is invoked and its return
// value content-gated into the node as in Range.
func Inline(node *dom.Morph, env *Env, scope *Scope, path string, params []interface{}, hash map[string]interface{}) error {
	if kw, ok := env.Keyword(path); ok {
		return kw(node, env, scope, params, hash)
	}
	helper, err := env.Helpers.Lookup(path)
	if err != nil {
		return err
	}
	value, err := helper(params, hash, &YieldOptions{})
	if err != nil {
		return err
	}
	return Range(node, env, value)
}

// Block resolves and invokes a block helper with a yieldable pair wrapping
// template and inverse, both sharing the render node and one pruning cursor.
// After the helper returns, keyed children present before this pass but not
// revisited during it are removed from the key map and destroyed - this is
// the only place stale keyed children are reclaimed.
func Block(node *dom.Morph, env *Env, scope *Scope, path string, params []interface{}, hash map[string]interface{}, template, inverse Template) error {
	invariant.NotNil(node, "render node")

	st := stateOf(node)
	prune := &pruneCursor{}
	if st.list != nil {
		// Captured once, before any yieldItem call in this pass, so a pass
		// that yields zero items prunes every previous child.
		prune.item = st.list.FirstChild()
	}

	opts := &YieldOptions{
		Template: wrapForHelper(template, env, scope, node, prune),
		Inverse:  wrapForHelper(inverse, env, scope, node, prune),
	}

	helper, err := env.Helpers.Lookup(path)
	if err != nil {
		return err
	}
	env.logger.Debug("block helper", zap.String("path", path))
	if _, err := helper(params, hash, opts); err != nil {
		return err
	}

	pruneStaleChildren(node, env, prune)
	return nil
}

// pruneStaleChildren destroys every keyed child from the cursor's final
// position to the end of the previous list: exactly the keys not revisited
// in the latest pass.
func pruneStaleChildren(node *dom.Morph, env *Env, prune *pruneCursor) {
	st := stateOf(node)
	if st.list == nil {
		return
	}
	pruned := 0
	for m := prune.item; m != nil; {
		next := m.NextMorph()
		if key, ok := Key(m); ok {
			delete(st.keyMap, key)
		}
		m.Destroy()
		m = next
		pruned++
	}
	if pruned > 0 {
		env.logger.Debug("pruned stale keyed children", zap.Int("count", pruned))
	}
}

// Component dispatches a component invocation. A tag name that resolves to a
// helper is treated exactly as Block with attrs as hash and no inverse.
// Otherwise a literal element is created, attrs become attributes, and the
// template renders into it as a static child fragment.
func Component(node *dom.Morph, env *Env, scope *Scope, tagName string, attrs map[string]interface{}, template Template) error {
	if env.Helpers.Has(tagName) {
		return Block(node, env, scope, tagName, nil, attrs, template, nil)
	}

	el := env.DOM.CreateElement(tagName)
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		el.SetAttribute(name, stringify(attrs[name]))
	}

	if template != nil {
		result, err := template.Render(scope.Self(), env, scope, &RenderOptions{ContextualElement: el}, nil)
		if err != nil {
			return err
		}
		if fragment := result.Fragment(); fragment != nil {
			el.AppendChild(fragment)
		}
	}
	node.SetNode(el)
	return nil
}

// Element applies an element-modifier helper to the node's element. The
// helper's return value is discarded.
func Element(node *dom.Morph, env *Env, scope *Scope, path string, params []interface{}, hash map[string]interface{}) error {
	helper, err := env.Helpers.Lookup(path)
	if err != nil {
		return err
	}
	_, err = helper(params, hash, &YieldOptions{Element: node.Element()})
	return err
}

// Subexpr resolves and calls a helper in nested-value position. The
// invocation contract matches Inline's helper call, but the raw value is
// returned instead of written to a node.
func Subexpr(env *Env, scope *Scope, name string, params []interface{}, hash map[string]interface{}) (interface{}, error) {
	helper, err := env.Helpers.Lookup(name)
	if err != nil {
		return nil, err
	}
	return helper(params, hash, &YieldOptions{})
}

// Partial renders a named template from the partial registry with the
// current self and returns its output fragment.
func Partial(node *dom.Morph, env *Env, scope *Scope, name string) (interface{}, error) {
	tpl, err := env.Partials.Lookup(name)
	if err != nil {
		return nil, err
	}
	result, err := tpl.Render(scope.Self(), env, scope, &RenderOptions{RenderNode: node}, nil)
	if err != nil {
		return nil, err
	}
	return result.Fragment(), nil
}

// Get resolves a dotted path against the scope chain.
func Get(env *Env, scope *Scope, path string) interface{} {
	return scope.Get(path)
}

// Concat joins already-resolved values into one string, in order, with no
// separator. Nil values contribute nothing.
func Concat(env *Env, params []interface{}) string {
	var b strings.Builder
	for _, p := range params {
		if p == nil {
			continue
		}
		b.WriteString(stringify(p))
	}
	return b.String()
}

// sameValue is the equality gate for cached node state. Values of different
// dynamic types, and values of uncomparable types, always count as changed.
func sameValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
