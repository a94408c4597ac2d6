package hooks

import (
	"go.uber.org/zap"

	"github.com/remorph/remorph/dom"
	"github.com/remorph/remorph/internal/invariant"
)

// Yieldable wraps a template as a callable unit bound to an environment,
// scope, and render node. Block helpers receive yieldables as their
// invocation context and call back into Yield, YieldItem, or WithLayout to
// render their body.
type Yieldable struct {
	template Template
	env      *Env
	scope    *Scope
	node     *dom.Morph
	prune    *pruneCursor
}

// wrapForHelper builds the yieldable a helper receives. A nil template
// yields a nil Yieldable so helpers can detect a missing inverse branch.
func wrapForHelper(template Template, env *Env, scope *Scope, node *dom.Morph, prune *pruneCursor) *Yieldable {
	if template == nil {
		return nil
	}
	return &Yieldable{template: template, env: env, scope: scope, node: node, prune: prune}
}

// Arity is the wrapped template's declared block-parameter count.
func (y *Yieldable) Arity() int { return y.template.Arity() }

// Yield renders the wrapped template into the render node, or revalidates
// the previous render in place when it is stable.
//
// The stability check: the prior render recorded on the node must not be a
// layout render, and must have the same compiled-template identity. When it
// holds, the prior result's Revalidate runs with the new inputs and no
// structure is reallocated.
//
// On a fresh render, a new scope is allocated only when something about the
// lexical environment has to change: a self is supplied, there is no parent
// scope, or the template declares block parameters. Otherwise the parent
// scope is reused. A nil self means "unchanged": the template reads self
// from the scope.
func (y *Yieldable) Yield(blockArgs []interface{}, self interface{}) error {
	st := stateOf(y.node)

	if st.lastYielded != nil && st.lastYielded.Layout == nil && st.lastYielded.Template == y.template && st.lastResult != nil {
		st.lastYielded = &YieldRecord{Self: self, Template: y.template}
		return st.lastResult.Revalidate(self, blockArgs)
	}

	scope := y.scope
	if self != nil || scope == nil || y.template.Arity() > 0 {
		scope = NewScope(y.scope, y.template.Arity())
	}
	if self != nil {
		scope.BindSelf(self)
	}

	st.clearList()
	result, err := y.template.Render(self, y.env, scope, &RenderOptions{RenderNode: y.node}, blockArgs)
	if err != nil {
		return err
	}
	st.lastResult = result
	st.lastYielded = &YieldRecord{Self: self, Template: y.template}
	return nil
}

// WithLayout renders the wrapped template's content through a layout.
//
// The stability check requires both identities to match: the wrapped
// template and the layout. A layout render is never reused across a
// different body template, and a body render is never reused across a
// different layout.
//
// A layout does not inherit the invoking lexical scope. It renders in a
// fresh root scope carrying only what is explicitly bound: the supplied
// self, and a block that the yield keyword inside the layout invokes to
// inject the original template's content.
func (y *Yieldable) WithLayout(layout Template, self interface{}) error {
	invariant.NotNil(layout, "layout")
	st := stateOf(y.node)

	if st.lastYielded != nil && st.lastYielded.Template == y.template && st.lastYielded.Layout == layout && st.lastResult != nil {
		st.lastYielded = &YieldRecord{Self: self, Template: y.template, Layout: layout}
		return st.lastResult.Revalidate(self, nil)
	}

	layoutScope := NewScope(nil, layout.Arity())
	if self != nil {
		layoutScope.BindSelf(self)
	}
	layoutScope.BindBlock(y.layoutBlock())

	st.clearList()
	y.env.logger.Debug("layout render", zap.Int("arity", layout.Arity()))
	result, err := layout.Render(self, y.env, layoutScope, &RenderOptions{RenderNode: y.node}, nil)
	if err != nil {
		return err
	}
	st.lastResult = result
	st.lastYielded = &YieldRecord{Self: self, Template: y.template, Layout: layout}
	return nil
}

// layoutBlock builds the callable bound into a layout scope. When the yield
// keyword inside the layout invokes it, the block revalidates its own prior
// render for that node if one exists, or first-renders the original wrapped
// template - not the layout - with the original parent scope, allocating a
// child scope only when the template declares block parameters.
func (y *Yieldable) layoutBlock() BoundBlock {
	template, parentScope := y.template, y.scope
	return func(env *Env, blockArgs []interface{}, renderNode *dom.Morph) error {
		st := stateOf(renderNode)
		if st.lastResult != nil {
			return st.lastResult.Revalidate(nil, blockArgs)
		}
		scope := parentScope
		if template.Arity() > 0 {
			scope = NewScope(parentScope, template.Arity())
		}
		result, err := template.Render(nil, env, scope, &RenderOptions{RenderNode: renderNode}, blockArgs)
		if err != nil {
			return err
		}
		st.lastResult = result
		st.lastYielded = &YieldRecord{Template: template}
		return nil
	}
}
