package hooks

import (
	"errors"

	"github.com/remorph/remorph/dom"
)

// Template is the handle to a compiled template. Compilation happens
// elsewhere; the dispatcher only needs the declared block-parameter count and
// the render entry point.
//
// Template identity is correctness-critical: the yield protocol decides
// whether a prior render can be revalidated by comparing Template values
// with ==, so implementations must be pointer-backed (or otherwise
// stable-identity) handles, never structurally-compared values.
type Template interface {
	// Arity is the number of block parameters the template declares.
	Arity() int

	// Render runs the compiled template against a scope. A nil self means
	// the template reads self from the scope. blockArgs supplies values for
	// the declared block parameters, bound into the scope by the template.
	Render(self interface{}, env *Env, scope *Scope, opts *RenderOptions, blockArgs []interface{}) (RenderResult, error)
}

// RenderResult is produced by a template render. Revalidate re-runs the
// render with updated inputs without reallocating structure; it is only
// valid for the template identity that produced the result.
type RenderResult interface {
	Revalidate(self interface{}, blockArgs []interface{}) error

	// Fragment returns the rendered output fragment, or nil when the render
	// wrote directly into its render node.
	Fragment() interface{}
}

// RenderOptions carries the placement of a render.
type RenderOptions struct {
	// RenderNode is the morph the template renders into.
	RenderNode *dom.Morph

	// ContextualElement is the element the output will be inserted under,
	// for renders producing a detached fragment.
	ContextualElement *dom.Element
}

// Helper is the host-registered function invoked by the inline, block,
// subexpr, element, and component hooks. params are resolved positional
// values, hash resolved named values. For block helpers opts carries the
// yieldable template and inverse; otherwise it is empty but non-nil.
type Helper func(params []interface{}, hash map[string]interface{}, opts *YieldOptions) (interface{}, error)

// YieldOptions is the invocation context a helper receives. For block
// helpers, Template and Inverse wrap the two branches; the Yield, YieldItem,
// and WithLayout methods delegate to Template.
type YieldOptions struct {
	Template *Yieldable
	Inverse  *Yieldable

	// Element is set for element-modifier invocations.
	Element *dom.Element
}

// Yield renders the template branch. See Yieldable.Yield.
func (o *YieldOptions) Yield(blockArgs []interface{}, self interface{}) error {
	if o.Template == nil {
		return errors.New("yield: helper was invoked without a template block")
	}
	return o.Template.Yield(blockArgs, self)
}

// YieldItem renders one keyed child of the template branch. See
// Yieldable.YieldItem.
func (o *YieldOptions) YieldItem(key interface{}, blockArgs []interface{}) error {
	if o.Template == nil {
		return errors.New("yieldItem: helper was invoked without a template block")
	}
	return o.Template.YieldItem(key, blockArgs)
}

// WithLayout renders the template branch wrapped in a layout. See
// Yieldable.WithLayout.
func (o *YieldOptions) WithLayout(layout Template, self interface{}) error {
	if o.Template == nil {
		return errors.New("withLayout: helper was invoked without a template block")
	}
	return o.Template.WithLayout(layout, self)
}
