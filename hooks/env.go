// Package hooks is the runtime dispatch layer between compiled templates and
// a host environment. It owns the lexical scope chain, the host-hook
// protocol a compiled template's render walk invokes, and the incremental
// re-render machinery: identity-based revalidation of previously rendered
// blocks and keyed reconciliation of ordered child lists.
//
// Rendering is single-threaded and synchronous. Every hook is a direct call;
// helpers re-enter the pipeline recursively on the same stack, and exactly
// one render pass is in flight per morph at a time.
package hooks

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/remorph/remorph/dom"
)

// Keyword is a reserved-path handler intercepted before helper lookup.
type Keyword func(node *dom.Morph, env *Env, scope *Scope, params []interface{}, hash map[string]interface{}) error

// Env is the host environment threaded explicitly through every hook call:
// helper and partial registries, the element factory, reserved keywords, and
// a diagnostics logger. There are no ambient globals.
type Env struct {
	Helpers  *HelperRegistry
	Partials *PartialRegistry
	DOM      *dom.Helper

	keywords map[string]Keyword
	logger   *zap.Logger
}

// Option configures an Env.
type Option func(*Env)

// WithLogger installs a diagnostics logger. The default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// WithDOM replaces the element factory.
func WithDOM(h *dom.Helper) Option {
	return func(e *Env) { e.DOM = h }
}

// NewEnv builds an environment with empty registries and the partial and
// yield keywords installed.
func NewEnv(opts ...Option) *Env {
	e := &Env{
		Helpers:  NewHelperRegistry(),
		Partials: NewPartialRegistry(),
		DOM:      dom.NewHelper(),
		keywords: make(map[string]Keyword, 2),
		logger:   zap.NewNop(),
	}
	e.keywords["partial"] = partialKeyword
	e.keywords["yield"] = yieldKeyword
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterKeyword installs or replaces a reserved-path handler.
func (e *Env) RegisterKeyword(name string, kw Keyword) {
	e.keywords[name] = kw
}

// Keyword returns a reserved-path handler by name.
func (e *Env) Keyword(name string) (Keyword, bool) {
	kw, ok := e.keywords[name]
	return kw, ok
}

// Logger returns the diagnostics logger.
func (e *Env) Logger() *zap.Logger { return e.logger }

// partialKeyword renders a named partial into the node with the current
// self. {{partial "x"}} routes here instead of through helper lookup.
func partialKeyword(node *dom.Morph, env *Env, scope *Scope, params []interface{}, hash map[string]interface{}) error {
	if len(params) == 0 {
		return fmt.Errorf("partial: a template name is required")
	}
	name, ok := params[0].(string)
	if !ok {
		return fmt.Errorf("partial: template name must be a string, got %T", params[0])
	}
	fragment, err := Partial(node, env, scope, name)
	if err != nil {
		return err
	}
	if fragment != nil {
		node.SetContent(fragment)
	}
	return nil
}

// yieldKeyword invokes the block bound into the current scope chain,
// passing through params and the current render node. This is how a layout
// re-injects the block content supplied by its invoking helper.
func yieldKeyword(node *dom.Morph, env *Env, scope *Scope, params []interface{}, hash map[string]interface{}) error {
	block := scope.AttachedBlock()
	if block == nil {
		return fmt.Errorf("yield: no block bound in scope")
	}
	return block(env, params, node)
}
