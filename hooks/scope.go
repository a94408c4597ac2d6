package hooks

import (
	"reflect"
	"strings"

	"github.com/remorph/remorph/dom"
)

// BoundBlock is the callable a layout scope carries so the yield keyword can
// re-inject the block content supplied by the invoking helper.
type BoundBlock func(env *Env, blockArgs []interface{}, renderNode *dom.Morph) error

// Scope is a lexical environment with parent delegation. Lookup misses for
// locals, self, and the attached block fall through to the parent via a live
// reference, so rebinding on a parent is visible through existing children.
//
// Self and the block are mutable only through the Bind methods; a scope's
// locals hold exactly the names bound into it since creation.
type Scope struct {
	parent *Scope

	self     interface{}
	hasSelf  bool
	block    BoundBlock
	hasBlock bool

	locals map[string]interface{}
}

// NewScope allocates a scope delegating to parent. A nil parent produces a
// root scope: empty locals, nil self, nil block. The arity hint sizes the
// locals map for the block parameters the template will bind.
func NewScope(parent *Scope, arity int) *Scope {
	s := &Scope{parent: parent}
	if arity > 0 {
		s.locals = make(map[string]interface{}, arity)
	}
	return s
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Self resolves the scope's self, delegating to the parent until a scope in
// the chain has bound one.
func (s *Scope) Self() interface{} {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.hasSelf {
			return sc.self
		}
	}
	return nil
}

// BindSelf sets self on this scope. Descendants created before or after the
// call observe the new value unless they bind their own.
func (s *Scope) BindSelf(self interface{}) {
	s.self = self
	s.hasSelf = true
}

// BindLocal defines or overwrites one local binding, visible to this scope
// and its descendants.
func (s *Scope) BindLocal(name string, value interface{}) {
	if s.locals == nil {
		s.locals = make(map[string]interface{})
	}
	s.locals[name] = value
}

// BindBlock attaches the callable block a layout yields back into.
func (s *Scope) BindBlock(b BoundBlock) {
	s.block = b
	s.hasBlock = true
}

// AttachedBlock resolves the block up the chain, or nil.
func (s *Scope) AttachedBlock() BoundBlock {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.hasBlock {
			return sc.block
		}
	}
	return nil
}

// Local resolves a name against this scope's locals and then up the chain.
func (s *Scope) Local(name string) (interface{}, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.locals[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetRoot resolves the first segment of a path: a local declared anywhere up
// the chain wins, otherwise the name projects off self.
func (s *Scope) GetRoot(key string) interface{} {
	if v, ok := s.Local(key); ok {
		return v
	}
	return GetChild(s.Self(), key)
}

// Get resolves a dotted path. The empty path is self itself. The first
// segment goes through GetRoot, the rest through GetChild, and the walk
// short-circuits to the current value once an intermediate is nil-like.
func (s *Scope) Get(path string) interface{} {
	if path == "" {
		return s.Self()
	}
	segments := strings.Split(path, ".")
	value := s.GetRoot(segments[0])
	for _, key := range segments[1:] {
		if isNullish(value) {
			return value
		}
		value = GetChild(value, key)
	}
	return value
}

// GetChild projects a named property off a value: map entries keyed by
// string, exported struct fields, through pointers and interfaces. Nil-like
// values and missing names resolve to nil rather than failing.
func GetChild(value interface{}, key string) interface{} {
	if isNullish(value) {
		return nil
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		fv := rv.FieldByName(key)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil
		}
		return fv.Interface()
	}
	return nil
}

// isNullish reports whether a resolved value should stop a path walk: nil,
// or a nil pointer, map, slice, interface, channel, or func.
func isNullish(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
