// Package invariant provides contract assertions for remorph.
//
// Assertions express function contracts: Precondition for caller
// expectations, Invariant for internal consistency. All functions panic on
// violation - these are programming errors, not user errors, and a render
// pass must never continue past one.
package invariant

import (
	"fmt"
	"reflect"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil checks that a value is not nil, including typed nils hiding inside
// interface values.
func NotNil(value interface{}, name string) {
	if isNil(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func fail(kind, format string, args ...interface{}) {
	panic(fmt.Sprintf("%s VIOLATION: %s", kind, fmt.Sprintf(format, args...)))
}
