// Package typename derives stable, package-qualified names for Go types.
package typename

import (
	"reflect"
	"sync"
)

var cache sync.Map // reflect.Type -> string

// For returns the name of T as "pkg/path.TypeName". Pointer types are
// named after their element type.
func For[T any]() string {
	return Of(reflect.TypeFor[T]())
}

// Of returns the name of t, or "" for a nil type.
func Of(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if n, ok := cache.Load(t); ok {
		return n.(string)
	}
	n := t.Name()
	if n == "" {
		// unnamed types, e.g. struct{} or []int
		n = t.String()
	} else if p := t.PkgPath(); p != "" {
		n = p + "." + n
	}
	cache.Store(t, n)
	return n
}
