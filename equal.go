package reactivity

import (
	"math"
	"reflect"
	"slices"
)

// EqualFunc reports whether newValue can be treated as oldValue.
type EqualFunc[T any] func(newValue, oldValue T) bool

// Config customizes a node.
type Config[T any] struct {
	// Equal defaults to StrictEqual. Use NotEqual to disable memoization.
	Equal EqualFunc[T]
	// Name shows up in diagnostics.
	Name string
	// OnDisposeValue is called with a value that was replaced or that the
	// node held when it was disposed.
	OnDisposeValue func(oldValue T)
}

func configOf[T any](cfg []Config[T]) Config[T] {
	var c Config[T]
	if len(cfg) > 0 {
		c = cfg[0]
	}
	if c.Equal == nil {
		c.Equal = StrictEqual[T]
	}
	return c
}

// StrictEqual compares with ==, except that NaN equals NaN. Values == cannot
// compare are walked instead: slices, maps and funcs are equal only when
// they share the same backing storage or code, structs and arrays when every
// element is.
func StrictEqual[T any](newValue, oldValue T) bool {
	return strictEqualAny(any(newValue), any(oldValue))
}

func strictEqualAny(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = sameValue(reflect.ValueOf(a), reflect.ValueOf(b))
		}
	}()
	if a == b {
		return true
	}
	// NaN may hide at the top level or inside a struct or array
	switch va := reflect.ValueOf(a); va.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Struct, reflect.Array:
		return sameValue(va, reflect.ValueOf(b))
	}
	return false
}

// sameValue is the element-wise form of strictEqualAny. It works on
// unexported fields, which cannot be turned back into interfaces.
func sameValue(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		x, y := a.Float(), b.Float()
		return x == y || math.IsNaN(x) && math.IsNaN(y)
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	case reflect.Map, reflect.Func:
		return a.Pointer() == b.Pointer()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return sameValue(a.Elem(), b.Elem())
	case reflect.Struct:
		for i := range a.NumField() {
			if !sameValue(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := range a.Len() {
			if !sameValue(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}

// NotEqual treats every value as new.
func NotEqual[T any](T, T) bool { return false }

// SliceShallowEqual compares two slices element by element.
func SliceShallowEqual[E comparable](newValue, oldValue []E) bool {
	return slices.Equal(newValue, oldValue)
}
