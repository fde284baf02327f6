package mapper

import (
	"reflect"
)

// TypeOf returns the reflect.Type of the generic argument.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// IsNil determines if val is untyped nil or a typed nil.
func IsNil(val any) bool {
	if val == nil {
		return true
	}
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		 reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// TypeName returns the package qualified name of typ.
// This is the identifier written when a Definition is serialized.
func TypeName(typ reflect.Type) string {
	if typ == nil {
		return "nil"
	}
	if typ.Kind() == reflect.Ptr {
		return "*" + TypeName(typ.Elem())
	}
	if name := typ.Name(); len(name) > 0 {
		if pkg := typ.PkgPath(); len(pkg) > 0 {
			return pkg + "." + name
		}
		return name
	}
	return typ.String()
}

func nillable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		 reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	}
	return false
}

var errorType = TypeOf[error]()
