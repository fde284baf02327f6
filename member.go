package mapper

import (
	"errors"
	"fmt"
	"reflect"
)

type (
	// member delivers a value to an object.
	// Members are resolved once when an Association is added.
	member interface {
		apply(object reflect.Value, value any) error
	}

	// propertyMember assigns an exported struct field.
	propertyMember struct {
		index []int
		typ   reflect.Type
	}

	// methodMember calls a single argument method.
	// index is -1 when the method must be looked up by name
	// on the dynamic type of an interface target.
	methodMember struct {
		name  string
		index int
		arg   reflect.Type
		fails bool
	}
)


// propertyMember

func (p *propertyMember) apply(
	object reflect.Value,
	value  any,
) error {
	arg, err := argument(p.typ, value)
	if err != nil {
		return err
	}
	field, err := object.Elem().FieldByIndexErr(p.index)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return errors.New("field cannot be set")
	}
	field.Set(arg)
	return nil
}


// methodMember

func (m *methodMember) apply(
	object reflect.Value,
	value  any,
) error {
	var method reflect.Value
	if m.index >= 0 {
		method = object.Method(m.index)
	} else {
		method = object.MethodByName(m.name)
	}
	if !method.IsValid() {
		return fmt.Errorf("method %q not found on %v", m.name, object.Type())
	}
	arg, err := argument(m.arg, value)
	if err != nil {
		return err
	}
	out := method.Call([]reflect.Value{arg})
	if m.fails {
		if err, _ := out[0].Interface().(error); err != nil {
			return err
		}
	}
	return nil
}


// resolve binds an Association to a member of the target type.
func (d *Definition) resolve(
	assoc Association,
) (entry, error) {
	switch assoc.Via {
	case ViaMethod:
		if assoc.Name == ConstructorMethod {
			return entry{}, &UnsupportedMappingError{d.name, assoc, ErrConstructorMapping}
		}
		if d.typ.Kind() == reflect.Interface {
			if method, ok := d.typ.MethodByName(assoc.Name); ok {
				return d.bindMethod(assoc, method.Type, 0, -1)
			}
		} else if method, ok := reflect.PtrTo(d.typ).MethodByName(assoc.Name); ok {
			return d.bindMethod(assoc, method.Type, 1, method.Index)
		}
		return entry{}, &UnresolvedMemberError{d.name, assoc,
			errors.New("method not found")}
	case ViaProperty:
		if d.typ.Kind() == reflect.Interface {
			return entry{}, &UnsupportedMappingError{d.name, assoc, ErrInterfaceProperty}
		}
		field, ok := d.typ.FieldByName(assoc.Name)
		if !ok {
			return entry{}, &UnresolvedMemberError{d.name, assoc,
				errors.New("field not found")}
		}
		if !field.IsExported() {
			return entry{}, &UnresolvedMemberError{d.name, assoc,
				errors.New("field is not exported")}
		}
		return entry{assoc, &propertyMember{field.Index, field.Type}}, nil
	default:
		return entry{}, &UnsupportedMappingError{d.name, assoc,
			fmt.Errorf("unknown via %q", assoc.Via)}
	}
}

func (d *Definition) bindMethod(
	assoc    Association,
	funcType reflect.Type,
	skip     int,
	index    int,
) (entry, error) {
	if funcType.NumIn() - skip != 1 || funcType.IsVariadic() {
		return entry{}, &UnresolvedMemberError{d.name, assoc,
			errors.New("method must accept exactly one argument")}
	}
	var fails bool
	switch funcType.NumOut() {
	case 0:
	case 1:
		if funcType.Out(0) != errorType {
			return entry{}, &UnresolvedMemberError{d.name, assoc,
				fmt.Errorf("method can only return %v", errorType)}
		}
		fails = true
	default:
		return entry{}, &UnresolvedMemberError{d.name, assoc,
			fmt.Errorf("method can only return %v", errorType)}
	}
	return entry{assoc, &methodMember{
		name:  assoc.Name,
		index: index,
		arg:   funcType.In(skip),
		fails: fails,
	}}, nil
}

// check ensures object is a non-nil *T for struct types
// or a non-nil implementation for interface types.
func (d *Definition) check(
	object any,
) (reflect.Value, error) {
	if object == nil {
		return reflect.Value{}, &TypeMismatchError{d.expected(), "nil"}
	}
	v   := reflect.ValueOf(object)
	typ := v.Type()
	switch d.typ.Kind() {
	case reflect.Interface:
		if typ.Implements(d.typ) && !IsNil(object) {
			return v, nil
		}
	case reflect.Struct:
		if typ == reflect.PtrTo(d.typ) && !v.IsNil() {
			return v, nil
		}
	}
	actual := TypeName(typ)
	if IsNil(object) {
		actual += " (nil)"
	}
	return reflect.Value{}, &TypeMismatchError{d.expected(), actual}
}

func (d *Definition) expected() string {
	if d.typ.Kind() == reflect.Struct {
		return TypeName(reflect.PtrTo(d.typ))
	}
	return d.name
}

// argument prepares value for delivery to typ.
// No conversions are performed.
func argument(
	typ   reflect.Type,
	value any,
) (reflect.Value, error) {
	if value == nil {
		if nillable(typ) {
			return reflect.Zero(typ), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %v", typ)
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(typ) {
		return reflect.Value{}, fmt.Errorf("%v is not assignable to %v", v.Type(), typ)
	}
	return v, nil
}
