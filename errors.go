package mapper

import (
	"errors"
	"fmt"
)

type (
	// TypeMismatchError reports an object that is not of
	// the type supported by the Definition.
	TypeMismatchError struct {
		Expected string
		Actual   string
	}

	// UnsupportedMappingError reports an Association that can
	// never be applied, such as mapping to the Constructor.
	UnsupportedMappingError struct {
		Type        string
		Association Association
		Reason      error
	}

	// UnresolvedMemberError reports an Association naming a
	// method or property the target type does not have.
	UnresolvedMemberError struct {
		Type        string
		Association Association
		Reason      error
	}

	// InvalidDataError reports a serialized Definition that
	// cannot be decoded.
	InvalidDataError struct {
		Reason error
	}

	// DeserializeTypeError reports a serialized Definition
	// built for a different type than the receiver.
	DeserializeTypeError struct {
		From string
		To   string
	}

	// ApplyError reports a value that could not be delivered
	// to the object.
	ApplyError struct {
		Association Association
		Reason      error
	}
)


func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("object must be of type %s, object of type %s given",
		e.Expected, e.Actual)
}

func (e *UnsupportedMappingError) Error() string {
	return fmt.Sprintf("%s: unsupported mapping %v: %v", e.Type, e.Association, e.Reason)
}

func (e *UnsupportedMappingError) Unwrap() error { return e.Reason }

func (e *UnresolvedMemberError) Error() string {
	return fmt.Sprintf("%s: unresolved member %v: %v", e.Type, e.Association, e.Reason)
}

func (e *UnresolvedMemberError) Unwrap() error { return e.Reason }

func (e *InvalidDataError) Error() string {
	if e.Reason == nil {
		return "cannot unserialize, the data is invalid"
	}
	return fmt.Sprintf("cannot unserialize, the data is invalid: %v", e.Reason)
}

func (e *InvalidDataError) Unwrap() error { return e.Reason }

func (e *DeserializeTypeError) Error() string {
	return fmt.Sprintf("cannot unserialize mappings from %q to %q", e.From, e.To)
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("cannot map %v: %v", e.Association, e.Reason)
}

func (e *ApplyError) Unwrap() error { return e.Reason }


var (
	ErrConstructorMapping = errors.New("cannot map data via the constructor")
	ErrInterfaceProperty  = errors.New("properties cannot be mapped on an interface")
)
