package mapper

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
)

type (
	// Via indicates how a value reaches the object.
	Via string

	// Association links a data field to a method or property.
	Association struct {
		Field string `json:"-"`
		Via   Via    `json:"via"  validate:"oneof=call to"`
		Name  string `json:"name" validate:"required"`
	}

	// Definition declares the Associations supported by a
	// target type.  The table is built once by Define and
	// afterwards only replaced as a whole by Load.
	Definition struct {
		typ   reflect.Type
		name  string
		table atomic.Pointer[table]
	}

	// Builder registers the Associations of a Definition.
	// A Builder is only usable within the build step.
	Builder struct {
		def   *Definition
		table *table
		err   error
	}

	// table preserves registration order for stable serialization.
	table struct {
		entries []entry
		index   map[string]int
	}

	entry struct {
		Association
		member member
	}
)

const (
	ViaMethod   Via = "call"
	ViaProperty Via = "to"

	// ConstructorMethod is reserved for initialization
	// and cannot be the target of an Association.
	ConstructorMethod = "Constructor"
)


// Association

func (a Association) String() string {
	return fmt.Sprintf("%q %s %q", a.Field, a.Via, a.Name)
}


// Definition

// Type returns the identifier of the supported type.
func (d *Definition) Type() string {
	return d.name
}

// TargetType returns the supported type.
func (d *Definition) TargetType() reflect.Type {
	return d.typ
}

// Definition returns itself so a Definition can be
// used directly as the Source of a Mapper.
func (d *Definition) Definition() *Definition {
	return d
}

// Associations returns a copy of the table in registration order.
func (d *Definition) Associations() []Association {
	t := d.table.Load()
	if t == nil || len(t.entries) == 0 {
		return nil
	}
	assocs := make([]Association, len(t.entries))
	for i, e := range t.entries {
		assocs[i] = e.Association
	}
	return assocs
}

// Association returns the Association for a data field.
func (d *Definition) Association(field string) (Association, bool) {
	if t := d.table.Load(); t != nil {
		if i, ok := t.index[field]; ok {
			return t.entries[i].Association, true
		}
	}
	return Association{}, false
}

func (d *Definition) String() string {
	return fmt.Sprintf("definition %s", d.name)
}

// defined reports if the Definition was created by DefineType.
func (d *Definition) defined() bool {
	return d != nil && d.typ != nil
}

func (d *Definition) current() *table {
	if t := d.table.Load(); t != nil {
		return t
	}
	return &table{}
}


// Builder

// Type returns the type the associations are built for.
func (b *Builder) Type() reflect.Type {
	return b.def.typ
}

// MapToMethod associates a data field with a method which
// is called with the field value as its only argument.
func (b *Builder) MapToMethod(
	field  string,
	method string,
) *Builder {
	return b.add(Association{Field: field, Via: ViaMethod, Name: method})
}

// MapToProperty associates a data field with a property
// which is assigned the field value.
func (b *Builder) MapToProperty(
	field    string,
	property string,
) *Builder {
	return b.add(Association{Field: field, Via: ViaProperty, Name: property})
}

func (b *Builder) add(assoc Association) *Builder {
	if b.table == nil {
		panic("builder already built")
	}
	if e, err := b.def.resolve(assoc); err != nil {
		b.err = multierror.Append(b.err, err)
	} else {
		b.table.put(e)
	}
	return b
}


// table

func (t *table) put(e entry) {
	if i, ok := t.index[e.Field]; ok {
		t.entries[i] = e
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[e.Field] = len(t.entries)
	t.entries = append(t.entries, e)
}


// Define builds a Definition for T.
// build registers the associations and is called exactly once.
func Define[T any](
	build func(*Builder),
) (*Definition, error) {
	return DefineType(TypeOf[T](), build)
}

// DefineType builds a Definition for typ which must be
// a struct, a pointer to a struct or an interface.
func DefineType(
	typ   reflect.Type,
	build func(*Builder),
) (*Definition, error) {
	if typ == nil {
		panic("typ cannot be nil")
	}
	if build == nil {
		panic("build cannot be nil")
	}
	if typ.Kind() == reflect.Ptr && typ.Elem().Kind() == reflect.Struct {
		typ = typ.Elem()
	}
	switch typ.Kind() {
	case reflect.Struct, reflect.Interface:
	default:
		panic(fmt.Sprintf("definition: %v is not a struct or interface", typ))
	}
	def     := &Definition{typ: typ, name: TypeName(typ)}
	builder := Builder{def: def, table: &table{}}
	build(&builder)
	built := builder.table
	builder.table = nil
	if err := builder.err; err != nil {
		return nil, err
	}
	def.table.Store(built)
	return def, nil
}

// MustDefine builds a Definition for T and panics on failure.
func MustDefine[T any](
	build func(*Builder),
) *Definition {
	def, err := Define[T](build)
	if err != nil {
		panic(err)
	}
	return def
}
