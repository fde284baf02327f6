package mapper

import (
	"errors"
	"fmt"
	"io"

	play "github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/json-iterator/go"
)

// Record is the plain form of a Definition exchanged with a codec.
type Record struct {
	Type         string
	Associations []Association
}


// Record returns the plain form of the Definition.
func (d *Definition) Record() Record {
	return Record{Type: d.name, Associations: d.Associations()}
}

// Load replaces all associations with those in the record.
// The record must be for the same type and every association
// must resolve, otherwise the Definition is left unchanged.
// A zero Definition has no type and cannot be loaded.
func (d *Definition) Load(record Record) error {
	if !d.defined() {
		return &DeserializeTypeError{From: record.Type, To: TypeName(nil)}
	}
	if record.Type != d.name {
		return &DeserializeTypeError{From: record.Type, To: d.name}
	}
	var invalid error
	t := &table{}
	for _, assoc := range record.Associations {
		if err := validate.Struct(assoc); err != nil {
			invalid = multierror.Append(invalid, &InvalidDataError{
				Reason: fmt.Errorf("association %q: %w", assoc.Field, err)})
			continue
		}
		if e, err := d.resolve(assoc); err != nil {
			invalid = multierror.Append(invalid, err)
		} else {
			t.put(e)
		}
	}
	if invalid != nil {
		return invalid
	}
	d.table.Store(t)
	return nil
}

// Serialize encodes the Definition as
//
//	["<type>", {"<field>": {"via": "call"|"to", "name": "<member>"}}]
//
// Fields are written in registration order.
func (d *Definition) Serialize() string {
	return string(d.Record().encode())
}

// Deserialize replaces all associations with those encoded
// by Serialize.
func (d *Definition) Deserialize(serialized string) error {
	record, err := decodeRecord([]byte(serialized))
	if err != nil {
		return err
	}
	return d.Load(record)
}

func (d *Definition) MarshalText() ([]byte, error) {
	return d.Record().encode(), nil
}

func (d *Definition) UnmarshalText(text []byte) error {
	record, err := decodeRecord(text)
	if err != nil {
		return err
	}
	return d.Load(record)
}


// Record

func (r Record) encode() []byte {
	stream := codec.BorrowStream(nil)
	defer codec.ReturnStream(stream)
	stream.WriteArrayStart()
	stream.WriteString(r.Type)
	stream.WriteMore()
	stream.WriteObjectStart()
	for i, assoc := range r.Associations {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(assoc.Field)
		stream.WriteObjectStart()
		stream.WriteObjectField("via")
		stream.WriteString(string(assoc.Via))
		stream.WriteMore()
		stream.WriteObjectField("name")
		stream.WriteString(assoc.Name)
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
	stream.WriteArrayEnd()
	return append([]byte(nil), stream.Buffer()...)
}

func decodeRecord(data []byte) (record Record, err error) {
	iter := codec.BorrowIterator(data)
	defer codec.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ArrayValue {
		return record, &InvalidDataError{Reason: errors.New("expected an array")}
	}
	var count int
	for iter.ReadArray() {
		switch count {
		case 0:
			if iter.WhatIsNext() != jsoniter.StringValue {
				return record, &InvalidDataError{Reason: errors.New("type must be a string")}
			}
			record.Type = iter.ReadString()
		case 1:
			if record.Associations, err = readAssociations(iter); err != nil {
				return record, &InvalidDataError{Reason: err}
			}
		default:
			iter.Skip()
		}
		count++
	}
	if iter.Error != nil {
		return record, &InvalidDataError{Reason: iter.Error}
	}
	if count != 2 {
		return record, &InvalidDataError{
			Reason: fmt.Errorf("expected 2 elements, found %d", count)}
	}
	if iter.WhatIsNext(); iter.Error != io.EOF {
		return record, &InvalidDataError{Reason: errors.New("unexpected trailing data")}
	}
	return record, nil
}

func readAssociations(
	iter *jsoniter.Iterator,
) (assocs []Association, err error) {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			var assoc Association
			iter.ReadVal(&assoc)
			assoc.Field = field
			assocs = append(assocs, assoc)
			return iter.Error == nil
		})
		return assocs, iter.Error
	case jsoniter.ArrayValue:
		// an empty list is an empty table
		if iter.ReadArray() {
			return nil, errors.New("associations must be an object")
		}
		return nil, iter.Error
	default:
		iter.Skip()
		return nil, errors.New("associations must be an object")
	}
}


var (
	codec    = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = play.New()
)
