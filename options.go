package mapper

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/imdario/mergo"
	"github.com/miruken-go/mapper/config"
)

// OptionBool should be used in option structs instead of bool to
// be able to represent a bool not set.  Otherwise, the Zero value
// of a bool cannot be distinguished from false when merging.
type OptionBool byte

const (
	OptionNone OptionBool = iota
	OptionFalse
	OptionTrue
)

// Options control how a Mapper applies a Definition.
type Options struct {
	// Verbosity is the logr level used for mapping details.
	Verbosity int `path:"verbosity"`

	// FailFast stops at the first value that cannot be applied.
	// Otherwise all failures are collected and returned together.
	FailFast OptionBool `path:"failFast"`

	// Ignore lists data fields that are never applied.
	Ignore []string `path:"ignore"`
}

// Validate rejects Options that cannot be applied.
func (o *Options) Validate() error {
	if o.Verbosity < 0 {
		return errors.New("verbosity cannot be negative")
	}
	return nil
}

func (b OptionBool) Bool() bool {
	switch b {
	case OptionFalse: return false
	case OptionTrue: return true
	default:
		panic("only OptionFalse and OptionTrue can convert to a bool")
	}
}

func (b OptionBool) String() string {
	switch b {
	case OptionFalse: return "false"
	case OptionTrue: return "true"
	default: return "none"
	}
}

// UnmarshalText accepts any value understood by strconv.ParseBool.
func (b *OptionBool) UnmarshalText(text []byte) error {
	v, err := strconv.ParseBool(string(text))
	if err != nil {
		return fmt.Errorf("invalid option %q: %w", text, err)
	}
	*b = OptionOf(v)
	return nil
}

// OptionOf returns the OptionBool for v.
func OptionOf(v bool) OptionBool {
	if v {
		return OptionTrue
	}
	return OptionFalse
}


// MergeOptions fills the unset fields of into with those from
// and appends slices.
func MergeOptions(from, into *Options) error {
	if from == nil {
		panic("from cannot be nil")
	}
	if into == nil {
		panic("into cannot be nil")
	}
	return mergo.Merge(into, from, mergo.WithAppendSlice)
}

// LoadOptions reads Options at path from a configuration Provider.
func LoadOptions(
	provider config.Provider,
	path     string,
) (options Options, err error) {
	if IsNil(provider) {
		panic("provider cannot be nil")
	}
	err = config.Load(provider, path, false, &options)
	return
}
