package koanf

import (
	"encoding"
	"reflect"
	"strconv"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/maps"
	"github.com/miruken-go/mapper/config"
	"github.com/mitchellh/mapstructure"
)

// provider of configurations populated by the koanf library.
// https://github.com/knadh/koanf
type provider struct {
	k *koanf.Koanf
}

func (f *provider) Unmarshal(path string, flat bool, output any) error {
	return f.k.UnmarshalWithConf(path, output, koanf.UnmarshalConf{
		Tag:       "path",
		FlatPaths: flat,
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				BoolToTextHookFunc(),
				mapstructure.TextUnmarshallerHookFunc()),
			Result:           output,
			WeaklyTypedInput: true,
		},
	})
}

// P returns a config.Provider using the Koanf instance.
func P(k *koanf.Koanf) config.Provider {
	if k == nil {
		panic("k cannot be nil")
	}
	return &provider{k}
}

// BoolToTextHookFunc formats a bool as text when the target is an
// encoding.TextUnmarshaler so typed options like mapper.OptionBool
// load from json booleans as well as environment strings.
func BoolToTextHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.Bool {
			return data, nil
		}
		if !reflect.PtrTo(t).Implements(textUnmarshalerType) {
			return data, nil
		}
		return strconv.FormatBool(data.(bool)), nil
	}
}

// Merge extends the default merge to include slice conversions.
// Environment keys such as Mapper__Ignore__0 become list entries.
func Merge(src, dest map[string]any) error {
	ConvertSlices(src)
	maps.Merge(src, dest)
	return nil
}

// ConvertSlices converts maps with all integral keys into a
// slice with corresponding indices.  Nested maps are converted
// in place.  Returns the slice and true if m was converted.
func ConvertSlices(m map[string]any) (any, bool) {
	var (
		size    int
		indices = make(map[int]any, len(m))
		numeric = len(m) > 0
	)
	for k, v := range m {
		if c, ok := v.(map[string]any); ok {
			if cs, ok := ConvertSlices(c); ok {
				v, m[k] = cs, cs
			}
		}
		if !numeric {
			continue
		}
		if i, err := strconv.Atoi(k); err != nil || i < 0 {
			numeric = false
		} else {
			indices[i] = v
			if i >= size {
				size = i + 1
			}
		}
	}
	if !numeric {
		return nil, false
	}
	slice := make([]any, size)
	for i, v := range indices {
		slice[i] = v
	}
	return slice, true
}


var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
