package getconf

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Scan resolves every `ini`-tagged field of the target struct through the
// finder chain and decodes the found values into it. Fields with no value
// in any source keep whatever the caller pre-set, so a populated struct
// doubles as the default set. Field names map to entry names via the tag,
// or lower-cased when untagged; a "-" tag skips the field.
//
// Duration fields accept the <number><unit> format of GetDuration, slice
// fields the separator-joined form of GetList.
func (g *Getter) Scan(section string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("scan target must point to a struct, got %T", target)
	}

	values := make(map[string]string)
	structType := elem.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("ini")
		if tag == "-" {
			continue
		}
		entry := strings.ToLower(field.Name)
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			entry = name
		}

		key := entry
		if section != "" {
			key = section + "." + entry
		}
		raw, found, err := g.resolve(key, "", typeHintFor(field.Type), formatFieldValue(elem.Field(i)))
		if err != nil {
			return err
		}
		if found {
			values[entry] = raw
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "ini",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(g.listSep),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("%w: section %q: %v", ErrBadValue, section, err)
	}
	return nil
}

// stringToDurationHookFunc converts strings to time.Duration using the
// <number><unit> format shared with GetDuration.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return parseDuration(data.(string))
	}
}

func typeHintFor(t reflect.Type) string {
	if t == reflect.TypeOf(time.Duration(0)) {
		return typeDuration
	}
	switch t.Kind() {
	case reflect.Bool:
		return typeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typeInt
	case reflect.Float32, reflect.Float64:
		return typeFloat
	case reflect.Slice:
		return typeList
	default:
		return typeString
	}
}

func formatFieldValue(v reflect.Value) string {
	switch value := v.Interface().(type) {
	case time.Duration:
		return value.String()
	case bool:
		return formatBool(value)
	case []string:
		return strings.Join(value, ",")
	default:
		return fmt.Sprintf("%v", value)
	}
}
