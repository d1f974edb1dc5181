package toml

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Unmarshal parses TOML data into v; keys without a matching field are ignored
func Unmarshal(data []byte, v any) error {
	return unmarshal(data, v, false)
}

// UnmarshalStrict is Unmarshal that rejects keys with no matching field
func UnmarshalStrict(data []byte, v any) error {
	return unmarshal(data, v, true)
}

func unmarshal(data []byte, v any, strict bool) error {
	tree, err := Parse(data)
	if err != nil {
		return err
	}
	return decoder{strict: strict}.decode(tree, v)
}

// Decode maps a parsed tree onto v using reflection.
// Field keys come from `toml` tags and fall back to field names.
func Decode(data any, v any) error {
	return decoder{}.decode(data, v)
}

type decoder struct {
	strict bool
}

func (d decoder) decode(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("toml: target must be a non-nil pointer")
	}
	return d.value(data, val.Elem(), "")
}

// value decodes data into val; path names the key for error messages
func (d decoder) value(data any, val reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	// Strings may target types that parse themselves
	if s, ok := data.(string); ok {
		if val.Type() == durationType {
			dur, err := time.ParseDuration(s)
			if err != nil {
				return pathError(path, err)
			}
			val.SetInt(int64(dur))
			return nil
		}
		if val.CanAddr() && val.Addr().Type().Implements(textUnmarshalerType) {
			if err := val.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return pathError(path, err)
			}
			return nil
		}
	}

	switch val.Kind() {
	case reflect.Ptr:
		elem := reflect.New(val.Type().Elem())
		if err := d.value(data, elem.Elem(), path); err != nil {
			return err
		}
		val.Set(elem)

	case reflect.Struct:
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		return d.structFields(m, val, path)

	case reflect.Slice:
		items, ok := data.([]any)
		if !ok {
			tables, ok := data.([]map[string]any)
			if !ok {
				return typeError(path, "array", data)
			}
			items = make([]any, len(tables))
			for i, t := range tables {
				items[i] = t
			}
		}
		out := reflect.MakeSlice(val.Type(), len(items), len(items))
		for i, item := range items {
			if err := d.value(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return pathError(path, fmt.Errorf("only map[string]T is supported"))
		}
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		out := reflect.MakeMap(val.Type())
		for k, item := range m {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := d.value(item, elem, join(path, k)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), elem)
		}
		val.Set(out)

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return typeError(path, "integer", data)
		}
		if val.OverflowInt(n) {
			return pathError(path, fmt.Errorf("%d overflows %s", n, val.Type()))
		}
		val.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := data.(int64)
		if !ok {
			return typeError(path, "integer", data)
		}
		if n < 0 || val.OverflowUint(uint64(n)) {
			return pathError(path, fmt.Errorf("%d out of range for %s", n, val.Type()))
		}
		val.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		switch f := data.(type) {
		case float64:
			if val.Kind() == reflect.Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
				return pathError(path, fmt.Errorf("%g overflows float32", f))
			}
			val.SetFloat(f)
		case int64:
			val.SetFloat(float64(f))
		default:
			return typeError(path, "float", data)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return typeError(path, "string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return typeError(path, "boolean", data)
		}
		val.SetBool(b)

	default:
		return pathError(path, fmt.Errorf("unsupported type %s", val.Type()))
	}

	return nil
}

func (d decoder) structFields(data map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	seen := make(map[string]bool, len(data))

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		key := field.Name
		if tag := field.Tag.Get("toml"); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}

		item, ok := data[key]
		if !ok {
			continue
		}
		seen[key] = true
		if err := d.value(item, val.Field(i), join(path, key)); err != nil {
			return err
		}
	}

	if d.strict && len(seen) < len(data) {
		var unknown []string
		for k := range data {
			if !seen[k] {
				unknown = append(unknown, join(path, k))
			}
		}
		sort.Strings(unknown)
		return fmt.Errorf("toml: unknown key %s", strings.Join(unknown, ", "))
	}
	return nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathError(path string, err error) error {
	if path == "" {
		return fmt.Errorf("toml: %w", err)
	}
	return fmt.Errorf("toml: %s: %w", path, err)
}

func typeError(path, want string, got any) error {
	return pathError(path, fmt.Errorf("expected %s, got %T", want, got))
}
