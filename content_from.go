package generable

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// From converts plain Go values into content: nil, bool, integers, floats,
// strings, gojson.Number, slices/arrays, string-keyed maps (keys sorted) and
// GeneratedContent itself. Pointers are followed; a nil pointer is null.
func From(v any) (GeneratedContent, error) {
	return fromValue(v, "")
}

// MustFrom is like From but panics on error.
func MustFrom(v any) GeneratedContent {
	c, err := From(v)
	if err != nil {
		panic(err)
	}
	return c
}

func fromValue(v any, path string) (GeneratedContent, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case GeneratedContent:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case gojson.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return GeneratedContent{}, Issues{{Path: normPath(path), Code: CodeInvalidType, Message: "invalid number literal", Cause: err, Offset: -1}}
		}
		return Number(f), nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null(), nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		items := make([]GeneratedContent, rv.Len())
		for i := range items {
			c, err := fromValue(rv.Index(i).Interface(), path+"/"+strconv.Itoa(i))
			if err != nil {
				return GeneratedContent{}, err
			}
			items[i] = c
		}
		return GeneratedContent{kind: KindArray, items: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Null(), nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		p := newProperties(len(keys))
		for _, k := range keys {
			mv := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			c, err := fromValue(mv.Interface(), path+"/"+escapePointer(k))
			if err != nil {
				return GeneratedContent{}, err
			}
			p.set(k, c)
		}
		return GeneratedContent{kind: KindObject, props: p}, nil
	}
	return GeneratedContent{}, Issues{{
		Path:    normPath(path),
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("unsupported Go type %T", v),
		Offset:  -1,
	}}
}

// ToAny converts content into plain Go values: nil, bool, float64, string,
// []any and map[string]any. Key order is lost; use Keys or All to keep it.
func (c GeneratedContent) ToAny() any {
	switch c.kind {
	case KindBool:
		return c.b
	case KindNumber:
		return c.num
	case KindString:
		return c.str
	case KindArray:
		out := make([]any, len(c.items))
		for i, it := range c.items {
			out[i] = it.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, c.props.len())
		for k, v := range c.All() {
			out[k] = v.ToAny()
		}
		return out
	}
	return nil
}
