package dsl

import (
	"math"
	"strconv"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/i18n"
)

// String converts string content.
func String(gs ...generable.Guide) *Converter[string] { return StringOf[string](gs...) }

// StringOf converts string content into a domain type with underlying string.
func StringOf[T ~string](gs ...generable.Guide) *Converter[T] {
	return &Converter[T]{
		schema: generable.StringSchema(gs...),
		decode: func(c generable.GeneratedContent) (T, error) {
			s, _ := c.Text()
			return T(s), nil
		},
		encode: func(v T) generable.GeneratedContent { return generable.String(string(v)) },
	}
}

// Bool converts boolean content.
func Bool() *Converter[bool] {
	return &Converter[bool]{
		schema: generable.BooleanSchema(),
		decode: func(c generable.GeneratedContent) (bool, error) {
			b, _ := c.BoolValue()
			return b, nil
		},
		encode: generable.Bool,
	}
}

// Float converts any number.
func Float(gs ...generable.Guide) *Converter[float64] {
	return &Converter[float64]{
		schema: generable.NumberSchema(gs...),
		decode: func(c generable.GeneratedContent) (float64, error) {
			f, _ := c.Float()
			return f, nil
		},
		encode: generable.Number,
	}
}

// Int converts integral numbers. A fractional number is invalid_type; an
// integral number outside the range of int is overflow.
func Int(gs ...generable.Guide) *Converter[int] {
	return &Converter[int]{
		schema: generable.IntegerSchema(gs...),
		decode: func(c generable.GeneratedContent) (int, error) {
			i, ok := c.Int64()
			if !ok || int64(int(i)) != i {
				return 0, overflowIssue(c, strconv.IntSize)
			}
			return int(i), nil
		},
		encode: func(v int) generable.GeneratedContent { return generable.Int(int64(v)) },
	}
}

// Int64 is Int for int64 targets.
func Int64(gs ...generable.Guide) *Converter[int64] {
	return &Converter[int64]{
		schema: generable.IntegerSchema(gs...),
		decode: func(c generable.GeneratedContent) (int64, error) {
			i, ok := c.Int64()
			if !ok {
				return 0, overflowIssue(c, 64)
			}
			return i, nil
		},
		encode: generable.Int,
	}
}

func overflowIssue(c generable.GeneratedContent, bits int) generable.Issues {
	f, _ := c.Float()
	return generable.Issues{{
		Path:    "/",
		Code:    generable.CodeOverflow,
		Message: i18n.T(generable.CodeOverflow, nil),
		Offset:  -1,
		Params:  map[string]any{"got": f, "bits": bits, "max": float64(math.MaxInt64)},
	}}
}

// Enum converts a string restricted to values.
func Enum[T ~string](values ...T) *Converter[T] {
	vs := make([]string, len(values))
	for i, v := range values {
		vs[i] = string(v)
	}
	return &Converter[T]{
		schema: generable.EnumSchema(vs...),
		decode: func(c generable.GeneratedContent) (T, error) {
			s, _ := c.Text()
			return T(s), nil
		},
		encode: func(v T) generable.GeneratedContent { return generable.String(string(v)) },
	}
}

// Content passes content through after validating it against s in full. It
// binds runtime schemas (see package dynamic) where no Go type exists.
func Content(s *generable.GenerationSchema) *Converter[generable.GeneratedContent] {
	return &Converter[generable.GeneratedContent]{
		schema: s,
		full:   true,
		decode: func(c generable.GeneratedContent) (generable.GeneratedContent, error) {
			return c, nil
		},
		encode: func(v generable.GeneratedContent) generable.GeneratedContent { return v },
	}
}
