package dsl

import (
	generable "github.com/reoring/generable"
	"github.com/reoring/generable/i18n"
)

// AnyOf converts content with the first alternative that accepts it. Encoding
// uses the first alternative whose output validates against its own schema.
func AnyOf[T any](alts ...generable.Generable[T]) *Converter[T] {
	schemas := make([]*generable.GenerationSchema, len(alts))
	for i, a := range alts {
		schemas[i] = a.GenerationSchema()
	}
	return &Converter[T]{
		schema: generable.AnyOfSchema(schemas...),
		union:  true,
		decode: func(c generable.GeneratedContent) (T, error) {
			var zero T
			var first error
			for _, a := range alts {
				v, err := a.FromContent(c)
				if err == nil {
					return v, nil
				}
				if first == nil {
					first = err
				}
			}
			it := generable.Issue{
				Path:    "/",
				Code:    generable.CodeNoMatch,
				Message: i18n.T(generable.CodeNoMatch, nil),
				Cause:   first,
				Offset:  -1,
				Params:  map[string]any{"alternatives": len(alts)},
			}
			return zero, generable.Issues{it}
		},
		encode: func(v T) generable.GeneratedContent {
			var fallback generable.GeneratedContent
			for i, a := range alts {
				c := a.ToContent(v)
				if a.GenerationSchema().Validate(c) == nil {
					return c
				}
				if i == 0 {
					fallback = c
				}
			}
			return fallback
		},
	}
}

// Adapt projects a converter for A onto T. It is mainly used to feed concrete
// alternatives into AnyOf over an interface type: from reports false when a
// value is not an A, and the alternative then encodes to null.
func Adapt[T, A any](gen generable.Generable[A], to func(A) T, from func(T) (A, bool)) *Converter[T] {
	return &Converter[T]{
		schema: gen.GenerationSchema(),
		union:  true,
		decode: func(c generable.GeneratedContent) (T, error) {
			a, err := gen.FromContent(c)
			if err != nil {
				var zero T
				return zero, err
			}
			return to(a), nil
		},
		encode: func(v T) generable.GeneratedContent {
			a, ok := from(v)
			if !ok {
				return generable.Null()
			}
			return gen.ToContent(a)
		},
	}
}
