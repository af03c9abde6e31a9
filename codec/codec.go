// Package codec converts between the wire form a model generates (a string,
// a number) and a richer domain type, on top of any Generable for the wire form.
package codec

import (
	generable "github.com/reoring/generable"
	"github.com/reoring/generable/i18n"
)

// Codec converts a wire value A into a domain value B and back. Decode may
// fail; Encode must always produce a wire value Decode accepts.
type Codec[A, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) A
}

// Of binds c to the Generable that reads and writes its wire form. The schema
// is the wire schema, so models are asked for the wire representation.
func Of[A, B any](wire generable.Generable[A], c Codec[A, B]) generable.Generable[B] {
	return &bound[A, B]{wire: wire, c: c}
}

type bound[A, B any] struct {
	wire generable.Generable[A]
	c    Codec[A, B]
}

func (b *bound[A, B]) GenerationSchema() *generable.GenerationSchema {
	return b.wire.GenerationSchema()
}

func (b *bound[A, B]) FromContent(c generable.GeneratedContent) (B, error) {
	var zero B
	a, err := b.wire.FromContent(c)
	if err != nil {
		return zero, err
	}
	return b.c.Decode(a)
}

func (b *bound[A, B]) ToContent(v B) generable.GeneratedContent {
	return b.wire.ToContent(b.c.Encode(v))
}

// Func builds a Codec from two functions.
func Func[A, B any](decode func(A) (B, error), encode func(B) A) Codec[A, B] {
	return funcCodec[A, B]{decode: decode, encode: encode}
}

type funcCodec[A, B any] struct {
	decode func(A) (B, error)
	encode func(B) A
}

func (f funcCodec[A, B]) Decode(a A) (B, error) { return f.decode(a) }
func (f funcCodec[A, B]) Encode(b B) A          { return f.encode(b) }

// Identity returns a Codec[T,T] that passes values through unchanged.
func Identity[T any]() Codec[T, T] {
	return Func(func(v T) (T, error) { return v, nil }, func(v T) T { return v })
}

// formatIssue reports a wire value that does not parse as format.
func formatIssue(format string, cause error) generable.Issues {
	return generable.Issues{{
		Path:    "/",
		Code:    generable.CodeInvalidFormat,
		Message: i18n.T(generable.CodeInvalidFormat, map[string]string{"format": format}),
		Cause:   cause,
		Offset:  -1,
		Params:  map[string]any{"format": format},
	}}
}
