package generable

// Generable binds an application type T to a GenerationSchema and converts
// between T and GeneratedContent in both directions.
//
// Implementations are usually produced by the dsl package (dsl.ObjectOf,
// dsl.Int, dsl.ArrayOf, ...), but any type may implement the interface.
type Generable[T any] interface {
	// GenerationSchema describes the shape the model is asked to produce.
	GenerationSchema() *GenerationSchema
	// FromContent converts content into T. Failures are reported as Issues
	// with JSON Pointer paths relative to c.
	FromContent(c GeneratedContent) (T, error)
	// ToContent converts a value into complete content. ToContent followed by
	// FromContent yields an equal value.
	ToContent(v T) GeneratedContent
}

// Decode converts content into T.
func Decode[T any](g Generable[T], c GeneratedContent) (T, error) {
	if g == nil {
		var zero T
		return zero, ErrNilSchema
	}
	return g.FromContent(c)
}

// DecodeJSON parses text tolerantly (see Parse) and converts the result.
func DecodeJSON[T any](g Generable[T], text string, opts ...ParseOpt) (T, error) {
	c, err := Parse(text, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode(g, c)
}

// DecodeWithMeta converts content and reports which paths were present, null
// or still incomplete.
func DecodeWithMeta[T any](g Generable[T], c GeneratedContent) (Decoded[T], error) {
	v, err := Decode(g, c)
	if err != nil {
		return Decoded[T]{}, err
	}
	return Decoded[T]{Value: v, Presence: CollectPresence(c)}, nil
}

// Encode converts a value into content.
func Encode[T any](g Generable[T], v T) GeneratedContent { return g.ToContent(v) }

// EncodeJSON converts a value into canonical JSON text.
func EncodeJSON[T any](g Generable[T], v T) string { return Render(g.ToContent(v)) }

// Result is the outcome of SafeDecode.
type Result[T any] struct {
	Value    T
	Issues   Issues
	Complete bool // the decoded content was complete
}

// OK reports whether decoding produced no issues.
func (r Result[T]) OK() bool { return len(r.Issues) == 0 }

// SafeDecode decodes without an error return, which suits rendering partial
// snapshots of a stream: failures are expected while content is incomplete.
func SafeDecode[T any](g Generable[T], c GeneratedContent) Result[T] {
	v, err := Decode(g, c)
	r := Result[T]{Value: v, Complete: c.IsComplete()}
	if err != nil {
		if iss, ok := AsIssues(err); ok {
			r.Issues = iss
		} else {
			r.Issues = Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err, Offset: -1}}
		}
	}
	return r
}
