package dsl

import (
	generable "github.com/reoring/generable"
)

// OptionalConverter maps null to a nil pointer. As an object property it also
// marks the property optional, so absence is accepted and Encode omits nil.
type OptionalConverter[E any] struct {
	inner generable.Generable[E]
}

// Optional wraps inner so that null (or absence, inside objects) decodes to nil.
// An empty object is not null: Optional(Int()) rejects {}.
func Optional[E any](inner generable.Generable[E]) *OptionalConverter[E] {
	return &OptionalConverter[E]{inner: inner}
}

// Optional marks the converter for object bindings.
func (*OptionalConverter[E]) Optional() bool { return true }

// GenerationSchema returns the inner schema marked nullable, so an optional
// array item or root advertises null the same way an optional property does.
func (o *OptionalConverter[E]) GenerationSchema() *generable.GenerationSchema {
	return generable.NullableSchema(o.inner.GenerationSchema())
}

// FromContent implements generable.Generable.
func (o *OptionalConverter[E]) FromContent(c generable.GeneratedContent) (*E, error) {
	if c.IsNull() {
		return nil, nil
	}
	v, err := o.inner.FromContent(c)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ToContent implements generable.Generable.
func (o *OptionalConverter[E]) ToContent(v *E) generable.GeneratedContent {
	if v == nil {
		return generable.Null()
	}
	return o.inner.ToContent(*v)
}

func isOptional(gen any) bool {
	o, ok := gen.(interface{ Optional() bool })
	return ok && o.Optional()
}
