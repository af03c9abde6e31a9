package dsl

import (
	"fmt"
	"reflect"

	generable "github.com/reoring/generable"
)

// PropSpec binds one property of an object to a field of T. Build it with
// Prop or PropOf.
type PropSpec[T any] struct {
	prop   generable.SchemaProperty
	decode func(c generable.GeneratedContent, dst *T) error
	encode func(src *T) (generable.GeneratedContent, bool)
	err    error
}

// Prop binds property name to the field of T addressed by sel, converting it
// with gen. sel must return the address of a top-level field, e.g.
//
//	dsl.Prop("servings", dsl.Int(), func(r *Recipe) *int { return &r.Servings })
//
// An Optional converter makes the property optional.
func Prop[T, F any](name string, gen generable.Generable[F], sel func(*T) *F, opts ...generable.FieldOpt) PropSpec[T] {
	if gen == nil {
		return PropSpec[T]{err: fmt.Errorf("%w: property %q has no converter", ErrInvalidBinding, name)}
	}
	if _, ok := generable.FieldIndexOf(sel); !ok {
		return PropSpec[T]{err: fmt.Errorf("%w: selector for %q must address a top-level field of %T", ErrInvalidBinding, name, *new(T))}
	}
	optional := isOptional(gen)
	p := generable.Field(name, gen.GenerationSchema(), opts...)
	p.Optional = p.Optional || optional
	// Property-level guides are checked after the converter accepted the
	// value, so a type mismatch is reported once.
	var extra *generable.GenerationSchema
	if p.Schema != nil && !p.Guides.IsZero() {
		extra = &generable.GenerationSchema{Kind: p.Schema.Kind, Guides: p.Guides}
	}
	return PropSpec[T]{
		prop: p,
		decode: func(c generable.GeneratedContent, dst *T) error {
			v, err := gen.FromContent(c)
			if err != nil {
				return err
			}
			if extra != nil && !c.IsNull() {
				if err := extra.ValidateNode(c); err != nil {
					return err
				}
			}
			*sel(dst) = v
			return nil
		},
		encode: func(src *T) (generable.GeneratedContent, bool) {
			c := gen.ToContent(*sel(src))
			if optional && c.IsNull() {
				return c, false
			}
			return c, true
		},
	}
}

// PropOf is Prop with the property name taken from the field's struct tag
// (generable:"name=..." > json > field name). A generable:"desc=..." option
// becomes the property description unless one is given.
func PropOf[T, F any](gen generable.Generable[F], sel func(*T) *F, opts ...generable.FieldOpt) PropSpec[T] {
	idx, ok := generable.FieldIndexOf(sel)
	if !ok {
		return PropSpec[T]{err: fmt.Errorf("%w: selector must address a top-level field of %T", ErrInvalidBinding, *new(T))}
	}
	sf := reflect.TypeFor[T]().Field(idx)
	name := generable.ResolveStructKey(sf)
	if name == "" || name == "-" {
		return PropSpec[T]{err: fmt.Errorf("%w: field %s is disabled by its tag", ErrInvalidBinding, sf.Name)}
	}
	if d := generable.StructKeyDescription(sf); d != "" {
		opts = append([]generable.FieldOpt{generable.Description(d)}, opts...)
	}
	return Prop(name, gen, sel, opts...)
}

// ObjectBuilder collects the properties of an object binding. Finish it with
// Bind or MustBind.
type ObjectBuilder[T any] struct {
	title string
	desc  string
	props []PropSpec[T]
	rules []rule[T]
}

// ObjectOf starts an object binding for struct type T. title names the type
// in the rendered schema.
func ObjectOf[T any](title string, props ...PropSpec[T]) *ObjectBuilder[T] {
	return &ObjectBuilder[T]{title: title, props: append([]PropSpec[T](nil), props...)}
}

// Prop appends properties in declaration order.
func (b *ObjectBuilder[T]) Prop(props ...PropSpec[T]) *ObjectBuilder[T] {
	b.props = append(b.props, props...)
	return b
}

// Describe sets the object description.
func (b *ObjectBuilder[T]) Describe(d string) *ObjectBuilder[T] {
	b.desc = d
	return b
}

// Refine registers a cross-field rule run after every property converted.
func (b *ObjectBuilder[T]) Refine(name string, fn func(ref generable.Ref, v T) []generable.Issue) *ObjectBuilder[T] {
	if fn != nil {
		b.rules = append(b.rules, rule[T]{name: name, fn: fn})
	}
	return b
}

// Bind validates the builder and returns the converter.
func (b *ObjectBuilder[T]) Bind() (*Converter[T], error) {
	if rt := reflect.TypeFor[T](); rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: ObjectOf[T] requires a struct type, got %s", ErrInvalidBinding, rt)
	}
	seen := make(map[string]struct{}, len(b.props))
	props := make([]generable.SchemaProperty, 0, len(b.props))
	for _, p := range b.props {
		if p.err != nil {
			return nil, p.err
		}
		if p.prop.Name == "" {
			return nil, fmt.Errorf("%w: empty property name", ErrInvalidBinding)
		}
		if _, dup := seen[p.prop.Name]; dup {
			return nil, fmt.Errorf("%w: property %q declared twice", ErrInvalidBinding, p.prop.Name)
		}
		seen[p.prop.Name] = struct{}{}
		props = append(props, p.prop)
	}
	specs := append([]PropSpec[T](nil), b.props...)
	schema := generable.ObjectSchema(b.title, props...)
	schema.Description = b.desc
	return &Converter[T]{
		schema: schema,
		rules:  append([]rule[T](nil), b.rules...),
		decode: func(c generable.GeneratedContent) (T, error) { return decodeObject(specs, c) },
		encode: func(v T) generable.GeneratedContent { return encodeObject(specs, &v) },
	}, nil
}

// MustBind is like Bind but panics on error.
func (b *ObjectBuilder[T]) MustBind() *Converter[T] {
	c, err := b.Bind()
	if err != nil {
		panic(err)
	}
	return c
}

// Bind is the free-function form of ObjectBuilder.Bind.
func Bind[T any](b *ObjectBuilder[T]) (*Converter[T], error) { return b.Bind() }

// MustBind is the free-function form of ObjectBuilder.MustBind.
func MustBind[T any](b *ObjectBuilder[T]) *Converter[T] { return b.MustBind() }

// decodeObject converts every declared property, collecting all failures.
// Undeclared keys are ignored.
func decodeObject[T any](specs []PropSpec[T], c generable.GeneratedContent) (T, error) {
	var out T
	var iss generable.Issues
	for _, p := range specs {
		base := generable.JoinPointer("", p.prop.Name)
		v, ok := c.Property(p.prop.Name)
		if !ok || (p.prop.Optional && v.IsNull()) {
			if !ok && !p.prop.Optional {
				iss = append(iss, generable.RequiredIssue(base))
			}
			continue
		}
		if err := p.decode(v, &out); err != nil {
			iss = append(iss, rebase(err, base)...)
		}
	}
	if len(iss) > 0 {
		var zero T
		return zero, iss
	}
	return out, nil
}

func encodeObject[T any](specs []PropSpec[T], v *T) generable.GeneratedContent {
	props := make([]generable.Property, 0, len(specs))
	for _, p := range specs {
		if c, ok := p.encode(v); ok {
			props = append(props, generable.Prop(p.prop.Name, c))
		}
	}
	return generable.Object(props...)
}
