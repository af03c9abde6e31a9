package generable

import (
	"slices"
)

// SchemaKind enumerates the shapes a GenerationSchema can describe.
type SchemaKind uint8

const (
	SchemaString SchemaKind = iota
	SchemaInteger
	SchemaNumber
	SchemaBoolean
	SchemaArray
	SchemaObject
	SchemaEnum
	SchemaAnyOf
)

// TypeName returns the JSON Schema type keyword for k. Enums are strings;
// anyOf has no type keyword of its own.
func (k SchemaKind) TypeName() string {
	switch k {
	case SchemaString, SchemaEnum:
		return "string"
	case SchemaInteger:
		return "integer"
	case SchemaNumber:
		return "number"
	case SchemaBoolean:
		return "boolean"
	case SchemaArray:
		return "array"
	case SchemaObject:
		return "object"
	}
	return ""
}

func (k SchemaKind) String() string {
	switch k {
	case SchemaEnum:
		return "enum"
	case SchemaAnyOf:
		return "anyOf"
	}
	return k.TypeName()
}

// GenerationSchema describes the shape a model is asked to produce. It is the
// runtime description behind every Generable binding and can also be built by
// hand or loaded from a definition file.
type GenerationSchema struct {
	Kind        SchemaKind
	Title       string // type name of objects
	Description string
	Items       *GenerationSchema   // SchemaArray
	Properties  []SchemaProperty    // SchemaObject, declaration order
	Values      []string            // SchemaEnum
	AnyOf       []*GenerationSchema // SchemaAnyOf
	Guides      Guides
	// Nullable admits null in place of the value wherever the schema is used:
	// as an array item, an anyOf alternative or the root.
	Nullable bool
}

// SchemaProperty is a named member of an object schema.
type SchemaProperty struct {
	Name        string
	Description string
	Schema      *GenerationSchema
	Optional    bool
	// Guides added at the property level override the schema's own.
	Guides Guides
}

// StringSchema describes a string.
func StringSchema(g ...Guide) *GenerationSchema { return newSchema(SchemaString, g) }

// IntegerSchema describes an integral number.
func IntegerSchema(g ...Guide) *GenerationSchema { return newSchema(SchemaInteger, g) }

// NumberSchema describes any number.
func NumberSchema(g ...Guide) *GenerationSchema { return newSchema(SchemaNumber, g) }

// BooleanSchema describes true or false.
func BooleanSchema() *GenerationSchema { return newSchema(SchemaBoolean, nil) }

// ArraySchema describes a homogeneous array.
func ArraySchema(items *GenerationSchema, g ...Guide) *GenerationSchema {
	s := newSchema(SchemaArray, g)
	s.Items = items
	return s
}

// ObjectSchema describes an object whose properties are listed in order.
func ObjectSchema(title string, props ...SchemaProperty) *GenerationSchema {
	return &GenerationSchema{Kind: SchemaObject, Title: title, Properties: slices.Clone(props)}
}

// EnumSchema describes a closed set of string literals.
func EnumSchema(values ...string) *GenerationSchema {
	return &GenerationSchema{Kind: SchemaEnum, Values: slices.Clone(values)}
}

// AnyOfSchema describes a value matching at least one alternative.
func AnyOfSchema(alts ...*GenerationSchema) *GenerationSchema {
	return &GenerationSchema{Kind: SchemaAnyOf, AnyOf: slices.Clone(alts)}
}

// NullableSchema returns a copy of s that also admits null.
func NullableSchema(s *GenerationSchema) *GenerationSchema {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Nullable = true
	return &cp
}

func (s *GenerationSchema) nullable() bool { return s != nil && s.Nullable }

func newSchema(k SchemaKind, g []Guide) *GenerationSchema {
	s := &GenerationSchema{Kind: k}
	for _, fn := range g {
		fn(&s.Guides)
	}
	return s
}

// FieldOpt configures a SchemaProperty built by Field.
type FieldOpt func(*SchemaProperty)

// Optional marks a property as optional: it may be absent or null.
func Optional() FieldOpt { return func(p *SchemaProperty) { p.Optional = true } }

// Description documents a property for the model.
func Description(d string) FieldOpt { return func(p *SchemaProperty) { p.Description = d } }

// WithGuides attaches property-level guides.
func WithGuides(g ...Guide) FieldOpt {
	return func(p *SchemaProperty) {
		for _, fn := range g {
			fn(&p.Guides)
		}
	}
}

// Field builds a SchemaProperty.
func Field(name string, s *GenerationSchema, opts ...FieldOpt) SchemaProperty {
	p := SchemaProperty{Name: name, Schema: s}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// Property returns the property named name.
func (s *GenerationSchema) Property(name string) (SchemaProperty, bool) {
	if s == nil {
		return SchemaProperty{}, false
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return SchemaProperty{}, false
}

// RequiredNames lists the non-optional property names in declaration order.
func (s *GenerationSchema) RequiredNames() []string {
	if s == nil || s.Kind != SchemaObject {
		return nil
	}
	out := []string{}
	for _, p := range s.Properties {
		if !p.Optional {
			out = append(out, p.Name)
		}
	}
	return out
}

// effective returns the schema a property actually enforces: its own schema
// with property-level guides and description layered on top.
func (p SchemaProperty) effective() *GenerationSchema {
	if p.Schema == nil {
		return nil
	}
	if p.Guides.IsZero() && p.Description == "" {
		return p.Schema
	}
	cp := *p.Schema
	cp.Guides = cp.Guides.merge(p.Guides)
	if p.Description != "" {
		cp.Description = p.Description
	}
	return &cp
}
