// Package jsonschema holds the JSON-Schema-like projection of a generation
// schema. Properties keep declaration order and MarshalJSON writes keys in a
// stable order, so the rendered document is deterministic.
package jsonschema

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core. Type is a string ("integer") or a []string (["integer","null"]).
	Type        any
	Title       string
	Description string

	// Enum / union
	Enum  []string
	AnyOf []*Schema

	// Array
	Items    *Schema
	MinItems *int
	MaxItems *int

	// Number / string
	Minimum *float64
	Maximum *float64
	Pattern string

	// Object. A non-nil Properties marks an object schema; required, x-order
	// and additionalProperties are only rendered for object schemas.
	Properties           []Property
	Required             []string
	AdditionalProperties *bool
}

// Property is a named subschema of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// IsObject reports whether s describes an object.
func (s *Schema) IsObject() bool { return s != nil && s.Properties != nil }

// Property returns the subschema for name.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Order returns the property names in declaration order (the x-order keyword).
func (s *Schema) Order() []string {
	if s == nil || s.Properties == nil {
		return nil
	}
	out := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		out[i] = p.Name
	}
	return out
}

type field struct {
	key string
	val any
}

// fields lists the keywords present on s in rendering order.
func (s *Schema) fields() []field {
	var fs []field
	add := func(k string, v any) { fs = append(fs, field{k, v}) }
	if s.Type != nil {
		add("type", s.Type)
	}
	if s.Title != "" {
		add("title", s.Title)
	}
	if s.Description != "" {
		add("description", s.Description)
	}
	if s.Enum != nil {
		add("enum", s.Enum)
	}
	if len(s.AnyOf) > 0 {
		add("anyOf", s.AnyOf)
	}
	if s.Items != nil {
		add("items", s.Items)
	}
	if s.MinItems != nil {
		add("minItems", *s.MinItems)
	}
	if s.MaxItems != nil {
		add("maxItems", *s.MaxItems)
	}
	if s.Minimum != nil {
		add("minimum", *s.Minimum)
	}
	if s.Maximum != nil {
		add("maximum", *s.Maximum)
	}
	if s.Pattern != "" {
		add("pattern", s.Pattern)
	}
	if s.IsObject() {
		add("properties", s.Properties)
		required := s.Required
		if required == nil {
			required = []string{}
		}
		add("required", required)
		add("x-order", s.Order())
		if s.AdditionalProperties != nil {
			add("additionalProperties", *s.AdditionalProperties)
		}
	}
	return fs
}

// MarshalJSON renders keywords and properties in a stable order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKV(&buf, f.key, f.val); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKV(buf *bytes.Buffer, key string, val any) error {
	kb, err := gojson.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(kb)
	buf.WriteByte(':')
	if props, ok := val.([]Property); ok {
		buf.WriteByte('{')
		for i, p := range props {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeKV(buf, p.Name, p.Schema); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	vb, err := gojson.MarshalWithOption(val, gojson.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("jsonschema: marshal %q: %w", key, err)
	}
	buf.Write(vb)
	return nil
}

// ToMap converts s into plain maps and slices (property order is lost; it is
// still available through the x-order keyword).
func (s *Schema) ToMap() map[string]any {
	if s == nil {
		return nil
	}
	m := make(map[string]any)
	for _, f := range s.fields() {
		m[f.key] = toPlain(f.val)
	}
	return m
}

func toPlain(v any) any {
	switch t := v.(type) {
	case *Schema:
		return t.ToMap()
	case []*Schema:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s.ToMap()
		}
		return out
	case []Property:
		out := make(map[string]any, len(t))
		for _, p := range t {
			out[p.Name] = p.Schema.ToMap()
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	}
	return v
}
