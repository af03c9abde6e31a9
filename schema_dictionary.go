package generable

import (
	"slices"

	gojson "github.com/goccy/go-json"

	js "github.com/reoring/generable/jsonschema"
)

// JSONSchema renders s as an ordered JSON-Schema-like document.
//
// Required values use a single type keyword ("type": "integer"). Optional
// properties and nullable schemas widen it to ["integer","null"]; an optional
// anyOf instead gains a {"type":"null"} alternative. Objects list "required" (the non-optional names
// in declaration order), "x-order" and "additionalProperties": false.
func (s *GenerationSchema) JSONSchema() *js.Schema { return s.render(false) }

// Dictionary returns the rendered schema as plain maps and slices.
func (s *GenerationSchema) Dictionary() map[string]any { return s.JSONSchema().ToMap() }

// MarshalJSON renders the schema dictionary with stable key order.
func (s *GenerationSchema) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(s.JSONSchema())
}

func (s *GenerationSchema) render(optional bool) *js.Schema {
	if s == nil {
		return &js.Schema{}
	}
	optional = optional || s.Nullable
	g := s.Guides.forKind(s.Kind)
	out := &js.Schema{Description: s.Description}
	switch s.Kind {
	case SchemaAnyOf:
		for _, alt := range s.AnyOf {
			out.AnyOf = append(out.AnyOf, alt.render(false))
		}
		if optional {
			out.AnyOf = append(out.AnyOf, &js.Schema{Type: "null"})
		}
		return out
	case SchemaEnum:
		out.Enum = slices.Clone(s.Values)
	case SchemaString:
		if g.Pattern != nil {
			out.Pattern = g.Pattern.String()
		}
		if g.AllowedValues != nil {
			out.Enum = slices.Clone(g.AllowedValues)
		}
	case SchemaInteger, SchemaNumber:
		out.Minimum, out.Maximum = g.Minimum, g.Maximum
	case SchemaArray:
		out.Items = s.Items.render(false)
		out.MinItems, out.MaxItems = g.MinItems, g.MaxItems
	case SchemaObject:
		out.Title = s.Title
		out.Properties = make([]js.Property, 0, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties = append(out.Properties, js.Property{Name: p.Name, Schema: p.effective().render(p.Optional)})
		}
		out.Required = s.RequiredNames()
		closed := false
		out.AdditionalProperties = &closed
	}
	if base := s.Kind.TypeName(); optional {
		out.Type = []string{base, "null"}
	} else {
		out.Type = base
	}
	return out
}
