package jsonschema

import (
	"fmt"

	gjs "github.com/google/jsonschema-go/jsonschema"
)

// Typed converts s into a github.com/google/jsonschema-go schema for callers
// that consume that type (tool definitions, structured output requests).
// Property order is carried in PropertyOrder and the x-order extension.
func (s *Schema) Typed() (*gjs.Schema, error) {
	if s == nil {
		return nil, nil
	}
	out := &gjs.Schema{
		Title:       s.Title,
		Description: s.Description,
		Pattern:     s.Pattern,
		MinItems:    s.MinItems,
		MaxItems:    s.MaxItems,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}
	switch t := s.Type.(type) {
	case nil:
	case string:
		out.Type = t
	case []string:
		out.Types = append([]string(nil), t...)
	default:
		return nil, fmt.Errorf("jsonschema: unsupported type keyword %T", s.Type)
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, e)
	}
	for _, alt := range s.AnyOf {
		ta, err := alt.Typed()
		if err != nil {
			return nil, err
		}
		out.AnyOf = append(out.AnyOf, ta)
	}
	if s.Items != nil {
		ti, err := s.Items.Typed()
		if err != nil {
			return nil, err
		}
		out.Items = ti
	}
	if s.IsObject() {
		out.Properties = make(map[string]*gjs.Schema, len(s.Properties))
		for _, p := range s.Properties {
			tp, err := p.Schema.Typed()
			if err != nil {
				return nil, fmt.Errorf("jsonschema: property %q: %w", p.Name, err)
			}
			out.Properties[p.Name] = tp
		}
		out.Required = append([]string{}, s.Required...)
		out.PropertyOrder = s.Order()
		out.Extra = map[string]any{"x-order": s.Order()}
		if s.AdditionalProperties != nil && !*s.AdditionalProperties {
			// false schema
			out.AdditionalProperties = &gjs.Schema{Not: &gjs.Schema{}}
		}
	}
	return out, nil
}
