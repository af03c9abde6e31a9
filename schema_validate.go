package generable

import (
	"math"
	"slices"
	"strconv"

	"github.com/reoring/generable/i18n"
)

// Validate checks complete content against s and reports every violation
// rather than stopping at the first. Paths are JSON Pointers relative to the
// content root. Objects are closed: keys not declared by the schema are
// reported as unknown_key.
func (s *GenerationSchema) Validate(c GeneratedContent) error {
	var iss Issues
	s.validate(c, "", &iss)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// ValidateNode checks only the value itself: its kind and the guides that apply
// to it. Array elements and object properties are not visited, which lets
// typed converters validate each level once while descending.
func (s *GenerationSchema) ValidateNode(c GeneratedContent) error {
	var iss Issues
	s.validateNode(c, "", &iss)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *GenerationSchema) validate(c GeneratedContent, path string, iss *Issues) {
	if s == nil {
		return
	}
	if !s.validateNode(c, path, iss) {
		return
	}
	switch s.Kind {
	case SchemaArray:
		for i, el := range c.Elements() {
			s.Items.validate(el, JoinPointer(path, strconv.Itoa(i)), iss)
		}
	case SchemaObject:
		for _, p := range s.Properties {
			pp := JoinPointer(path, p.Name)
			v, ok := c.Property(p.Name)
			switch {
			case !ok:
				if !p.Optional {
					*iss = append(*iss, RequiredIssue(pp))
				}
			case v.IsNull():
				if !p.Optional && !p.Schema.nullable() {
					*iss = append(*iss, RequiredIssue(pp))
				}
			default:
				p.effective().validate(v, pp, iss)
			}
		}
		for _, k := range c.Keys() {
			if _, ok := s.Property(k); !ok {
				*iss = append(*iss, Issue{Path: JoinPointer(path, k), Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil), Offset: -1})
			}
		}
	}
}

// validateNode reports false when there is nothing to descend into: the kind
// is wrong, or the value is an accepted null.
func (s *GenerationSchema) validateNode(c GeneratedContent, path string, iss *Issues) bool {
	if s == nil {
		return true
	}
	if s.Nullable && c.IsNull() {
		return false
	}
	g := s.Guides.forKind(s.Kind)
	switch s.Kind {
	case SchemaString:
		str, ok := c.Text()
		if !ok {
			*iss = append(*iss, InvalidTypeIssue(path, "string", c))
			return false
		}
		if g.Pattern != nil && !g.Pattern.MatchString(str) {
			*iss = append(*iss, Issue{
				Path: normPath(path), Code: CodePattern, Offset: -1,
				Message: i18n.T(CodePattern, map[string]string{"pattern": g.Pattern.String()}),
				Params:  map[string]any{"pattern": g.Pattern.String()},
			})
		}
		if g.AllowedValues != nil && !slices.Contains(g.AllowedValues, str) {
			*iss = append(*iss, enumIssue(path, g.AllowedValues, str))
		}
	case SchemaEnum:
		str, ok := c.Text()
		if !ok {
			*iss = append(*iss, InvalidTypeIssue(path, "string", c))
			return false
		}
		if !slices.Contains(s.Values, str) {
			*iss = append(*iss, enumIssue(path, s.Values, str))
		}
	case SchemaInteger, SchemaNumber:
		f, ok := c.Float()
		if !ok || (s.Kind == SchemaInteger && f != math.Trunc(f)) {
			*iss = append(*iss, InvalidTypeIssue(path, s.Kind.TypeName(), c))
			return false
		}
		*iss = append(*iss, boundIssues(path, g, f)...)
	case SchemaBoolean:
		if _, ok := c.BoolValue(); !ok {
			*iss = append(*iss, InvalidTypeIssue(path, "boolean", c))
		}
	case SchemaArray:
		if c.Kind() != KindArray {
			*iss = append(*iss, InvalidTypeIssue(path, "array", c))
			return false
		}
		*iss = append(*iss, lengthIssues(path, g, c.Len())...)
	case SchemaObject:
		if c.Kind() != KindObject {
			*iss = append(*iss, InvalidTypeIssue(path, "object", c))
			return false
		}
	case SchemaAnyOf:
		for _, alt := range s.AnyOf {
			if alt.Validate(c) == nil {
				return true
			}
		}
		*iss = append(*iss, Issue{Path: normPath(path), Code: CodeNoMatch, Message: i18n.T(CodeNoMatch, nil), Offset: -1,
			Params: map[string]any{"alternatives": len(s.AnyOf)}})
		return false
	}
	return true
}

// InvalidTypeIssue reports that got is not of the expected kind.
func InvalidTypeIssue(path, expected string, got GeneratedContent) Issue {
	return Issue{
		Path:    normPath(path),
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": expected, "got": got.Kind().String()}),
		Offset:  -1,
		Params:  map[string]any{"expected": expected, "got": got.Kind().String()},
	}
}

// RequiredIssue reports a missing (or null) required property.
func RequiredIssue(path string) Issue {
	return Issue{Path: normPath(path), Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Offset: -1}
}

func enumIssue(path string, allowed []string, got string) Issue {
	return Issue{
		Path:    normPath(path),
		Code:    CodeInvalidEnum,
		Message: i18n.T(CodeInvalidEnum, nil),
		Offset:  -1,
		Params:  map[string]any{"allowed": slices.Clone(allowed), "got": got},
	}
}

func boundIssues(path string, g Guides, f float64) Issues {
	var out Issues
	if g.Minimum != nil && f < *g.Minimum {
		lo := FormatNumber(*g.Minimum)
		out = append(out, Issue{Path: normPath(path), Code: CodeTooSmall, Offset: -1,
			Message: i18n.T(CodeTooSmall, map[string]string{"min": lo}),
			Params:  map[string]any{"min": *g.Minimum, "got": f}})
	}
	if g.Maximum != nil && f > *g.Maximum {
		hi := FormatNumber(*g.Maximum)
		out = append(out, Issue{Path: normPath(path), Code: CodeTooBig, Offset: -1,
			Message: i18n.T(CodeTooBig, map[string]string{"max": hi}),
			Params:  map[string]any{"max": *g.Maximum, "got": f}})
	}
	return out
}

func lengthIssues(path string, g Guides, n int) Issues {
	var out Issues
	if g.MinItems != nil && n < *g.MinItems {
		out = append(out, Issue{Path: normPath(path), Code: CodeTooShort, Offset: -1,
			Message: i18n.T(CodeTooShort, map[string]string{"min": strconv.Itoa(*g.MinItems)}),
			Params:  map[string]any{"min": *g.MinItems, "got": n}})
	}
	if g.MaxItems != nil && n > *g.MaxItems {
		out = append(out, Issue{Path: normPath(path), Code: CodeTooLong, Offset: -1,
			Message: i18n.T(CodeTooLong, map[string]string{"max": strconv.Itoa(*g.MaxItems)}),
			Params:  map[string]any{"max": *g.MaxItems, "got": n}})
	}
	return out
}
