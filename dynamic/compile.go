package dynamic

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	generable "github.com/reoring/generable"
)

// keywords accepted without effect on the compiled schema.
var passiveKeywords = map[string]bool{
	"$schema":              true,
	"$id":                  true,
	"$defs":                true,
	"x-order":              true,
	"additionalProperties": true,
}

type compiler struct {
	opt       Options
	diag      *simpleDiag
	defs      *yaml.Node
	resolving map[string]bool
}

func (c *compiler) errorf(n *yaml.Node, ptr, format string, a ...any) error {
	e := &DefinitionError{Pointer: ptrOrRoot(ptr), Msg: fmt.Sprintf(format, a...)}
	if n != nil {
		e.Line, e.Column = n.Line, n.Column
	}
	return e
}

// compile turns a definition node into a schema. The bool reports whether the
// definition admits null (type [T, "null"], a null anyOf alternative or
// optional: true); the schema is marked Nullable and the enclosing property,
// if any, becomes optional.
func (c *compiler) compile(n *yaml.Node, ptr string) (*generable.GenerationSchema, bool, error) {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, false, c.errorf(n, ptr, "definition must be a mapping")
	}
	if ref := lookup(n, "$ref"); ref != nil {
		return c.compileRef(ref, ptr)
	}

	s := &generable.GenerationSchema{}
	nullable := false
	if err := c.scalarString(n, "description", ptr, &s.Description); err != nil {
		return nil, false, err
	}
	if err := c.scalarString(n, "title", ptr, &s.Title); err != nil {
		return nil, false, err
	}
	if o := lookup(n, "optional"); o != nil {
		var b bool
		if err := o.Decode(&b); err != nil {
			return nil, false, c.errorf(o, ptr+"/optional", "optional must be a boolean")
		}
		nullable = b
	}

	if alts := lookup(n, "anyOf"); alts != nil {
		optional, err := c.compileAnyOf(s, alts, ptr+"/anyOf")
		if err != nil {
			return nil, false, err
		}
		s.Nullable = nullable || optional
		return s, s.Nullable, c.checkKeywords(n, ptr, "anyOf")
	}

	typ, optional, err := c.typeName(n, ptr)
	if err != nil {
		return nil, false, err
	}
	nullable = nullable || optional

	var used []string
	switch typ {
	case "string":
		used, err = c.compileString(s, n, ptr)
	case "integer", "number":
		s.Kind = generable.SchemaNumber
		if typ == "integer" {
			s.Kind = generable.SchemaInteger
		}
		used, err = c.compileBounds(s, n, ptr)
	case "boolean":
		s.Kind = generable.SchemaBoolean
	case "array":
		used, err = c.compileArray(s, n, ptr)
	case "object":
		used, err = c.compileObject(s, n, ptr)
	default:
		err = c.errorf(lookup(n, "type"), ptr+"/type", "unsupported type %q", typ)
	}
	if err != nil {
		return nil, false, err
	}
	s.Nullable = nullable
	return s, nullable, c.checkKeywords(n, ptr, append(used, "type")...)
}

// typeName reads the type keyword. A sequence may pair one type with "null".
// A definition with an enum and no type is a string enum.
func (c *compiler) typeName(n *yaml.Node, ptr string) (string, bool, error) {
	t := lookup(n, "type")
	switch {
	case t == nil:
		if lookup(n, "enum") != nil {
			return "string", false, nil
		}
		if lookup(n, "properties") != nil {
			return "object", false, nil
		}
		return "", false, c.errorf(n, ptr, "missing type")
	case t.Kind == yaml.ScalarNode:
		return t.Value, false, nil
	case t.Kind == yaml.SequenceNode:
		var name string
		nullable := false
		for _, e := range t.Content {
			switch {
			case e.Value == "null":
				nullable = true
			case name == "":
				name = e.Value
			default:
				return "", false, c.errorf(e, ptr+"/type", "at most one non-null type is supported, got %q and %q", name, e.Value)
			}
		}
		if name == "" {
			return "", false, c.errorf(t, ptr+"/type", "type lists only null")
		}
		return name, nullable, nil
	}
	return "", false, c.errorf(t, ptr+"/type", "type must be a string or a list")
}

func (c *compiler) compileString(s *generable.GenerationSchema, n *yaml.Node, ptr string) ([]string, error) {
	s.Kind = generable.SchemaString
	if e := lookup(n, "enum"); e != nil {
		vals, err := c.stringList(e, ptr+"/enum")
		if err != nil {
			return nil, err
		}
		s.Kind = generable.SchemaEnum
		s.Values = vals
	}
	if p := lookup(n, "pattern"); p != nil {
		re, err := regexp.Compile(p.Value)
		if err != nil {
			return nil, c.errorf(p, ptr+"/pattern", "invalid pattern: %v", err)
		}
		s.Guides.Pattern = re
	}
	return []string{"enum", "pattern"}, nil
}

func (c *compiler) compileBounds(s *generable.GenerationSchema, n *yaml.Node, ptr string) ([]string, error) {
	for _, kw := range []struct {
		name string
		dst  **float64
	}{{"minimum", &s.Guides.Minimum}, {"maximum", &s.Guides.Maximum}} {
		v := lookup(n, kw.name)
		if v == nil {
			continue
		}
		var f float64
		if err := v.Decode(&f); err != nil {
			return nil, c.errorf(v, ptr+"/"+kw.name, "%s must be a number", kw.name)
		}
		*kw.dst = &f
	}
	if lo, hi := s.Guides.Minimum, s.Guides.Maximum; lo != nil && hi != nil && *lo > *hi {
		return nil, c.errorf(n, ptr, "minimum %v exceeds maximum %v", *lo, *hi)
	}
	return []string{"minimum", "maximum"}, nil
}

func (c *compiler) compileArray(s *generable.GenerationSchema, n *yaml.Node, ptr string) ([]string, error) {
	s.Kind = generable.SchemaArray
	items := lookup(n, "items")
	if items == nil {
		return nil, c.errorf(n, ptr, "array requires items")
	}
	it, _, err := c.compile(items, ptr+"/items")
	if err != nil {
		return nil, err
	}
	s.Items = it
	for _, kw := range []struct {
		name string
		dst  **int
	}{{"minItems", &s.Guides.MinItems}, {"maxItems", &s.Guides.MaxItems}} {
		v := lookup(n, kw.name)
		if v == nil {
			continue
		}
		var i int
		if err := v.Decode(&i); err != nil || i < 0 {
			return nil, c.errorf(v, ptr+"/"+kw.name, "%s must be a non-negative integer", kw.name)
		}
		*kw.dst = &i
	}
	if v := lookup(n, "count"); v != nil {
		var i int
		if err := v.Decode(&i); err != nil || i < 0 {
			return nil, c.errorf(v, ptr+"/count", "count must be a non-negative integer")
		}
		s.Guides.MinItems, s.Guides.MaxItems = &i, &i
	}
	return []string{"items", "minItems", "maxItems", "count"}, nil
}

func (c *compiler) compileObject(s *generable.GenerationSchema, n *yaml.Node, ptr string) ([]string, error) {
	s.Kind = generable.SchemaObject
	if ap := lookup(n, "additionalProperties"); ap != nil && ap.Value != "false" {
		if err := c.warnOrFail(ap, ptr+"/additionalProperties", "objects are always closed; additionalProperties=%s ignored", ap.Value); err != nil {
			return nil, err
		}
	}
	var names []string
	var required map[string]bool
	if r := lookup(n, "required"); r != nil {
		var err error
		names, err = c.stringList(r, ptr+"/required")
		if err != nil {
			return nil, err
		}
		required = make(map[string]bool, len(names))
		for _, name := range names {
			required[name] = true
		}
	}
	s.Properties = []generable.SchemaProperty{}
	if props := lookup(n, "properties"); props != nil {
		if props.Kind != yaml.MappingNode {
			return nil, c.errorf(props, ptr+"/properties", "properties must be a mapping")
		}
		err := mappingPairs(props, func(k, v *yaml.Node) error {
			pp := generable.JoinPointer(ptr+"/properties", k.Value)
			ps, nullable, err := c.compile(v, pp)
			if err != nil {
				return err
			}
			optional := nullable
			if required != nil && !required[k.Value] {
				optional = true
			}
			if nullable && required[k.Value] {
				c.diag.warnf("%s: nullable property listed as required is treated as optional", pp)
			}
			s.Properties = append(s.Properties, generable.SchemaProperty{Name: k.Value, Schema: ps, Optional: optional})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	for _, name := range names {
		if _, ok := s.Property(name); !ok {
			return nil, c.errorf(lookup(n, "required"), ptr+"/required", "required property %q is not declared", name)
		}
	}
	return []string{"title", "properties", "required"}, nil
}

func (c *compiler) compileAnyOf(s *generable.GenerationSchema, alts *yaml.Node, ptr string) (bool, error) {
	if alts.Kind != yaml.SequenceNode || len(alts.Content) == 0 {
		return false, c.errorf(alts, ptr, "anyOf must be a non-empty list")
	}
	s.Kind = generable.SchemaAnyOf
	nullable := false
	for i, a := range alts.Content {
		a = resolveAlias(a)
		if t := lookup(a, "type"); t != nil && t.Value == "null" && len(a.Content) == 2 {
			nullable = true
			continue
		}
		alt, _, err := c.compile(a, fmt.Sprintf("%s/%d", ptr, i))
		if err != nil {
			return false, err
		}
		s.AnyOf = append(s.AnyOf, alt)
	}
	if len(s.AnyOf) == 0 {
		return false, c.errorf(alts, ptr, "anyOf lists only null")
	}
	return nullable, nil
}

// compileRef expands a local "#/$defs/Name" reference. Recursive definitions
// cannot be expressed as a finite schema tree and are rejected.
func (c *compiler) compileRef(ref *yaml.Node, ptr string) (*generable.GenerationSchema, bool, error) {
	const prefix = "#/$defs/"
	if !strings.HasPrefix(ref.Value, prefix) {
		return nil, false, c.errorf(ref, ptr+"/$ref", "$ref %q not supported (local $defs only)", ref.Value)
	}
	key := strings.TrimPrefix(ref.Value, prefix)
	def := lookup(c.defs, key)
	if def == nil {
		return nil, false, c.errorf(ref, ptr+"/$ref", "$ref to unknown $defs/%s", key)
	}
	if c.resolving[key] {
		return nil, false, c.errorf(ref, ptr+"/$ref", "cyclic $ref to $defs/%s", key)
	}
	c.resolving[key] = true
	defer delete(c.resolving, key)
	return c.compile(def, "/$defs/"+key)
}

func (c *compiler) checkKeywords(n *yaml.Node, ptr string, used ...string) error {
	known := map[string]bool{"description": true, "title": true, "optional": true}
	for _, k := range used {
		known[k] = true
	}
	return mappingPairs(n, func(k, _ *yaml.Node) error {
		if known[k.Value] || passiveKeywords[k.Value] {
			return nil
		}
		return c.warnOrFail(k, ptr, "unsupported keyword %q ignored", k.Value)
	})
}

// warnOrFail records a warning, or fails under Options.Strict.
func (c *compiler) warnOrFail(n *yaml.Node, ptr, format string, a ...any) error {
	if c.opt.Strict {
		return c.errorf(n, ptr, format, a...)
	}
	c.diag.warnf("%s: %s", ptrOrRoot(ptr), fmt.Sprintf(format, a...))
	return nil
}

func (c *compiler) scalarString(n *yaml.Node, key, ptr string, dst *string) error {
	v := lookup(n, key)
	if v == nil {
		return nil
	}
	if v.Kind != yaml.ScalarNode {
		return c.errorf(v, ptr+"/"+key, "%s must be a string", key)
	}
	*dst = v.Value
	return nil
}

func (c *compiler) stringList(n *yaml.Node, ptr string) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, c.errorf(n, ptr, "expected a list of strings")
	}
	out := make([]string, 0, len(n.Content))
	for i, e := range n.Content {
		e = resolveAlias(e)
		if e.Kind != yaml.ScalarNode || (e.Tag != "!!str" && e.Tag != "") {
			return nil, c.errorf(e, fmt.Sprintf("%s/%d", ptr, i), "expected a string")
		}
		out = append(out, e.Value)
	}
	return out, nil
}

func ptrOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
