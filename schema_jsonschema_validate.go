package generable

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const compiledSchemaURL = "mem://generable/schema.json"

// CompiledSchema is the rendered dictionary of a GenerationSchema compiled by
// a general-purpose JSON Schema validator. It serves as an independent check
// that rendered schemas and Validate agree.
type CompiledSchema struct {
	gen *GenerationSchema
	js  *jsonschema.Schema
}

// CompileJSONSchema renders s and compiles the result.
func CompileJSONSchema(s *GenerationSchema) (*CompiledSchema, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	raw, err := gojson.Marshal(s.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("render schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(compiledSchemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(compiledSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &CompiledSchema{gen: s, js: compiled}, nil
}

// Validate checks complete content. Null optional properties are dropped
// before validation since they mean "absent", which also keeps optional enums
// (whose enum list has no null) in agreement with GenerationSchema.Validate.
func (cs *CompiledSchema) Validate(c GeneratedContent) error {
	err := cs.js.Validate(instanceFor(cs.gen, c))
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var iss Issues
	collectValidationLeaves(ve, &iss)
	if len(iss) == 0 {
		iss = Issues{{Path: "/", Code: CodeBusinessRule, Message: ve.Message, Cause: err, Offset: -1}}
	}
	return iss
}

// ValidateJSONSchema compiles s and validates c in one step.
func ValidateJSONSchema(s *GenerationSchema, c GeneratedContent) error {
	cs, err := CompileJSONSchema(s)
	if err != nil {
		return err
	}
	return cs.Validate(c)
}

func collectValidationLeaves(ve *jsonschema.ValidationError, iss *Issues) {
	if len(ve.Causes) == 0 {
		*iss = append(*iss, Issue{
			Path:    normPath(ve.InstanceLocation),
			Code:    codeForKeyword(ve.KeywordLocation),
			Message: ve.Message,
			Rule:    ve.KeywordLocation,
			Offset:  -1,
		})
		return
	}
	for _, c := range ve.Causes {
		collectValidationLeaves(c, iss)
	}
}

func codeForKeyword(loc string) string {
	kw := loc[strings.LastIndexByte(loc, '/')+1:]
	switch kw {
	case "type":
		return CodeInvalidType
	case "required":
		return CodeRequired
	case "additionalProperties":
		return CodeUnknownKey
	case "minimum":
		return CodeTooSmall
	case "maximum":
		return CodeTooBig
	case "minItems":
		return CodeTooShort
	case "maxItems":
		return CodeTooLong
	case "pattern":
		return CodePattern
	case "enum":
		return CodeInvalidEnum
	case "anyOf":
		return CodeNoMatch
	}
	return CodeBusinessRule
}

// instanceFor converts c into plain values, removing null members that the
// schema declares optional.
func instanceFor(s *GenerationSchema, c GeneratedContent) any {
	if s == nil {
		return c.ToAny()
	}
	switch {
	case s.Kind == SchemaObject && c.Kind() == KindObject:
		out := make(map[string]any, c.Len())
		for k, v := range c.All() {
			p, ok := s.Property(k)
			if ok && p.Optional && v.IsNull() {
				continue
			}
			if ok {
				out[k] = instanceFor(p.Schema, v)
			} else {
				out[k] = v.ToAny()
			}
		}
		return out
	case s.Kind == SchemaArray && c.Kind() == KindArray:
		elems := c.Elements()
		out := make([]any, len(elems))
		for i, el := range elems {
			out[i] = instanceFor(s.Items, el)
		}
		return out
	}
	return c.ToAny()
}
