package dsl

import (
	"errors"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/i18n"
)

// Converter is the Generable implementation returned by every constructor in
// this package. Describe, Guides and Refine return modified copies, so a
// converter can be shared and specialized freely.
type Converter[T any] struct {
	schema *generable.GenerationSchema
	decode func(generable.GeneratedContent) (T, error)
	encode func(T) generable.GeneratedContent
	rules  []rule[T]
	// union converters check alternatives themselves; full converters
	// validate the whole subtree up front.
	union bool
	full  bool
}

type rule[T any] struct {
	name string
	fn   func(generable.Ref, T) []generable.Issue
}

var _ generable.Generable[string] = (*Converter[string])(nil)

// GenerationSchema implements generable.Generable.
func (c *Converter[T]) GenerationSchema() *generable.GenerationSchema { return c.schema }

// FromContent implements generable.Generable. The value's kind and guides are
// checked first, then it is converted, then refinement rules run.
func (c *Converter[T]) FromContent(in generable.GeneratedContent) (T, error) {
	var zero T
	switch {
	case c.full:
		if err := c.schema.Validate(in); err != nil {
			return zero, err
		}
	case !c.union:
		if err := c.schema.ValidateNode(in); err != nil {
			return zero, err
		}
	}
	v, err := c.decode(in)
	if err != nil {
		return zero, err
	}
	if len(c.rules) > 0 {
		if iss := c.runRules(in, v); len(iss) > 0 {
			return zero, iss
		}
	}
	return v, nil
}

// ToContent implements generable.Generable.
func (c *Converter[T]) ToContent(v T) generable.GeneratedContent { return c.encode(v) }

func (c *Converter[T]) runRules(in generable.GeneratedContent, v T) generable.Issues {
	ref := generable.NewRef(generable.CollectPresence(in))
	var out generable.Issues
	for _, r := range c.rules {
		for _, it := range r.fn(ref, v) {
			if it.Code == "" {
				it.Code = generable.CodeBusinessRule
			}
			if it.Message == "" {
				it.Message = i18n.T(it.Code, nil)
			}
			if it.Path == "" {
				it.Path = "/"
			}
			if it.Rule == "" {
				it.Rule = r.name
			}
			out = append(out, it)
		}
	}
	return out
}

func (c *Converter[T]) clone() *Converter[T] {
	cp := *c
	if c.schema != nil {
		sch := *c.schema
		cp.schema = &sch
	} else {
		cp.schema = &generable.GenerationSchema{}
	}
	cp.rules = append([]rule[T](nil), c.rules...)
	return &cp
}

// Describe returns a copy whose schema carries description d.
func (c *Converter[T]) Describe(d string) *Converter[T] {
	cp := c.clone()
	cp.schema.Description = d
	return cp
}

// Guides returns a copy with additional guides. Guides that do not apply to
// the schema kind are ignored.
func (c *Converter[T]) Guides(gs ...generable.Guide) *Converter[T] {
	cp := c.clone()
	for _, fn := range gs {
		fn(&cp.schema.Guides)
	}
	return cp
}

// Refine returns a copy that runs fn after a successful conversion. Issues
// without a code are reported as business_rule; paths are relative to the
// converted value.
func (c *Converter[T]) Refine(name string, fn func(ref generable.Ref, v T) []generable.Issue) *Converter[T] {
	if fn == nil {
		return c
	}
	cp := c.clone()
	cp.rules = append(cp.rules, rule[T]{name: name, fn: fn})
	return cp
}

// rebase prefixes the paths of err (Issues or not) with base.
func rebase(err error, base string) generable.Issues {
	if iss, ok := generable.AsIssues(err); ok {
		return iss.Rebase(base)
	}
	return generable.Issues{{Path: base, Code: generable.CodeParseError, Message: err.Error(), Cause: err, Offset: -1}}
}

// ErrInvalidBinding reports a malformed object binding (bad selector, missing
// converter, duplicate property name, non-struct target).
var ErrInvalidBinding = errors.New("dsl: invalid binding")
