package generable

import (
	"regexp"
	"slices"
)

// Guides are the constraints a schema communicates to the model and enforces
// during validation. A guide that does not apply to the schema kind (for
// example MinItems on a string) is ignored.
type Guides struct {
	Minimum       *float64       // integer, number
	Maximum       *float64       // integer, number
	Pattern       *regexp.Regexp // string; unanchored match
	MinItems      *int           // array
	MaxItems      *int           // array
	AllowedValues []string       // string
}

// Guide mutates a Guides set.
type Guide func(*Guides)

// Minimum sets an inclusive lower bound.
func Minimum(v float64) Guide { return func(g *Guides) { g.Minimum = &v } }

// Maximum sets an inclusive upper bound.
func Maximum(v float64) Guide { return func(g *Guides) { g.Maximum = &v } }

// Range sets both bounds (inclusive).
func Range(lo, hi float64) Guide {
	return func(g *Guides) { g.Minimum, g.Maximum = &lo, &hi }
}

// Pattern constrains strings to match expr. It panics if expr does not compile.
func Pattern(expr string) Guide {
	re := regexp.MustCompile(expr)
	return PatternRegexp(re)
}

// PatternRegexp is Pattern with a precompiled expression.
func PatternRegexp(re *regexp.Regexp) Guide { return func(g *Guides) { g.Pattern = re } }

// MinItems sets the minimum array length.
func MinItems(n int) Guide { return func(g *Guides) { g.MinItems = &n } }

// MaxItems sets the maximum array length.
func MaxItems(n int) Guide { return func(g *Guides) { g.MaxItems = &n } }

// Count fixes the array length to exactly n.
func Count(n int) Guide { return func(g *Guides) { g.MinItems, g.MaxItems = &n, &n } }

// AllowedValues restricts a string to the listed values.
func AllowedValues(vs ...string) Guide {
	vs = slices.Clone(vs)
	return func(g *Guides) { g.AllowedValues = vs }
}

// IsZero reports whether no guide is set.
func (g Guides) IsZero() bool {
	return g.Minimum == nil && g.Maximum == nil && g.Pattern == nil &&
		g.MinItems == nil && g.MaxItems == nil && g.AllowedValues == nil
}

// merge overlays o on g; set fields in o win.
func (g Guides) merge(o Guides) Guides {
	if o.Minimum != nil {
		g.Minimum = o.Minimum
	}
	if o.Maximum != nil {
		g.Maximum = o.Maximum
	}
	if o.Pattern != nil {
		g.Pattern = o.Pattern
	}
	if o.MinItems != nil {
		g.MinItems = o.MinItems
	}
	if o.MaxItems != nil {
		g.MaxItems = o.MaxItems
	}
	if o.AllowedValues != nil {
		g.AllowedValues = o.AllowedValues
	}
	return g
}

// forKind drops the guides that do not apply to k.
func (g Guides) forKind(k SchemaKind) Guides {
	var out Guides
	switch k {
	case SchemaInteger, SchemaNumber:
		out.Minimum, out.Maximum = g.Minimum, g.Maximum
	case SchemaString:
		out.Pattern, out.AllowedValues = g.Pattern, g.AllowedValues
	case SchemaArray:
		out.MinItems, out.MaxItems = g.MinItems, g.MaxItems
	}
	return out
}
