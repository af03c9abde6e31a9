package generable

import (
	"math"
	"slices"

	"github.com/reoring/generable/internal/engine"
)

// Kind is the variant tag of a GeneratedContent.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// GeneratedContent is a dynamically typed JSON value with ordered object keys
// and a completeness flag. The zero value is a complete null.
//
// Values are immutable once built: constructors copy their inputs and
// accessors return copies of internal slices.
type GeneratedContent struct {
	kind    Kind
	b       bool
	num     float64
	str     string
	items   []GeneratedContent
	props   *properties
	partial bool
}

// Null returns a complete null.
func Null() GeneratedContent { return GeneratedContent{} }

// Bool wraps a boolean.
func Bool(v bool) GeneratedContent { return GeneratedContent{kind: KindBool, b: v} }

// Number wraps a float64.
func Number(v float64) GeneratedContent { return GeneratedContent{kind: KindNumber, num: v} }

// Int wraps an integer. Magnitudes beyond 2^53 lose precision.
func Int(v int64) GeneratedContent { return GeneratedContent{kind: KindNumber, num: float64(v)} }

// String wraps a string.
func String(v string) GeneratedContent { return GeneratedContent{kind: KindString, str: v} }

// Array builds an array from elements in order.
func Array(elems ...GeneratedContent) GeneratedContent {
	return GeneratedContent{kind: KindArray, items: slices.Clone(elems)}
}

// Kind reports the variant.
func (c GeneratedContent) Kind() Kind { return c.kind }

// IsNull reports whether c is null.
func (c GeneratedContent) IsNull() bool { return c.kind == KindNull }

// IsComplete reports whether c was fully read. A value built through the
// constructors is always complete; Parse marks values cut off by the end of
// input as incomplete together with every container enclosing them.
func (c GeneratedContent) IsComplete() bool { return !c.partial }

// BoolValue returns the boolean payload.
func (c GeneratedContent) BoolValue() (bool, bool) {
	if c.kind != KindBool {
		return false, false
	}
	return c.b, true
}

// Float returns the numeric payload.
func (c GeneratedContent) Float() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// Int64 returns the numeric payload when it is integral and fits an int64.
func (c GeneratedContent) Int64() (int64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	if c.num != math.Trunc(c.num) || c.num < math.MinInt64 || c.num >= math.MaxInt64 {
		return 0, false
	}
	return int64(c.num), true
}

// Text returns the string payload.
func (c GeneratedContent) Text() (string, bool) {
	if c.kind != KindString {
		return "", false
	}
	return c.str, true
}

// Elements returns the array elements in order (nil for non-arrays).
func (c GeneratedContent) Elements() []GeneratedContent {
	if c.kind != KindArray {
		return nil
	}
	return slices.Clone(c.items)
}

// Len returns the number of elements or properties; 0 for scalars.
func (c GeneratedContent) Len() int {
	switch c.kind {
	case KindArray:
		return len(c.items)
	case KindObject:
		return c.props.len()
	}
	return 0
}

// Equal compares structure: kind, payload, element order and key order.
// Completeness is not part of equality; compare IsComplete separately.
func (c GeneratedContent) Equal(o GeneratedContent) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNull:
		return true
	case KindBool:
		return c.b == o.b
	case KindNumber:
		return c.num == o.num
	case KindString:
		return c.str == o.str
	case KindArray:
		return slices.EqualFunc(c.items, o.items, GeneratedContent.Equal)
	case KindObject:
		return c.props.equal(o.props)
	}
	return false
}

// fromNode converts an engine node, carrying completeness down the tree.
func fromNode(n engine.Node) GeneratedContent {
	c := GeneratedContent{partial: !n.Complete}
	switch n.Kind {
	case engine.NodeNull:
		c.kind = KindNull
	case engine.NodeBool:
		c.kind, c.b = KindBool, n.Bool
	case engine.NodeNumber:
		c.kind, c.num = KindNumber, n.Number
	case engine.NodeString:
		c.kind, c.str = KindString, n.String
	case engine.NodeArray:
		c.kind = KindArray
		c.items = make([]GeneratedContent, len(n.Items))
		for i, it := range n.Items {
			c.items[i] = fromNode(it)
		}
	case engine.NodeObject:
		c.kind = KindObject
		c.props = newProperties(len(n.Members))
		for _, m := range n.Members {
			c.props.set(m.Key, fromNode(m.Value))
		}
	}
	return c
}
