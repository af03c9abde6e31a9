package generable

import (
	"iter"
	"slices"
	"strconv"
)

// Property is one key/value pair used to build objects.
type Property struct {
	Key   string
	Value GeneratedContent
}

// Prop pairs a key with a value for Object.
func Prop(key string, v GeneratedContent) Property { return Property{Key: key, Value: v} }

// Object builds an object in the given key order. A repeated key keeps its
// first position and takes the last value.
func Object(props ...Property) GeneratedContent {
	p := newProperties(len(props))
	for _, kv := range props {
		p.set(kv.Key, kv.Value)
	}
	return GeneratedContent{kind: KindObject, props: p}
}

// Keys returns the object keys in order (nil for non-objects).
func (c GeneratedContent) Keys() []string {
	if c.kind != KindObject || c.props == nil {
		return nil
	}
	return slices.Clone(c.props.keys)
}

// Property looks up key in an object.
func (c GeneratedContent) Property(key string) (GeneratedContent, bool) {
	if c.kind != KindObject || c.props == nil {
		return GeneratedContent{}, false
	}
	v, ok := c.props.vals[key]
	return v, ok
}

// All iterates object properties in key order. Arrays yield their elements
// keyed by decimal index; scalars yield nothing.
func (c GeneratedContent) All() iter.Seq2[string, GeneratedContent] {
	return func(yield func(string, GeneratedContent) bool) {
		switch c.kind {
		case KindObject:
			if c.props == nil {
				return
			}
			for _, k := range c.props.keys {
				if !yield(k, c.props.vals[k]) {
					return
				}
			}
		case KindArray:
			for i, it := range c.items {
				if !yield(strconv.Itoa(i), it) {
					return
				}
			}
		}
	}
}

// properties is an insertion-ordered map. keys and vals are only ever changed
// together through set.
type properties struct {
	keys []string
	vals map[string]GeneratedContent
}

func newProperties(n int) *properties {
	return &properties{keys: make([]string, 0, n), vals: make(map[string]GeneratedContent, n)}
}

func (p *properties) set(key string, v GeneratedContent) {
	if _, ok := p.vals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = v
}

func (p *properties) len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *properties) equal(o *properties) bool {
	if p.len() != o.len() {
		return false
	}
	if p.len() == 0 {
		return true
	}
	if !slices.Equal(p.keys, o.keys) {
		return false
	}
	for _, k := range p.keys {
		if !p.vals[k].Equal(o.vals[k]) {
			return false
		}
	}
	return true
}
