// Package rules provides reusable cross-field checks for dsl Refine. A rule
// reads the decoded value by JSON Pointer, where struct fields are addressed
// by their property names.
//
//	dsl.ObjectOf[Plan]("Plan", ...).
//		Refine("steps", rules.If[Plan]("/status", rules.Eq, "ready").
//			Then(rules.AtLeastOne[Plan]("/steps"), rules.UniqueBy[Plan]("/steps", "id")))
package rules

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	generable "github.com/reoring/generable"
)

// Rule is the refinement signature accepted by dsl Refine.
type Rule[T any] = func(generable.Ref, T) []generable.Issue

// Op is a comparison operator for If.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Condition gates rules on the decoded value.
type Condition[T any] struct {
	path string
	op   Op
	want any
	all  []Condition[T]
	any  []Condition[T]
}

// If holds when the value at path compares to want with op. A missing path
// never holds.
func If[T any](path string, op Op, want any) Condition[T] {
	return Condition[T]{path: normalizePath(path), op: op, want: want}
}

// IfAll holds when every condition holds.
func IfAll[T any](conds ...Condition[T]) Condition[T] { return Condition[T]{all: conds} }

// IfAny holds when at least one condition holds.
func IfAny[T any](conds ...Condition[T]) Condition[T] { return Condition[T]{any: conds} }

// And is IfAll with the receiver first.
func (c Condition[T]) And(others ...Condition[T]) Condition[T] {
	return IfAll(append([]Condition[T]{c}, others...)...)
}

// Or is IfAny with the receiver first.
func (c Condition[T]) Or(others ...Condition[T]) Condition[T] {
	return IfAny(append([]Condition[T]{c}, others...)...)
}

// Then runs rules only when the condition holds.
func (c Condition[T]) Then(rules ...Rule[T]) Rule[T] {
	all := And(rules...)
	return func(ref generable.Ref, v T) []generable.Issue {
		if !c.holds(v) {
			return nil
		}
		return all(ref, v)
	}
}

func (c Condition[T]) holds(v T) bool {
	switch {
	case len(c.all) > 0:
		for _, it := range c.all {
			if !it.holds(v) {
				return false
			}
		}
		return true
	case len(c.any) > 0:
		for _, it := range c.any {
			if it.holds(v) {
				return true
			}
		}
		return false
	}
	cur, ok := lookup(v, c.path)
	return ok && compare(cur, c.op, c.want)
}

// Present requires the value at path to be set: a non-nil pointer, slice or
// map, or a non-zero scalar.
func Present[T any](path string) Rule[T] {
	p := normalizePath(path)
	return func(ref generable.Ref, v T) []generable.Issue {
		cur, ok := lookupValue(v, p)
		if ok && !cur.IsZero() {
			return nil
		}
		return []generable.Issue{ref.At(p).Issue(generable.CodeRequired, "value is required here")}
	}
}

// AtLeastOne requires the collection at path to be non-empty.
func AtLeastOne[T any](path string) Rule[T] {
	p := normalizePath(path)
	return func(ref generable.Ref, v T) []generable.Issue {
		cur, ok := lookupValue(v, p)
		if !ok || (cur.Kind() != reflect.Slice && cur.Kind() != reflect.Array) {
			return nil
		}
		if cur.Len() == 0 {
			return []generable.Issue{ref.At(p).Issue(generable.CodeTooShort, "at least 1 item is required", "min", 1)}
		}
		return nil
	}
}

// UniqueBy requires the elements of the collection at path to have distinct
// values at key (a pointer relative to each element).
func UniqueBy[T any](path, key string) Rule[T] {
	p := normalizePath(path)
	k := strings.TrimPrefix(key, "/")
	return func(ref generable.Ref, v T) []generable.Issue {
		cur, ok := lookupValue(v, p)
		if !ok || (cur.Kind() != reflect.Slice && cur.Kind() != reflect.Array) {
			return nil
		}
		seen := map[string]int{}
		var out []generable.Issue
		for i := 0; i < cur.Len(); i++ {
			kv, ok := walk(cur.Index(i), k)
			if !ok {
				continue
			}
			s := fmt.Sprint(kv.Interface())
			if first, dup := seen[s]; dup {
				at := strings.TrimSuffix(p, "/") + "/" + strconv.Itoa(i)
				if k != "" {
					at += "/" + k
				}
				out = append(out, ref.At(at).Issue(
					generable.CodeBusinessRule, "duplicate value", "first", first, "key", s))
				continue
			}
			seen[s] = i
		}
		return out
	}
}

// And runs every rule and concatenates their issues.
func And[T any](rules ...Rule[T]) Rule[T] {
	return func(ref generable.Ref, v T) []generable.Issue {
		var out []generable.Issue
		for _, r := range rules {
			if r != nil {
				out = append(out, r(ref, v)...)
			}
		}
		return out
	}
}

// Or passes when any rule passes; otherwise it reports the branch with the
// fewest issues.
func Or[T any](rules ...Rule[T]) Rule[T] {
	return func(ref generable.Ref, v T) []generable.Issue {
		var best []generable.Issue
		for _, r := range rules {
			if r == nil {
				continue
			}
			iss := r(ref, v)
			if len(iss) == 0 {
				return nil
			}
			if best == nil || len(iss) < len(best) {
				best = iss
			}
		}
		return best
	}
}

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

func lookup[T any](v T, pointer string) (any, bool) {
	cur, ok := lookupValue(v, pointer)
	if !ok {
		return nil, false
	}
	return cur.Interface(), true
}

func lookupValue[T any](v T, pointer string) (reflect.Value, bool) {
	return walk(reflect.ValueOf(&v).Elem(), strings.TrimPrefix(pointer, "/"))
}

// walk follows rel (unescaped segments separated by '/') through structs,
// string-keyed maps and slices. A nil pointer at the end is returned as is.
func walk(cur reflect.Value, rel string) (reflect.Value, bool) {
	if rel != "" {
		for _, seg := range strings.Split(rel, "/") {
			seg = strings.NewReplacer("~1", "/", "~0", "~").Replace(seg)
			for cur.Kind() == reflect.Pointer || cur.Kind() == reflect.Interface {
				if cur.IsNil() {
					return reflect.Value{}, false
				}
				cur = cur.Elem()
			}
			switch cur.Kind() {
			case reflect.Struct:
				next, ok := fieldByKey(cur, seg)
				if !ok {
					return reflect.Value{}, false
				}
				cur = next
			case reflect.Map:
				if cur.Type().Key().Kind() != reflect.String {
					return reflect.Value{}, false
				}
				mv := cur.MapIndex(reflect.ValueOf(seg).Convert(cur.Type().Key()))
				if !mv.IsValid() {
					return reflect.Value{}, false
				}
				cur = mv
			case reflect.Slice, reflect.Array:
				idx, err := strconv.Atoi(seg)
				if err != nil || idx < 0 || idx >= cur.Len() {
					return reflect.Value{}, false
				}
				cur = cur.Index(idx)
			default:
				return reflect.Value{}, false
			}
		}
	}
	if cur.Kind() == reflect.Pointer && !cur.IsNil() {
		cur = cur.Elem()
	}
	return cur, cur.IsValid()
}

func fieldByKey(v reflect.Value, key string) (reflect.Value, bool) {
	rt := v.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.IsExported() && generable.ResolveStructKey(sf) == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return equal(cur, want)
	case Ne:
		return !equal(cur, want)
	}
	a, ok1 := asFloat(cur)
	b, ok2 := asFloat(want)
	if !ok1 || !ok2 {
		return false
	}
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

// equal compares numbers by value across Go numeric types and everything else
// with reflect.DeepEqual. Named string types compare with plain strings.
func equal(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.String && rb.Kind() == reflect.String {
		return ra.String() == rb.String()
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
