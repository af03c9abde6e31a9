package generable

import (
	"reflect"
)

// FieldToken identifies a top-level struct field of T by its property name.
// Obtain it via FieldOf to ensure compile-time linkage to the struct field.
type FieldToken[T any] struct {
	key string
}

// Key returns the property name associated with this field token.
func (t FieldToken[T]) Key() string { return t.key }

// Pointer returns the JSON Pointer of the field relative to the object root.
func (t FieldToken[T]) Pointer() string { return "/" + escapePointer(t.key) }

// Seen reports whether the field appeared in the decoded input.
func (t FieldToken[T]) Seen(pm PresenceMap) bool { return pm.Seen(t.Pointer()) }

// FieldNameOf returns the property name for a top-level field of S selected by selector.
// Example: FieldNameOf[Recipe](func(r *Recipe) *string { return &r.Title }) -> "title".
func FieldNameOf[S any, F any](selector func(*S) *F) string {
	if selector == nil {
		panic("generable.FieldNameOf: selector must not be nil")
	}
	idx, ok := fieldIndexOf(selector)
	if !ok {
		panic("generable.FieldNameOf: selector must return address of a top-level field")
	}
	var zero S
	name := ResolveStructKey(reflect.TypeOf(zero).Field(idx))
	if name == "" || name == "-" {
		panic("generable.FieldNameOf: selected field is not exported or disabled")
	}
	return name
}

// FieldOf builds a FieldToken for a top-level field of T.
// The selector must return the address of a top-level field, e.g.:
//
//	FieldOf[Recipe](func(r *Recipe) *int { return &r.Servings })
//
// This guarantees compile-time errors if the field is renamed/removed.
func FieldOf[T any, F any](selector func(*T) *F) FieldToken[T] {
	return FieldToken[T]{key: FieldNameOf(selector)}
}

// FieldIndexOf returns the struct field index addressed by selector.
func FieldIndexOf[S any, F any](selector func(*S) *F) (int, bool) {
	if selector == nil {
		return 0, false
	}
	return fieldIndexOf(selector)
}

func fieldIndexOf[S any, F any](selector func(*S) *F) (int, bool) {
	var zero S
	rv := reflect.ValueOf(&zero).Elem()
	if rv.Kind() != reflect.Struct {
		return 0, false
	}
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		// Zero-sized fields share addresses with their neighbours; require a
		// matching type too.
		if fv.CanAddr() && fv.Addr().Pointer() == fp && sf.Type == reflect.TypeFor[F]() {
			return i, true
		}
	}
	return 0, false
}
