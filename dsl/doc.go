// Package dsl binds Go types to generation schemas.
//
// Every constructor returns a value implementing generable.Generable[T]: it
// carries the schema the model is prompted with and converts between
// generated content and T in both directions.
//
// Overview
//   - Scalars: String, StringOf, Bool, Int, Int64, Float, Enum.
//   - Containers: ArrayOf (all-or-nothing, every failing element reported),
//     Optional (null and absence decode to nil), AnyOf (first alternative that
//     accepts wins) and Adapt for feeding concrete types into AnyOf.
//   - Objects: ObjectOf[T] with Prop or PropOf per field, finished by Bind or
//     MustBind. Property order is declaration order and drives both the
//     rendered schema and the encoded content.
//   - Content passes content through after validating it against a runtime
//     schema, e.g. one loaded by package dynamic.
//
// Guides (generable.Range, generable.Pattern, generable.Count, ...) are both
// rendered into the schema and enforced on decode. Refine adds cross-field
// rules reported as business_rule issues.
//
// Example
//
//	type Recipe struct {
//	    Name        string   `json:"name"`
//	    Servings    int      `json:"servings" generable:"desc=How many people it feeds"`
//	    Ingredients []string `json:"ingredients"`
//	    Note        *string  `json:"note"`
//	}
//
//	recipe := g.ObjectOf[Recipe]("Recipe",
//	    g.PropOf(g.String(), func(r *Recipe) *string { return &r.Name }),
//	    g.PropOf(g.Int(generable.Range(1, 12)), func(r *Recipe) *int { return &r.Servings }),
//	    g.PropOf(g.ArrayOf(g.String()), func(r *Recipe) *[]string { return &r.Ingredients }),
//	    g.PropOf(g.Optional(g.String()), func(r *Recipe) **string { return &r.Note }),
//	).MustBind()
//
//	r, err := generable.DecodeJSON(recipe, `{"name":"Soup","servings":2,"ingredients":["water"]}`)
package dsl
