// Package dynamic builds generation schemas at runtime from definition
// documents, for cases where no Go type describes the output.
//
// The definition format is the JSON Schema subset that
// GenerationSchema.JSONSchema renders, so a rendered dictionary loads back
// into an equivalent schema:
//
//	title: Recipe
//	type: object
//	properties:
//	  name: {type: string}
//	  servings: {type: integer, minimum: 1, maximum: 12}
//	  ingredients: {type: array, items: {type: string}, minItems: 1}
//	  note: {type: [string, "null"]}
//
// Property order follows the mapping order of the document. Without a
// required list every property is required unless its type admits null or it
// sets optional: true; with a required list the unlisted properties are
// optional. count fixes an array length, and local $ref into $defs is
// expanded.
//
// Combine with dsl.Content to validate generated content against the loaded
// schema.
package dynamic
