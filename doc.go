// Package generable turns (possibly truncated) JSON text produced by a language
// model into typed Go values.
//
// Package generable provides:
//
// - A tolerant scanner (Parse) that accepts any prefix of a JSON document and
// reports how much of it is complete, plus a strict decoder (ParseStrict)
// - GeneratedContent, an ordered-key dynamic JSON tree with canonical rendering
// - GenerationSchema, the schema a model is asked to follow, with its JSON
// Schema dictionary and collect-all validation
// - Generable[T], the binding between application types and content; the dsl
// package builds bindings for scalars, arrays, enums, unions and structs
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Typical usage while a response streams in:
//
//	acc := generable.NewAccumulator()
//	for chunk := range chunks {
//		acc.WriteString(chunk)
//		c, err := acc.Snapshot()
//		if err != nil {
//			return err
//		}
//		r := generable.SafeDecode(recipe, c)
//		render(r.Value, r.Complete)
//	}
//
// and once the response is final:
//
//	v, err := generable.DecodeJSON(recipe, text)
package generable
