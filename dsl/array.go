package dsl

import (
	"strconv"

	generable "github.com/reoring/generable"
)

// ArrayOf converts arrays element by element. Conversion is all-or-nothing:
// every failing element is reported (under /<index>) and no partial slice is
// returned. MinItems, MaxItems and Count guides apply.
func ArrayOf[E any](elem generable.Generable[E], gs ...generable.Guide) *Converter[[]E] {
	return &Converter[[]E]{
		schema: generable.ArraySchema(elem.GenerationSchema(), gs...),
		decode: func(c generable.GeneratedContent) ([]E, error) {
			elems := c.Elements()
			out := make([]E, 0, len(elems))
			var iss generable.Issues
			for i, el := range elems {
				v, err := elem.FromContent(el)
				if err != nil {
					iss = append(iss, rebase(err, "/"+strconv.Itoa(i))...)
					continue
				}
				out = append(out, v)
			}
			if len(iss) > 0 {
				return nil, iss
			}
			return out, nil
		},
		encode: func(vs []E) generable.GeneratedContent {
			items := make([]generable.GeneratedContent, len(vs))
			for i, v := range vs {
				items[i] = elem.ToContent(v)
			}
			return generable.Array(items...)
		},
	}
}
